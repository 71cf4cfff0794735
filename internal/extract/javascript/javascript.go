// Copyright 2026 The Codeworld Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package javascript extracts Buildings/Rooms/Artifacts from JavaScript
// source (.js, .jsx).
package javascript

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"console": true, "log": true, "error": true, "warn": true,
	"map": true, "filter": true, "reduce": true, "forEach": true,
	"push": true, "pop": true, "shift": true, "unshift": true,
	"slice": true, "splice": true, "JSON": true, "parse": true,
	"stringify": true, "parseInt": true, "parseFloat": true, "toString": true,
	"then": true, "catch": true, "finally": true, "Promise": true,
	"async": true, "await": true, "require": true, "module": true, "exports": true,
}

var complexityKinds = map[string]bool{
	"if_statement": true, "switch_statement": true, "while_statement": true,
	"for_statement": true, "for_in_statement": true, "for_of_statement": true,
	"catch_clause": true, "ternary_expression": true, "optional_chain_expression": true,
	"switch_case": true,
}

var language *sitter.Language

func init() {
	language = javascript.GetLanguage()
	if language == nil {
		panic("javascript: tree-sitter grammar failed to load")
	}
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "js" }

func (*Extractor) Extract(source []byte, parentID string) ([]world.Entity, []string) {
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil, nil
	}
	var imports []string
	entities := parseNode(tree.RootNode(), source, parentID, &imports)
	return entities, imports
}

func parseNode(node *sitter.Node, src []byte, parentID string, imports *[]string) []world.Entity {
	var entities []world.Entity
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import_statement":
			if srcNode := shared.ChildByField(child, "source"); srcNode != nil {
				path := strings.Trim(shared.Text(srcNode, src), "\"'`")
				if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
					if !strings.HasSuffix(path, ".js") && !strings.HasSuffix(path, ".jsx") {
						path += ".js"
					}
					*imports = append(*imports, path)
				}
			}

		case "lexical_declaration", "variable_declaration":
			for j := 0; j < int(child.ChildCount()); j++ {
				decl := child.Child(j)
				if decl.Type() != "variable_declarator" {
					continue
				}
				value := shared.ChildByField(decl, "value")
				if value != nil && value.Type() == "call_expression" {
					fn := shared.Text(shared.ChildByField(value, "function"), src)
					if fn == "require" {
						if args := shared.ChildByField(value, "arguments"); args != nil {
							path := strings.Trim(shared.Text(args, src), "()\"' ")
							if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
								*imports = append(*imports, path+".js")
							}
						}
					}
				}
			}
			entities = append(entities, parseVariables(child, src, parentID, imports)...)

		case "class_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, "AnonymousClass")
			id := fmt.Sprintf("%s::%s", parentID, name)
			entities = append(entities, &world.Building{
				ID:           id,
				Name:         name,
				BuildingType: "class",
				IsPublic:     isExported(child, src),
				LOC:          shared.CountLines(child),
				Children:     parseNode(child, src, id, imports),
			})

		case "function_declaration", "generator_function_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, "fn")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var calls []string
			if body := shared.ChildByField(child, "body"); body != nil {
				calls = extractCalls(body, src)
			}
			entities = append(entities, &world.Room{
				ID:         id,
				Name:       name,
				RoomType:   "function",
				IsMain:     false,
				IsAsync:    isAsync(child, src),
				Visibility: visibility(isExported(child, src)),
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: extractParameters(child, src),
				Calls:      calls,
				Children:   parseFunctionBody(child, src, id, imports),
			})

		case "method_definition":
			name := textOr(shared.ChildByField(child, "name"), src, "method")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var calls []string
			if body := shared.ChildByField(child, "body"); body != nil {
				calls = extractCalls(body, src)
			}
			entities = append(entities, &world.Room{
				ID:         id,
				Name:       name,
				RoomType:   "method",
				IsMain:     false,
				IsAsync:    isAsync(child, src),
				Visibility: "public",
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: extractParameters(child, src),
				Calls:      calls,
				Children:   parseFunctionBody(child, src, id, imports),
			})

		case "field_definition":
			nameNode := shared.ChildByField(child, "property")
			if nameNode == nil {
				nameNode = shared.ChildByField(child, "name")
			}
			name := textOr(nameNode, src, "field")
			id := fmt.Sprintf("%s::%s", parentID, name)
			entities = append(entities, &world.Artifact{
				ID:           id,
				Name:         name,
				ArtifactType: "field",
				Datatype:     "any",
				IsMutable:    true,
			})

		default:
			if child.ChildCount() > 0 {
				entities = append(entities, parseNode(child, src, parentID, imports)...)
			}
		}
	}
	return entities
}

func parseVariables(node *sitter.Node, src []byte, parentID string, imports *[]string) []world.Entity {
	var entities []world.Entity
	declText := shared.Text(node, src)
	isConst := strings.HasPrefix(declText, "const")

	for i := 0; i < int(node.ChildCount()); i++ {
		decl := node.Child(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		name := textOr(shared.ChildByField(decl, "name"), src, "var")
		value := shared.ChildByField(decl, "value")
		id := fmt.Sprintf("%s::%s", parentID, name)

		if value != nil && value.Type() == "arrow_function" {
			entities = append(entities, &world.Room{
				ID:         id,
				Name:       name,
				RoomType:   "arrow_function",
				IsMain:     false,
				IsAsync:    isAsync(value, src),
				Visibility: visibility(isExported(node, src)),
				Complexity: shared.BranchKinds(value, complexityKinds),
				LOC:        shared.CountLines(value),
				Parameters: extractParameters(value, src),
				Calls:      extractCalls(value, src),
				Children:   parseFunctionBody(value, src, id, imports),
			})
			continue
		}

		artifactType := "variable"
		if isConst {
			artifactType = "constant"
		}
		var valueHint string
		if value != nil {
			valueHint = shared.Truncate(shared.Text(value, src), 27)
		}
		entities = append(entities, &world.Artifact{
			ID:           id,
			Name:         name,
			ArtifactType: artifactType,
			Datatype:     "any",
			IsMutable:    !isConst,
			ValueHint:    valueHint,
		})
	}
	return entities
}

func parseFunctionBody(node *sitter.Node, src []byte, parentID string, imports *[]string) []world.Entity {
	body := shared.ChildByField(node, "body")
	if body == nil {
		return nil
	}
	return parseNode(body, src, parentID, imports)
}

func textOr(n *sitter.Node, src []byte, fallback string) string {
	if n == nil {
		return fallback
	}
	return shared.Text(n, src)
}

func isExported(n *sitter.Node, src []byte) bool {
	if p := n.Parent(); p != nil && p.Type() == "export_statement" {
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "export" {
			return true
		}
	}
	return false
}

func isAsync(n *sitter.Node, src []byte) bool {
	if strings.HasPrefix(strings.TrimSpace(shared.Text(n, src)), "async") {
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}

func visibility(public bool) string {
	if public {
		return "public"
	}
	return "private"
}

func extractParameters(n *sitter.Node, src []byte) []world.Parameter {
	var params []world.Parameter
	list := shared.ChildByField(n, "parameters")
	if list == nil {
		return params
	}
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		switch child.Type() {
		case "identifier", "assignment_pattern", "rest_pattern":
			name := shared.Text(child, src)
			if name != "" && name != "(" && name != ")" && name != "," {
				params = append(params, world.Parameter{Name: name, Datatype: "any"})
			}
		}
	}
	return params
}

func extractCalls(n *sitter.Node, src []byte) []string {
	return shared.CallCollector(n, src, func(node *sitter.Node, src []byte) (string, bool) {
		if node.Type() != "call_expression" {
			return "", false
		}
		fn := shared.ChildByField(node, "function")
		if fn == nil {
			return "", false
		}
		name := shared.Text(fn, src)
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		return name, name != ""
	}, builtins)
}
