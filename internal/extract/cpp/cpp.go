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

// Package cpp extracts Buildings/Rooms/Artifacts from C++ source.
// Namespaces map to Buildings of type "namespace"; everything else follows the C
// extractor's shape with C++-specific additions (classes, templates,
// access-specifier-driven field visibility).
package cpp

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"cout": true, "cin": true, "cerr": true, "endl": true,
	"printf": true, "scanf": true, "malloc": true, "free": true,
	"new": true, "delete": true, "sizeof": true, "typeid": true,
	"static_cast": true, "dynamic_cast": true, "const_cast": true,
	"reinterpret_cast": true, "move": true, "forward": true,
	"make_unique": true, "make_shared": true, "push_back": true,
	"emplace_back": true, "begin": true, "end": true, "size": true,
	"empty": true, "find": true, "insert": true, "erase": true, "clear": true,
}

var complexityKinds = map[string]bool{
	"if_statement": true, "else_clause": true, "for_statement": true,
	"for_range_loop": true, "while_statement": true, "do_statement": true,
	"switch_statement": true, "case_statement": true, "catch_clause": true,
	"conditional_expression": true,
}

var language *sitter.Language

func init() {
	language = cpp.GetLanguage()
	if language == nil {
		panic("cpp: tree-sitter grammar failed to load")
	}
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "cpp" }

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
		case "preproc_include":
			if pathNode := shared.ChildByField(child, "path"); pathNode != nil {
				path := strings.Trim(shared.Text(pathNode, src), "\"<>")
				if path != "" {
					*imports = append(*imports, path)
				}
			}

		case "namespace_definition":
			name := textOr(shared.ChildByField(child, "name"), src, "anonymous")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				children = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: "namespace", IsPublic: true,
				LOC: shared.CountLines(child), Children: children,
			})

		case "class_specifier", "struct_specifier":
			name := textOr(shared.ChildByField(child, "name"), src, "AnonymousClass")
			id := fmt.Sprintf("%s::%s", parentID, name)
			buildingType := "class"
			if child.Type() == "struct_specifier" {
				buildingType = "struct"
			}
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				children = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: buildingType, IsPublic: true,
				LOC: shared.CountLines(child), Children: children,
			})

		case "function_definition":
			declarator := shared.ChildByField(child, "declarator")
			var name string
			if declarator != nil {
				if inner := shared.ChildByField(declarator, "declarator"); inner != nil {
					name = shared.Text(inner, src)
				} else {
					name = shared.Text(declarator, src)
				}
			}
			if name == "" {
				name = "fn"
			}
			cleanName := strings.TrimSpace(strings.SplitN(name, "(", 2)[0])
			id := fmt.Sprintf("%s::%s", parentID, cleanName)
			var parameters []world.Parameter
			if declarator != nil {
				parameters = extractParameters(declarator, src)
			}
			var calls []string
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				calls = extractCalls(body, src)
				children = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Room{
				ID: id, Name: cleanName, RoomType: "function",
				IsMain:     cleanName == "main",
				Visibility: "public",
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: parameters,
				ReturnType: textOr(shared.ChildByField(child, "type"), src, ""),
				Calls:      calls,
				Children:   children,
			})

		case "declaration":
			for j := 0; j < int(child.ChildCount()); j++ {
				declChild := child.Child(j)
				switch declChild.Type() {
				case "function_declarator":
					name := textOr(shared.ChildByField(declChild, "declarator"), src, "method")
					id := fmt.Sprintf("%s::%s", parentID, name)
					entities = append(entities, &world.Room{
						ID: id, Name: name, RoomType: "method_declaration",
						Visibility: getAccessSpecifier(child, src),
						Complexity: 1,
						LOC:        shared.CountLines(child),
						Parameters: extractParameters(declChild, src),
						ReturnType: textOr(shared.ChildByField(child, "type"), src, ""),
					})
				case "init_declarator", "identifier":
					var name string
					if declChild.Type() == "init_declarator" {
						name = textOr(shared.ChildByField(declChild, "declarator"), src, "")
					} else {
						name = shared.Text(declChild, src)
					}
					if name == "" {
						continue
					}
					datatype := textOr(shared.ChildByField(child, "type"), src, "auto")
					id := fmt.Sprintf("%s::%s", parentID, name)
					isConst := strings.Contains(shared.Text(child, src), "const ")
					artifactType := "variable"
					if isConst {
						artifactType = "constant"
					}
					entities = append(entities, &world.Artifact{
						ID: id, Name: name, ArtifactType: artifactType,
						Datatype: datatype, IsMutable: !isConst,
					})
				}
			}

		case "field_declaration":
			datatype := textOr(shared.ChildByField(child, "type"), src, "auto")
			for j := 0; j < int(child.ChildCount()); j++ {
				fieldChild := child.Child(j)
				if fieldChild.Type() == "field_identifier" {
					name := shared.Text(fieldChild, src)
					id := fmt.Sprintf("%s::%s", parentID, name)
					entities = append(entities, &world.Artifact{
						ID: id, Name: name, ArtifactType: "field",
						Datatype: datatype, IsMutable: true, Metadata: map[string]string{
							"access": getAccessSpecifier(child, src),
						},
					})
				}
			}

		case "template_declaration":
			entities = append(entities, parseNode(child, src, parentID, imports)...)

		default:
			if child.ChildCount() > 0 {
				entities = append(entities, parseNode(child, src, parentID, imports)...)
			}
		}
	}
	return entities
}

// getAccessSpecifier walks node's siblings looking for the nearest
// preceding access_specifier; C++'s default for a bare `class` is
// private.
func getAccessSpecifier(node *sitter.Node, src []byte) string {
	parent := node.Parent()
	if parent == nil {
		return "private"
	}
	lastAccess := "private"
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child.Type() == "access_specifier" {
			spec := strings.ToLower(strings.TrimSuffix(shared.Text(child, src), ":"))
			switch spec {
			case "public":
				lastAccess = "public"
			case "protected":
				lastAccess = "protected"
			default:
				lastAccess = "private"
			}
		}
		if child.ID() == node.ID() {
			return lastAccess
		}
	}
	return "private"
}

func textOr(n *sitter.Node, src []byte, fallback string) string {
	if n == nil {
		return fallback
	}
	return shared.Text(n, src)
}

func extractParameters(declarator *sitter.Node, src []byte) []world.Parameter {
	var params []world.Parameter
	list := shared.ChildByField(declarator, "parameters")
	if list == nil {
		return params
	}
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		if child.Type() != "parameter_declaration" && child.Type() != "optional_parameter_declaration" {
			continue
		}
		name := textOr(shared.ChildByField(child, "declarator"), src, "")
		datatype := textOr(shared.ChildByField(child, "type"), src, "auto")
		if name != "" {
			params = append(params, world.Parameter{Name: name, Datatype: datatype})
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
		if idx := strings.LastIndex(name, "::"); idx >= 0 {
			name = name[idx+2:]
		}
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		return name, name != ""
	}, builtins)
}
