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

// Package rust extracts Buildings/Rooms/Artifacts from Rust source.
package rust

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"println": true, "print": true, "format": true, "vec": true,
	"Some": true, "None": true, "Ok": true, "Err": true,
	"unwrap": true, "expect": true, "clone": true, "to_string": true,
	"into": true, "from": true, "new": true, "default": true,
}

var complexityKinds = map[string]bool{
	"if_expression": true, "match_expression": true, "while_expression": true,
	"for_expression": true, "loop_expression": true, "?": true, "match_arm": true,
}

// language is resolved once; a nil grammar is a programmer error (missing
// or incompatible grammar binary), so we panic during init rather than
// surface it as a data condition.
var language *sitter.Language

func init() {
	language = rust.GetLanguage()
	if language == nil {
		panic("rust: tree-sitter grammar failed to load")
	}
}

// Extractor implements extract.Extractor for Rust.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "rs" }

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
		case "use_declaration":
			path := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(shared.Text(child, src)), "use "), ";")
			if strings.HasPrefix(path, "crate::") {
				rel := strings.ReplaceAll(strings.Replace(path, "crate::", "src/", 1), "::", "/")
				*imports = append(*imports, rel+".rs")
			}

		case "struct_item", "enum_item", "trait_item":
			name := shared.Text(shared.ChildByField(child, "name"), src)
			if name == "" {
				name = "Anonymous"
			}
			id := fmt.Sprintf("%s::%s", parentID, name)
			children := parseNode(child, src, id, imports)
			entities = append(entities, &world.Building{
				ID:           id,
				Name:         name,
				BuildingType: strings.TrimSuffix(child.Type(), "_item"),
				IsPublic:     isPublic(child, src),
				LOC:          shared.CountLines(child),
				Imports:      nil,
				Children:     children,
			})

		case "impl_item":
			traitNode := shared.ChildByField(child, "trait")
			selfTypeNode := shared.ChildByField(child, "type")
			var name string
			switch {
			case traitNode != nil:
				name = fmt.Sprintf("impl %s for %s", shared.Text(traitNode, src), textOr(selfTypeNode, src, "unknown"))
			case selfTypeNode != nil:
				name = fmt.Sprintf("impl %s", shared.Text(selfTypeNode, src))
			default:
				name = "impl unknown"
			}
			sanitized := strings.NewReplacer(" ", "_", "<", "_", ">", "_", ":", "_").Replace(name)
			id := fmt.Sprintf("%s::%s", parentID, sanitized)
			children := parseNode(child, src, id, imports)
			entities = append(entities, &world.Building{
				ID:           id,
				Name:         name,
				BuildingType: "impl",
				IsPublic:     false,
				LOC:          shared.CountLines(child),
				Children:     children,
			})

		case "function_item":
			name := textOr(shared.ChildByField(child, "name"), src, "fn")
			id := fmt.Sprintf("%s::%s", parentID, name)
			body := shared.ChildByField(child, "body")
			var calls []string
			var contents []world.Entity
			if body != nil {
				calls = extractCalls(body, src)
				contents = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Room{
				ID:         id,
				Name:       name,
				RoomType:   "function",
				IsMain:     name == "main",
				IsAsync:    isAsync(child, src),
				Visibility: visibility(isPublic(child, src)),
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: extractParameters(child, src),
				ReturnType: extractReturnType(child, src),
				Calls:      calls,
				Children:   contents,
			})

		case "let_declaration", "const_item", "static_item":
			nameNode := shared.ChildByField(child, "pattern")
			if nameNode == nil {
				nameNode = shared.ChildByField(child, "name")
			}
			if nameNode == nil {
				break
			}
			name := shared.Text(nameNode, src)
			datatype := textOr(shared.ChildByField(child, "type"), src, "inferred")
			id := fmt.Sprintf("%s::%s", parentID, name)
			text := shared.Text(child, src)
			artifactType := "variable"
			switch child.Type() {
			case "const_item":
				artifactType = "constant"
			case "static_item":
				artifactType = "static"
			}
			var valueHint string
			if v := shared.ChildByField(child, "value"); v != nil {
				valueHint = shared.Truncate(shared.Text(v, src), 27)
			}
			entities = append(entities, &world.Artifact{
				ID:           id,
				Name:         name,
				ArtifactType: artifactType,
				Datatype:     datatype,
				IsMutable:    strings.Contains(text, "mut"),
				ValueHint:    valueHint,
			})

		case "field_declaration":
			name := shared.Text(shared.ChildByField(child, "name"), src)
			if name == "" {
				break
			}
			datatype := textOr(shared.ChildByField(child, "type"), src, "unknown")
			id := fmt.Sprintf("%s::%s", parentID, name)
			entities = append(entities, &world.Artifact{
				ID:           id,
				Name:         name,
				ArtifactType: "field",
				Datatype:     datatype,
				IsMutable:    false,
			})

		default:
			if child.ChildCount() > 0 {
				entities = append(entities, parseNode(child, src, parentID, imports)...)
			}
		}
	}
	return entities
}

func textOr(n *sitter.Node, src []byte, fallback string) string {
	if n == nil {
		return fallback
	}
	return shared.Text(n, src)
}

func isPublic(n *sitter.Node, src []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "visibility_modifier" && strings.HasPrefix(shared.Text(c, src), "pub") {
			return true
		}
	}
	return false
}

func isAsync(n *sitter.Node, src []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "async" {
			return true
		}
	}
	return strings.Contains(shared.Text(n, src), "async fn")
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
		if child.Type() != "parameter" {
			continue
		}
		name := shared.Text(shared.ChildByField(child, "pattern"), src)
		datatype := textOr(shared.ChildByField(child, "type"), src, "inferred")
		if name == "" || name == "self" || name == "&self" || name == "&mut self" {
			continue
		}
		params = append(params, world.Parameter{Name: name, Datatype: datatype})
	}
	return params
}

func extractReturnType(n *sitter.Node, src []byte) string {
	rt := shared.ChildByField(n, "return_type")
	if rt == nil {
		return ""
	}
	return strings.TrimPrefix(shared.Text(rt, src), "-> ")
}

func extractCalls(body *sitter.Node, src []byte) []string {
	return shared.CallCollector(body, src, func(node *sitter.Node, src []byte) (string, bool) {
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
