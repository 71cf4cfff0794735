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

// Package java extracts Buildings/Rooms/Artifacts from Java source.
package java

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"println": true, "print": true, "printf": true, "toString": true,
	"equals": true, "hashCode": true, "getClass": true, "notify": true,
	"notifyAll": true, "wait": true, "clone": true, "finalize": true,
	"length": true, "size": true, "get": true, "set": true, "add": true,
	"remove": true, "contains": true, "isEmpty": true, "clear": true,
	"iterator": true, "hasNext": true, "next": true, "valueOf": true,
	"parseInt": true, "parseDouble": true, "parseLong": true, "format": true,
}

var complexityKinds = map[string]bool{
	"if_statement": true, "else": true, "for_statement": true,
	"enhanced_for_statement": true, "while_statement": true, "do_statement": true,
	"switch_expression": true, "switch_block_statement_group": true,
	"catch_clause": true, "ternary_expression": true, "lambda_expression": true,
}

var language *sitter.Language

func init() {
	language = java.GetLanguage()
	if language == nil {
		panic("java: tree-sitter grammar failed to load")
	}
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "java" }

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
		case "import_declaration":
			for j := 0; j < int(child.ChildCount()); j++ {
				c := child.Child(j)
				if c.Type() == "scoped_identifier" {
					path := shared.Text(c, src)
					if path != "" {
						*imports = append(*imports, strings.ReplaceAll(path, ".", "/")+".java")
					}
				}
			}

		case "class_declaration", "interface_declaration", "enum_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, anonymousName(child.Type()))
			id := fmt.Sprintf("%s::%s", parentID, name)
			visibility, _, _ := extractModifiers(child, src)
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				children = parseNode(body, src, id, imports)
			}
			buildingType := "class"
			switch child.Type() {
			case "interface_declaration":
				buildingType = "interface"
			case "enum_declaration":
				buildingType = "enum"
			}
			var md map[string]string
			if ann := extractAnnotations(child, src); ann != "" {
				md = map[string]string{"annotations": ann}
			}
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: buildingType,
				IsPublic: visibility == "public",
				LOC:      shared.CountLines(child),
				Children: children,
				Metadata: md,
			})

		case "method_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, "method")
			id := fmt.Sprintf("%s::%s", parentID, name)
			visibility, isStatic, _ := extractModifiers(child, src)
			var calls []string
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				calls = extractCalls(body, src)
				children = parseNode(body, src, id, imports)
			}
			roomType := "method"
			if isStatic {
				roomType = "static_method"
			}
			var md map[string]string
			if ann := extractAnnotations(child, src); ann != "" {
				md = map[string]string{"annotations": ann}
			}
			entities = append(entities, &world.Room{
				ID: id, Name: name, RoomType: roomType,
				IsMain:     name == "main" && isStatic,
				Visibility: visibility,
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: extractParameters(child, src),
				ReturnType: textOr(shared.ChildByField(child, "type"), src, ""),
				Calls:      calls,
				Children:   children,
				Metadata:   md,
			})

		case "constructor_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, "constructor")
			id := fmt.Sprintf("%s::%s", parentID, name)
			visibility, _, _ := extractModifiers(child, src)
			var calls []string
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				calls = extractCalls(body, src)
				children = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Room{
				ID: id, Name: name, RoomType: "constructor",
				Visibility: visibility,
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: extractParameters(child, src),
				Calls:      calls,
				Children:   children,
			})

		case "field_declaration":
			_, _, isFinal := extractModifiers(child, src)
			datatype := textOr(shared.ChildByField(child, "type"), src, "Object")
			for j := 0; j < int(child.ChildCount()); j++ {
				fieldChild := child.Child(j)
				if fieldChild.Type() != "variable_declarator" {
					continue
				}
				name := textOr(shared.ChildByField(fieldChild, "name"), src, "")
				if name == "" {
					continue
				}
				id := fmt.Sprintf("%s::%s", parentID, name)
				var valueHint string
				if v := shared.ChildByField(fieldChild, "value"); v != nil {
					valueHint = shared.Truncate(shared.Text(v, src), 27)
				}
				artifactType := "field"
				if isFinal {
					artifactType = "constant"
				}
				entities = append(entities, &world.Artifact{
					ID: id, Name: name, ArtifactType: artifactType,
					Datatype: datatype, IsMutable: !isFinal, ValueHint: valueHint,
				})
			}

		case "enum_constant":
			name := textOr(shared.ChildByField(child, "name"), src, "")
			if name == "" {
				continue
			}
			id := fmt.Sprintf("%s::%s", parentID, name)
			entities = append(entities, &world.Artifact{
				ID: id, Name: name, ArtifactType: "enum_value", Datatype: "enum", IsMutable: false,
			})

		default:
			if child.ChildCount() > 0 {
				entities = append(entities, parseNode(child, src, parentID, imports)...)
			}
		}
	}
	return entities
}

func anonymousName(kind string) string {
	switch kind {
	case "interface_declaration":
		return "AnonymousInterface"
	case "enum_declaration":
		return "AnonymousEnum"
	default:
		return "AnonymousClass"
	}
}

func textOr(n *sitter.Node, src []byte, fallback string) string {
	if n == nil {
		return fallback
	}
	return shared.Text(n, src)
}

// extractModifiers returns (visibility, is_static, is_final).
func extractModifiers(node *sitter.Node, src []byte) (string, bool, bool) {
	visibility := "package"
	isStatic, isFinal := false, false
	if modifiers := shared.ChildByField(node, "modifiers"); modifiers != nil {
		text := shared.Text(modifiers, src)
		switch {
		case strings.Contains(text, "public"):
			visibility = "public"
		case strings.Contains(text, "private"):
			visibility = "private"
		case strings.Contains(text, "protected"):
			visibility = "protected"
		}
		isStatic = strings.Contains(text, "static")
		isFinal = strings.Contains(text, "final")
	}
	return visibility, isStatic, isFinal
}

// extractAnnotations returns the raw annotation text attached to a
// declaration's modifiers list; callers store it as the declaration's own
// Building/Room metadata under "annotations" rather than as a
// first-class field.
func extractAnnotations(node *sitter.Node, src []byte) string {
	modifiers := shared.ChildByField(node, "modifiers")
	if modifiers == nil {
		return ""
	}
	var anns []string
	for i := 0; i < int(modifiers.ChildCount()); i++ {
		c := modifiers.Child(i)
		if c.Type() == "annotation" || c.Type() == "marker_annotation" {
			anns = append(anns, shared.Text(c, src))
		}
	}
	return strings.Join(anns, " ")
}

func extractParameters(node *sitter.Node, src []byte) []world.Parameter {
	var params []world.Parameter
	list := shared.ChildByField(node, "parameters")
	if list == nil {
		return params
	}
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		if child.Type() != "formal_parameter" && child.Type() != "spread_parameter" {
			continue
		}
		name := textOr(shared.ChildByField(child, "name"), src, "")
		datatype := textOr(shared.ChildByField(child, "type"), src, "Object")
		if name != "" {
			params = append(params, world.Parameter{Name: name, Datatype: datatype})
		}
	}
	return params
}

func extractCalls(n *sitter.Node, src []byte) []string {
	return shared.CallCollector(n, src, func(node *sitter.Node, src []byte) (string, bool) {
		if node.Type() != "method_invocation" {
			return "", false
		}
		name := textOr(shared.ChildByField(node, "name"), src, "")
		return name, name != ""
	}, builtins)
}
