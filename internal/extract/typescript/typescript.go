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

// Package typescript extracts Buildings/Rooms/Artifacts from TypeScript
// source (.ts, .tsx), including interfaces, enums and type aliases that
// plain JavaScript has no equivalent for. Doc comments immediately
// preceding a declaration are captured into Metadata["documentation"].
package typescript

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"console": true, "log": true, "error": true, "warn": true, "info": true,
	"debug": true, "table": true, "trace": true, "dir": true,
	"map": true, "filter": true, "reduce": true, "reduceRight": true, "forEach": true,
	"find": true, "findIndex": true, "findLast": true, "findLastIndex": true,
	"some": true, "every": true, "includes": true, "indexOf": true, "lastIndexOf": true,
	"push": true, "pop": true, "shift": true, "unshift": true,
	"slice": true, "splice": true, "concat": true, "join": true,
	"sort": true, "reverse": true, "fill": true, "flat": true, "flatMap": true,
	"entries": true, "keys": true, "values": true, "from": true, "isArray": true,
	"Object": true, "assign": true, "create": true, "freeze": true, "seal": true,
	"hasOwnProperty": true, "toString": true, "valueOf": true, "constructor": true,
	"bind": true, "call": true, "apply": true,
	"JSON": true, "parse": true, "stringify": true,
	"Promise": true, "then": true, "catch": true, "finally": true,
	"resolve": true, "reject": true, "all": true, "allSettled": true, "race": true, "any": true,
	"async": true, "await": true, "fetch": true,
	"Math": true, "min": true, "max": true, "floor": true, "ceil": true, "round": true,
	"abs": true, "random": true, "sqrt": true, "pow": true,
	"parseInt": true, "parseFloat": true, "isNaN": true, "isFinite": true,
	"String": true, "Number": true, "Boolean": true, "Symbol": true, "BigInt": true,
	"RegExp": true, "Date": true, "Error": true,
	"setTimeout": true, "clearTimeout": true, "setInterval": true, "clearInterval": true,
	"require": true, "module": true, "exports": true, "process": true,
	"window": true, "document": true, "global": true, "globalThis": true,
	"alert": true, "prompt": true, "confirm": true,
	"addEventListener": true, "removeEventListener": true,
}

var complexityKinds = map[string]bool{
	"if_statement": true, "switch_statement": true, "while_statement": true,
	"for_statement": true, "for_in_statement": true, "for_of_statement": true,
	"catch_clause": true, "ternary_expression": true, "optional_chain_expression": true,
	"switch_case": true,
}

var tsLanguage, tsxLanguage *sitter.Language

func init() {
	tsLanguage = typescript.GetLanguage()
	if tsLanguage == nil {
		panic("typescript: tree-sitter grammar failed to load")
	}
	tsxLanguage = tsx.GetLanguage()
	if tsxLanguage == nil {
		panic("typescript: tsx grammar failed to load")
	}
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "ts" }

func (*Extractor) Extract(source []byte, parentID string) ([]world.Entity, []string) {
	return extractWith(tsLanguage, source, parentID)
}

// TSXExtractor handles .tsx files, which need the dedicated TSX grammar
// variant for JSX syntax support.
type TSXExtractor struct{}

func NewTSX() *TSXExtractor { return &TSXExtractor{} }

func (*TSXExtractor) Language() string { return "ts" }

func (*TSXExtractor) Extract(source []byte, parentID string) ([]world.Entity, []string) {
	return extractWith(tsxLanguage, source, parentID)
}

func extractWith(lang *sitter.Language, source []byte, parentID string) ([]world.Entity, []string) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
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
		docs := docMetadata(getComments(child, src))

		switch child.Type() {
		case "import_statement":
			if srcNode := shared.ChildByField(child, "source"); srcNode != nil {
				path := strings.Trim(shared.Text(srcNode, src), "\"'`")
				if strings.HasPrefix(path, ".") {
					*imports = append(*imports, path+".ts")
				}
			}

		case "class_declaration", "abstract_class_declaration", "interface_declaration", "enum_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, "Anonymous")
			id := fmt.Sprintf("%s::%s", parentID, name)
			body := shared.ChildByField(child, "body")
			if body == nil {
				body = child
			}
			buildingType := "class"
			switch child.Type() {
			case "interface_declaration":
				buildingType = "interface"
			case "enum_declaration":
				buildingType = "enum"
			}
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: buildingType,
				IsPublic: isExported(child),
				LOC:      shared.CountLines(child),
				Children: parseNode(body, src, id, imports),
				Metadata: docs,
			})

		case "type_alias_declaration":
			name := textOr(shared.ChildByField(child, "name"), src, "Type")
			id := fmt.Sprintf("%s::%s", parentID, name)
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: "type_alias",
				IsPublic: isExported(child),
				LOC:      shared.CountLines(child),
				Metadata: docs,
			})

		case "function_declaration", "generator_function_declaration", "method_definition":
			name := textOr(shared.ChildByField(child, "name"), src, "anonymous")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var calls []string
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				calls = extractCalls(body, src)
				children = parseNode(body, src, id, imports)
			}
			visibility := "public"
			if child.Type() == "method_definition" {
				if strings.Contains(shared.Text(child, src), "private ") {
					visibility = "private"
				}
			} else if !isExported(child) {
				visibility = "private"
			}
			roomType := "function"
			if child.Type() == "method_definition" {
				roomType = "method"
			}
			entities = append(entities, &world.Room{
				ID: id, Name: name, RoomType: roomType,
				IsAsync:    isAsync(child, src),
				Visibility: visibility,
				Complexity: shared.BranchKinds(child, complexityKinds),
				LOC:        shared.CountLines(child),
				Parameters: extractParameters(child, src),
				ReturnType: textOr(shared.ChildByField(child, "return_type"), src, ""),
				Calls:      calls,
				Children:   children,
				Metadata:   docs,
			})

		case "lexical_declaration", "variable_declaration":
			entities = append(entities, parseVariables(child, src, parentID, docs, imports)...)

		case "public_field_definition", "field_definition":
			nameNode := shared.ChildByField(child, "name")
			if nameNode == nil {
				nameNode = shared.ChildByField(child, "property")
			}
			name := textOr(nameNode, src, "field")
			id := fmt.Sprintf("%s::%s", parentID, name)
			datatype := trimType(textOr(shared.ChildByField(child, "type"), src, "any"))
			entities = append(entities, &world.Artifact{
				ID: id, Name: name, ArtifactType: "field",
				Datatype: datatype, IsMutable: true, Metadata: docs,
			})

		case "enum_member":
			name := textOr(shared.ChildByField(child, "name"), src, "member")
			id := fmt.Sprintf("%s::%s", parentID, name)
			entities = append(entities, &world.Artifact{
				ID: id, Name: name, ArtifactType: "enum_value",
				Datatype: "enum", IsMutable: false, Metadata: docs,
			})

		case "statement_block", "export_statement":
			entities = append(entities, parseNode(child, src, parentID, imports)...)

		default:
			switch child.Type() {
			case "class_declaration", "function_declaration", "interface_declaration", "lexical_declaration":
			default:
				if child.ChildCount() > 0 {
					entities = append(entities, parseNode(child, src, parentID, imports)...)
				}
			}
		}
	}
	return entities
}

func parseVariables(node *sitter.Node, src []byte, parentID string, docs map[string]string, imports *[]string) []world.Entity {
	var entities []world.Entity
	isConst := strings.HasPrefix(shared.Text(node, src), "const")

	for i := 0; i < int(node.ChildCount()); i++ {
		decl := node.Child(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		name := textOr(shared.ChildByField(decl, "name"), src, "var")
		id := fmt.Sprintf("%s::%s", parentID, name)
		value := shared.ChildByField(decl, "value")

		if value != nil && value.Type() == "arrow_function" {
			var calls []string
			var children []world.Entity
			if body := shared.ChildByField(value, "body"); body != nil {
				calls = extractCalls(body, src)
				children = parseNode(body, src, id, imports)
			}
			visibility := "private"
			if isExported(node) {
				visibility = "public"
			}
			entities = append(entities, &world.Room{
				ID: id, Name: name, RoomType: "arrow_function",
				IsAsync:    isAsync(value, src),
				Visibility: visibility,
				Complexity: shared.BranchKinds(value, complexityKinds),
				LOC:        shared.CountLines(value),
				Parameters: extractParameters(value, src),
				ReturnType: textOr(shared.ChildByField(value, "return_type"), src, ""),
				Calls:      calls,
				Children:   children,
				Metadata:   docs,
			})
			continue
		}

		datatype := trimType(textOr(shared.ChildByField(decl, "type"), src, "inferred"))
		artifactType := "variable"
		if isConst {
			artifactType = "constant"
		}
		var valueHint string
		if value != nil {
			valueHint = shared.Truncate(shared.Text(value, src), 27)
		}
		entities = append(entities, &world.Artifact{
			ID: id, Name: name, ArtifactType: artifactType,
			Datatype: datatype, IsMutable: !isConst, ValueHint: valueHint, Metadata: docs,
		})
	}
	return entities
}

func trimType(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, ":"))
}

func textOr(n *sitter.Node, src []byte, fallback string) string {
	if n == nil {
		return fallback
	}
	return shared.Text(n, src)
}

func isExported(n *sitter.Node) bool {
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

func extractParameters(n *sitter.Node, src []byte) []world.Parameter {
	var params []world.Parameter
	list := shared.ChildByField(n, "parameters")
	if list == nil {
		return params
	}
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		switch child.Type() {
		case "required_parameter", "optional_parameter", "identifier":
			var name string
			if child.Type() == "identifier" {
				name = shared.Text(child, src)
			} else {
				name = textOr(shared.ChildByField(child, "pattern"), src, "")
			}
			datatype := trimType(textOr(shared.ChildByField(child, "type"), src, "any"))
			if name != "" && name != "(" && name != ")" && name != "," {
				params = append(params, world.Parameter{Name: name, Datatype: datatype})
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
		full := shared.Text(fn, src)
		if strings.HasPrefix(full, "console.") || strings.HasPrefix(full, "Math.") || strings.HasPrefix(full, "JSON.") {
			return "", false
		}
		name := full
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		return name, name != ""
	}, builtins)
}

// getComments walks backward over adjacent preceding comment siblings
// and joins their cleaned text, mirroring how a JSDoc block attaches
// to the declaration immediately below it.
func getComments(node *sitter.Node, src []byte) string {
	var comments []string
	prev := node.PrevSibling()
	for prev != nil && prev.Type() == "comment" {
		text := shared.Text(prev, src)
		var lines []string
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "/**")
			line = strings.TrimPrefix(line, "/*")
			line = strings.TrimPrefix(line, "*/")
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimPrefix(line, "//")
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
		comments = append([]string{strings.Join(lines, " ")}, comments...)
		prev = prev.PrevSibling()
	}
	return strings.Join(comments, " ")
}

func docMetadata(comment string) map[string]string {
	if comment == "" {
		return nil
	}
	return map[string]string{"documentation": comment}
}
