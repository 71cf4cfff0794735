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

// Package c extracts Buildings/Rooms/Artifacts from C source.
package c

import (
	"context"
	"fmt"
	"strings"

	"github.com/smacker/go-tree-sitter/c"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"printf": true, "scanf": true, "fprintf": true, "fscanf": true,
	"sprintf": true, "sscanf": true, "puts": true, "gets": true,
	"putchar": true, "getchar": true, "malloc": true, "calloc": true,
	"realloc": true, "free": true, "memcpy": true, "memset": true,
	"memmove": true, "memcmp": true, "strlen": true, "strcpy": true,
	"strncpy": true, "strcat": true, "strncat": true, "strcmp": true,
	"strncmp": true, "strchr": true, "strrchr": true, "strstr": true,
	"atoi": true, "atof": true, "atol": true, "strtol": true, "strtod": true,
	"fopen": true, "fclose": true, "fread": true, "fwrite": true,
	"fgets": true, "fputs": true, "fseek": true, "ftell": true,
	"rewind": true, "exit": true, "abort": true, "assert": true, "sizeof": true,
}

var complexityKinds = map[string]bool{
	"if_statement": true, "else_clause": true, "for_statement": true,
	"while_statement": true, "do_statement": true, "switch_statement": true,
	"case_statement": true, "conditional_expression": true,
}

var language *sitter.Language

func init() {
	language = c.GetLanguage()
	if language == nil {
		panic("c: tree-sitter grammar failed to load")
	}
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "c" }

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

		case "struct_specifier":
			name := textOr(shared.ChildByField(child, "name"), src, "AnonymousStruct")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				children = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: "struct", IsPublic: true,
				LOC: shared.CountLines(child), Children: children,
			})

		case "enum_specifier":
			name := textOr(shared.ChildByField(child, "name"), src, "AnonymousEnum")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				children = parseEnumValues(body, src, id)
			}
			entities = append(entities, &world.Building{
				ID: id, Name: name, BuildingType: "enum", IsPublic: true,
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
			datatype := textOr(shared.ChildByField(child, "type"), src, "int")
			for j := 0; j < int(child.ChildCount()); j++ {
				declChild := child.Child(j)
				var name string
				switch declChild.Type() {
				case "init_declarator":
					name = textOr(shared.ChildByField(declChild, "declarator"), src, "")
				case "identifier":
					name = shared.Text(declChild, src)
				default:
					continue
				}
				if name == "" {
					continue
				}
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

		case "field_declaration":
			datatype := textOr(shared.ChildByField(child, "type"), src, "int")
			for j := 0; j < int(child.ChildCount()); j++ {
				fieldChild := child.Child(j)
				if fieldChild.Type() == "field_identifier" {
					name := shared.Text(fieldChild, src)
					id := fmt.Sprintf("%s::%s", parentID, name)
					entities = append(entities, &world.Artifact{
						ID: id, Name: name, ArtifactType: "field",
						Datatype: datatype, IsMutable: true,
					})
				}
			}

		default:
			if child.ChildCount() > 0 {
				entities = append(entities, parseNode(child, src, parentID, imports)...)
			}
		}
	}
	return entities
}

func parseEnumValues(node *sitter.Node, src []byte, parentID string) []world.Entity {
	var entities []world.Entity
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "enumerator" {
			continue
		}
		name := textOr(shared.ChildByField(child, "name"), src, "")
		if name == "" {
			continue
		}
		id := fmt.Sprintf("%s::%s", parentID, name)
		var valueHint string
		if v := shared.ChildByField(child, "value"); v != nil {
			valueHint = shared.Text(v, src)
		}
		entities = append(entities, &world.Artifact{
			ID: id, Name: name, ArtifactType: "enum_value",
			Datatype: "int", IsMutable: false, ValueHint: valueHint,
		})
	}
	return entities
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
		if child.Type() != "parameter_declaration" {
			continue
		}
		name := textOr(shared.ChildByField(child, "declarator"), src, "")
		datatype := textOr(shared.ChildByField(child, "type"), src, "int")
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
		return name, name != ""
	}, builtins)
}
