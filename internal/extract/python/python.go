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

// Package python extracts Buildings/Rooms/Artifacts from Python source,
// including the synthetic main-guard Room for
// `if __name__ == "__main__":` blocks.
package python

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/atlasgen/codeworld/internal/extract/shared"
	"github.com/atlasgen/codeworld/internal/world"
)

var builtins = map[string]bool{
	"print": true, "len": true, "range": true, "str": true, "int": true,
	"float": true, "list": true, "dict": true, "set": true, "tuple": true,
	"bool": true, "type": true, "isinstance": true, "issubclass": true,
	"hasattr": true, "getattr": true, "setattr": true, "delattr": true,
	"open": true, "input": true, "abs": true, "max": true, "min": true,
	"sum": true, "sorted": true, "reversed": true, "enumerate": true,
	"zip": true, "map": true, "filter": true, "any": true, "all": true,
	"next": true, "iter": true, "super": true, "object": true,
	"staticmethod": true, "classmethod": true, "property": true,
	"Exception": true, "ValueError": true, "TypeError": true,
	"KeyError": true, "IndexError": true, "AttributeError": true, "RuntimeError": true,
}

var complexityKinds = map[string]bool{
	"if_statement": true, "elif_clause": true, "for_statement": true,
	"while_statement": true, "except_clause": true, "with_statement": true,
	"conditional_expression": true, "list_comprehension": true,
	"dictionary_comprehension": true, "set_comprehension": true,
	"generator_expression": true, "match_statement": true, "case_clause": true,
}

var language *sitter.Language

func init() {
	language = python.GetLanguage()
	if language == nil {
		panic("python: tree-sitter grammar failed to load")
	}
}

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (*Extractor) Language() string { return "py" }

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
			for j := 0; j < int(child.ChildCount()); j++ {
				c := child.Child(j)
				if c.Type() == "dotted_name" {
					module := shared.Text(c, src)
					if module != "" {
						*imports = append(*imports, strings.ReplaceAll(module, ".", "/")+".py")
					}
				}
			}

		case "import_from_statement":
			if mod := shared.ChildByField(child, "module_name"); mod != nil {
				module := shared.Text(mod, src)
				if strings.HasPrefix(module, ".") {
					*imports = append(*imports, strings.TrimLeft(module, ".")+".py")
				}
			}

		case "class_definition":
			name := textOr(shared.ChildByField(child, "name"), src, "AnonymousClass")
			id := fmt.Sprintf("%s::%s", parentID, name)
			var children []world.Entity
			if body := shared.ChildByField(child, "body"); body != nil {
				children = parseNode(body, src, id, imports)
			}
			entities = append(entities, &world.Building{
				ID:           id,
				Name:         name,
				BuildingType: "class",
				IsPublic:     !strings.HasPrefix(name, "_"),
				LOC:          shared.CountLines(child),
				Children:     children,
			})

		case "function_definition":
			entities = append(entities, buildFunction(child, src, parentID, imports))

		case "decorated_definition":
			entities = append(entities, parseNode(child, src, parentID, imports)...)

		case "expression_statement":
			for j := 0; j < int(child.ChildCount()); j++ {
				c := child.Child(j)
				if c.Type() == "assignment" {
					entities = append(entities, parseAssignment(c, src, parentID)...)
				}
			}

		case "assignment":
			entities = append(entities, parseAssignment(child, src, parentID)...)

		case "if_statement":
			if cond := shared.ChildByField(child, "condition"); cond != nil {
				condText := shared.Text(cond, src)
				if strings.Contains(condText, "__name__") && strings.Contains(condText, "__main__") {
					if consequence := shared.ChildByField(child, "consequence"); consequence != nil {
						mainChildren := parseNode(consequence, src, parentID, imports)
						entities = append(entities, &world.Room{
							ID:         fmt.Sprintf("%s::__main_guard__", parentID),
							Name:       "__main__",
							RoomType:   "main_guard",
							IsMain:     true,
							Visibility: "public",
							Complexity: shared.BranchKinds(child, complexityKinds),
							LOC:        shared.CountLines(child),
							Calls:      extractCalls(child, src),
							Children:   mainChildren,
						})
					}
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

func buildFunction(child *sitter.Node, src []byte, parentID string, imports *[]string) world.Entity {
	name := textOr(shared.ChildByField(child, "name"), src, "fn")
	id := fmt.Sprintf("%s::%s", parentID, name)
	parameters := extractParameters(child, src)

	visibility := "public"
	switch {
	case strings.HasPrefix(name, "__") && !strings.HasSuffix(name, "__"):
		visibility = "private"
	case strings.HasPrefix(name, "_"):
		visibility = "protected"
	}

	isMain := name == "main" || name == "__main__"

	roomType := "function"
	switch {
	case hasDecorator(child, "staticmethod", src):
		roomType = "static_method"
	case hasDecorator(child, "classmethod", src):
		roomType = "class_method"
	case hasDecorator(child, "property", src):
		roomType = "property"
	case hasSelfOrCls(parameters) || strings.Contains(parentID, "::"):
		roomType = "method"
	}

	var calls []string
	var children []world.Entity
	if body := shared.ChildByField(child, "body"); body != nil {
		calls = extractCalls(body, src)
		children = parseNode(body, src, id, imports)
	}

	return &world.Room{
		ID:         id,
		Name:       name,
		RoomType:   roomType,
		IsMain:     isMain,
		IsAsync:    strings.HasPrefix(strings.TrimSpace(shared.Text(child, src)), "async"),
		Visibility: visibility,
		Complexity: shared.BranchKinds(child, complexityKinds),
		LOC:        shared.CountLines(child),
		Parameters: parameters,
		ReturnType: textOr(shared.ChildByField(child, "return_type"), src, ""),
		Calls:      calls,
		Children:   children,
	}
}

func hasSelfOrCls(params []world.Parameter) bool {
	for _, p := range params {
		if p.Name == "self" || p.Name == "cls" {
			return true
		}
	}
	return false
}

func hasDecorator(node *sitter.Node, name string, src []byte) bool {
	parent := node.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return false
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		c := parent.Child(i)
		if c.Type() == "decorator" && strings.Contains(shared.Text(c, src), name) {
			return true
		}
	}
	return false
}

func parseAssignment(node *sitter.Node, src []byte, parentID string) []world.Entity {
	left := shared.ChildByField(node, "left")
	if left == nil {
		return nil
	}
	name := shared.Text(left, src)
	if strings.Contains(name, ".") {
		return nil
	}
	id := fmt.Sprintf("%s::%s", parentID, name)
	datatype := textOr(shared.ChildByField(node, "type"), src, "Any")
	isConstant := isAllCaps(name)
	artifactType := "variable"
	if isConstant {
		artifactType = "constant"
	}
	var valueHint string
	if right := shared.ChildByField(node, "right"); right != nil {
		valueHint = shared.Truncate(shared.Text(right, src), 27)
	}
	return []world.Entity{&world.Artifact{
		ID:           id,
		Name:         name,
		ArtifactType: artifactType,
		Datatype:     datatype,
		IsMutable:    !isConstant,
		ValueHint:    valueHint,
	}}
}

func isAllCaps(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '_' || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

func textOr(n *sitter.Node, src []byte, fallback string) string {
	if n == nil {
		return fallback
	}
	return shared.Text(n, src)
}

func extractParameters(node *sitter.Node, src []byte) []world.Parameter {
	var params []world.Parameter
	list := shared.ChildByField(node, "parameters")
	if list == nil {
		return params
	}
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		switch child.Type() {
		case "identifier":
			name := shared.Text(child, src)
			if name != "" && name != "self" && name != "cls" {
				params = append(params, world.Parameter{Name: name, Datatype: "Any"})
			}
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			name := textOr(shared.ChildByField(child, "name"), src, "")
			datatype := textOr(shared.ChildByField(child, "type"), src, "Any")
			if name != "" && name != "self" && name != "cls" {
				params = append(params, world.Parameter{Name: name, Datatype: datatype})
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			name := shared.Text(child, src)
			if name != "" {
				params = append(params, world.Parameter{Name: name, Datatype: "Any"})
			}
		}
	}
	return params
}

func extractCalls(n *sitter.Node, src []byte) []string {
	return shared.CallCollector(n, src, func(node *sitter.Node, src []byte) (string, bool) {
		if node.Type() != "call" {
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
