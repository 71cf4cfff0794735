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

// Package shared holds the helpers every per-language extractor needs
// but none of them owns exclusively: complexity counting over a curated
// branching node-kind set, builtin-call-set filtering, qualified-name
// reduction, and value-hint truncation.
package shared

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Text returns a node's source text, or "" if the node is nil.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// CountLines returns a node's own line span (end row - start row + 1),
// matching the per-node LOC convention every original_source parser
// uses for Room/Building LOC (never the whole file's line count).
func CountLines(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	return int(n.EndPoint().Row-n.StartPoint().Row) + 1
}

// Truncate keeps at most max characters of a value hint, appending a
// three-character "..." marker when truncation occurs (so a truncated
// result is max+3 characters long).
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ReduceQualified returns the final component of a qualified reference
// such as "a.b.c" or "A::B::C", splitting on both "." and "::".
func ReduceQualified(name string) string {
	name = strings.ReplaceAll(name, "::", ".")
	parts := strings.Split(name, ".")
	return parts[len(parts)-1]
}

// BranchKinds counts occurrences of a curated set of tree-sitter node
// kinds representing branching constructs, starting from a base of 1.
// This is the shared cyclomatic-complexity walk; each extractor supplies
// its own kind set (spec.md §4.2's per-language construct table).
func BranchKinds(n *sitter.Node, kinds map[string]bool) int {
	complexity := 1
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if kinds[node.Type()] {
			complexity++
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}
	walk(n)
	return complexity
}

// CallCollector walks a subtree gathering raw call names via a
// language-supplied extraction function, then filters out names present
// in the builtin set (after reducing qualified names to their final
// component).
func CallCollector(n *sitter.Node, src []byte, extract func(node *sitter.Node, src []byte) (string, bool), builtins map[string]bool) []string {
	var calls []string
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if name, ok := extract(node, src); ok {
			name = ReduceQualified(name)
			if name != "" && !builtins[name] {
				calls = append(calls, name)
			}
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}
	walk(n)
	return calls
}

// ChildByField is a nil-safe wrapper around Node.ChildByFieldName.
func ChildByField(n *sitter.Node, field string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(field)
}
