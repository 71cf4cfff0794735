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

// Package resolve builds a global symbol table over every Room and
// Building across all cities and resolves the raw, unqualified Route
// targets the collector produced against it. Resolution is a cheap,
// deterministic heuristic: it favors locality over correctness and is
// not a substitute for scope or visibility analysis.
package resolve

import (
	"strings"

	"github.com/atlasgen/codeworld/internal/world"
)

// Table is the three-map symbol index described by the resolver spec.
type Table struct {
	exact         map[string]bool
	shortName     map[string][]string
	semiQualified map[string]string
}

// Build traverses every city's Rooms and Buildings and populates the
// three maps simultaneously.
func Build(cities []*world.City) *Table {
	t := &Table{
		exact:         map[string]bool{},
		shortName:     map[string][]string{},
		semiQualified: map[string]string{},
	}
	for _, city := range cities {
		for _, child := range city.Children {
			t.index(child)
		}
	}
	return t
}

func (t *Table) index(e world.Entity) {
	switch n := e.(type) {
	case *world.District:
		for _, c := range n.Children {
			t.index(c)
		}
	case *world.Building:
		t.add(n.ID, n.Name)
		for _, c := range n.Children {
			t.index(c)
		}
	case *world.Room:
		t.add(n.ID, n.Name)
		for _, c := range n.Children {
			t.index(c)
		}
	}
}

func (t *Table) add(id, name string) {
	t.exact[id] = true
	t.shortName[name] = append(t.shortName[name], id)

	segments := strings.Split(id, "::")
	if len(segments) < 2 {
		return
	}
	penultimate := segments[len(segments)-2]
	localName := segments[len(segments)-1]
	basename := penultimate
	if idx := strings.LastIndex(penultimate, "/"); idx >= 0 {
		basename = penultimate[idx+1:]
	}
	t.semiQualified[basename+"::"+localName] = id
}

// Resolve implements the four-step resolution algorithm for a Route
// whose raw to_id is target, in the context of a Route whose from_id
// is fromID. The second return value is false when resolution fails
// and the caller should drop the route.
func (t *Table) Resolve(fromID, target string) (string, bool) {
	if t.exact[target] {
		return target, true
	}
	if qualified := fromID + "::" + target; t.exact[qualified] {
		return qualified, true
	}
	candidates := t.shortName[target]
	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		return candidates[0], true
	default:
		best := candidates[0]
		bestLen := commonPrefixLen(best, fromID)
		for _, c := range candidates[1:] {
			if l := commonPrefixLen(c, fromID); l > bestLen {
				best, bestLen = c, l
			}
		}
		return best, true
	}
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// ResolveRoutes resolves every route's to_id in place against the
// table, dropping routes whose target cannot be resolved.
func ResolveRoutes(t *Table, routes []*world.Route) []*world.Route {
	resolved := make([]*world.Route, 0, len(routes))
	for _, r := range routes {
		if id, ok := t.Resolve(r.FromID, r.ToID); ok {
			r.ToID = id
			resolved = append(resolved, r)
		}
	}
	return resolved
}
