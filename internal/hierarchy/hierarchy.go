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

// Package hierarchy groups file-level Buildings by language into
// Cities and reconstructs the directory structure within each City as
// a tree of Districts.
package hierarchy

import (
	"strings"

	"github.com/atlasgen/codeworld/internal/world"
)

// FileEntity is one extracted file, already wrapped as a file-level
// Building, tagged with the language it was grouped under.
type FileEntity struct {
	Language string
	Building *world.Building
}

// trieNode is one directory level within a single language's City.
type trieNode struct {
	name     string
	path     string
	files    []*world.Building
	order    []string
	children map[string]*trieNode
}

func newTrieNode(name, path string) *trieNode {
	return &trieNode{name: name, path: path, children: map[string]*trieNode{}}
}

func (n *trieNode) child(name string) *trieNode {
	if c, ok := n.children[name]; ok {
		return c
	}
	path := name
	if n.path != "" {
		path = n.path + "/" + name
	}
	c := newTrieNode(name, path)
	n.children[name] = c
	n.order = append(n.order, name)
	return c
}

// BuildCities groups files by language tag (preserving first-seen
// language order) and reconstructs one City per language.
func BuildCities(files []FileEntity) []*world.City {
	var languageOrder []string
	byLanguage := map[string][]*world.Building{}
	for _, f := range files {
		if _, ok := byLanguage[f.Language]; !ok {
			languageOrder = append(languageOrder, f.Language)
		}
		byLanguage[f.Language] = append(byLanguage[f.Language], f.Building)
	}

	cities := make([]*world.City, 0, len(languageOrder))
	for _, lang := range languageOrder {
		cities = append(cities, buildCity(lang, byLanguage[lang]))
	}
	return cities
}

func buildCity(language string, buildings []*world.Building) *world.City {
	root := newTrieNode("", "")
	for _, b := range buildings {
		segments := strings.Split(b.ID, "/")
		dirs := segments[:len(segments)-1]
		node := root
		for _, seg := range dirs {
			node = node.child(seg)
		}
		node.files = append(node.files, b)
	}

	children := districtChildren(root)
	profile := profileFor(language)
	city := &world.City{
		ID:       "city_" + language,
		Name:     profile.Name,
		Language: language,
		Theme:    profile.Theme,
		Children: children,
	}
	city.Stats = computeStats(city.Children)
	city.EntryPointID = findEntryPoint(city.Children)
	return city
}

func districtChildren(node *trieNode) []world.Entity {
	var entities []world.Entity
	for _, b := range node.files {
		entities = append(entities, b)
	}
	for _, name := range node.order {
		child := node.children[name]
		entities = append(entities, &world.District{
			ID:       "district_" + strings.ReplaceAll(child.path, "/", "_"),
			Name:     child.name,
			Path:     child.path,
			Children: districtChildren(child),
		})
	}
	return entities
}

func computeStats(children []world.Entity) world.CityStats {
	var stats world.CityStats
	for _, e := range children {
		accumulate(e, &stats)
	}
	return stats
}

func accumulate(e world.Entity, stats *world.CityStats) {
	switch n := e.(type) {
	case *world.District:
		for _, c := range n.Children {
			accumulate(c, stats)
		}
	case *world.Building:
		stats.BuildingCount++
		stats.LOC += n.LOC
		for _, c := range n.Children {
			accumulate(c, stats)
		}
	case *world.Room:
		stats.RoomCount++
		for _, c := range n.Children {
			accumulate(c, stats)
		}
	case *world.Artifact:
		stats.ArtifactCount++
	}
}

func findEntryPoint(children []world.Entity) string {
	for _, e := range children {
		if id, ok := findEntryPointIn(e); ok {
			return id
		}
	}
	return ""
}

func findEntryPointIn(e world.Entity) (string, bool) {
	switch n := e.(type) {
	case *world.District:
		for _, c := range n.Children {
			if id, ok := findEntryPointIn(c); ok {
				return id, true
			}
		}
	case *world.Building:
		for _, c := range n.Children {
			if id, ok := findEntryPointIn(c); ok {
				return id, true
			}
		}
	case *world.Room:
		if n.IsMain {
			return n.ID, true
		}
		for _, c := range n.Children {
			if id, ok := findEntryPointIn(c); ok {
				return id, true
			}
		}
	}
	return "", false
}
