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

// Package assemble computes the final WorldMeta totals and assembles
// the complete Seed from already-built cities and resolved routes.
package assemble

import (
	"github.com/atlasgen/codeworld/internal/world"
)

// Seed builds the final world.Seed from cities and routes.
func Seed(cities []*world.City, routes []*world.Route) *world.Seed {
	return &world.Seed{
		WorldMeta: computeMeta(cities, routes),
		Cities:    cities,
		Highways:  routes,
	}
}

func computeMeta(cities []*world.City, routes []*world.Route) world.WorldMeta {
	meta := world.WorldMeta{TotalCities: len(cities)}

	var dominant string
	best := -1
	for _, city := range cities {
		meta.TotalBuildings += city.Stats.BuildingCount
		meta.TotalRooms += city.Stats.RoomCount
		meta.TotalArtifacts += city.Stats.ArtifactCount

		if loc := fileLOC(city.Children); loc > best {
			best = loc
			dominant = city.Language
		}
	}
	meta.DominantLanguage = dominant

	meta.ComplexityScore = complexityScore(meta.TotalBuildings, meta.TotalRooms, len(routes))
	return meta
}

// fileLOC sums the LOC of file-level Buildings only (building_type ==
// "file"), per spec.md's "summed file LOC across all its files" —
// distinct from CityStats.LOC, which sums every Building's LOC
// (including nested classes/impls/structs) and would otherwise
// double-count lines already covered by their enclosing file.
func fileLOC(children []world.Entity) int {
	total := 0
	for _, e := range children {
		switch n := e.(type) {
		case *world.District:
			total += fileLOC(n.Children)
		case *world.Building:
			if n.BuildingType == "file" {
				total += n.LOC
			}
		}
	}
	return total
}

func complexityScore(buildings, rooms, routeCount int) float64 {
	score := minF(float64(buildings)/10, 3) + minF(float64(rooms)/50, 4) + minF(float64(routeCount)/100, 3)
	return clamp(score, 1, 10)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
