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

// Package routes walks built cities and emits unresolved Route edges:
// one FunctionCall per Room.Calls entry and one Import per
// Building.Imports entry. Route IDs are assigned in traversal order
// and are not stable across resolver drops.
package routes

import (
	"fmt"

	"github.com/atlasgen/codeworld/internal/world"
)

// Collect traverses every city and returns the routes found, numbered
// route_1, route_2, ... in traversal order across all cities.
func Collect(cities []*world.City) []*world.Route {
	var routes []*world.Route
	counter := 1
	for _, city := range cities {
		for _, child := range city.Children {
			routes = append(routes, collectFrom(child, &counter)...)
		}
	}
	return routes
}

func collectFrom(e world.Entity, counter *int) []*world.Route {
	var routes []*world.Route
	switch n := e.(type) {
	case *world.District:
		for _, c := range n.Children {
			routes = append(routes, collectFrom(c, counter)...)
		}
	case *world.Building:
		for _, target := range n.Imports {
			routes = append(routes, newRoute(counter, n.ID, target, world.RouteImport))
		}
		for _, c := range n.Children {
			routes = append(routes, collectFrom(c, counter)...)
		}
	case *world.Room:
		for _, target := range n.Calls {
			routes = append(routes, newRoute(counter, n.ID, target, world.RouteFunctionCall))
		}
		for _, c := range n.Children {
			routes = append(routes, collectFrom(c, counter)...)
		}
	}
	return routes
}

func newRoute(counter *int, fromID, toID string, routeType world.RouteType) *world.Route {
	r := &world.Route{
		ID:        fmt.Sprintf("route_%d", *counter),
		FromID:    fromID,
		ToID:      toID,
		RouteType: routeType,
	}
	*counter++
	return r
}
