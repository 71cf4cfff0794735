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

// Package world defines the tagged-union entity schema that every
// extractor, the hierarchy reconstructor, the route collector, the
// resolver, and the assembler all operate on. A City's children are
// Districts and Buildings; a Building's children are Buildings, Rooms
// and Artifacts; a Room's children are the same triad; an Artifact is
// always a leaf.
package world

// Kind discriminates the five entity variants on the wire.
type Kind string

const (
	KindCity     Kind = "City"
	KindDistrict Kind = "District"
	KindBuilding Kind = "Building"
	KindRoom     Kind = "Room"
	KindArtifact Kind = "Artifact"
)

// Entity is implemented by every concrete node in a world tree. It exists
// so traversals can pattern-match over Kind() without a type switch on
// every call site; most callers still type-switch once they need a
// variant's fields.
type Entity interface {
	Kind() Kind
	EntityID() string
}

// Parameter is a function/method parameter: a name paired with a
// best-effort datatype string. Languages without declared types report
// "any", "Any", or "inferred" per their own convention.
type Parameter struct {
	Name     string `json:"name"`
	Datatype string `json:"datatype"`
}

// CityStats aggregates counts and summed Building LOC under one City.
type CityStats struct {
	BuildingCount int `json:"building_count"`
	RoomCount     int `json:"room_count"`
	ArtifactCount int `json:"artifact_count"`
	LOC           int `json:"loc"`
}

// City is the top-level grouping of every file sharing one source
// language. Children are District or Building entities.
type City struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Language      string    `json:"language"`
	Theme         string    `json:"theme"`
	EntryPointID  string    `json:"entry_point_id,omitempty"`
	Stats         CityStats `json:"stats"`
	Children      []Entity  `json:"children"`
}

func (c *City) Kind() Kind       { return KindCity }
func (c *City) EntityID() string { return c.ID }

// District is a directory within a City. It is purely a grouping node.
type District struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Children []Entity `json:"children"`
}

func (d *District) Kind() Kind       { return KindDistrict }
func (d *District) EntityID() string { return d.ID }

// Building is a file, class, struct, interface, enum, trait, namespace,
// impl block, or type alias.
type Building struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	BuildingType string            `json:"building_type"`
	IsPublic     bool              `json:"is_public"`
	LOC          int               `json:"loc"`
	Imports      []string          `json:"imports"`
	Children     []Entity          `json:"children"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (b *Building) Kind() Kind       { return KindBuilding }
func (b *Building) EntityID() string { return b.ID }

// Room is a function, method, constructor, arrow function, or synthetic
// main-guard block.
type Room struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	RoomType   string            `json:"room_type"`
	IsMain     bool              `json:"is_main"`
	IsAsync    bool              `json:"is_async"`
	Visibility string            `json:"visibility"`
	Complexity int               `json:"complexity"`
	LOC        int               `json:"loc"`
	Parameters []Parameter       `json:"parameters"`
	ReturnType string            `json:"return_type,omitempty"`
	Calls      []string          `json:"calls"`
	Children   []Entity          `json:"children"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

func (r *Room) Kind() Kind       { return KindRoom }
func (r *Room) EntityID() string { return r.ID }

// Artifact is a variable, constant, field, or enum value. It is always a
// leaf in the entity tree.
type Artifact struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ArtifactType string            `json:"artifact_type"`
	Datatype     string            `json:"datatype"`
	IsMutable    bool              `json:"is_mutable"`
	ValueHint    string            `json:"value_hint,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (a *Artifact) Kind() Kind       { return KindArtifact }
func (a *Artifact) EntityID() string { return a.ID }

// RouteType is the edge kind on a Route. FunctionCall and Import are the
// only values the collector in this repository ever emits; the other
// three are carried for wire-schema completeness with downstream
// visualization consumers that may originate edges of their own.
type RouteType string

const (
	RouteFunctionCall   RouteType = "FunctionCall"
	RouteImport         RouteType = "Import"
	RouteInheritance    RouteType = "Inheritance"
	RouteNetworkRequest RouteType = "NetworkRequest"
	RouteTypeReference  RouteType = "TypeReference"
)

// Route is a directed "highway" edge between two entities.
type Route struct {
	ID            string            `json:"id"`
	FromID        string            `json:"from_id"`
	ToID          string            `json:"to_id"`
	RouteType     RouteType         `json:"route_type"`
	Bidirectional bool              `json:"bidirectional"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// WorldMeta carries the aggregate statistics computed by the assembler.
type WorldMeta struct {
	TotalCities      int     `json:"total_cities"`
	TotalBuildings   int     `json:"total_buildings"`
	TotalRooms       int     `json:"total_rooms"`
	TotalArtifacts   int     `json:"total_artifacts"`
	DominantLanguage string  `json:"dominant_language"`
	ComplexityScore  float64 `json:"complexity_score"`
}

// Seed is the final output of the core: the complete world document.
type Seed struct {
	WorldMeta WorldMeta `json:"world_meta"`
	Cities    []*City   `json:"cities"`
	Highways  []*Route  `json:"highways"`
}
