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

package world

import "encoding/json"

// envelope is the wire shape every entity variant serializes to:
// {"kind": "...", "spec": {...}}.
type envelope struct {
	Kind Kind            `json:"kind"`
	Spec json.RawMessage `json:"spec"`
}

func wrap(kind Kind, spec any) ([]byte, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: kind, Spec: raw})
}

// cityAlias/districtAlias/... mirror the public field set for encoding
// only. Decoding uses the Children-less *Fields types below, with the
// polymorphic Children field decoded separately via decodeChildren.
type cityAlias struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Language     string    `json:"language"`
	Theme        string    `json:"theme"`
	EntryPointID string    `json:"entry_point_id,omitempty"`
	Stats        CityStats `json:"stats"`
	Children     []Entity  `json:"children"`
}

func (c *City) MarshalJSON() ([]byte, error) {
	return wrap(KindCity, cityAlias{c.ID, c.Name, c.Language, c.Theme, c.EntryPointID, c.Stats, c.Children})
}

type districtAlias struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Children []Entity `json:"children"`
}

func (d *District) MarshalJSON() ([]byte, error) {
	return wrap(KindDistrict, districtAlias{d.ID, d.Name, d.Path, d.Children})
}

type buildingAlias Building

func (b *Building) MarshalJSON() ([]byte, error) {
	return wrap(KindBuilding, (*buildingAlias)(b))
}

type roomAlias Room

func (r *Room) MarshalJSON() ([]byte, error) {
	return wrap(KindRoom, (*roomAlias)(r))
}

type artifactAlias Artifact

func (a *Artifact) MarshalJSON() ([]byte, error) {
	return wrap(KindArtifact, (*artifactAlias)(a))
}

// rawChildren pulls out just the polymorphic children list from a spec
// payload; the scalar fields of each variant are decoded separately
// into a Children-less shape so encoding/json never has to construct a
// non-empty interface value on its own.
type rawChildren struct {
	Children []json.RawMessage `json:"children"`
}

func decodeChildren(spec json.RawMessage) ([]Entity, error) {
	var rc rawChildren
	if err := json.Unmarshal(spec, &rc); err != nil {
		return nil, err
	}
	children := make([]Entity, 0, len(rc.Children))
	for _, c := range rc.Children {
		ent, err := UnmarshalEntity(c)
		if err != nil {
			return nil, err
		}
		children = append(children, ent)
	}
	return children, nil
}

type cityFields struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Language     string    `json:"language"`
	Theme        string    `json:"theme"`
	EntryPointID string    `json:"entry_point_id,omitempty"`
	Stats        CityStats `json:"stats"`
}

type districtFields struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type buildingFields struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	BuildingType string            `json:"building_type"`
	IsPublic     bool              `json:"is_public"`
	LOC          int               `json:"loc"`
	Imports      []string          `json:"imports"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type roomFields struct {
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
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// UnmarshalEntity decodes a single {"kind":...,"spec":...} envelope into
// its concrete Entity type. decodeChildren calls it for every nested
// child, and any consumer that round-trips a Seed can call it directly.
func UnmarshalEntity(data []byte) (Entity, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case KindCity:
		var f cityFields
		if err := json.Unmarshal(env.Spec, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(env.Spec)
		if err != nil {
			return nil, err
		}
		return &City{f.ID, f.Name, f.Language, f.Theme, f.EntryPointID, f.Stats, children}, nil
	case KindDistrict:
		var f districtFields
		if err := json.Unmarshal(env.Spec, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(env.Spec)
		if err != nil {
			return nil, err
		}
		return &District{f.ID, f.Name, f.Path, children}, nil
	case KindBuilding:
		var f buildingFields
		if err := json.Unmarshal(env.Spec, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(env.Spec)
		if err != nil {
			return nil, err
		}
		return &Building{f.ID, f.Name, f.BuildingType, f.IsPublic, f.LOC, f.Imports, children, f.Metadata}, nil
	case KindRoom:
		var f roomFields
		if err := json.Unmarshal(env.Spec, &f); err != nil {
			return nil, err
		}
		children, err := decodeChildren(env.Spec)
		if err != nil {
			return nil, err
		}
		return &Room{f.ID, f.Name, f.RoomType, f.IsMain, f.IsAsync, f.Visibility, f.Complexity, f.LOC, f.Parameters, f.ReturnType, f.Calls, children, f.Metadata}, nil
	case KindArtifact:
		var a Artifact
		if err := json.Unmarshal(env.Spec, &a); err != nil {
			return nil, err
		}
		return &a, nil
	default:
		return nil, &json.UnsupportedValueError{Str: string(env.Kind)}
	}
}
