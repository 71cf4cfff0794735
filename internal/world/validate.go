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

import (
	"fmt"
	"strings"
)

// ValidationSeverity indicates whether a validation failure represents a
// structural defect (fatal) or a soft inconsistency worth a warning.
type ValidationSeverity string

const (
	SeverityFatal   ValidationSeverity = "fatal"
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationErrorItem is a single validation issue with optional node
// identity for reporting.
type ValidationErrorItem struct {
	Message  string
	Severity ValidationSeverity
	NodeID   string
}

// ValidationResult is the result of ValidateSeed.
type ValidationResult struct {
	Ok       bool
	Errors   []ValidationErrorItem
	Severity ValidationSeverity
}

// ValidateSeed checks a Seed against the testable invariants of the
// world model: every entity ID begins with its enclosing file's ID,
// every route endpoint resolves to a known entity, the meta totals match
// a fresh traversal, and the complexity score is in range.
func ValidateSeed(seed *Seed) ValidationResult {
	if seed == nil {
		return ValidationResult{
			Ok:       false,
			Severity: SeverityFatal,
			Errors:   []ValidationErrorItem{{Message: "seed is nil", Severity: SeverityFatal}},
		}
	}

	var items []ValidationErrorItem
	knownIDs := make(map[string]bool)
	var buildings, rooms, artifacts int

	var walk func(e Entity, fileID string)
	walk = func(e Entity, fileID string) {
		switch v := e.(type) {
		case *Building:
			buildings++
			knownIDs[v.ID] = true
			thisFile := fileID
			if v.BuildingType == "file" {
				thisFile = v.ID
			} else if thisFile != "" && !strings.HasPrefix(v.ID, thisFile) {
				items = append(items, ValidationErrorItem{
					Message:  fmt.Sprintf("building %q does not begin with enclosing file id %q", v.ID, thisFile),
					Severity: SeverityFatal,
					NodeID:   v.ID,
				})
			}
			for _, c := range v.Children {
				walk(c, thisFile)
			}
		case *Room:
			rooms++
			knownIDs[v.ID] = true
			if fileID != "" && !strings.HasPrefix(v.ID, fileID) {
				items = append(items, ValidationErrorItem{
					Message:  fmt.Sprintf("room %q does not begin with enclosing file id %q", v.ID, fileID),
					Severity: SeverityFatal,
					NodeID:   v.ID,
				})
			}
			for _, c := range v.Children {
				walk(c, fileID)
			}
		case *Artifact:
			artifacts++
			knownIDs[v.ID] = true
		case *District:
			for _, c := range v.Children {
				walk(c, fileID)
			}
		}
	}

	for _, city := range seed.Cities {
		for _, child := range city.Children {
			walk(child, "")
		}
	}

	for _, r := range seed.Highways {
		if !knownIDs[r.FromID] {
			items = append(items, ValidationErrorItem{
				Message:  fmt.Sprintf("route %s: from_id %q matches no known entity", r.ID, r.FromID),
				Severity: SeverityFatal,
				NodeID:   r.ID,
			})
		}
		if !knownIDs[r.ToID] {
			items = append(items, ValidationErrorItem{
				Message:  fmt.Sprintf("route %s: to_id %q matches no known entity", r.ID, r.ToID),
				Severity: SeverityFatal,
				NodeID:   r.ID,
			})
		}
	}

	if seed.WorldMeta.TotalCities != len(seed.Cities) {
		items = append(items, ValidationErrorItem{
			Message:  fmt.Sprintf("total_cities %d does not match %d cities present", seed.WorldMeta.TotalCities, len(seed.Cities)),
			Severity: SeverityFatal,
		})
	}
	if seed.WorldMeta.TotalBuildings != buildings {
		items = append(items, ValidationErrorItem{
			Message:  fmt.Sprintf("total_buildings %d does not match traversal count %d", seed.WorldMeta.TotalBuildings, buildings),
			Severity: SeverityFatal,
		})
	}
	if seed.WorldMeta.TotalRooms != rooms {
		items = append(items, ValidationErrorItem{
			Message:  fmt.Sprintf("total_rooms %d does not match traversal count %d", seed.WorldMeta.TotalRooms, rooms),
			Severity: SeverityFatal,
		})
	}
	if seed.WorldMeta.TotalArtifacts != artifacts {
		items = append(items, ValidationErrorItem{
			Message:  fmt.Sprintf("total_artifacts %d does not match traversal count %d", seed.WorldMeta.TotalArtifacts, artifacts),
			Severity: SeverityFatal,
		})
	}
	if seed.WorldMeta.ComplexityScore < 1.0 || seed.WorldMeta.ComplexityScore > 10.0 {
		items = append(items, ValidationErrorItem{
			Message:  fmt.Sprintf("complexity_score %f out of [1,10]", seed.WorldMeta.ComplexityScore),
			Severity: SeverityFatal,
		})
	}
	if len(seed.Cities) > 0 {
		found := false
		for _, c := range seed.Cities {
			if c.Language == seed.WorldMeta.DominantLanguage {
				found = true
				break
			}
		}
		if !found {
			items = append(items, ValidationErrorItem{
				Message:  fmt.Sprintf("dominant_language %q is not among present cities", seed.WorldMeta.DominantLanguage),
				Severity: SeverityFatal,
			})
		}
	}

	if len(items) == 0 {
		return ValidationResult{Ok: true}
	}
	severity := SeverityWarning
	for _, it := range items {
		if it.Severity == SeverityFatal {
			severity = SeverityFatal
			break
		}
	}
	return ValidationResult{Ok: false, Errors: items, Severity: severity}
}
