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

// Package extract defines the shared per-language extractor contract,
// the registry that maps file extensions to languages, and the
// file-level wrapper that turns one file's entities into a synthetic
// Building{building_type:"file"}.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/atlasgen/codeworld/internal/world"
)

// Extractor is implemented by every per-language extractor. A parse
// that produces a partial tree still returns whatever entities were
// recovered; no extractor returns an error for malformed source.
type Extractor interface {
	// Language is the short tag used throughout the world schema
	// ("rs", "ts", "js", "py", "c", "cpp", "java").
	Language() string
	// Extract walks source and returns the entity tree plus the raw,
	// unresolved import strings found at file scope.
	Extract(source []byte, parentID string) (entities []world.Entity, imports []string)
}

// extByLanguage maps a file extension to the language tag it belongs
// to. TypeScript's two extensions and C/C++'s several each collapse to
// one tag; the extractor registry (internal/pipeline/steps) keys by
// extension instead.
var extByLanguage = map[string]string{
	"rs":   "rs",
	"ts":   "ts",
	"tsx":  "ts",
	"js":   "js",
	"jsx":  "js",
	"py":   "py",
	"c":    "c",
	"h":    "c",
	"cpp":  "cpp",
	"cc":   "cpp",
	"cxx":  "cpp",
	"hpp":  "cpp",
	"java": "java",
}

// LanguageForExt returns the language tag for a file extension (without
// the leading dot), and whether the extension is recognized.
func LanguageForExt(ext string) (string, bool) {
	tag, ok := extByLanguage[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return tag, ok
}

// GitMetadataProvider is the optional per-file author/commit lookup
// collaborator. A nil provider means no metadata is attached.
type GitMetadataProvider interface {
	Lookup(ctx context.Context, repoRoot, relPath string) (map[string]string, error)
}

// WrapFile wraps one file's extracted entities in a file-level Building,
// optionally attaching git metadata via provider (nil is a no-op).
func WrapFile(ctx context.Context, repoRoot, relPath string, source []byte, entities []world.Entity, imports []string, provider GitMetadataProvider) *world.Building {
	b := &world.Building{
		ID:           relPath,
		Name:         filepath.Base(relPath),
		BuildingType: "file",
		IsPublic:     true,
		LOC:          countFileLines(source),
		Imports:      imports,
		Children:     entities,
	}
	if provider != nil {
		if md, err := provider.Lookup(ctx, repoRoot, relPath); err == nil && len(md) > 0 {
			b.Metadata = md
		}
	}
	return b
}

func countFileLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := strings.Count(string(source), "\n") + 1
	return n
}
