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

package steps

import (
	"context"

	"github.com/atlasgen/codeworld/internal/extract"
	"github.com/atlasgen/codeworld/internal/hierarchy"
	"github.com/atlasgen/codeworld/internal/pipeline"
)

// WrapStep turns each file's raw (entities, imports) pair into a
// file-level Building, tagged with its language for the hierarchy
// step. This is a fast sequential pass: no parsing happens here, only
// struct construction and the optional git-metadata lookup.
type WrapStep struct{}

func (*WrapStep) Name() string { return "wrap" }

func (*WrapStep) Run(ctx context.Context, state *pipeline.PipelineState) (*pipeline.PipelineState, error) {
	wrapped := make([]hierarchy.FileEntity, 0, len(state.Raw))
	for _, r := range state.Raw {
		building := extract.WrapFile(ctx, state.Options.RepoRoot, r.File.RelPath, r.Source, r.Entities, r.Imports, state.Options.GitProvider)
		wrapped = append(wrapped, hierarchy.FileEntity{Language: r.Language, Building: building})
	}
	state.FileBuildings = wrapped
	return state, nil
}
