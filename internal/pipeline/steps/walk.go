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

	"github.com/atlasgen/codeworld/internal/pipeline"
	"github.com/atlasgen/codeworld/internal/walker"
)

// WalkStep enumerates the repository into a list of recognized files.
type WalkStep struct{}

func (*WalkStep) Name() string { return "walk" }

func (*WalkStep) Run(ctx context.Context, state *pipeline.PipelineState) (*pipeline.PipelineState, error) {
	cfg := state.Options.WalkerConfig
	if len(cfg.Extensions) == 0 && len(cfg.SkipDirs) == 0 {
		cfg = walker.DefaultConfig()
	}
	state.Files = walker.Walk(state.Options.RepoRoot, cfg, state.Logger)
	return state, nil
}
