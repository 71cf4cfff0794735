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

	"github.com/atlasgen/codeworld/internal/assemble"
	"github.com/atlasgen/codeworld/internal/pipeline"
)

// AssembleStep computes the final WorldMeta totals and produces the
// complete Seed.
type AssembleStep struct{}

func (*AssembleStep) Name() string { return "assemble" }

func (*AssembleStep) Run(ctx context.Context, state *pipeline.PipelineState) (*pipeline.PipelineState, error) {
	state.Seed = assemble.Seed(state.Cities, state.Routes)
	return state, nil
}
