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
	"github.com/atlasgen/codeworld/internal/resolve"
)

// ResolveStep builds the global symbol table over every Room and
// Building and resolves each Route's raw target against it, dropping
// routes that cannot be resolved.
type ResolveStep struct{}

func (*ResolveStep) Name() string { return "resolve" }

func (*ResolveStep) Run(ctx context.Context, state *pipeline.PipelineState) (*pipeline.PipelineState, error) {
	table := resolve.Build(state.Cities)
	state.Routes = resolve.ResolveRoutes(table, state.Routes)
	return state, nil
}
