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

// Package core exposes the single entry point the CLI and any
// embedding service call: Generate turns a local checked-out source
// tree into a *world.Seed. The core makes no network calls and writes
// no files.
package core

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/atlasgen/codeworld/internal/extract"
	"github.com/atlasgen/codeworld/internal/pipeline"
	"github.com/atlasgen/codeworld/internal/pipeline/steps"
	"github.com/atlasgen/codeworld/internal/walker"
	"github.com/atlasgen/codeworld/internal/world"
)

// Options configures one Generate call.
type Options struct {
	// RepoRoot is the local directory to walk. Required.
	RepoRoot string
	// Workers caps the extraction worker pool; zero means
	// runtime.NumCPU().
	Workers int
	// WalkerConfig overrides the default skip-list/extension tables.
	// The zero value means walker.DefaultConfig().
	WalkerConfig walker.Config
	// GitProvider is the optional per-file author/commit lookup
	// collaborator. Nil means no metadata is attached.
	GitProvider extract.GitMetadataProvider
	// Logger receives structured progress and warning output. Nil
	// disables logging.
	Logger *slog.Logger
}

// Generate runs the full Walk -> Extract -> Wrap -> BuildHierarchy ->
// CollectRoutes -> Resolve -> Assemble pipeline and returns the
// resulting world seed.
func Generate(ctx context.Context, opts Options) (*world.Seed, error) {
	if opts.RepoRoot == "" {
		return nil, errors.New("core: RepoRoot is required")
	}

	state := &pipeline.PipelineState{
		RunID:  uuid.NewString(),
		Logger: opts.Logger,
		Options: pipeline.Options{
			RepoRoot:     opts.RepoRoot,
			Workers:      opts.Workers,
			WalkerConfig: opts.WalkerConfig,
			GitProvider:  opts.GitProvider,
			Logger:       opts.Logger,
		},
	}

	run := []pipeline.Step{
		&steps.WalkStep{},
		&steps.ExtractStep{},
		&steps.WrapStep{},
		&steps.BuildHierarchyStep{},
		&steps.CollectRoutesStep{},
		&steps.ResolveStep{},
		&steps.AssembleStep{},
	}

	final, err := pipeline.RunPipeline(ctx, run, state)
	if err != nil {
		return nil, errors.Wrap(err, "core: generate")
	}
	return final.Seed, nil
}
