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

// Package pipeline wires the seven world-generation components into a
// single-pass, deterministic Step sequence: Walk, Extract, Wrap,
// BuildHierarchy, CollectRoutes, Resolve, Assemble. Unlike the
// teacher's LLM-correction pipeline, no step ever retries or rolls
// back — there is nothing here that can produce a "bad" result worth
// re-running.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/atlasgen/codeworld/internal/extract"
	"github.com/atlasgen/codeworld/internal/hierarchy"
	"github.com/atlasgen/codeworld/internal/walker"
	"github.com/atlasgen/codeworld/internal/world"
)

// Options configures a single Generate run.
type Options struct {
	RepoRoot      string
	Workers       int
	WalkerConfig  walker.Config
	GitProvider   extract.GitMetadataProvider
	Logger        *slog.Logger
}

// FileEntities is the per-file record produced by the Extract step and
// consumed by the Wrap step.
type FileEntities struct {
	File     walker.File
	Language string
	Source   []byte
	Entities []world.Entity
	Imports  []string
}

// PipelineState is the single value threaded through every step.
type PipelineState struct {
	RunID   string
	Options Options
	Logger  *slog.Logger

	Files        []walker.File
	Raw          []FileEntities
	FileBuildings []hierarchy.FileEntity
	Cities       []*world.City
	Routes       []*world.Route
	Seed         *world.Seed

	History []StepRecord
}

// StepStatus is the outcome of one step's execution.
type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)

// StepRecord is an immutable log entry for one step execution.
type StepRecord struct {
	StepName string
	Status   StepStatus
	Error    string
	Started  time.Time
	Ended    time.Time
}

// Step is one unit of work in the pipeline.
type Step interface {
	Name() string
	Run(ctx context.Context, state *PipelineState) (*PipelineState, error)
}

// RunPipeline runs steps in order against state, recording a
// StepRecord per step. The first step to return an error aborts the
// run; every step implemented in this repository is itself
// best-effort over its input files, so a step failure here signals a
// programmer/setup error (e.g. an unreadable repo root), not a
// per-file parse failure.
func RunPipeline(ctx context.Context, steps []Step, state *PipelineState) (*PipelineState, error) {
	for _, step := range steps {
		started := time.Now()
		next, err := step.Run(ctx, state)
		record := StepRecord{StepName: step.Name(), Started: started, Ended: time.Now()}
		if err != nil {
			record.Status = StepFailed
			record.Error = err.Error()
			if next == nil {
				next = state
			}
			next.History = append(next.History, record)
			return next, errors.Wrapf(err, "pipeline: step %q failed", step.Name())
		}
		record.Status = StepOK
		next.History = append(next.History, record)
		state = next
		if state.Logger != nil {
			state.Logger.Debug("pipeline: step complete", "step", step.Name(), "duration", record.Ended.Sub(record.Started))
		}
	}
	return state, nil
}
