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
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/atlasgen/codeworld/internal/extract"
	"github.com/atlasgen/codeworld/internal/pipeline"
	"github.com/atlasgen/codeworld/internal/walker"
)

// ExtractStep reads and parses every walked file across a worker
// pool. Extraction is embarrassingly parallel: each file is read,
// parsed into its own tree-sitter tree, and walked independently, with
// no shared mutable data structures between tasks. Each worker writes
// its result to the output slot matching its own job index, so the
// final order matches the walk order without needing a sort pass.
type ExtractStep struct{}

func (*ExtractStep) Name() string { return "extract" }

func (*ExtractStep) Run(ctx context.Context, state *pipeline.PipelineState) (*pipeline.PipelineState, error) {
	workers := state.Options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]pipeline.FileEntities, len(state.Files))
	ok := make([]bool, len(state.Files))

	jobs := make(chan int, len(state.Files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				entry, found := extractFile(state, state.Files[idx])
				results[idx] = entry
				ok[idx] = found
			}
		}()
	}

	for idx := range state.Files {
		if ctx.Err() != nil {
			break
		}
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	raw := make([]pipeline.FileEntities, 0, len(state.Files))
	for i, found := range ok {
		if found {
			raw = append(raw, results[i])
		}
	}

	state.Raw = raw
	return state, nil
}

func extractFile(state *pipeline.PipelineState, file walker.File) (pipeline.FileEntities, bool) {
	source, err := os.ReadFile(file.AbsPath)
	if err != nil {
		if state.Logger != nil {
			state.Logger.Warn("extract: skipping unreadable file", "path", file.AbsPath, "error", err)
		}
		return pipeline.FileEntities{}, false
	}

	language, ok := extract.LanguageForExt(file.Ext)
	if !ok {
		return pipeline.FileEntities{}, false
	}

	extractor, ok := extractorsByExt[strings.ToLower(file.Ext)]
	if !ok {
		return pipeline.FileEntities{}, false
	}

	entities, imports := extractor.Extract(source, file.RelPath)
	return pipeline.FileEntities{
		File:     file,
		Language: language,
		Source:   source,
		Entities: entities,
		Imports:  imports,
	}, true
}
