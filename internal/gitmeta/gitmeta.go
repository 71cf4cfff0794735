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

// Package gitmeta implements the optional GitMetadataProvider
// collaborator against an already-cloned local working tree. It never
// performs a clone or any network call; placing the repository at
// RepoRoot is the surrounding service's responsibility.
package gitmeta

import (
	"context"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// BlameProvider looks up per-file authorship metadata via git blame
// against the line covering the entity's first line.
type BlameProvider struct {
	mu    sync.Mutex
	repos map[string]*gogit.Repository
}

// NewBlameProvider returns a provider that lazily opens and caches one
// *gogit.Repository per repo root it is asked to look up.
func NewBlameProvider() *BlameProvider {
	return &BlameProvider{repos: map[string]*gogit.Repository{}}
}

// Lookup returns author_name, author_email, last_commit_message,
// last_modified (RFC-3339), and commit_hash for the commit that last
// touched relPath's first line, derived from the blame hunk covering
// it. Any failure (not a git repo, file not tracked, blame error)
// returns a nil map and no error — the caller treats a nil provider
// result the same as "no data available" per spec.
func (p *BlameProvider) Lookup(ctx context.Context, repoRoot, relPath string) (map[string]string, error) {
	repo, err := p.open(repoRoot)
	if err != nil {
		return nil, nil
	}

	head, err := repo.Head()
	if err != nil {
		return nil, nil
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, nil
	}

	result, err := gogit.Blame(commit, relPath)
	if err != nil || len(result.Lines) == 0 {
		return nil, nil
	}

	hunkHash := result.Lines[0].Hash
	hunkCommit, err := repo.CommitObject(hunkHash)
	if err != nil {
		return nil, nil
	}

	return map[string]string{
		"author_name":         hunkCommit.Author.Name,
		"author_email":        hunkCommit.Author.Email,
		"last_commit_message": firstLine(hunkCommit.Message),
		"last_modified":       hunkCommit.Author.When.UTC().Format(time.RFC3339),
		"commit_hash":         hunkHash.String(),
	}, nil
}

func (p *BlameProvider) open(repoRoot string) (*gogit.Repository, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.repos[repoRoot]; ok {
		return r, nil
	}
	r, err := gogit.PlainOpen(repoRoot)
	if err != nil {
		return nil, err
	}
	p.repos[repoRoot] = r
	return r, nil
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
