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

// Package walker recursively enumerates a repository on local disk,
// filtering by extension and by a skip-list of vendored/build
// directories.
package walker

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// File is one recognized source file found by Walk.
type File struct {
	AbsPath string
	RelPath string
	Ext     string
}

// Config carries the extension and skip-list tables. DefaultConfig
// matches spec; a loaded YAML override (see internal/config) may extend
// either table without replacing this package's built-in defaults.
type Config struct {
	SkipDirs   []string
	Extensions []string
}

// DefaultConfig returns the built-in skip-list and extension set.
func DefaultConfig() Config {
	return Config{
		SkipDirs: []string{
			"node_modules", "target", "dist", "build", "__pycache__", ".git", "vendor",
		},
		Extensions: []string{
			"rs", "ts", "tsx", "js", "jsx", "py", "cpp", "cc", "cxx", "hpp", "c", "h", "java",
		},
	}
}

func (c Config) skips(name string) bool {
	for _, s := range c.SkipDirs {
		if name == s {
			return true
		}
	}
	return false
}

func (c Config) recognized(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Walk recursively enumerates root, returning every recognized source
// file. Directory read errors are swallowed (that subtree is skipped);
// this never aborts the walk.
func Walk(root string, cfg Config, log *slog.Logger) []File {
	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if log != nil {
				log.Warn("walk: skipping path after error", "path", path, "error", err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && (isDotDir(name) || cfg.skips(name)) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if strings.HasPrefix(name, ".") && !cfg.recognized(ext) {
			return nil
		}
		if !cfg.recognized(ext) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		files = append(files, File{AbsPath: path, RelPath: rel, Ext: ext})
		return nil
	})
	if err != nil && log != nil {
		log.Warn("walk: root traversal ended early", "root", root, "error", err)
	}

	return files
}

// isDotDir reports whether a directory name begins with "." and should
// be skipped outright (dotfiles are only ever let through as files with
// a recognized extension, never as directories).
func isDotDir(name string) bool {
	return strings.HasPrefix(name, ".") && name != "."
}
