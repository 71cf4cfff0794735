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

// Package config loads an optional codeworld.yaml override that extends
// the walker's built-in extension and skip-list tables. The file is
// entirely optional: a missing file is not an error, and any table it
// omits falls back to walker.DefaultConfig().
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/atlasgen/codeworld/internal/walker"
)

// FileName is the default override filename looked up relative to the
// repo root when no explicit path is given on the command line.
const FileName = "codeworld.yaml"

// Overrides mirrors the fields of walker.Config that a codeworld.yaml
// file may extend.
type Overrides struct {
	SkipDirs   []string `yaml:"skip_dirs"`
	Extensions []string `yaml:"extensions"`
}

// Load reads and parses path, returning the zero Overrides if path does
// not exist.
func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, errors.Wrapf(err, "config: read %s", path)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, errors.Wrapf(err, "config: parse %s", path)
	}
	return o, nil
}

// Apply merges o into the built-in defaults, appending rather than
// replacing either table.
func (o Overrides) Apply(base walker.Config) walker.Config {
	base.SkipDirs = append(append([]string{}, base.SkipDirs...), o.SkipDirs...)
	base.Extensions = append(append([]string{}, base.Extensions...), o.Extensions...)
	return base
}
