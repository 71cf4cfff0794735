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
	"github.com/atlasgen/codeworld/internal/extract"
	"github.com/atlasgen/codeworld/internal/extract/c"
	"github.com/atlasgen/codeworld/internal/extract/cpp"
	"github.com/atlasgen/codeworld/internal/extract/java"
	"github.com/atlasgen/codeworld/internal/extract/javascript"
	"github.com/atlasgen/codeworld/internal/extract/python"
	"github.com/atlasgen/codeworld/internal/extract/rust"
	"github.com/atlasgen/codeworld/internal/extract/typescript"
)

// extractorsByExt maps a recognized file extension to the Extractor
// that parses it. TypeScript's two extensions each need their own
// grammar variant; C/C++'s several extensions collapse onto one
// extractor each.
var extractorsByExt = map[string]extract.Extractor{
	"rs":   rust.New(),
	"ts":   typescript.New(),
	"tsx":  typescript.NewTSX(),
	"js":   javascript.New(),
	"jsx":  javascript.New(),
	"py":   python.New(),
	"c":    c.New(),
	"h":    c.New(),
	"cpp":  cpp.New(),
	"cc":   cpp.New(),
	"cxx":  cpp.New(),
	"hpp":  cpp.New(),
	"java": java.New(),
}
