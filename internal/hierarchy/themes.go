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

package hierarchy

// cityProfile is the descriptive name/theme pair a language tag maps to
// in the visualization. New languages plug in by adding one row here.
type cityProfile struct {
	Name  string
	Theme string
}

var profiles = map[string]cityProfile{
	"rs":   {Name: "Rustopolis", Theme: "industrial"},
	"ts":   {Name: "Typescriptia", Theme: "neon"},
	"js":   {Name: "Javascriptopolis", Theme: "neon"},
	"py":   {Name: "Pythonia", Theme: "nature"},
	"c":    {Name: "Coreland", Theme: "brutalist"},
	"cpp":  {Name: "CppMetropolis", Theme: "brutalist"},
	"java": {Name: "Javatown", Theme: "steam"},
}

// profileFor returns the name/theme pair for a language tag, falling
// back to a generic label for any tag not in the fixed lookup (future
// extractors that forget to register a theme still produce a valid
// city instead of an empty name).
func profileFor(language string) cityProfile {
	if p, ok := profiles[language]; ok {
		return p
	}
	return cityProfile{Name: language, Theme: "unknown"}
}
