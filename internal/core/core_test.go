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

package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlasgen/codeworld/internal/world"
)

func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func findCity(t *testing.T, seed *world.Seed, id string) *world.City {
	t.Helper()
	for _, c := range seed.Cities {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("city %q not found", id)
	return nil
}

func findBuilding(t *testing.T, entities []world.Entity, id string) *world.Building {
	t.Helper()
	for _, e := range entities {
		switch n := e.(type) {
		case *world.Building:
			if n.ID == id {
				return n
			}
			if b := findBuilding(nil, n.Children, id); b != nil {
				return b
			}
		case *world.District:
			if b := findBuilding(nil, n.Children, id); b != nil {
				return b
			}
		}
	}
	if t != nil {
		t.Fatalf("building %q not found", id)
	}
	return nil
}

func findRoom(children []world.Entity, id string) *world.Room {
	for _, e := range children {
		switch n := e.(type) {
		case *world.Room:
			if n.ID == id {
				return n
			}
			if r := findRoom(n.Children, id); r != nil {
				return r
			}
		case *world.Building:
			if r := findRoom(n.Children, id); r != nil {
				return r
			}
		case *world.District:
			if r := findRoom(n.Children, id); r != nil {
				return r
			}
		}
	}
	return nil
}

func hasRoute(seed *world.Seed, fromID, toID string, routeType world.RouteType) bool {
	for _, r := range seed.Highways {
		if r.FromID == fromID && r.ToID == toID && r.RouteType == routeType {
			return true
		}
	}
	return false
}

func TestGenerate_SingleRustFile(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"src/main.rs": "fn main() { helper(); }\nfn helper() {}\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)
	require.Len(t, seed.Cities, 1)

	city := findCity(t, seed, "city_rs")
	building := findBuilding(t, city.Children, "src/main.rs")
	require.NotNil(t, findRoom(building.Children, "src/main.rs::main"))
	require.NotNil(t, findRoom(building.Children, "src/main.rs::helper"))

	mainRoom := findRoom(building.Children, "src/main.rs::main")
	require.True(t, mainRoom.IsMain)
	require.Equal(t, "src/main.rs::main", city.EntryPointID)

	require.True(t, hasRoute(seed, "src/main.rs::main", "src/main.rs::helper", world.RouteFunctionCall))
}

func TestGenerate_CrossLanguageIgnored(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"src/main.rs": "fn main() { helper(); }\nfn helper() {}\n",
		"notes.md":    "# notes\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)
	require.Len(t, seed.Cities, 1)
	require.Equal(t, "city_rs", seed.Cities[0].ID)
}

func TestGenerate_ImportResolution(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"a.py": "from .b import thing\nfrom .c import x\n",
		"b.py": "def thing(): pass\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)

	found := false
	for _, r := range seed.Highways {
		if r.RouteType != world.RouteImport {
			continue
		}
		if r.FromID == "a.py" && (r.ToID == "b.py" || r.ToID == "b.py::thing") {
			found = true
		}
		require.NotEqual(t, "c.py", r.ToID)
	}
	require.True(t, found, "expected an Import route from a.py to b.py")
}

func TestGenerate_AmbiguousShortNameCall(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"mod_x/util.rs":   "fn foo() {}\n",
		"mod_y/util.rs":   "fn foo() {}\n",
		"mod_x/caller.rs": "fn call_it() { foo(); }\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)

	require.True(t, hasRoute(seed, "mod_x/caller.rs::call_it", "mod_x/util.rs::foo", world.RouteFunctionCall))
	require.False(t, hasRoute(seed, "mod_x/caller.rs::call_it", "mod_y/util.rs::foo", world.RouteFunctionCall))
}

func TestGenerate_PythonMainGuard(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"script.py": "def helper(): pass\nif __name__==\"__main__\": helper()\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)

	city := findCity(t, seed, "city_py")
	building := findBuilding(t, city.Children, "script.py")
	mainGuard := findRoom(building.Children, "script.py::__main_guard__")
	require.NotNil(t, mainGuard)
	require.Equal(t, "__main__", mainGuard.Name)
	require.Equal(t, "main_guard", mainGuard.RoomType)
	require.True(t, mainGuard.IsMain)
	require.Contains(t, mainGuard.Calls, "helper")

	require.True(t, hasRoute(seed, "script.py::__main_guard__", "script.py::helper", world.RouteFunctionCall))
}

func TestGenerate_ComplexityCounting(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"app.ts": "function f(x) { if (x) return 1; for (const i of x) if (i) return 2; return 3; }\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)

	city := findCity(t, seed, "city_ts")
	building := findBuilding(t, city.Children, "app.ts")
	fn := findRoom(building.Children, "app.ts::f")
	require.NotNil(t, fn)
	require.Equal(t, 4, fn.Complexity)
}

func TestGenerate_Idempotent(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"src/main.rs": "fn main() { helper(); }\nfn helper() {}\n",
		"util.py":     "def thing(): pass\n",
	})

	first, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)
	second, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)

	require.Equal(t, first.WorldMeta, second.WorldMeta)
	require.Equal(t, len(first.Cities), len(second.Cities))
	require.Equal(t, len(first.Highways), len(second.Highways))
}

func TestGenerate_WorldMetaInvariants(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"src/main.rs": "fn main() { helper(); }\nfn helper() {}\n",
		"util.py":     "def thing(): pass\n",
	})

	seed, err := Generate(context.Background(), Options{RepoRoot: dir})
	require.NoError(t, err)

	require.Equal(t, len(seed.Cities), seed.WorldMeta.TotalCities)
	require.GreaterOrEqual(t, seed.WorldMeta.ComplexityScore, 1.0)
	require.LessOrEqual(t, seed.WorldMeta.ComplexityScore, 10.0)

	languages := map[string]bool{}
	for _, c := range seed.Cities {
		languages[c.Language] = true
	}
	require.True(t, languages[seed.WorldMeta.DominantLanguage])

	validation := world.ValidateSeed(seed)
	require.Empty(t, validation.Errors)
}
