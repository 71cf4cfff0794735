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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atlasgen/codeworld/internal/config"
	"github.com/atlasgen/codeworld/internal/core"
	"github.com/atlasgen/codeworld/internal/gitmeta"
	"github.com/atlasgen/codeworld/internal/walker"
)

const Usage = `codeworld <Action> <Path> [Flags]
Action:
   generate     walk the repo at Path and emit its world seed as JSON
   version      print the version of codeworld
`

const version = "0.1.0"

func main() {
	flags := flag.NewFlagSet("codeworld", flag.ExitOnError)

	flagOutput := flags.String("o", "", "Output path (default: stdout).")
	flagConfig := flags.String("config", "", "Path to a codeworld.yaml override (default: <Path>/codeworld.yaml if present).")
	flagWorkers := flags.Int("workers", 0, "Extraction worker pool size (default: runtime.NumCPU()).")
	flagNoGit := flags.Bool("no-git", false, "Skip git blame metadata lookup.")
	flagVerbose := flags.Bool("verbose", false, "Verbose logging.")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	action := strings.ToLower(os.Args[1])

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", version)

	case "generate":
		if len(os.Args) < 3 || os.Args[2] == "" {
			fmt.Fprintln(os.Stderr, "Argument Path is required")
			os.Exit(1)
		}
		repoPath := os.Args[2]
		if err := flags.Parse(os.Args[3:]); err != nil {
			os.Exit(1)
		}

		level := slog.LevelInfo
		if *flagVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		cfgPath := *flagConfig
		if cfgPath == "" {
			cfgPath = filepath.Join(repoPath, config.FileName)
		}
		overrides, err := config.Load(cfgPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		opts := core.Options{
			RepoRoot:     repoPath,
			Workers:      *flagWorkers,
			WalkerConfig: overrides.Apply(walker.DefaultConfig()),
			Logger:       logger,
		}
		if !*flagNoGit {
			opts.GitProvider = gitmeta.NewBlameProvider()
		}

		seed, err := core.Generate(context.Background(), opts)
		if err != nil {
			logger.Error("failed to generate world seed", "error", err)
			os.Exit(1)
		}

		out, err := json.MarshalIndent(seed, "", "  ")
		if err != nil {
			logger.Error("failed to marshal world seed", "error", err)
			os.Exit(1)
		}

		if *flagOutput != "" {
			if err := os.WriteFile(*flagOutput, out, 0o644); err != nil {
				logger.Error("failed to write output", "error", err)
				os.Exit(1)
			}
		} else {
			fmt.Fprintf(os.Stdout, "%s\n", out)
		}

	default:
		flags.Usage()
		os.Exit(1)
	}
}
