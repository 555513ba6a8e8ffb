// Package pkg provides the core libraries for stagewalk level analysis.
//
// # Overview
//
// Stagewalk statically analyzes a game's level-transition design: given
// a declarative description of stages, acquirable skills, and
// skill-gated transitions, it enumerates every reachable outcome from
// each entry stage - completion, dead end, or endless loop - without
// simulating gameplay.
//
// The typical data flow:
//
//	TOML/YAML config
//	       ↓
//	  [config] package (decode + format validation)
//	       ↓
//	  [level] package (two-pass build into an immutable graph)
//	       ↓
//	  [explore] package (explicit-stack DFS, branch classification)
//	       ↓
//	  [report] package (serializable classified-path report)
//	       ↓
//	  text / JSON / DOT / SVG output
//
// # Main Packages
//
// [level] - The validated in-memory model: stages, dense skill
// ordinals, and skill-gated edges. Built once, immutable afterwards.
//
// [explore] - The path-exploration engine. Iterative depth-first search
// with full state cloning at every branch point, so sibling branches
// never alias each other's mutable state.
//
// [config] - Loaders for the TOML (primary) and YAML config dialects.
//
// [report] - Report document types plus summary statistics, shared by
// the CLI renderer, the JSON output, and the HTTP API.
//
// [render] - Graphviz DOT and SVG export of level graphs.
//
// [pipeline] - Orchestration (load → build → explore → report) with
// content-addressed caching, used by both CLI and server.
//
// [cache] - Cache backends: file (CLI), redis (server), null.
//
// [store] - Report persistence: memory (tests, default) and MongoDB.
//
// # Quick Start
//
//	doc, err := config.LoadFile("levels.toml")
//	g, warnings, err := level.Build(doc)
//	results := explore.All(g)
//	rep := report.New(g, results, warnings)
//
// [level]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/level
// [explore]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/explore
// [config]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/config
// [report]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/report
// [render]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/cache
// [store]: https://pkg.go.dev/github.com/stagewalk/stagewalk/pkg/store
package pkg
