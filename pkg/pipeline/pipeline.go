// Package pipeline orchestrates the complete analysis flow - load,
// build, explore, report - behind one entry point shared by the CLI
// and the HTTP API, so both surfaces behave identically.
//
// Exploration results are cached content-addressed: the cache key is a
// hash of the raw config bytes, so an unchanged design is never
// re-explored. Graph construction itself always runs, both because it
// is cheap and because every run must revalidate the document.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stagewalk/stagewalk/pkg/cache"
	"github.com/stagewalk/stagewalk/pkg/config"
	"github.com/stagewalk/stagewalk/pkg/explore"
	"github.com/stagewalk/stagewalk/pkg/level"
	"github.com/stagewalk/stagewalk/pkg/report"
)

// Dialects accepted for in-memory config data.
const (
	DialectTOML = "toml"
	DialectYAML = "yaml"
)

// DefaultCacheTTL is how long cached analysis reports stay valid.
// Content addressing makes staleness impossible; the TTL only bounds
// disk growth.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Options configures one analysis run. Exactly one of ConfigPath and
// ConfigData must be set.
type Options struct {
	ConfigPath string // config file on disk; dialect chosen by extension
	ConfigData []byte // raw config document
	Dialect    string // dialect for ConfigData (DialectTOML if empty)

	Refresh  bool          // bypass the cache read, still writes
	CacheTTL time.Duration // zero means DefaultCacheTTL
}

// Stats carries per-stage timings and result sizes.
type Stats struct {
	LoadTime    time.Duration
	ExploreTime time.Duration
	Stages      int
	Skills      int
	Paths       int
}

// Result is the outcome of one analysis run.
type Result struct {
	Graph    *level.Graph
	Report   *report.Report
	Warnings []string
	CacheHit bool
	Stats    Stats
}

// Runner executes the analysis pipeline with caching. It is stateless
// apart from the cache and logger, so one Runner can serve concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs load → build → explore → report.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	loadStart := time.Now()

	data, doc, err := r.load(opts)
	if err != nil {
		return nil, err
	}

	g, warnings, err := level.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("build level graph: %w", err)
	}

	result := &Result{
		Graph:    g,
		Warnings: warnings,
		Stats: Stats{
			LoadTime: time.Since(loadStart),
			Stages:   g.StageCount(),
			Skills:   g.Skills().Len(),
		},
	}

	r.Logger.Debug("built level graph",
		"stages", result.Stats.Stages,
		"skills", result.Stats.Skills,
		"entries", len(g.Entries()))

	key := cache.Key("report", cache.Hash(data))
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	if !opts.Refresh {
		if rep, ok := r.cachedReport(ctx, key); ok {
			result.Report = rep
			result.CacheHit = true
			result.Stats.Paths = rep.Summary.Paths
			return result, nil
		}
	}

	exploreStart := time.Now()
	results := explore.All(g)
	result.Stats.ExploreTime = time.Since(exploreStart)

	rep := report.New(g, results, warnings)
	rep.ConfigHash = cache.Hash(data)
	result.Report = rep
	result.Stats.Paths = rep.Summary.Paths

	r.Logger.Info("explored level graph",
		"entries", rep.Summary.Entries,
		"paths", rep.Summary.Paths,
		"duration", result.Stats.ExploreTime)

	r.storeReport(ctx, key, rep, ttl)
	return result, nil
}

// load produces the raw bytes and the decoded document for a run.
func (r *Runner) load(opts Options) ([]byte, level.Document, error) {
	switch {
	case opts.ConfigPath != "" && opts.ConfigData != nil:
		return nil, level.Document{}, fmt.Errorf("config path and config data are mutually exclusive")
	case opts.ConfigPath != "":
		data, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return nil, level.Document{}, fmt.Errorf("read %s: %w", opts.ConfigPath, err)
		}
		doc, err := config.LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, level.Document{}, err
		}
		return data, doc, nil
	case opts.ConfigData != nil:
		var (
			doc level.Document
			err error
		)
		if opts.Dialect == DialectYAML {
			doc, err = config.ParseYAML(opts.ConfigData)
		} else {
			doc, err = config.Parse(opts.ConfigData)
		}
		if err != nil {
			return nil, level.Document{}, err
		}
		return opts.ConfigData, doc, nil
	default:
		return nil, level.Document{}, fmt.Errorf("no config given")
	}
}

// cachedReport fetches and decodes a cached report, treating any cache
// failure as a miss.
func (r *Runner) cachedReport(ctx context.Context, key string) (*report.Report, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	rep, err := report.Read(bytes.NewReader(data))
	if err != nil {
		r.Logger.Warn("cached report corrupt, ignoring", "err", err)
		return nil, false
	}
	return rep, true
}

// storeReport writes a report to the cache; failures are logged, not fatal.
func (r *Runner) storeReport(ctx context.Context, key string, rep *report.Report, ttl time.Duration) {
	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		r.Logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	}
}
