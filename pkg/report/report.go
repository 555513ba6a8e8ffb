// Package report defines the serializable outcome document produced by
// an analysis run. The same document backs the CLI text renderer, the
// JSON output, the interactive browser, and the HTTP API, and carries
// bson tags so the mongo store can persist it unchanged.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/stagewalk/stagewalk/pkg/explore"
	"github.com/stagewalk/stagewalk/pkg/level"
)

// Path is one classified exploration branch, with ordinals mapped back
// to stage ids and skill names for human and machine consumption.
type Path struct {
	Outcome string   `json:"outcome" bson:"outcome"`
	Track   []string `json:"track" bson:"track"`
	Skills  []string `json:"skills,omitempty" bson:"skills,omitempty"`
}

// Entry groups the paths discovered from one entry stage.
type Entry struct {
	Stage    string `json:"stage" bson:"stage"`
	Winnable bool   `json:"winnable" bson:"winnable"` // at least one finished path
	Paths    []Path `json:"paths" bson:"paths"`
}

// Summary aggregates outcome counts across all entries.
type Summary struct {
	Entries  int  `json:"entries" bson:"entries"`
	Paths    int  `json:"paths" bson:"paths"`
	Finished int  `json:"finished" bson:"finished"`
	DeadEnds int  `json:"dead_ends" bson:"dead_ends"`
	Loops    int  `json:"loops" bson:"loops"`
	Clean    bool `json:"clean" bson:"clean"` // no dead ends or loops anywhere
}

// Report is the canonical analysis result document.
type Report struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	ConfigHash string    `json:"config_hash,omitempty" bson:"config_hash,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Warnings   []string  `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Entries    []Entry   `json:"entries" bson:"entries"`
	Summary    Summary   `json:"summary" bson:"summary"`
}

// New converts raw exploration results into a report, resolving stage
// and skill ordinals against the graph they came from.
func New(g *level.Graph, results []explore.Entry, warnings []string) *Report {
	r := &Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Warnings:  warnings,
		Entries:   make([]Entry, 0, len(results)),
	}

	for _, res := range results {
		entry := Entry{
			Stage: g.Stage(res.Stage).ID,
			Paths: make([]Path, 0, len(res.Paths)),
		}
		for _, p := range res.Paths {
			entry.Paths = append(entry.Paths, Path{
				Outcome: p.Class.String(),
				Track:   g.StageIDs(p.Track),
				Skills:  g.Skills().Names(p.Skills),
			})
			switch p.Class {
			case explore.Finished:
				entry.Winnable = true
				r.Summary.Finished++
			case explore.DeadEnd:
				r.Summary.DeadEnds++
			case explore.Looped:
				r.Summary.Loops++
			}
			r.Summary.Paths++
		}
		r.Entries = append(r.Entries, entry)
	}

	r.Summary.Entries = len(r.Entries)
	r.Summary.Clean = r.Summary.DeadEnds == 0 && r.Summary.Loops == 0
	return r
}

// Write encodes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteFile writes the report as JSON to path.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return r.Write(f)
}

// Read decodes a report from JSON.
func Read(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

// ReadFile reads a report previously written with WriteFile.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
