// Package level models a game's level-transition design: stages, the
// skills a player can acquire, and skill-gated transitions between
// stages. A Graph is built once from a declarative document, validated
// up front, and treated as immutable for the rest of the run - the
// exploration engine in pkg/explore only ever reads it.
package level

import (
	"errors"
	"fmt"
	"sort"
)

// SupportedVersion is the only config document version this build accepts.
const SupportedVersion = 1

var (
	// ErrUnsupportedVersion is returned by [Build] when the document
	// declares a format version other than SupportedVersion.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrNoStages is returned by [Build] when the document defines no
	// stages at all. An empty game has nothing to analyze.
	ErrNoStages = errors.New("no stages defined")

	// ErrMissingStageID is returned by [Build] when a stage record has
	// an empty id. The id is the stable key for everything downstream.
	ErrMissingStageID = errors.New("stage id must not be empty")

	// ErrDuplicateStageID is returned by [Build] when two stage records
	// share an id. Stage ids must be unique.
	ErrDuplicateStageID = errors.New("duplicate stage id")

	// ErrUnknownDestination is returned by [Build] when a next-stage
	// entry names a stage that does not exist in the document.
	ErrUnknownDestination = errors.New("unknown destination stage")

	// ErrNoEndStage is returned by [Build] when no stage is flagged as
	// an end stage; every exploration would be a dead end or a loop.
	ErrNoEndStage = errors.New("no end stage defined")

	// ErrBadStageDefinition is returned by the config loaders when a
	// stage entry is not a well-formed stage table.
	ErrBadStageDefinition = errors.New("bad stage definition")
)

// StageRecord is one raw stage table as decoded from a config document.
// NextStage maps destination stage ids to required skill name lists;
// a destination therefore has at most one edge from any given stage.
type StageRecord struct {
	ID           string
	Description  string
	Begin        bool
	End          bool
	UnlockSkills []string
	NextStage    map[string][]string
}

// Document is the raw, decoded form of a level config: the global skill
// list, the stage tables, and the declared format version.
type Document struct {
	Version int
	Skills  []string
	Stages  []StageRecord
}

// Edge is a directed, skill-gated transition to another stage.
// It is enabled for a path iff Requires is a subset of the path's
// accumulated skills.
type Edge struct {
	To       int // destination stage ordinal
	Requires Set // skill ordinals that gate the transition
}

// Stage is one validated node of the level graph.
type Stage struct {
	ID          string
	Description string
	Begin       bool
	End         bool
	Unlocks     Set    // skills granted when a path passes through
	Edges       []Edge // outgoing transitions, ascending by destination
}

// Graph is the immutable, validated level model. Stages are indexed by
// dense ordinals assigned in document order; lookups by id go through
// an id table built during construction. Graph is safe to share by
// reference across concurrent explorations because nothing mutates it
// after Build returns.
type Graph struct {
	stages []Stage
	byID   map[string]int
	skills *Registry
}

// Build validates a decoded document and constructs the level graph.
//
// Construction runs in two passes because next-stage entries may
// forward-reference stages that appear later in the document: pass one
// assigns ordinals and resolves flags and unlock lists, pass two
// resolves destinations and requirement lists against the completed
// tables.
//
// Unresolved skill names in unlock lists and requirement lists are
// dropped rather than rejected; each dropped name is reported in the
// returned warnings so the weakened gate is visible to the caller.
func Build(doc Document) (*Graph, []string, error) {
	if doc.Version != SupportedVersion {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, doc.Version, SupportedVersion)
	}
	if len(doc.Stages) == 0 {
		return nil, nil, ErrNoStages
	}

	skills := NewRegistry()
	for _, name := range doc.Skills {
		skills.Register(name) // "" placeholder is a no-op
	}

	var warnings []string

	// Pass 1: ids, ordinals, flags, unlock sets.
	g := &Graph{
		stages: make([]Stage, len(doc.Stages)),
		byID:   make(map[string]int, len(doc.Stages)),
		skills: skills,
	}
	hasEnd := false
	for i, rec := range doc.Stages {
		if rec.ID == "" {
			return nil, nil, fmt.Errorf("%w: stage at position %d", ErrMissingStageID, i)
		}
		if prev, exists := g.byID[rec.ID]; exists {
			return nil, nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateStageID, rec.ID, prev, i)
		}
		g.byID[rec.ID] = i

		var unlocks Set
		for _, name := range rec.UnlockSkills {
			if name == "" {
				continue
			}
			ord, ok := skills.Lookup(name)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("stage %q: unlock skill %q is not in the skill list, dropped", rec.ID, name))
				continue
			}
			unlocks.Add(ord)
		}

		g.stages[i] = Stage{
			ID:          rec.ID,
			Description: rec.Description,
			Begin:       rec.Begin,
			End:         rec.End,
			Unlocks:     unlocks,
		}
		hasEnd = hasEnd || rec.End
	}
	if !hasEnd {
		return nil, nil, ErrNoEndStage
	}

	// Pass 2: destinations and requirement sets.
	for i, rec := range doc.Stages {
		edges := make([]Edge, 0, len(rec.NextStage))
		for dest, reqNames := range rec.NextStage {
			to, ok := g.byID[dest]
			if !ok {
				return nil, nil, fmt.Errorf("%w: stage %q -> %q", ErrUnknownDestination, rec.ID, dest)
			}
			var requires Set
			for _, name := range reqNames {
				if name == "" {
					continue
				}
				ord, ok := skills.Lookup(name)
				if !ok {
					warnings = append(warnings, fmt.Sprintf("stage %q -> %q: required skill %q is not in the skill list, dropped", rec.ID, dest, name))
					continue
				}
				requires.Add(ord)
			}
			edges = append(edges, Edge{To: to, Requires: requires})
		}
		// Fixed enumeration order keeps exploration deterministic.
		sort.Slice(edges, func(a, b int) bool { return edges[a].To < edges[b].To })
		g.stages[i].Edges = edges
	}

	if len(g.Entries()) == 0 {
		warnings = append(warnings, "no stage is flagged begin; nothing will be explored")
	}

	return g, warnings, nil
}

// StageCount returns the number of stages in the graph.
func (g *Graph) StageCount() int { return len(g.stages) }

// Stage returns the stage with the given ordinal. The returned pointer
// refers into the graph's arena and must be treated as read-only.
func (g *Graph) Stage(ordinal int) *Stage { return &g.stages[ordinal] }

// Ordinal returns the dense ordinal for a stage id.
func (g *Graph) Ordinal(id string) (int, bool) {
	ord, ok := g.byID[id]
	return ord, ok
}

// Skills returns the skill registry backing this graph.
func (g *Graph) Skills() *Registry { return g.skills }

// Entries returns the ordinals of all stages flagged begin, ascending.
// The documentation for the config dialect speaks of a single begin
// stage, but the model deliberately supports several: each one gets an
// independent exploration.
func (g *Graph) Entries() []int {
	var entries []int
	for i := range g.stages {
		if g.stages[i].Begin {
			entries = append(entries, i)
		}
	}
	return entries
}

// StageIDs maps a track of stage ordinals back to stage ids.
func (g *Graph) StageIDs(track []int) []string {
	ids := make([]string, len(track))
	for i, ord := range track {
		ids[i] = g.stages[ord].ID
	}
	return ids
}
