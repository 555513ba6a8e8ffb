// Package explore walks a level graph and classifies every route a
// player could take from an entry stage. It enumerates branches under
// skill-prerequisite gating, detects cycles explicitly, and tags each
// terminal path as finished, dead end, or looped - without simulating
// any actual gameplay.
package explore

import "github.com/stagewalk/stagewalk/pkg/level"

// Classification is the terminal outcome of one exploration branch.
type Classification int

const (
	// Unclassified marks a path still on the work stack.
	Unclassified Classification = iota
	// Finished marks a path that reached an end stage.
	Finished
	// DeadEnd marks a path whose final stage has no enabled edges.
	DeadEnd
	// Looped marks a path that revisited a stage on its own track.
	Looped
)

// String returns the lower-case tag used in reports.
func (c Classification) String() string {
	switch c {
	case Finished:
		return "finished"
	case DeadEnd:
		return "dead-end"
	case Looped:
		return "looped"
	default:
		return "unclassified"
	}
}

// Path is the state of one exploration branch: the route taken so far,
// the skills accumulated along it, and the stages it has already
// visited. Each Path is exclusively owned by one branch; branching
// clones the whole value so sibling branches never share mutable
// storage. That exclusive ownership is the concurrency design - there
// is nothing to lock.
type Path struct {
	// Track is the ordered sequence of stage ordinals, entry first.
	Track []int
	// Skills is the set of unlocked skill ordinals. It only grows.
	Skills level.Set
	// Class is the terminal outcome, set exactly once.
	Class Classification

	visited level.Set // stages already on Track, for the revisit check
}

// clone returns a deep copy sharing no mutable state with p.
func (p *Path) clone() *Path {
	track := make([]int, len(p.Track), len(p.Track)+1)
	copy(track, p.Track)
	return &Path{
		Track:   track,
		Skills:  p.Skills.Clone(),
		visited: p.visited.Clone(),
	}
}

// Explore walks the graph from the given entry stage and returns every
// terminal path. The traversal is an explicit-stack depth-first search,
// never recursive, so depth is bounded by memory rather than the call
// stack. It cannot fail: the graph was validated at construction and
// the revisit check bounds every track by the stage count plus one.
func Explore(g *level.Graph, entry int) []*Path {
	var results []*Path

	work := []*Path{{Track: []int{entry}}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		current := p.Track[len(p.Track)-1]
		stage := g.Stage(current)

		// Membership is checked before marking: a hit means a previous
		// expansion appended a stage already on this track, so the
		// design loops forever here.
		if p.visited.Has(current) {
			p.Class = Looped
			results = append(results, p)
			continue
		}
		p.visited.Add(current)

		if stage.End {
			p.Class = Finished
			results = append(results, p)
			continue
		}

		// Skills accumulate before gating, so a stage can unlock the
		// skill its own exit requires.
		p.Skills.Union(stage.Unlocks)

		branched := false
		for _, e := range stage.Edges {
			if !p.Skills.ContainsAll(e.Requires) {
				continue
			}
			if !branched {
				// First enabled edge extends this path in place.
				p.Track = append(p.Track, e.To)
				work = append(work, p)
				branched = true
				continue
			}
			// Every further enabled edge gets an independent clone of
			// the state as it stood before the first extension.
			sibling := p.clone()
			sibling.Track[len(sibling.Track)-1] = e.To
			work = append(work, sibling)
		}

		if !branched {
			p.Class = DeadEnd
			results = append(results, p)
		}
	}

	return results
}

// Entry holds the terminal paths discovered from one entry stage.
type Entry struct {
	Stage int // entry stage ordinal
	Paths []*Path
}

// All runs an independent exploration for every stage flagged begin and
// returns the results in entry-ordinal order. Separate entries share
// only the read-only graph.
func All(g *level.Graph) []Entry {
	entries := g.Entries()
	results := make([]Entry, 0, len(entries))
	for _, e := range entries {
		results = append(results, Entry{Stage: e, Paths: Explore(g, e)})
	}
	return results
}
