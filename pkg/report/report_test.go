package report

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stagewalk/stagewalk/pkg/explore"
	"github.com/stagewalk/stagewalk/pkg/level"
)

// analyzed builds a small graph and explores it: one entry, one finished
// path and one dead end.
func analyzed(t *testing.T) (*level.Graph, []explore.Entry) {
	t.Helper()
	g, _, err := level.Build(level.Document{
		Version: level.SupportedVersion,
		Skills:  []string{"dash"},
		Stages: []level.StageRecord{
			{ID: "start", Begin: true, UnlockSkills: []string{"dash"}, NextStage: map[string][]string{
				"goal": {"dash"},
				"pit":  nil,
			}},
			{ID: "goal", End: true},
			{ID: "pit"},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g, explore.All(g)
}

func TestNew(t *testing.T) {
	g, results := analyzed(t)

	rep := New(g, results, []string{"warn-1"})

	if rep.ID == "" {
		t.Error("report has no id")
	}
	if rep.CreatedAt.IsZero() {
		t.Error("report has no timestamp")
	}
	if !reflect.DeepEqual(rep.Warnings, []string{"warn-1"}) {
		t.Errorf("warnings = %v", rep.Warnings)
	}

	if len(rep.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(rep.Entries))
	}
	entry := rep.Entries[0]
	if entry.Stage != "start" {
		t.Errorf("entry stage = %q, want start", entry.Stage)
	}
	if !entry.Winnable {
		t.Error("entry with a finished path should be winnable")
	}
	if len(entry.Paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(entry.Paths))
	}

	byOutcome := map[string]Path{}
	for _, p := range entry.Paths {
		byOutcome[p.Outcome] = p
	}
	fin, ok := byOutcome["finished"]
	if !ok {
		t.Fatal("no finished path in report")
	}
	if !reflect.DeepEqual(fin.Track, []string{"start", "goal"}) {
		t.Errorf("finished track = %v", fin.Track)
	}
	if !reflect.DeepEqual(fin.Skills, []string{"dash"}) {
		t.Errorf("finished skills = %v", fin.Skills)
	}
	dead, ok := byOutcome["dead-end"]
	if !ok {
		t.Fatal("no dead-end path in report")
	}
	if !reflect.DeepEqual(dead.Track, []string{"start", "pit"}) {
		t.Errorf("dead-end track = %v", dead.Track)
	}
}

func TestNewSummary(t *testing.T) {
	g, results := analyzed(t)

	s := New(g, results, nil).Summary
	if s.Entries != 1 || s.Paths != 2 || s.Finished != 1 || s.DeadEnds != 1 || s.Loops != 0 {
		t.Errorf("summary = %+v", s)
	}
	if s.Clean {
		t.Error("summary with a dead end reported clean")
	}
}

func TestWriteRead(t *testing.T) {
	g, results := analyzed(t)
	rep := New(g, results, []string{"w"})
	rep.ConfigHash = "cafe"

	var buf bytes.Buffer
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, rep) {
		t.Errorf("round trip changed the report:\ngot:  %+v\nwant: %+v", got, rep)
	}
}

func TestWriteReadFile(t *testing.T) {
	g, results := analyzed(t)
	rep := New(g, results, nil)

	path := filepath.Join(t.TempDir(), "report.json")
	if err := rep.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.ID != rep.ID {
		t.Errorf("ID = %q, want %q", got.ID, rep.ID)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile of missing file succeeded")
	}
}
