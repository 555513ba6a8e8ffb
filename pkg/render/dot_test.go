package render

import (
	"strings"
	"testing"

	"github.com/stagewalk/stagewalk/pkg/level"
)

func testGraph(t *testing.T) *level.Graph {
	t.Helper()
	g, _, err := level.Build(level.Document{
		Version: level.SupportedVersion,
		Skills:  []string{"double-jump"},
		Stages: []level.StageRecord{
			{
				ID:          "1-1",
				Description: "Grass plains",
				Begin:       true,
				UnlockSkills: []string{
					"double-jump",
				},
				NextStage: map[string][]string{"boss": {"double-jump"}},
			},
			{ID: "boss", End: true},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph levels {",
		"rankdir=LR",
		`"1-1" -> "boss" [label="double-jump"`,
		"color=darkgreen",  // begin stage border
		"peripheries=2",    // end stage double border
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(dot, "Grass plains") {
		t.Error("compact output should not include descriptions")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})

	if !strings.Contains(dot, "Grass plains") {
		t.Error("detailed output missing description")
	}
	if !strings.Contains(dot, "unlocks: double-jump") {
		t.Error("detailed output missing unlock list")
	}
}

func TestToDOTUngatedEdgeHasNoLabel(t *testing.T) {
	g, _, err := level.Build(level.Document{
		Version: level.SupportedVersion,
		Stages: []level.StageRecord{
			{ID: "a", Begin: true, NextStage: map[string][]string{"b": nil}},
			{ID: "b", End: true},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"a" -> "b";`) {
		t.Errorf("ungated edge rendered wrong:\n%s", dot)
	}
	if strings.Contains(dot, `"a" -> "b" [label`) {
		t.Error("ungated edge should not carry a label")
	}
}
