package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stagewalk/stagewalk/pkg/report"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	rep := &report.Report{ID: "abc"}
	if err := s.Save(ctx, rep); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "abc" {
		t.Errorf("ID = %q, want abc", got.ID)
	}

	// Save with the same ID replaces.
	updated := &report.Report{ID: "abc", ConfigHash: "deadbeef"}
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ = s.Get(ctx, "abc")
	if got.ConfigHash != "deadbeef" {
		t.Error("Save did not replace the previous report")
	}
}
