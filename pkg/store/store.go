// Package store persists analysis reports for the HTTP surface.
// The memory store backs tests and single-process serving; the mongo
// store backs deployments where reports must outlive the process.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/stagewalk/stagewalk/pkg/report"
)

// ErrNotFound is returned when no report exists for the requested id.
var ErrNotFound = errors.New("report not found")

// Store is the interface for report persistence backends.
type Store interface {
	// Save persists a report under its ID, replacing any previous
	// report with the same ID.
	Save(ctx context.Context, r *report.Report) error

	// Get retrieves a report by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*report.Report, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps reports in a map guarded by a mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*report.Report)}
}

// Save stores the report by ID.
func (s *MemoryStore) Save(ctx context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

// Get retrieves a report by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
