package dataset

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/query"
)

// Snapshot pairs a table with the catalog computed from it.
type Snapshot struct {
	Table   *domain.Table
	Catalog *query.Catalog
}

// Store holds the snapshot being served. Readers never block; a reload
// replaces the snapshot in a single atomic swap.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store. It reports not ready until the first Replace.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in table and its catalog.
func (s *Store) Replace(table *domain.Table) {
	s.current.Store(&Snapshot{
		Table:   table,
		Catalog: query.BuildCatalog(table.Volcanoes()),
	})
}

// Current returns the snapshot being served, or false before the first load.
func (s *Store) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// CheckReadiness reports an error until a table has been loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.current.Load() == nil {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}
