package domain

import (
	"slices"
	"time"
)

// Table is the normalized dataset for one load. It is never modified after
// NewTable returns, so it can be shared across goroutines without locking.
type Table struct {
	volcanoes []Volcano
	source    string
	loadedAt  time.Time
}

// NewTable wraps volcanoes loaded from source. The slice is copied.
func NewTable(source string, volcanoes []Volcano) *Table {
	return &Table{
		volcanoes: slices.Clone(volcanoes),
		source:    source,
		loadedAt:  clock.Now(),
	}
}

// Volcanoes returns the rows in load order. The returned slice is a copy;
// the pointer fields it shares with the table must be treated as read-only.
func (t *Table) Volcanoes() []Volcano {
	return slices.Clone(t.volcanoes)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.volcanoes) }

// Source returns the path the table was loaded from.
func (t *Table) Source() string { return t.source }

// LoadedAt returns when the table was built.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }
