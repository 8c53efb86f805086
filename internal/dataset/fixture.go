package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// Fixture is a normalized table serialized for tests and downstream tools.
type Fixture struct {
	Source    string           `json:"source"`
	LoadedAt  time.Time        `json:"loaded_at"`
	Volcanoes []domain.Volcano `json:"volcanoes"`
}

// NewFixture captures table as a fixture.
func NewFixture(table *domain.Table) Fixture {
	return Fixture{
		Source:    table.Source(),
		LoadedAt:  table.LoadedAt(),
		Volcanoes: table.Volcanoes(),
	}
}

// WriteFixture writes f as indented JSON, creating parent directories.
func WriteFixture(path string, f Fixture) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// ReadFixture reads a fixture written by WriteFixture.
func ReadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, err
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return f, nil
}
