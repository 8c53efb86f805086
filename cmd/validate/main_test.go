package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

var testDataset = filepath.Join("..", "..", "internal", "dataset", "testdata", "volcanoes.csv")

func writeFixture(t *testing.T, mutate func(*dataset.Fixture)) string {
	t.Helper()
	raw, err := dataset.NewFileSource(testDataset, "").Extract(context.Background())
	require.NoError(t, err)
	volcanoes, err := domain.Normalize(raw)
	require.NoError(t, err)

	f := dataset.NewFixture(domain.NewTable(testDataset, volcanoes))
	if mutate != nil {
		mutate(&f)
	}
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, dataset.WriteFixture(path, f))
	return path
}

func TestRun_Passes(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, testDataset, "", writeFixture(t, nil))

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Phase 4: Fixture parity")
}

func TestRun_FixtureMismatch(t *testing.T) {
	path := writeFixture(t, func(f *dataset.Fixture) {
		f.Volcanoes[0].Name = "Pinatubo (renamed)"
	})

	var out bytes.Buffer
	code := run(&out, testDataset, "", path)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "fixture differs from dataset")
}

func TestRun_RowErrors(t *testing.T) {
	csv := "Volcano Number,Volcano Name,Country,Volcanic Region,Primary Volcano Type,Tectonic Setting,Elevation (m),Latitude,Longitude,Last Known Eruption\n" +
		"1,Alpha,X,R,Shield,,100,95,10,1900 CE\n" +
		"1,Beta,X,R,Shield,,100,10,,Unknown\n"
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	var out bytes.Buffer
	code := run(&out, path, "", "")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "latitude 95 out of range")
	assert.Contains(t, out.String(), "volcano number 1 duplicates row 2")
	assert.Contains(t, out.String(), "only one coordinate present")
}

func TestRun_SchemaErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("Volcano Name,Country,Country\nEtna,Italy,Italy\n"), 0o600))

	var out bytes.Buffer
	code := run(&out, path, "", "")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "duplicates column 2")
	assert.Contains(t, out.String(), "normalize:")
	assert.NotContains(t, out.String(), "Phase 2")
}

func TestRun_MissingDataset(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, filepath.Join(t.TempDir(), "absent.csv"), "", "")

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL: read dataset")
}
