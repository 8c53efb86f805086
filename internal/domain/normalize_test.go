package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{
	"Volcano Number", " Volcano Name", "Country ", "VOLCANIC REGION", "Primary Volcano Type",
	"Tectonic Setting", "Elevation (m)", "Latitude", "Longitude", "Last Known Eruption",
}

func testRow(name, region, eruption, elevation string) []string {
	return []string{"273083", name, "Philippines", region, "Stratovolcano",
		"Subduction zone / Continental crust (>25 km)", elevation, "15.13", "120.35", eruption}
}

func strPtr(s string) *string { return &s }

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Volcano Name", "volcano name"},
		{"  Elevation (m)  ", "elevation (m)"},
		{"\ufeffVolcano Number", "volcano number"},
		{"LAST KNOWN ERUPTION", "last known eruption"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalColumn(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeEruption(t *testing.T) {
	for _, sentinel := range []string{"Unknown", "?", "No data", "", "   "} {
		assert.Nil(t, NormalizeEruption(sentinel), "sentinel %q", sentinel)
	}

	got := NormalizeEruption(" 1991 CE ")
	require.NotNil(t, got)
	assert.Equal(t, "1991 CE", *got)

	// Sentinel matching is exact; "unknown" in lower case is ordinary text.
	assert.NotNil(t, NormalizeEruption("unknown"))
}

func TestExtractEruptionYear(t *testing.T) {
	tests := []struct {
		name string
		text *string
		want *int
	}{
		{"nil text", nil, nil},
		{"year with annotation", strPtr("1991 (Pinatubo)"), intPtr(1991)},
		{"CE suffix", strPtr("2023 CE"), intPtr(2023)},
		{"BCE era kept as digits", strPtr("6850 BCE"), intPtr(6850)},
		{"first run wins", strPtr("1902 or 1929"), intPtr(1902)},
		{"short number", strPtr("950 CE"), nil},
		{"no digits", strPtr("Holocene"), nil},
		{"longer run takes first four", strPtr("123456"), intPtr(1234)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEruptionYear(tt.text))
		})
	}
}

func intPtr(i int) *int { return &i }

func TestNormalize(t *testing.T) {
	raw := RawTable{
		Columns: testHeader,
		Rows: [][]string{
			testRow("Pinatubo", "Luzon", "1991 (Pinatubo)", "1486"),
			testRow("Mount Unknown", "Luzon", "Unknown", "n/a"),
			testRow("Blank", "Luzon", "", "1,250"),
		},
	}

	got, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	t.Run("fully populated row", func(t *testing.T) {
		v := got[0]
		assert.Equal(t, "273083", v.Number)
		assert.Equal(t, "Pinatubo", v.Name)
		assert.Equal(t, "Philippines", v.Country)
		assert.Equal(t, Region("Luzon"), v.Region)
		assert.Equal(t, VolcanoType("Stratovolcano"), v.Type)
		require.NotNil(t, v.TectonicSetting)
		assert.Equal(t, TectonicSetting("Subduction zone / Continental crust (>25 km)"), *v.TectonicSetting)
		require.NotNil(t, v.Elevation)
		assert.Equal(t, 1486.0, *v.Elevation)
		assert.True(t, v.HasCoordinates())
		require.NotNil(t, v.LastEruption)
		assert.Equal(t, "1991 (Pinatubo)", *v.LastEruption)
		require.NotNil(t, v.EruptionYear)
		assert.Equal(t, 1991, *v.EruptionYear)
	})

	t.Run("sentinel eruption and bad elevation", func(t *testing.T) {
		v := got[1]
		assert.Nil(t, v.LastEruption)
		assert.Nil(t, v.EruptionYear)
		assert.Nil(t, v.Elevation)
	})

	t.Run("empty eruption and thousands separator", func(t *testing.T) {
		v := got[2]
		assert.Nil(t, v.LastEruption)
		assert.Nil(t, v.EruptionYear)
		require.NotNil(t, v.Elevation)
		assert.Equal(t, 1250.0, *v.Elevation)
	})
}

func TestNormalize_ShortRowsAndBlankSetting(t *testing.T) {
	raw := RawTable{
		Columns: testHeader,
		Rows: [][]string{
			{"", "Short", "Iceland", "Iceland", "Caldera", ""},
		},
	}

	got, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	v := got[0]
	assert.Equal(t, "Short", v.Name)
	assert.Equal(t, "Short", v.Key())
	assert.Nil(t, v.TectonicSetting)
	assert.Nil(t, v.Elevation)
	assert.False(t, v.HasCoordinates())
	assert.Nil(t, v.EruptionYear)
}

func TestNormalize_NaNIsMissing(t *testing.T) {
	row := testRow("Odd", "Luzon", "1991", "NaN")
	got, err := Normalize(RawTable{Columns: testHeader, Rows: [][]string{row}})
	require.NoError(t, err)
	assert.Nil(t, got[0].Elevation)
}

func TestNormalize_MissingColumns(t *testing.T) {
	raw := RawTable{
		Columns: []string{"Volcano Name", "Country"},
		Rows:    [][]string{{"Etna", "Italy"}},
	}

	_, err := Normalize(raw)
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "volcanic region")
	assert.Contains(t, err.Error(), "last known eruption")
	assert.NotContains(t, err.Error(), "volcano name")
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(RawTable{})
	require.ErrorIs(t, err, ErrEmptyDataset)

}

func TestNormalize_HeaderOnly(t *testing.T) {
	volcanoes, err := Normalize(RawTable{Columns: testHeader})
	require.NoError(t, err)
	assert.NotNil(t, volcanoes)
	assert.Empty(t, volcanoes)
}

func TestNormalize_DuplicateHeaderFirstWins(t *testing.T) {
	header := append([]string{"volcano name"}, testHeader...)
	row := append([]string{"First"}, testRow("Second", "Luzon", "1991", "100")...)

	got, err := Normalize(RawTable{Columns: header, Rows: [][]string{row}})
	require.NoError(t, err)
	assert.Equal(t, "First", got[0].Name)
}

func TestNewTable(t *testing.T) {
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	defer SetClock(nil)

	rows := []Volcano{{Name: "Etna"}, {Name: "Fuji"}}
	table := NewTable("volcanoes.csv", rows)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "volcanoes.csv", table.Source())
	assert.Equal(t, at, table.LoadedAt())

	// Neither the input slice nor the returned copy can reach the table.
	rows[0].Name = "changed"
	out := table.Volcanoes()
	out[1].Name = "changed"
	assert.Equal(t, "Etna", table.Volcanoes()[0].Name)
	assert.Equal(t, "Fuji", table.Volcanoes()[1].Name)
}

func TestChoice(t *testing.T) {
	anyRegion := Any[Region]()
	assert.True(t, anyRegion.IsAny())
	_, ok := anyRegion.Get()
	assert.False(t, ok)

	var zero Choice[Region]
	assert.True(t, zero.IsAny())

	all := Only(Region("All"))
	assert.False(t, all.IsAny())
	v, ok := all.Get()
	assert.True(t, ok)
	assert.Equal(t, Region("All"), v)
}
