package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrMissingColumns is returned when a dataset lacks a required column.
	ErrMissingColumns = errors.New("dataset missing required columns")

	// ErrEmptyDataset is returned when a dataset has no header row.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// yearRe matches the first run of four ASCII digits, e.g. "1991 (Pinatubo)" -> "1991".
var yearRe = regexp.MustCompile(`[0-9]{4}`)

// eruptionSentinels are the GVP placeholders for "no eruption date".
var eruptionSentinels = []string{"Unknown", "?", "No data", ""}

// headerCleaner recomposes headers and strips format runes such as the UTF-8
// byte order mark that spreadsheet CSV exports put on the first header.
var headerCleaner = transform.Chain(
	norm.NFC,
	runes.Remove(runes.In(unicode.Cf)),
)

// CanonicalColumn returns the canonical form of a column header: trimmed,
// lower case, NFC.
func CanonicalColumn(name string) string {
	cleaned, _, err := transform.String(headerCleaner, name)
	if err != nil {
		cleaned = name
	}
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// Normalize converts a raw table into volcano records. Header lookups are
// case- and whitespace-insensitive. Row-level problems never fail: an
// unparseable value becomes nil. Only a missing header or a missing required
// column is an error; a header with no rows yields an empty table.
func Normalize(raw RawTable) ([]Volcano, error) {
	if len(raw.Columns) == 0 {
		return nil, ErrEmptyDataset
	}

	index := indexColumns(raw.Columns)
	if missing := missingColumns(index); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	volcanoes := make([]Volcano, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		volcanoes = append(volcanoes, normalizeRow(index, row))
	}
	return volcanoes, nil
}

// indexColumns maps canonical column names to their position. When two
// headers canonicalize to the same name, the first one wins.
func indexColumns(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		name := CanonicalColumn(c)
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
	}
	return index
}

func missingColumns(index map[string]int) []string {
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

func normalizeRow(index map[string]int, row []string) Volcano {
	cell := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	lastEruption := NormalizeEruption(cell(ColumnLastEruption))

	return Volcano{
		Number:          cell(ColumnNumber),
		Name:            cell(ColumnName),
		Country:         cell(ColumnCountry),
		Region:          Region(cell(ColumnRegion)),
		Type:            VolcanoType(cell(ColumnType)),
		TectonicSetting: parseSetting(cell(ColumnTectonicSetting)),
		Elevation:       parseOptionalFloat(cell(ColumnElevation)),
		Latitude:        parseOptionalFloat(cell(ColumnLatitude)),
		Longitude:       parseOptionalFloat(cell(ColumnLongitude)),
		LastEruption:    lastEruption,
		EruptionYear:    ExtractEruptionYear(lastEruption),
	}
}

// NormalizeEruption returns nil for the GVP "no date" placeholders and a
// pointer to the trimmed text otherwise.
func NormalizeEruption(text string) *string {
	text = strings.TrimSpace(text)
	if slices.Contains(eruptionSentinels, text) {
		return nil
	}
	return &text
}

// ExtractEruptionYear returns the first four-digit run in text as a year, or
// nil when text is nil or carries no such run.
func ExtractEruptionYear(text *string) *int {
	if text == nil {
		return nil
	}
	match := yearRe.FindString(*text)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &year
}

// parseOptionalFloat parses a numeric cell. Thousands separators are
// ignored; empty, non-numeric, NaN, and infinite values yield nil.
func parseOptionalFloat(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseSetting(s string) *TectonicSetting {
	if s == "" {
		return nil
	}
	setting := TectonicSetting(s)
	return &setting
}
