// Command validate runs integrity checks over a volcano dataset: header
// schema, per-row value ranges, query-layer consistency, and optionally
// parity with a JSON fixture produced by genfixture.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -dataset data/volcanoes.xlsx \
//	  -fixture data/fixtures/volcanoes.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/query"
)

// Plausible elevation bounds in meters; submarine vents sit below sea level.
const (
	minElevation = -11000
	maxElevation = 9000
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("dataset", "", "path to the dataset (.xlsx or .csv)")
	sheet := flag.String("sheet", "", "worksheet to read (default: first sheet)")
	fixture := flag.String("fixture", "", "optional JSON fixture to compare against")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *path, *sheet, *fixture); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, path, sheet, fixturePath string) int {
	fmt.Fprintln(w, "=== Volcano Dataset Integrity Validation ===")
	fmt.Fprintln(w)

	raw, err := dataset.NewFileSource(path, sheet).Extract(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: read dataset: %v\n", err)
		return 1
	}

	schema := validateSchema(raw)
	volcanoes, err := domain.Normalize(raw)
	if err != nil {
		schema.errorf("normalize: %v", err)
	}

	phases := []*phase{schema}
	if schema.passed() {
		phases = append(phases,
			validateRows(volcanoes),
			validateQueries(volcanoes),
		)
		if fixturePath != "" {
			phases = append(phases, validateFixture(fixturePath, volcanoes))
		}
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d raw rows, %d normalized\n", len(raw.Rows), len(volcanoes))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──
// Validates the header row after canonicalization.

func validateSchema(raw domain.RawTable) *phase {
	p := &phase{name: "Phase 1: Schema (header row)"}

	seen := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		name := domain.CanonicalColumn(c)
		if first, ok := seen[name]; ok {
			p.errorf("column %d %q duplicates column %d", i+1, c, first+1)
			continue
		}
		seen[name] = i
	}
	return p
}

// ── Phase 2: Rows ──
// Validates per-row values of the normalized table.

func validateRows(volcanoes []domain.Volcano) *phase {
	p := &phase{name: "Phase 2: Rows (value ranges)"}

	numbers := make(map[string]int)
	for i, v := range volcanoes {
		line := i + 2
		if v.Name == "" {
			p.errorf("row %d: missing volcano name", line)
		}
		if v.Number != "" {
			if first, ok := numbers[v.Number]; ok {
				p.errorf("row %d: volcano number %s duplicates row %d", line, v.Number, first)
			} else {
				numbers[v.Number] = line
			}
		}
		if (v.Latitude == nil) != (v.Longitude == nil) {
			p.errorf("row %d (%s): only one coordinate present", line, v.Name)
		}
		if v.Latitude != nil && (*v.Latitude < -90 || *v.Latitude > 90) {
			p.errorf("row %d (%s): latitude %g out of range", line, v.Name, *v.Latitude)
		}
		if v.Longitude != nil && (*v.Longitude < -180 || *v.Longitude > 180) {
			p.errorf("row %d (%s): longitude %g out of range", line, v.Name, *v.Longitude)
		}
		if v.Elevation != nil && (*v.Elevation < minElevation || *v.Elevation > maxElevation) {
			p.errorf("row %d (%s): elevation %g m out of range", line, v.Name, *v.Elevation)
		}
		if v.EruptionYear != nil && v.LastEruption == nil {
			p.errorf("row %d (%s): eruption year without eruption text", line, v.Name)
		}
	}
	return p
}

// ── Phase 3: Queries ──
// Cross-checks query summaries against direct counts.

func validateQueries(volcanoes []domain.Volcano) *phase {
	p := &phase{name: "Phase 3: Queries (summary consistency)"}

	var withRegion, withElevation, withEruption int
	for _, v := range volcanoes {
		if v.Region != "" {
			withRegion++
		}
		if v.Elevation != nil {
			withElevation++
		}
		if v.LastEruption != nil {
			withEruption++
		}
	}

	regionTotal := 0
	for _, c := range query.TopCategoryCounts(volcanoes, query.CategoryRegion, len(volcanoes)) {
		regionTotal += c.Count
	}
	if regionTotal != withRegion {
		p.errorf("region counts sum to %d, %d rows have a region", regionTotal, withRegion)
	}

	binTotal := 0
	for _, b := range query.ElevationHistogram(volcanoes, 20) {
		binTotal += b.Count
	}
	if binTotal != withElevation {
		p.errorf("histogram holds %d elevations, %d rows have one", binTotal, withElevation)
	}

	if known := len(query.ByKnownEruption(volcanoes, true)); known != withEruption {
		p.errorf("known-eruption filter kept %d rows, %d have eruption text", known, withEruption)
	}

	cat := query.BuildCatalog(volcanoes)
	for _, v := range volcanoes {
		if v.EruptionYear == nil {
			continue
		}
		if cat.Years == nil || !cat.Years.Contains(*v.EruptionYear) {
			p.errorf("%s: eruption year %d outside catalog range", v.Name, *v.EruptionYear)
		}
	}
	if cat.Years != nil {
		inRange := len(query.ByYearRange(volcanoes, *cat.Years))
		if inRange != len(query.ByYearRange(volcanoes, query.YearRange{From: 0, To: 9999})) {
			p.errorf("catalog year range %d..%d drops rows", cat.Years.From, cat.Years.To)
		}
	}
	return p
}

// ── Phase 4: Fixture ──
// Validates that a JSON fixture matches the freshly normalized table.

func validateFixture(path string, volcanoes []domain.Volcano) *phase {
	p := &phase{name: "Phase 4: Fixture parity (JSON vs dataset)"}

	f, err := dataset.ReadFixture(path)
	if err != nil {
		p.errorf("load fixture: %v", err)
		return p
	}
	if len(f.Volcanoes) != len(volcanoes) {
		p.errorf("fixture has %d volcanoes, dataset has %d", len(f.Volcanoes), len(volcanoes))
	}
	if diff := cmp.Diff(volcanoes, f.Volcanoes); diff != "" {
		p.errorf("fixture differs from dataset (-dataset +fixture):\n%s", diff)
	}
	return p
}
