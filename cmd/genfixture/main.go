// Command genfixture loads a volcano dataset through the same normalization
// the service uses and writes the resulting table as a JSON fixture for
// downstream test suites.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -dataset data/volcanoes.xlsx \
//	  -out data/fixtures/volcanoes.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/domain"
	"github.com/couchcryptid/volcano-explorer/internal/query"
)

// fixtureTime pins LoadedAt so regenerated fixtures diff cleanly.
var fixtureTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	path := flag.String("dataset", "", "path to the dataset (.xlsx or .csv)")
	sheet := flag.String("sheet", "", "worksheet to read (default: first sheet)")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *path == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -dataset, -out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	table, err := load(*path, *sheet)
	if err != nil {
		return err
	}
	log.Printf("%s: %d volcanoes", *path, table.Len())

	if err := dataset.WriteFixture(*out, dataset.NewFixture(table)); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(table.Volcanoes())
	return nil
}

func load(path, sheet string) (*domain.Table, error) {
	raw, err := dataset.NewFileSource(path, sheet).Extract(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	volcanoes, err := domain.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing dataset: %w", err)
	}
	return domain.NewTable(path, volcanoes), nil
}

// printStats summarizes the table for updating test assertions.
func printStats(rows []domain.Volcano) {
	count, mean := query.CountAndAverageElevation(rows)
	cat := query.BuildCatalog(rows)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", count)
	fmt.Printf("Mean elevation: %.1f m\n", mean)
	fmt.Printf("Regions: %d, types: %d, tectonic settings: %d\n",
		len(cat.Regions.Values()), len(cat.Types.Values()), len(cat.Settings.Values()))
	if cat.Years != nil {
		fmt.Printf("Eruption years: %d..%d\n", cat.Years.From, cat.Years.To)
	}
	fmt.Printf("Known eruption: %d\n", len(query.ByKnownEruption(rows, true)))
	fmt.Printf("With coordinates: %d\n", len(query.MapPoints(rows)))

	for _, field := range []query.Category{query.CategoryRegion, query.CategoryType, query.CategorySetting} {
		fmt.Printf("\nTop %s:\n", field)
		for _, c := range query.TopCategoryCounts(rows, field, 5) {
			fmt.Printf("  %-50s %d\n", c.Category, c.Count)
		}
	}
}
