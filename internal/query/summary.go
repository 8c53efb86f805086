package query

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// Category names a categorical field that can be counted.
type Category string

const (
	CategoryRegion  Category = "region"
	CategoryType    Category = "type"
	CategorySetting Category = "setting"
	CategoryCountry Category = "country"
)

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryRegion, CategoryType, CategorySetting, CategoryCountry:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category field %q", s)
	}
}

// valueOf returns the row's value for the category and false when missing.
func (c Category) valueOf(v domain.Volcano) (string, bool) {
	var s string
	switch c {
	case CategoryRegion:
		s = string(v.Region)
	case CategoryType:
		s = string(v.Type)
	case CategorySetting:
		if v.TectonicSetting != nil {
			s = string(*v.TectonicSetting)
		}
	case CategoryCountry:
		s = v.Country
	}
	return s, s != ""
}

// CategoryCount is one bar of a category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CountAndAverageElevation returns the row count and the mean elevation over
// rows that have one. The mean is NaN when no row has an elevation.
func CountAndAverageElevation(rows []domain.Volcano) (int, float64) {
	var sum float64
	var n int
	for _, v := range rows {
		if v.Elevation == nil {
			continue
		}
		sum += *v.Elevation
		n++
	}
	if n == 0 {
		return len(rows), math.NaN()
	}
	return len(rows), sum / float64(n)
}

// NamedSubset returns the names containing substr, case-sensitive, in row order.
func NamedSubset(rows []domain.Volcano, substr string) []string {
	names := make([]string, 0)
	for _, v := range rows {
		if strings.Contains(v.Name, substr) {
			names = append(names, v.Name)
		}
	}
	return names
}

// TopCategoryCounts returns at most n categories by descending count. Ties
// keep the order in which the categories first appear in rows. Rows missing
// the field are not counted.
func TopCategoryCounts(rows []domain.Volcano, field Category, n int) []CategoryCount {
	if n <= 0 {
		return []CategoryCount{}
	}

	position := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, v := range rows {
		value, ok := field.valueOf(v)
		if !ok {
			continue
		}
		i, seen := position[value]
		if !seen {
			i = len(counts)
			position[value] = i
			counts = append(counts, CategoryCount{Category: value})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b CategoryCount) int {
		return b.Count - a.Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
