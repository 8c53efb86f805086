// Package domain models the Smithsonian Global Volcanism Program (GVP)
// volcano list and the load-time normalization applied to it.
//
// # Data Source
//
// The dataset is the GVP "Holocene Volcano List" export, one row per volcano,
// distributed as a spreadsheet (volcanoes.xlsx) or a CSV export of the same
// sheet. Column headers vary in casing and padding between exports
// ("Volcano Name", " volcano name ", "VOLCANO NAME"), so every header is
// canonicalized to trimmed lower case before any lookup. See [CanonicalColumn].
//
// # GVP Data Conventions
//
// Last known eruption is free text:
//
//	"1991 CE"            → eruption year 1991
//	"1991 (Pinatubo)"    → eruption year 1991
//	"6850 BCE"           → eruption year 6850 (era is not interpreted)
//	"Unknown", "?", "No data", ""  → no eruption date at all
//
// The first run of four ASCII digits is taken as the eruption year. Text with
// no such run yields no year, never an error. See [ExtractEruptionYear].
//
// Elevation is in meters and may be missing or non-numeric. Latitude and
// longitude are WGS-84 decimal degrees and may be missing. Missing numeric
// values are carried as nil, never as zero, because 0 m and 0° are real values.
//
// Tectonic setting is sometimes blank; a blank setting is nil and never
// matches a concrete setting in a filter.
//
// # Lifecycle
//
// A [Table] is built once per load by [NewTable] and is immutable afterwards.
// A reload builds a new Table and the holder swaps it in wholesale.
package domain
