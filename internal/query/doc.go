// Package query is the filter engine over a normalized volcano table.
//
// Every function is pure: it reads the rows it is given, never modifies them,
// and returns a new slice in input order. Filters compose by chaining, and the
// order of composition does not change the result set. Rows missing the field
// a filter depends on are excluded by that filter and kept by every other.
// An empty result is a normal outcome, not an error.
package query
