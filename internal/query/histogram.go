package query

import (
	"math"

	"github.com/couchcryptid/volcano-explorer/internal/domain"
)

// Bin is one equal-width histogram bucket. Buckets are half-open [Lower, Upper)
// except the last, which also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ElevationHistogram buckets the non-nil elevations into bins equal-width
// buckets spanning their minimum and maximum. When every elevation is the
// same value v the span is [v-0.5, v+0.5]. No elevations, or bins < 1,
// yields no buckets.
func ElevationHistogram(rows []domain.Volcano, bins int) []Bin {
	if bins < 1 {
		return []Bin{}
	}

	values := make([]float64, 0, len(rows))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range rows {
		if v.Elevation == nil {
			continue
		}
		e := *v.Elevation
		values = append(values, e)
		lo = math.Min(lo, e)
		hi = math.Max(hi, e)
	}
	if len(values) == 0 {
		return []Bin{}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = interpolate(lo, hi, float64(i)/float64(bins))
		out[i].Upper = interpolate(lo, hi, float64(i+1)/float64(bins))
	}
	out[bins-1].Upper = hi

	for _, e := range values {
		out[binIndex(e, lo, hi, bins)].Count++
	}
	return out
}

// interpolate returns the point t of the way from lo to hi. Spans wider than
// the float64 range are interpolated from both ends so the edge stays finite.
func interpolate(lo, hi, t float64) float64 {
	if span := hi - lo; !math.IsInf(span, 0) {
		return lo + span*t
	}
	return lo*(1-t) + hi*t
}

// binIndex places e in [0, bins). The top value lands in the last bin.
func binIndex(e, lo, hi float64, bins int) int {
	scale := 1.0
	if math.IsInf(hi-lo, 0) {
		scale = 0.5
	}
	pos := (e*scale - lo*scale) / (hi*scale - lo*scale) * float64(bins)
	switch {
	case math.IsNaN(pos) || pos < 0:
		return 0
	case pos >= float64(bins):
		return bins - 1
	default:
		return int(pos)
	}
}
