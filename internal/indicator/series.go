// Package indicator provides stateless technical indicator calculations over
// closing-price series. Every derived series is returned as Points carrying
// the original bar index the value belongs to, so differently-lengthed
// series stay aligned without positional guesswork.
package indicator

// Point pairs a derived value with the original bar index it was computed at.
type Point struct {
	Index int
	Value float64
}

// Values extracts the bare values of a point series.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// At returns the point for the given original bar index, if present.
func At(points []Point, index int) (Point, bool) {
	for _, p := range points {
		if p.Index == index {
			return p, true
		}
	}
	return Point{}, false
}
