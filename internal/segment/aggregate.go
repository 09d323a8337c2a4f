package segment

// Line is one display row derived from a segment.
type Line struct {
	Kind       Kind
	DistanceKm float64
	Pace       string
}

// Aggregate reduces a decoded segment list to its per-segment display lines
// (in original order) and the total distance in kilometres. The same pair
// feeds the daily, weekly and monthly renderings.
func Aggregate(segs []Segment) ([]Line, float64) {
	lines := make([]Line, 0, len(segs))
	var total float64
	for _, s := range segs {
		km := s.Distance()
		lines = append(lines, Line{Kind: s.Kind, DistanceKm: km, Pace: s.Pace()})
		total += km
	}
	return lines, total
}
