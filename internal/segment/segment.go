package segment

import "fmt"

// Kind tags one training segment. Unknown tags are carried through the codec
// untouched so hand-edited or future blobs still decode.
type Kind string

const (
	Jog          Kind = "jog"
	Tempo        Kind = "tempo"
	WindSprint   Kind = "wind_sprint"
	LSD          Kind = "lsd"
	Fartlek      Kind = "fartlek"
	Hill         Kind = "hill"
	Interval     Kind = "interval"
	TimeTrial    Kind = "time_trial"
	CrossCountry Kind = "cross_country"
)

var kinds = []Kind{Jog, Tempo, WindSprint, LSD, Fartlek, Hill, Interval, TimeTrial, CrossCountry}

var labels = map[Kind]string{
	Jog:          "Jog",
	Tempo:        "Tempo",
	WindSprint:   "Wind Sprint",
	LSD:          "LSD",
	Fartlek:      "Fartlek",
	Hill:         "Hill Training",
	Interval:     "Interval",
	TimeTrial:    "Time Trial",
	CrossCountry: "Cross Country",
}

// Kinds returns every known kind in menu order.
func Kinds() []Kind {
	return kinds
}

// IsIntervalLike reports whether the kind measures volume as
// distance-per-repeat rather than one continuous distance.
func (k Kind) IsIntervalLike() bool {
	return k == Hill || k == Interval
}

// Label returns the display name, or the raw tag for unknown kinds.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Segment is one unit of a day's running training. Interval-like kinds use
// DistanceM and Repeats; all other kinds use DistanceKm. Pace is optional and
// zero when unset.
type Segment struct {
	Kind       Kind
	DistanceKm float64
	DistanceM  float64
	Repeats    int
	PaceMin    int
	PaceSec    int
}

// Distance returns the segment's distance in kilometres.
func (s Segment) Distance() float64 {
	if s.Kind.IsIntervalLike() {
		return s.DistanceM * float64(s.Repeats) / 1000.0
	}
	return s.DistanceKm
}

// Pace formats the average pace as MM'SS'', or "" when no pace was recorded.
func (s Segment) Pace() string {
	if s.PaceMin == 0 && s.PaceSec == 0 {
		return ""
	}
	return fmt.Sprintf("%02d'%02d''", s.PaceMin, s.PaceSec)
}
