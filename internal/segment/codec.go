package segment

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Wire form of one segment. Distance fields are pointers so each variant
// serializes only its own field set.
type wireSegment struct {
	Kind       string   `json:"kind"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	DistanceM  *float64 `json:"distance_m,omitempty"`
	Repeats    *int     `json:"repeat_count,omitempty"`
	PaceMin    int      `json:"pace_min"`
	PaceSec    int      `json:"pace_sec"`
}

// Encode serializes segments to the stored blob. The empty list encodes as
// "[]". Output order matches input order.
func Encode(segs []Segment) string {
	wire := make([]wireSegment, 0, len(segs))
	for _, s := range segs {
		w := wireSegment{
			Kind:    string(s.Kind),
			PaceMin: s.PaceMin,
			PaceSec: s.PaceSec,
		}
		if s.Kind.IsIntervalLike() {
			m, n := s.DistanceM, s.Repeats
			w.DistanceM, w.Repeats = &m, &n
		} else {
			km := s.DistanceKm
			w.DistanceKm = &km
		}
		wire = append(wire, w)
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Decode parses a stored blob. It is total: a malformed, empty or absent blob
// yields no segments, and any unparseable field defaults to zero. Field
// values may be JSON numbers or strings; both are accepted.
func Decode(blob string) []Segment {
	var raw []map[string]any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil
	}
	segs := make([]Segment, 0, len(raw))
	for _, item := range raw {
		s := Segment{Kind: Kind(asString(item["kind"]))}
		if s.Kind.IsIntervalLike() {
			s.DistanceM = asFloat(item["distance_m"])
			s.Repeats = asInt(item["repeat_count"])
		} else {
			s.DistanceKm = asFloat(item["distance_km"])
		}
		s.PaceMin = asInt(item["pace_min"])
		s.PaceSec = asInt(item["pace_sec"])
		segs = append(segs, s)
	}
	return segs
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
