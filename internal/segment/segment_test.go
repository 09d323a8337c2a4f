package segment

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ============================================================
// Distance
// ============================================================

func TestIntervalLikeDistance(t *testing.T) {
	s := Segment{Kind: Interval, DistanceM: 200, Repeats: 10}
	if got := s.Distance(); !almostEqual(got, 2.0) {
		t.Fatalf("200m x 10 = %v km, want 2", got)
	}

	s = Segment{Kind: Hill, DistanceM: 400, Repeats: 5}
	if got := s.Distance(); !almostEqual(got, 2.0) {
		t.Fatalf("400m x 5 = %v km, want 2", got)
	}
}

func TestContinuousDistance(t *testing.T) {
	s := Segment{Kind: Jog, DistanceKm: 5.5}
	if got := s.Distance(); !almostEqual(got, 5.5) {
		t.Fatalf("distance = %v, want 5.5", got)
	}
}

func TestZeroDistance(t *testing.T) {
	if got := (Segment{Kind: Interval}).Distance(); got != 0 {
		t.Fatalf("empty interval distance = %v, want 0", got)
	}
	if got := (Segment{Kind: LSD}).Distance(); got != 0 {
		t.Fatalf("empty continuous distance = %v, want 0", got)
	}
}

func TestUnknownKindDistanceIsContinuous(t *testing.T) {
	s := Segment{Kind: Kind("trail"), DistanceKm: 8}
	if got := s.Distance(); !almostEqual(got, 8) {
		t.Fatalf("unknown kind distance = %v, want 8", got)
	}
}

// ============================================================
// Pace
// ============================================================

func TestPaceFormatting(t *testing.T) {
	tests := []struct {
		min, sec int
		want     string
	}{
		{0, 0, ""},
		{4, 5, "04'05''"},
		{0, 45, "00'45''"},
		{12, 0, "12'00''"},
	}
	for _, tt := range tests {
		s := Segment{Kind: Jog, PaceMin: tt.min, PaceSec: tt.sec}
		if got := s.Pace(); got != tt.want {
			t.Errorf("pace %d:%d = %q, want %q", tt.min, tt.sec, got, tt.want)
		}
	}
}

// ============================================================
// Kind
// ============================================================

func TestIsIntervalLike(t *testing.T) {
	for _, k := range Kinds() {
		want := k == Hill || k == Interval
		if got := k.IsIntervalLike(); got != want {
			t.Errorf("%s.IsIntervalLike() = %v, want %v", k, got, want)
		}
	}
}

func TestKindLabel(t *testing.T) {
	if got := Hill.Label(); got != "Hill Training" {
		t.Fatalf("Hill label = %q", got)
	}
	if got := Kind("trail").Label(); got != "trail" {
		t.Fatalf("unknown label = %q, want raw tag", got)
	}
}

func TestKindsCoversAll(t *testing.T) {
	if len(Kinds()) != 9 {
		t.Fatalf("expected 9 kinds, got %d", len(Kinds()))
	}
}
