package segment

import "testing"

func TestAggregateEmpty(t *testing.T) {
	lines, total := Aggregate(nil)
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
	if total != 0 {
		t.Fatalf("empty total = %v, want 0", total)
	}
}

func TestAggregateTotalMatchesSum(t *testing.T) {
	segs := []Segment{
		{Kind: Jog, DistanceKm: 5.5},
		{Kind: Interval, DistanceM: 200, Repeats: 10},
		{Kind: Hill, DistanceM: 300, Repeats: 4},
		{Kind: Tempo, DistanceKm: 0},
	}

	lines, total := Aggregate(segs)
	if len(lines) != len(segs) {
		t.Fatalf("got %d lines, want %d", len(lines), len(segs))
	}

	var sum float64
	for i, s := range segs {
		d := s.Distance()
		sum += d
		if !almostEqual(lines[i].DistanceKm, d) {
			t.Errorf("line %d distance = %v, want %v", i, lines[i].DistanceKm, d)
		}
		if lines[i].Kind != s.Kind {
			t.Errorf("line %d kind = %s, want %s", i, lines[i].Kind, s.Kind)
		}
	}
	if !almostEqual(total, sum) {
		t.Fatalf("total = %v, want %v", total, sum)
	}
	if !almostEqual(total, 9.0) {
		t.Fatalf("total = %v, want 9", total)
	}
}

func TestAggregatePaceStrings(t *testing.T) {
	segs := []Segment{
		{Kind: Jog, DistanceKm: 5, PaceMin: 4, PaceSec: 5},
		{Kind: Jog, DistanceKm: 5},
	}
	lines, _ := Aggregate(segs)
	if lines[0].Pace != "04'05''" {
		t.Fatalf("pace = %q, want 04'05''", lines[0].Pace)
	}
	if lines[1].Pace != "" {
		t.Fatalf("unset pace = %q, want empty", lines[1].Pace)
	}
}

func TestAggregateFromDecodedBlob(t *testing.T) {
	blob := Encode([]Segment{
		{Kind: Interval, DistanceM: 400, Repeats: 5},
		{Kind: Jog, DistanceKm: 3},
	})
	lines, total := Aggregate(Decode(blob))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !almostEqual(total, 5.0) {
		t.Fatalf("total = %v, want 5", total)
	}
}
