package store

import (
	"math"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLog(date string) DailyLog {
	return DailyLog{
		Date:             date,
		Running:          `[{"kind":"jog","distance_km":5.5,"pace_min":5,"pace_sec":30}]`,
		Strength:         "push-ups 3x20",
		MorningHeartRate: 52,
		FastingWeight:    70,
		Bedtime:          "23:30",
		WakeTime:         "06:30",
		SleepHours:       7,
		Bowel:            BowelYes,
		MealBreakfast:    "oatmeal",
		MealLunch:        "rice and chicken",
		MealDinner:       "pasta",
		MealSnack:        "banana",
		Comment:          "easy day",
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/runlog.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Upsert / GetLog
// ============================================================

func TestUpsertAndGetLog(t *testing.T) {
	s := newTestStore(t)
	in := sampleLog("2026-03-01")
	if err := s.UpsertLog(in); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetLog("2026-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if *got != in {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", *got, in)
	}
}

func TestUpsertBlankFields(t *testing.T) {
	s := newTestStore(t)
	in := DailyLog{Date: "2026-03-02", Running: "[]"}
	if err := s.UpsertLog(in); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetLog("2026-03-02")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != in {
		t.Fatalf("blank-field round trip mismatch: %+v", got)
	}
}

func TestUpsertReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpsertLog(sampleLog("2026-03-03")); err != nil {
		t.Fatal(err)
	}

	// A save with blank fields overwrites the earlier values.
	replacement := DailyLog{Date: "2026-03-03", Running: "[]", FastingWeight: 69}
	if err := s.UpsertLog(replacement); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetLog("2026-03-03")
	if err != nil {
		t.Fatal(err)
	}
	if got.Strength != "" || got.MealLunch != "" || got.MorningHeartRate != 0 {
		t.Fatalf("upsert merged instead of replacing: %+v", got)
	}
	if got.FastingWeight != 69 {
		t.Fatalf("weight = %d, want 69", got.FastingWeight)
	}

	// Still exactly one row for the date.
	all, err := s.GetAllLogs()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
}

func TestGetLogMissing(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetLog("1999-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("missing date should be nil, got %+v", got)
	}
}

// ============================================================
// Ranges
// ============================================================

func TestGetLogRangeSparse(t *testing.T) {
	s := newTestStore(t)
	// 3 populated days inside a 7-day window, inserted out of order.
	for _, d := range []string{"2026-03-12", "2026-03-09", "2026-03-10"} {
		if err := s.UpsertLog(DailyLog{Date: d, Running: "[]"}); err != nil {
			t.Fatal(err)
		}
	}
	// Outside the window.
	if err := s.UpsertLog(DailyLog{Date: "2026-03-16", Running: "[]"}); err != nil {
		t.Fatal(err)
	}

	logs, err := s.GetLogRange("2026-03-09", "2026-03-15")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-03-09", "2026-03-10", "2026-03-12"}
	if len(logs) != len(want) {
		t.Fatalf("got %d records, want %d", len(logs), len(want))
	}
	for i, d := range want {
		if logs[i].Date != d {
			t.Errorf("record %d date = %s, want %s", i, logs[i].Date, d)
		}
	}
}

func TestGetLogRangeInclusive(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"2026-04-01", "2026-04-30"} {
		if err := s.UpsertLog(DailyLog{Date: d, Running: "[]"}); err != nil {
			t.Fatal(err)
		}
	}
	logs, err := s.GetLogRange("2026-04-01", "2026-04-30")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("range should include both endpoints, got %d records", len(logs))
	}
}

func TestGetAllLogsAscending(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"2026-02-01", "2025-12-31", "2026-01-15"} {
		if err := s.UpsertLog(DailyLog{Date: d, Running: "[]"}); err != nil {
			t.Fatal(err)
		}
	}
	logs, err := s.GetAllLogs()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2025-12-31", "2026-01-15", "2026-02-01"}
	for i, d := range want {
		if logs[i].Date != d {
			t.Fatalf("record %d date = %s, want %s", i, logs[i].Date, d)
		}
	}
}

// ============================================================
// Previous weight
// ============================================================

func TestGetPreviousWeight(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpsertLog(DailyLog{Date: "2026-03-09", Running: "[]", FastingWeight: 70}); err != nil {
		t.Fatal(err)
	}

	w, err := s.GetPreviousWeight("2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if w == nil || *w != 70 {
		t.Fatalf("previous weight = %v, want 70", w)
	}
}

func TestGetPreviousWeightAbsent(t *testing.T) {
	s := newTestStore(t)
	w, err := s.GetPreviousWeight("2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if w != nil {
		t.Fatalf("expected nil for missing prior day, got %d", *w)
	}
}

func TestGetPreviousWeightZeroIsAValue(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpsertLog(DailyLog{Date: "2026-03-09", Running: "[]", FastingWeight: 0}); err != nil {
		t.Fatal(err)
	}
	w, err := s.GetPreviousWeight("2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if w == nil || *w != 0 {
		t.Fatalf("stored zero weight should be returned, got %v", w)
	}
}

func TestGetPreviousWeightBadDate(t *testing.T) {
	s := newTestStore(t)
	w, err := s.GetPreviousWeight("not-a-date")
	if err != nil {
		t.Fatal(err)
	}
	if w != nil {
		t.Fatalf("bad date should yield nil, got %d", *w)
	}
}

// ============================================================
// Sleep hours
// ============================================================

func TestSleepHoursBetween(t *testing.T) {
	tests := []struct {
		bed, wake string
		want      float64
	}{
		{"23:00", "06:30", 7.5},
		{"22:00", "06:00", 8},
		{"01:15", "08:15", 7},
		{"06:30", "06:30", 0},
		{"06:30", "06:00", 23.5}, // wake before bed wraps past midnight
		{"", "", 0},
		{"junk", "07:00", 7},
		{"23:xx", "07:00", 7}, // bad minutes count as 00:00
	}
	for _, tt := range tests {
		got := SleepHoursBetween(tt.bed, tt.wake)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SleepHoursBetween(%q, %q) = %v, want %v", tt.bed, tt.wake, got, tt.want)
		}
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsSeeded(t *testing.T) {
	s := newTestStore(t)
	ws, err := s.GetSetting("week_start")
	if err != nil {
		t.Fatal(err)
	}
	if ws != "monday" {
		t.Fatalf("week_start = %q, want monday", ws)
	}
	if _, err := s.GetSetting("weekly_goal_km"); err != nil {
		t.Fatalf("weekly_goal_km not seeded: %v", err)
	}
}

func TestSetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("week_start", "sunday"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting("week_start")
	if err != nil {
		t.Fatal(err)
	}
	if v != "sunday" {
		t.Fatalf("week_start = %q, want sunday", v)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 2 {
		t.Fatalf("expected seeded settings, got %d", len(settings))
	}
}
