package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sadopc/runlog/internal/segment"
	"github.com/sadopc/runlog/internal/store"
)

func sampleLogs() []store.DailyLog {
	running := segment.Encode([]segment.Segment{
		{Kind: segment.Jog, DistanceKm: 5.5, PaceMin: 5, PaceSec: 30},
		{Kind: segment.Interval, DistanceM: 200, Repeats: 10},
	})
	return []store.DailyLog{
		{
			Date:             "2026-03-09",
			Running:          running,
			Strength:         "core circuit",
			MorningHeartRate: 52,
			FastingWeight:    70,
			Bedtime:          "23:30",
			WakeTime:         "06:30",
			SleepHours:       7,
			Bowel:            store.BowelYes,
			MealBreakfast:    "oatmeal",
			MealLunch:        "rice",
			MealDinner:       "pasta",
			MealSnack:        "banana",
			Comment:          "felt strong",
		},
		{
			Date:    "2026-03-10",
			Running: "[]",
		},
	}
}

// ============================================================
// XLSX
// ============================================================

func TestXLSXRoundTrip(t *testing.T) {
	logs := sampleLogs()
	path := filepath.Join(t.TempDir(), "backup.xlsx")

	if err := ToXLSX(logs, path); err != nil {
		t.Fatalf("ToXLSX: %v", err)
	}

	got, err := FromXLSX(path)
	if err != nil {
		t.Fatalf("FromXLSX: %v", err)
	}
	if len(got) != len(logs) {
		t.Fatalf("got %d records, want %d", len(got), len(logs))
	}
	for i := range logs {
		if got[i] != logs[i] {
			t.Errorf("record %d mismatch:\n got  %+v\n want %+v", i, got[i], logs[i])
		}
	}

	// The blob survives with decoded values intact.
	segs := segment.Decode(got[0].Running)
	if len(segs) != 2 || segs[0].DistanceKm != 5.5 || segs[1].Repeats != 10 {
		t.Fatalf("blob did not survive round trip: %+v", segs)
	}
}

func TestXLSXHeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.xlsx")
	if err := ToXLSX(nil, path); err != nil {
		t.Fatalf("ToXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(backupSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty backup should have only the header row, got %d rows", len(rows))
	}
	for i, h := range backupHeader {
		if rows[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
}

func TestFromXLSXShortRows(t *testing.T) {
	// A hand-trimmed backup: only date and running cells present.
	path := filepath.Join(t.TempDir(), "short.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "A2", "2026-03-09")
	f.SetCellValue(sheet, "B2", "[]")
	f.SetCellValue(sheet, "A3", "") // blank date row is skipped
	f.SetCellValue(sheet, "C3", "stray")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := FromXLSX(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	l := got[0]
	if l.Date != "2026-03-09" || l.Running != "[]" {
		t.Fatalf("unexpected record: %+v", l)
	}
	if l.MorningHeartRate != 0 || l.FastingWeight != 0 || l.SleepHours != 0 {
		t.Fatalf("missing numeric cells should default to 0: %+v", l)
	}
	if l.Strength != "" || l.Comment != "" {
		t.Fatalf("missing text cells should default to empty: %+v", l)
	}
}

func TestFromXLSXMissingFile(t *testing.T) {
	_, err := FromXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	logs := sampleLogs()
	path := filepath.Join(t.TempDir(), "backup.csv")

	if err := ToCSV(logs, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	for i, h := range backupHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}
	if records[1][0] != "2026-03-09" || records[1][4] != "70" {
		t.Fatalf("unexpected first data row: %v", records[1])
	}
	if records[1][7] != "7.00" {
		t.Fatalf("sleep hours cell = %q, want 7.00", records[1][7])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	logs := sampleLogs()
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := ToJSON(logs, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 2 || len(out.Logs) != 2 {
		t.Fatalf("count = %d, logs = %d, want 2/2", out.Count, len(out.Logs))
	}
	if out.Logs[0].Date != "2026-03-09" || out.Logs[0].FastingWeight != 70 {
		t.Fatalf("unexpected first record: %+v", out.Logs[0])
	}
}

// ============================================================
// Row conversion
// ============================================================

func TestRowToLogDefaults(t *testing.T) {
	l := rowToLog([]string{"2026-03-09", "[]", "", "abc", "", "23:00", "06:00", "x"})
	if l.MorningHeartRate != 0 || l.FastingWeight != 0 || l.SleepHours != 0 {
		t.Fatalf("unparseable numerics should default to 0: %+v", l)
	}
	if l.Bedtime != "23:00" || l.WakeTime != "06:00" {
		t.Fatalf("text cells lost: %+v", l)
	}
}
