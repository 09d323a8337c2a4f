// Package export writes and reads training-diary backups. All formats share
// one fixed column order so a backup survives a round trip through any of
// them.
package export

import (
	"strconv"
	"strings"

	"github.com/sadopc/runlog/internal/store"
)

// Backup column order. Import relies on these positions.
var backupHeader = []string{
	"Date", "Running (JSON)", "Strength", "Morning HR", "Fasting Weight",
	"Bedtime", "Wake Time", "Sleep Hours", "Bowel",
	"Breakfast", "Lunch", "Dinner", "Snack", "Comment",
}

func logToRow(l store.DailyLog) []any {
	return []any{
		l.Date, l.Running, l.Strength, l.MorningHeartRate, l.FastingWeight,
		l.Bedtime, l.WakeTime, l.SleepHours, string(l.Bowel),
		l.MealBreakfast, l.MealLunch, l.MealDinner, l.MealSnack, l.Comment,
	}
}

// rowToLog rebuilds a record from one backup row. Short rows are tolerated:
// missing text cells default to "" and missing or unparseable numeric cells
// default to 0.
func rowToLog(row []string) store.DailyLog {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	intCell := func(i int) int {
		n, err := strconv.Atoi(cell(i))
		if err != nil {
			return 0
		}
		return n
	}
	floatCell := func(i int) float64 {
		f, err := strconv.ParseFloat(cell(i), 64)
		if err != nil {
			return 0
		}
		return f
	}

	return store.DailyLog{
		Date:             cell(0),
		Running:          cell(1),
		Strength:         cell(2),
		MorningHeartRate: intCell(3),
		FastingWeight:    intCell(4),
		Bedtime:          cell(5),
		WakeTime:         cell(6),
		SleepHours:       floatCell(7),
		Bowel:            store.Bowel(cell(8)),
		MealBreakfast:    cell(9),
		MealLunch:        cell(10),
		MealDinner:       cell(11),
		MealSnack:        cell(12),
		Comment:          cell(13),
	}
}
