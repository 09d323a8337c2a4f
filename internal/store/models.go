package store

import (
	"strconv"
	"strings"
)

// Bowel is the daily bowel-movement flag. The stored letters match the
// original paper-diary convention.
type Bowel string

const (
	BowelYes   Bowel = "O"
	BowelNo    Bowel = "X"
	BowelUnset Bowel = ""
)

// DailyLog is one diary row, keyed uniquely by Date (YYYY-MM-DD). Running
// holds the encoded training-segment blob (see internal/segment). SleepHours
// is computed from Bedtime/WakeTime at save time and persisted as-is; it is
// never recomputed on read, so editing the times without resaving leaves it
// stale.
type DailyLog struct {
	Date             string
	Running          string
	Strength         string
	MorningHeartRate int
	FastingWeight    int
	Bedtime          string // HH:MM
	WakeTime         string // HH:MM
	SleepHours       float64
	Bowel            Bowel
	MealBreakfast    string
	MealLunch        string
	MealDinner       string
	MealSnack        string
	Comment          string
}

type Setting struct {
	Key   string
	Value string
}

// SleepHoursBetween returns the elapsed hours from bedtime to wake, wrapping
// past midnight when the wake time is earlier than the bedtime. Unparseable
// times count as 00:00.
func SleepHoursBetween(bedtime, wake string) float64 {
	b := minutesOfDay(bedtime)
	w := minutesOfDay(wake)
	d := w - b
	if d < 0 {
		d += 24 * 60
	}
	return float64(d) / 60.0
}

func minutesOfDay(hhmm string) int {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0
	}
	hour, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0
	}
	minute, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0
	}
	return hour*60 + minute
}
