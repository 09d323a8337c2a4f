package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/runlog/internal/segment"
	"github.com/sadopc/runlog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDaily viewState = iota
	viewWeekly
	viewMonthly
	viewSettings
)

var viewNames = []string{"Daily", "Weekly", "Monthly", "Settings"}

const isoDate = "2006-01-02"

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type logSavedMsg struct {
	date string
}

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct {
	count int
}

// --- Helpers ---

func formatKm(km float64) string {
	return fmt.Sprintf("%.2fkm", km)
}

// formatWeightDelta renders the day-over-day weight change with an explicit
// sign. With no previous record the delta is treated as zero.
func formatWeightDelta(current int, prev *int) string {
	diff := 0
	if prev != nil {
		diff = current - *prev
	}
	switch {
	case diff > 0:
		return fmt.Sprintf("+%dkg", diff)
	case diff < 0:
		return fmt.Sprintf("-%dkg", -diff)
	default:
		return "0kg"
	}
}

// runningLines renders one display string per training segment, e.g.
// "Interval - 2.00km (04'30'')".
func runningLines(blob string) []string {
	lines, _ := segment.Aggregate(segment.Decode(blob))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Pace != "" {
			out = append(out, fmt.Sprintf("%s - %s (%s)", l.Kind.Label(), formatKm(l.DistanceKm), l.Pace))
		} else {
			out = append(out, fmt.Sprintf("%s - %s", l.Kind.Label(), formatKm(l.DistanceKm)))
		}
	}
	return out
}

func totalKm(blob string) float64 {
	_, total := segment.Aggregate(segment.Decode(blob))
	return total
}

// startOfWeek returns the first day of anchor's week per the week_start
// setting ("monday" or "sunday").
func startOfWeek(anchor time.Time, weekStart string) time.Time {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	wd := int(day.Weekday()) // Sunday = 0
	if weekStart == "sunday" {
		return day.AddDate(0, 0, -wd)
	}
	if wd == 0 {
		wd = 7
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// previousWeights looks up the prior-day weight for each record, keyed by
// date, for delta rendering.
func previousWeights(s *store.Store, logs []store.DailyLog) map[string]*int {
	prev := make(map[string]*int, len(logs))
	for _, l := range logs {
		w, err := s.GetPreviousWeight(l.Date)
		if err != nil {
			continue
		}
		prev[l.Date] = w
	}
	return prev
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
