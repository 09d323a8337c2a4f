package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/runlog/internal/store"
)

type monthlyModel struct {
	store  *store.Store
	width  int
	height int

	anchor    time.Time // any day inside the displayed month
	weekStart string
	logs      map[string]store.DailyLog
	prev      map[string]*int
}

func newMonthlyModel(s *store.Store) monthlyModel {
	return monthlyModel{
		store:     s,
		anchor:    time.Now(),
		weekStart: "monday",
	}
}

func (m *monthlyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type monthlyDataMsg struct {
	weekStart string
	logs      map[string]store.DailyLog
	prev      map[string]*int
}

func (m monthlyModel) refresh() tea.Cmd {
	anchor := m.anchor
	return func() tea.Msg {
		weekStart := "monday"
		if v, err := m.store.GetSetting("week_start"); err == nil {
			weekStart = v
		}

		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		logs, err := m.store.GetLogRange(first.Format(isoDate), last.Format(isoDate))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}

		byDate := make(map[string]store.DailyLog, len(logs))
		for _, l := range logs {
			byDate[l.Date] = l
		}

		return monthlyDataMsg{
			weekStart: weekStart,
			logs:      byDate,
			prev:      previousWeights(m.store, logs),
		}
	}
}

func (m monthlyModel) update(msg tea.Msg) (monthlyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case monthlyDataMsg:
		m.weekStart = msg.weekStart
		m.logs = msg.logs
		m.prev = msg.prev
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.anchor = m.anchor.AddDate(0, -1, 0)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.anchor = m.anchor.AddDate(0, 1, 0)
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.anchor = time.Now()
			return m, m.refresh()
		}
	}
	return m, nil
}

// monthGrid lays the month's days out in week rows, padded with zero times
// for cells outside the month.
func monthGrid(anchor time.Time, weekStart string) [][]time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	var grid [][]time.Time
	week := make([]time.Time, 7)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		col := columnOf(d.Weekday(), weekStart)
		week[col] = d
		if col == 6 {
			grid = append(grid, week)
			week = make([]time.Time, 7)
		}
	}
	if anyNonZero(week) {
		grid = append(grid, week)
	}
	return grid
}

func columnOf(wd time.Weekday, weekStart string) int {
	if weekStart == "sunday" {
		return int(wd)
	}
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

func anyNonZero(week []time.Time) bool {
	for _, d := range week {
		if !d.IsZero() {
			return true
		}
	}
	return false
}

func (m monthlyModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Month"), "  ",
		mutedStyle.Render(m.anchor.Format("January 2006")),
	)

	cellW := (w - 2) / 7
	if cellW < 10 {
		cellW = 10
	}

	grid := monthGrid(m.anchor, m.weekStart)
	today := time.Now().Format(isoDate)

	// Weekday header row
	var headCells []string
	for col := 0; col < 7; col++ {
		wd := weekdayAt(col, m.weekStart)
		style := mutedStyle
		switch wd {
		case time.Sunday:
			style = sundayStyle
		case time.Saturday:
			style = saturdayStyle
		}
		headCells = append(headCells, style.Render(pad(wd.String()[:3], cellW)))
	}
	rows := []string{header, "", lipgloss.JoinHorizontal(lipgloss.Top, headCells...)}

	for _, week := range grid {
		var cells []string
		for _, day := range week {
			cells = append(cells, m.renderCell(day, cellW, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "", mutedStyle.Render("  ←/→: month  t: this month"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func weekdayAt(col int, weekStart string) time.Weekday {
	if weekStart == "sunday" {
		return time.Weekday(col)
	}
	return time.Weekday((col + 1) % 7)
}

// renderCell draws one calendar day: the day number on top (red Sundays,
// blue Saturdays), then total distance, weight with delta, and sleep hours.
func (m monthlyModel) renderCell(day time.Time, cellW int, today string) string {
	inner := cellW - 2
	if day.IsZero() {
		return calendarCellStyle.Render(strings.Repeat(" ", inner) + "\n" + strings.Repeat(" ", inner) + "\n" + strings.Repeat(" ", inner) + "\n" + strings.Repeat(" ", inner))
	}

	date := day.Format(isoDate)
	numStyle := dayNumberStyle
	switch day.Weekday() {
	case time.Sunday:
		numStyle = sundayStyle
	case time.Saturday:
		numStyle = saturdayStyle
	}

	lines := []string{numStyle.Render(pad(day.Format("2"), inner))}

	info := make([]string, 0, 3)
	if l, ok := m.logs[date]; ok {
		if km := totalKm(l.Running); km > 0 {
			info = append(info, formatKm(km))
		}
		if l.FastingWeight > 0 {
			info = append(info, fmt.Sprintf("%dkg (%s)", l.FastingWeight, formatWeightDelta(l.FastingWeight, m.prev[date])))
		}
		if l.SleepHours > 0 {
			info = append(info, fmt.Sprintf("%.2fh", l.SleepHours))
		}
	}
	for len(info) < 3 {
		info = append(info, "")
	}
	for _, t := range info {
		lines = append(lines, normalItemStyle.Render(padRight(truncate(t, inner), inner)))
	}

	style := calendarCellStyle
	if date == today {
		style = todayCellStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}

func padRight(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(r))
}
