package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/runlog/internal/store"
)

type weeklyModel struct {
	store  *store.Store
	width  int
	height int

	anchor time.Time // any day inside the displayed week
	start  time.Time // resolved first day of the week
	logs   map[string]store.DailyLog
	prev   map[string]*int
	goalKm float64

	chart barchart.Model
}

func newWeeklyModel(s *store.Store) weeklyModel {
	return weeklyModel{
		store:  s,
		anchor: time.Now(),
		chart:  barchart.New(60, 10),
	}
}

func (m *weeklyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type weeklyDataMsg struct {
	start  time.Time
	logs   map[string]store.DailyLog
	prev   map[string]*int
	goalKm float64
}

func (m weeklyModel) refresh() tea.Cmd {
	anchor := m.anchor
	return func() tea.Msg {
		weekStart := "monday"
		if v, err := m.store.GetSetting("week_start"); err == nil {
			weekStart = v
		}
		goal := 0.0
		if v, err := m.store.GetSetting("weekly_goal_km"); err == nil {
			goal, _ = strconv.ParseFloat(v, 64)
		}

		start := startOfWeek(anchor, weekStart)
		end := start.AddDate(0, 0, 6)
		logs, err := m.store.GetLogRange(start.Format(isoDate), end.Format(isoDate))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}

		byDate := make(map[string]store.DailyLog, len(logs))
		for _, l := range logs {
			byDate[l.Date] = l
		}

		return weeklyDataMsg{
			start:  start,
			logs:   byDate,
			prev:   previousWeights(m.store, logs),
			goalKm: goal,
		}
	}
}

func (m weeklyModel) update(msg tea.Msg) (weeklyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weeklyDataMsg:
		m.start = msg.start
		m.logs = msg.logs
		m.prev = msg.prev
		m.goalKm = msg.goalKm
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.anchor = m.anchor.AddDate(0, 0, -7)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.anchor = m.anchor.AddDate(0, 0, 7)
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.anchor = time.Now()
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *weeklyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	m.chart = barchart.New(chartWidth, 10)

	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		day := m.start.AddDate(0, 0, i)
		km := 0.0
		if l, ok := m.logs[day.Format(isoDate)]; ok {
			km = totalKm(l.Running)
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if km == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label:  day.Format("Mon 02"),
			Values: []barchart.BarValue{{Name: "km", Value: km, Style: style}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m weeklyModel) weekTotal() float64 {
	var total float64
	for _, l := range m.logs {
		total += totalKm(l.Running)
	}
	return total
}

// The table mirrors the original diary sheet: one column per day, one row per
// field.
var weeklyRows = []string{
	"Running", "Strength", "Heart rate", "Weight", "Bedtime", "Wake time",
	"Sleep", "Bowel", "Breakfast", "Lunch", "Dinner", "Snack", "Comment",
}

func (m weeklyModel) rowValue(field string, l store.DailyLog) string {
	switch field {
	case "Running":
		km := totalKm(l.Running)
		if km == 0 {
			return ""
		}
		return formatKm(km)
	case "Strength":
		return strings.ReplaceAll(l.Strength, "\n", " ")
	case "Heart rate":
		if l.MorningHeartRate == 0 {
			return ""
		}
		return fmt.Sprintf("%d bpm", l.MorningHeartRate)
	case "Weight":
		if l.FastingWeight == 0 {
			return ""
		}
		return fmt.Sprintf("%dkg (%s)", l.FastingWeight, formatWeightDelta(l.FastingWeight, m.prev[l.Date]))
	case "Bedtime":
		return l.Bedtime
	case "Wake time":
		return l.WakeTime
	case "Sleep":
		if l.SleepHours == 0 {
			return ""
		}
		return fmt.Sprintf("%.2fh", l.SleepHours)
	case "Bowel":
		return string(l.Bowel)
	case "Breakfast":
		return l.MealBreakfast
	case "Lunch":
		return l.MealLunch
	case "Dinner":
		return l.MealDinner
	case "Snack":
		return l.MealSnack
	case "Comment":
		return strings.ReplaceAll(l.Comment, "\n", " ")
	}
	return ""
}

func (m weeklyModel) view() string {
	w := m.width - 4
	end := m.start.AddDate(0, 0, 6)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Week"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s — %s", m.start.Format("Jan 02"), end.Format("Jan 02, 2006"))),
	)

	total := m.weekTotal()
	totalLine := successStyle.Render(fmt.Sprintf("  total %s", formatKm(total)))
	if m.goalKm > 0 {
		pct := total / m.goalKm * 100
		goalStyle := warningStyle
		if total >= m.goalKm {
			goalStyle = successStyle
		}
		totalLine += goalStyle.Render(fmt.Sprintf("  goal %.0fkm (%.0f%%)", m.goalKm, pct))
	}

	table := m.renderTable(w)
	detail := m.renderDetail()
	nav := mutedStyle.Render("  ←/→: week  t: this week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), totalLine, "", table, "", detail, nav,
		),
	)
}

func (m weeklyModel) renderTable(w int) string {
	const labelW = 11
	colW := (w - labelW - 2) / 7
	if colW < 6 {
		colW = 6
	}

	var out []string

	// Day header
	cells := []string{fmt.Sprintf("%-*s", labelW, "")}
	for i := 0; i < 7; i++ {
		day := m.start.AddDate(0, 0, i)
		label := truncate(day.Format("Mon 02"), colW-1)
		cells = append(cells, fmt.Sprintf("%-*s", colW, label))
	}
	out = append(out, mutedStyle.Render(strings.Join(cells, "")))
	out = append(out, mutedStyle.Render(strings.Repeat("─", min(w-2, labelW+colW*7))))

	for _, field := range weeklyRows {
		cells := []string{mutedStyle.Render(fmt.Sprintf("%-*s", labelW, field))}
		empty := true
		for i := 0; i < 7; i++ {
			date := m.start.AddDate(0, 0, i).Format(isoDate)
			text := ""
			if l, ok := m.logs[date]; ok {
				text = m.rowValue(field, l)
			}
			if text != "" {
				empty = false
			}
			cells = append(cells, fmt.Sprintf("%-*s", colW, truncate(text, colW-1)))
		}
		if empty {
			continue
		}
		out = append(out, strings.Join(cells, ""))
	}

	return strings.Join(out, "\n")
}

// renderDetail lists every training segment of the week, one day per line.
func (m weeklyModel) renderDetail() string {
	var out []string
	for i := 0; i < 7; i++ {
		date := m.start.AddDate(0, 0, i).Format(isoDate)
		l, ok := m.logs[date]
		if !ok {
			continue
		}
		lines := runningLines(l.Running)
		if len(lines) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("  %s  %s", mutedStyle.Render(date), strings.Join(lines, ", ")))
	}
	if len(out) == 0 {
		return mutedStyle.Render("  No training this week")
	}
	return strings.Join(out, "\n")
}
