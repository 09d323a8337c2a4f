package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/runlog/internal/segment"
	"github.com/sadopc/runlog/internal/store"
)

type dailyModel struct {
	store  *store.Store
	width  int
	height int

	anchor     time.Time // the day being edited
	log        store.DailyLog
	segs       []segment.Segment
	prevWeight *int
	cursor     int // segment cursor
	dirty      bool

	formActive bool
	form       *huh.Form
	formType   string // "fields", "segment"
	editingSeg int    // segment index being edited, -1 for new

	// Form field pointers (survive value copies)
	segKind    *string
	segKm      *string
	segMeters  *string
	segRepeats *string
	segPaceMin *string
	segPaceSec *string

	fStrength  *string
	fHeartRate *string
	fWeight    *string
	fBedtime   *string
	fWakeTime  *string
	fBowel     *string
	fBreakfast *string
	fLunch     *string
	fDinner    *string
	fSnack     *string
	fComment   *string
}

func newDailyModel(s *store.Store) dailyModel {
	d := dailyModel{
		store:      s,
		anchor:     time.Now(),
		editingSeg: -1,
	}
	for _, p := range []**string{
		&d.segKind, &d.segKm, &d.segMeters, &d.segRepeats, &d.segPaceMin, &d.segPaceSec,
		&d.fStrength, &d.fHeartRate, &d.fWeight, &d.fBedtime, &d.fWakeTime, &d.fBowel,
		&d.fBreakfast, &d.fLunch, &d.fDinner, &d.fSnack, &d.fComment,
	} {
		v := ""
		*p = &v
	}
	return d
}

func (d dailyModel) Init() tea.Cmd {
	return d.refresh()
}

func (d *dailyModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dailyModel) date() string {
	return d.anchor.Format(isoDate)
}

type dailyDataMsg struct {
	date       string
	log        *store.DailyLog
	prevWeight *int
}

func (d dailyModel) refresh() tea.Cmd {
	date := d.date()
	return func() tea.Msg {
		l, err := d.store.GetLog(date)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		prev, err := d.store.GetPreviousWeight(date)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return dailyDataMsg{date: date, log: l, prevWeight: prev}
	}
}

func (d dailyModel) update(msg tea.Msg) (dailyModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dailyDataMsg:
		if msg.date != d.date() {
			return d, nil
		}
		if msg.log != nil {
			d.log = *msg.log
		} else {
			d.log = store.DailyLog{Date: msg.date}
		}
		d.segs = segment.Decode(d.log.Running)
		d.prevWeight = msg.prevWeight
		d.cursor = 0
		d.dirty = false
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.segs)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Left):
			d.anchor = d.anchor.AddDate(0, 0, -1)
			return d, d.refresh()
		case key.Matches(msg, keys.Right):
			d.anchor = d.anchor.AddDate(0, 0, 1)
			return d, d.refresh()
		case key.Matches(msg, keys.Today):
			d.anchor = time.Now()
			return d, d.refresh()
		case key.Matches(msg, keys.New):
			return d.showSegmentForm(-1)
		case key.Matches(msg, keys.Enter):
			if len(d.segs) > 0 {
				return d.showSegmentForm(d.cursor)
			}
		case key.Matches(msg, keys.Delete):
			if len(d.segs) > 0 {
				d.segs = append(d.segs[:d.cursor], d.segs[d.cursor+1:]...)
				if d.cursor >= len(d.segs) && d.cursor > 0 {
					d.cursor--
				}
				d.dirty = true
			}
		case key.Matches(msg, keys.Edit):
			return d.showFieldsForm()
		case key.Matches(msg, keys.Save):
			return d, d.save()
		}
	}
	return d, nil
}

// save encodes the working segments, recomputes the sleep hours from the
// current bedtime/wake time, and upserts the whole record for the day.
func (d dailyModel) save() tea.Cmd {
	l := d.log
	l.Date = d.date()
	l.Running = segment.Encode(d.segs)
	l.SleepHours = store.SleepHoursBetween(l.Bedtime, l.WakeTime)
	return func() tea.Msg {
		if err := d.store.UpsertLog(l); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return logSavedMsg{date: l.Date}
	}
}

func (d dailyModel) showSegmentForm(idx int) (dailyModel, tea.Cmd) {
	seg := segment.Segment{Kind: segment.Jog}
	if idx >= 0 {
		seg = d.segs[idx]
	}
	d.editingSeg = idx
	*d.segKind = string(seg.Kind)
	*d.segKm = ""
	*d.segMeters = ""
	*d.segRepeats = ""
	*d.segPaceMin = ""
	*d.segPaceSec = ""
	if idx >= 0 {
		if seg.Kind.IsIntervalLike() {
			*d.segMeters = strconv.FormatFloat(seg.DistanceM, 'f', -1, 64)
			*d.segRepeats = strconv.Itoa(seg.Repeats)
		} else {
			*d.segKm = strconv.FormatFloat(seg.DistanceKm, 'f', -1, 64)
		}
		if seg.PaceMin != 0 || seg.PaceSec != 0 {
			*d.segPaceMin = strconv.Itoa(seg.PaceMin)
			*d.segPaceSec = strconv.Itoa(seg.PaceSec)
		}
	}

	kindOptions := make([]huh.Option[string], 0, len(segment.Kinds()))
	for _, k := range segment.Kinds() {
		kindOptions = append(kindOptions, huh.NewOption(k.Label(), string(k)))
	}

	intervalLike := func() bool {
		return segment.Kind(*d.segKind).IsIntervalLike()
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Training type").
				Options(kindOptions...).Value(d.segKind),
		),
		// The field set follows the selected type: repeated short distances
		// for interval-like training, one continuous distance otherwise.
		huh.NewGroup(
			huh.NewInput().Title("Distance (m)").Value(d.segMeters),
			huh.NewInput().Title("Repeats").Value(d.segRepeats),
		).WithHideFunc(func() bool { return !intervalLike() }),
		huh.NewGroup(
			huh.NewInput().Title("Distance (km)").Value(d.segKm),
		).WithHideFunc(intervalLike),
		huh.NewGroup(
			huh.NewInput().Title("Avg pace minutes").Value(d.segPaceMin),
			huh.NewInput().Title("Avg pace seconds").Value(d.segPaceSec),
		).Title("Pace (optional)"),
	).WithShowHelp(true).WithShowErrors(true)

	d.formType = "segment"
	d.formActive = true
	return d, d.form.Init()
}

func (d dailyModel) showFieldsForm() (dailyModel, tea.Cmd) {
	*d.fStrength = d.log.Strength
	*d.fHeartRate = blankIfZero(d.log.MorningHeartRate)
	*d.fWeight = blankIfZero(d.log.FastingWeight)
	*d.fBedtime = d.log.Bedtime
	*d.fWakeTime = d.log.WakeTime
	*d.fBowel = string(d.log.Bowel)
	*d.fBreakfast = d.log.MealBreakfast
	*d.fLunch = d.log.MealLunch
	*d.fDinner = d.log.MealDinner
	*d.fSnack = d.log.MealSnack
	*d.fComment = d.log.Comment

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Strength training").Value(d.fStrength),
		).Title("Training"),
		huh.NewGroup(
			huh.NewInput().Title("Morning heart rate (bpm)").Value(d.fHeartRate),
			huh.NewInput().Title("Fasting weight (kg)").Value(d.fWeight),
			huh.NewSelect[string]().Title("Bowel movement").
				Options(
					huh.NewOption("—", ""),
					huh.NewOption("O", string(store.BowelYes)),
					huh.NewOption("X", string(store.BowelNo)),
				).Value(d.fBowel),
		).Title("Vitals"),
		huh.NewGroup(
			huh.NewInput().Title("Bedtime last night (HH:MM)").Value(d.fBedtime),
			huh.NewInput().Title("Wake time (HH:MM)").Value(d.fWakeTime),
		).Title("Sleep"),
		huh.NewGroup(
			huh.NewInput().Title("Breakfast").Value(d.fBreakfast),
			huh.NewInput().Title("Lunch").Value(d.fLunch),
			huh.NewInput().Title("Dinner").Value(d.fDinner),
			huh.NewInput().Title("Snack").Value(d.fSnack),
		).Title("Meals"),
		huh.NewGroup(
			huh.NewText().Title("Comment").Value(d.fComment),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formType = "fields"
	d.formActive = true
	return d, d.form.Init()
}

func (d dailyModel) updateForm(msg tea.Msg) (dailyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if d.formType == "segment" {
			d.applySegmentForm()
			d.form = nil
			return d, nil
		}
		d.applyFieldsForm()
		d.form = nil
		// The field form ends with the day's save, like the original's
		// save button at the bottom of the entry sheet.
		return d, d.save()
	}

	return d, cmd
}

func (d *dailyModel) applySegmentForm() {
	seg := segment.Segment{
		Kind:    segment.Kind(*d.segKind),
		PaceMin: atoiOrZero(*d.segPaceMin),
		PaceSec: atoiOrZero(*d.segPaceSec),
	}
	if seg.Kind.IsIntervalLike() {
		seg.DistanceM = parseFloatOrZero(*d.segMeters)
		seg.Repeats = atoiOrZero(*d.segRepeats)
	} else {
		seg.DistanceKm = parseFloatOrZero(*d.segKm)
	}
	if d.editingSeg >= 0 && d.editingSeg < len(d.segs) {
		d.segs[d.editingSeg] = seg
	} else {
		d.segs = append(d.segs, seg)
		d.cursor = len(d.segs) - 1
	}
	d.dirty = true
}

func (d *dailyModel) applyFieldsForm() {
	d.log.Strength = *d.fStrength
	d.log.MorningHeartRate = atoiOrZero(*d.fHeartRate)
	d.log.FastingWeight = atoiOrZero(*d.fWeight)
	d.log.Bedtime = strings.TrimSpace(*d.fBedtime)
	d.log.WakeTime = strings.TrimSpace(*d.fWakeTime)
	d.log.Bowel = store.Bowel(*d.fBowel)
	d.log.MealBreakfast = *d.fBreakfast
	d.log.MealLunch = *d.fLunch
	d.log.MealDinner = *d.fDinner
	d.log.MealSnack = *d.fSnack
	d.log.Comment = *d.fComment
	d.dirty = true
}

func (d dailyModel) view() string {
	w := d.width - 4

	if d.formActive && d.form != nil {
		title := "Edit day"
		if d.formType == "segment" {
			title = "Training segment"
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render(title+" — "+d.date()), "", d.form.View(),
			),
		)
	}

	var rows []string

	dateLine := titleStyle.Render(d.anchor.Format("Mon, 2006-01-02"))
	if d.dirty {
		dateLine += warningStyle.Render("  * unsaved")
	}
	rows = append(rows, dateLine, "")

	// Running training
	rows = append(rows, highlightStyle.Render("Running"))
	if len(d.segs) == 0 {
		rows = append(rows, mutedStyle.Render("  no training recorded — press n to add"))
	} else {
		lines, total := segment.Aggregate(d.segs)
		for i, l := range lines {
			text := fmt.Sprintf("%s - %s", l.Kind.Label(), formatKm(l.DistanceKm))
			if l.Pace != "" {
				text += fmt.Sprintf(" (%s)", l.Pace)
			}
			if i == d.cursor {
				rows = append(rows, selectedItemStyle.Render("> "+text))
			} else {
				rows = append(rows, normalItemStyle.Render("  "+text))
			}
		}
		rows = append(rows, successStyle.Render("  total "+formatKm(total)))
	}
	rows = append(rows, "")

	// Scalars
	rows = append(rows, highlightStyle.Render("Day"))
	if d.log.Strength != "" {
		rows = append(rows, "  Strength:   "+truncate(strings.ReplaceAll(d.log.Strength, "\n", " / "), w-14))
	}
	if d.log.MorningHeartRate > 0 {
		rows = append(rows, fmt.Sprintf("  Heart rate: %d bpm", d.log.MorningHeartRate))
	}
	if d.log.FastingWeight > 0 {
		rows = append(rows, fmt.Sprintf("  Weight:     %dkg (%s)",
			d.log.FastingWeight, formatWeightDelta(d.log.FastingWeight, d.prevWeight)))
	}
	if d.log.Bedtime != "" || d.log.WakeTime != "" {
		rows = append(rows, fmt.Sprintf("  Sleep:      %s → %s (%.2fh)",
			d.log.Bedtime, d.log.WakeTime, d.log.SleepHours))
	}
	if d.log.Bowel != store.BowelUnset {
		rows = append(rows, "  Bowel:      "+string(d.log.Bowel))
	}
	meals := []string{}
	for _, m := range []struct{ label, v string }{
		{"breakfast", d.log.MealBreakfast}, {"lunch", d.log.MealLunch},
		{"dinner", d.log.MealDinner}, {"snack", d.log.MealSnack},
	} {
		if m.v != "" {
			meals = append(meals, m.label+": "+m.v)
		}
	}
	if len(meals) > 0 {
		rows = append(rows, "  Meals:      "+truncate(strings.Join(meals, "  "), w-14))
	}
	if d.log.Comment != "" {
		rows = append(rows, "  Comment:    "+truncate(strings.ReplaceAll(d.log.Comment, "\n", " / "), w-14))
	}

	rows = append(rows, "",
		mutedStyle.Render("  ←/→: day  t: today  n: add run  enter: edit run  d: delete run  e: edit fields  s: save"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func blankIfZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
