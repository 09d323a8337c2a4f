package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/runlog/internal/export"
	"github.com/sadopc/runlog/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	importActive bool
	importForm   *huh.Form
	importPath   *string

	daily    dailyModel
	weekly   weeklyModel
	monthly  monthlyModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false
	path := ""

	return App{
		store:      s,
		activeView: viewDaily,
		daily:      newDailyModel(s),
		weekly:     newWeeklyModel(s),
		monthly:    newMonthlyModel(s),
		settings:   newSettingsModel(s),
		importPath: &path,
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.daily.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.daily.setSize(a.width, contentHeight)
		a.weekly.setSize(a.width, contentHeight)
		a.monthly.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.importActive {
			return a.updateImportForm(msg)
		}

		// If a child view is capturing input (a form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Import):
			return a.showImportForm()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDaily
			return a, a.daily.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewWeekly
			return a, a.weekly.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewMonthly
			return a, a.monthly.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case logSavedMsg:
		// Saving hands over to the week sheet, like the original diary.
		a.status = "Saved " + msg.date
		a.activeView = viewWeekly
		return a, tea.Batch(a.weekly.refresh(), a.daily.refresh())

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case importDoneMsg:
		a.status = fmt.Sprintf("Imported %d days", msg.count)
		return a, a.refreshCurrentView()
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDaily:
		a.daily, cmd = a.daily.update(msg)
	case viewWeekly:
		a.weekly, cmd = a.weekly.update(msg)
	case viewMonthly:
		a.monthly, cmd = a.monthly.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDaily:
		return a.daily.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDaily:
		return a.daily.refresh()
	case viewWeekly:
		return a.weekly.refresh()
	case viewMonthly:
		return a.monthly.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDaily:
		content = a.daily.view()
	case viewWeekly:
		content = a.weekly.view()
	case viewMonthly:
		content = a.monthly.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.importActive && a.importForm != nil {
		content = activePanelStyle.Width(a.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("Import backup"), "", a.importForm.View(),
			),
		)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("runlog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

var exportFormats = []string{"Excel (.xlsx)", "CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Backup")
	var rows []string
	rows = append(rows, title, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		logs, err := a.store.GetAllLogs()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(isoDate)

		var path string
		switch format {
		case 0:
			path = filepath.Join(home, fmt.Sprintf("runlog-backup-%s.xlsx", dateStr))
			err = export.ToXLSX(logs, path)
		case 1:
			path = filepath.Join(home, fmt.Sprintf("runlog-backup-%s.csv", dateStr))
			err = export.ToCSV(logs, path)
		default:
			path = filepath.Join(home, fmt.Sprintf("runlog-backup-%s.json", dateStr))
			err = export.ToJSON(logs, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}

func (a App) showImportForm() (tea.Model, tea.Cmd) {
	home, _ := os.UserHomeDir()
	*a.importPath = filepath.Join(home, "runlog-backup.xlsx")

	a.importForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Backup file (.xlsx)").Value(a.importPath),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.importActive = true
	return a, a.importForm.Init()
}

func (a App) updateImportForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.importActive = false
		a.importForm = nil
		return a, nil
	}

	form, cmd := a.importForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.importForm = f
	}

	if a.importForm.State == huh.StateCompleted {
		a.importActive = false
		path := *a.importPath
		a.importForm = nil
		return a, a.doImport(path)
	}

	return a, cmd
}

// doImport loads an Excel backup and upserts every row, so re-importing the
// same file is idempotent. A row failure stops the import; rows not yet
// applied leave the store untouched.
func (a App) doImport(path string) tea.Cmd {
	return func() tea.Msg {
		logs, err := export.FromXLSX(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		for i, l := range logs {
			if err := a.store.UpsertLog(l); err != nil {
				return statusMsg{
					text:    fmt.Sprintf("Import stopped at row %d: %v", i+2, err),
					isError: true,
				}
			}
		}
		return importDoneMsg{count: len(logs)}
	}
}
