package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pdfsyntax/internal/driver"
)

const (
	maxActive   = 8 // rows of in-flight files
	maxProblems = 5 // rows of files with errors
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// fileState is what the model knows about one input file.
type fileState struct {
	stage    driver.Stage
	status   driver.Status
	errors   int
	warnings int
}

// progressModel shows counters for the whole run, the files currently being
// worked on and the last files that produced errors. Directories of
// thousands of PDFs stay readable because finished files are not listed.
type progressModel struct {
	title      string
	events     <-chan driver.Event
	spinner    spinner.Model
	bar        progress.Model
	files      map[string]*fileState
	total      int
	active     []string // in the order work started
	problems   []string // newest last
	stageLabel string
	width      int
	done       bool

	finished, cached, failed int
	errors, warnings         int
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders diagnose progress
// for files. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	states := make(map[string]*fileState, len(files))
	for _, f := range files {
		states[f] = &fileState{stage: driver.StageLoad, status: driver.StatusQueued}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		files:   states,
		total:   len(files),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		m.active = nil
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// apply folds one driver event into the model and returns the bar animation.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == driver.StatusWorking {
			m.stageLabel = stageLabel(ev.Stage)
		}
		return nil
	}
	st, ok := m.files[ev.File]
	if !ok || isFinal(st.status) {
		return nil
	}
	st.stage, st.status = ev.Stage, ev.Status

	switch ev.Status {
	case driver.StatusWorking:
		if !slices.Contains(m.active, ev.File) {
			m.active = append(m.active, ev.File)
		}
		return m.bar.SetPercent(m.percent())
	case driver.StatusQueued:
		return nil
	}

	// финальные статусы
	m.active = slices.DeleteFunc(m.active, func(f string) bool { return f == ev.File })
	m.finished++
	switch ev.Status {
	case driver.StatusCached:
		m.cached++
	case driver.StatusError:
		m.failed++
		m.noteProblem(ev.File)
	}
	st.errors, st.warnings = ev.Errors, ev.Warnings
	m.errors += ev.Errors
	m.warnings += ev.Warnings
	if ev.Errors > 0 {
		m.noteProblem(ev.File)
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) noteProblem(file string) {
	m.problems = append(m.problems, file)
	if len(m.problems) > maxProblems {
		m.problems = m.problems[len(m.problems)-maxProblems:]
	}
}

// percent weighs in-flight files by how far their stage got.
func (m *progressModel) percent() float64 {
	if m.total == 0 {
		return 1
	}
	sum := float64(m.finished)
	for _, f := range m.active {
		sum += progressFromStage(m.files[f].stage)
	}
	return sum / float64(m.total)
}

func isFinal(s driver.Status) bool {
	return s == driver.StatusDone || s == driver.StatusCached || s == driver.StatusError
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLex:
		return 0.2
	case driver.StageParse:
		return 0.4
	case driver.StageDiagnose:
		return 0.8
	}
	return 0
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageLex:
		return "lexing"
	case driver.StageParse:
		return "parsing"
	case driver.StageDiagnose:
		return "diagnosing"
	}
	return ""
}

func (m *progressModel) View() string {
	if m.total == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header += " (" + m.stageLabel + ")"
	}
	if m.done {
		header = "done: " + header
		if m.failed > 0 {
			header += fmt.Sprintf(", %d unreadable", m.failed)
		}
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n  ")
	b.WriteString(m.counters())
	b.WriteString("\n")

	nameWidth := max(m.width-16, 20)
	if len(m.active) > 0 {
		b.WriteString("\n")
		for i, f := range m.active {
			if i == maxActive {
				fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("... %d more", len(m.active)-maxActive)))
				break
			}
			label := activeStyle.Render(fmt.Sprintf("%12s", stageLabel(m.files[f].stage)))
			fmt.Fprintf(&b, "  %s %s\n", label, truncate(f, nameWidth))
		}
	}
	if len(m.problems) > 0 {
		b.WriteString("\n")
		for _, f := range m.problems {
			st := m.files[f]
			label := errorStyle.Render(fmt.Sprintf("%12s", "unreadable"))
			if st.status != driver.StatusError {
				label = errorStyle.Render(fmt.Sprintf("%12s", plural(st.errors, "error")))
			}
			fmt.Fprintf(&b, "  %s %s\n", label, truncate(f, nameWidth))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// counters renders "3/10 files, 1 cached · 2 errors, 1 warning".
func (m *progressModel) counters() string {
	files := fmt.Sprintf("%d/%d files", m.finished, m.total)
	if m.cached > 0 {
		files += fmt.Sprintf(", %d cached", m.cached)
	}
	errs := plural(m.errors, "error")
	if m.errors > 0 {
		errs = errorStyle.Render(errs)
	} else {
		errs = okStyle.Render(errs)
	}
	warns := plural(m.warnings, "warning")
	if m.warnings > 0 {
		warns = warningStyle.Render(warns)
	}
	return files + dimStyle.Render(" · ") + errs + ", " + warns
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
