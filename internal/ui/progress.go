package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"zigscope/internal/pipeline"
)

// maxRows bounds the file list; big directories show the active files and
// the most recently finished ones.
const maxRows = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyles = map[string]lipgloss.Style{
		"done":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"queued": dimStyle,
	}
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// доля работы над файлом, выполненная к началу стадии
	stageWeight = map[pipeline.Stage]float64{
		pipeline.StageLex:     0.1,
		pipeline.StageParse:   0.3,
		pipeline.StageResolve: 0.6,
		pipeline.StageReport:  0.9,
	}
	stageVerb = map[pipeline.Stage]string{
		pipeline.StageLex:     "lexing",
		pipeline.StageParse:   "parsing",
		pipeline.StageResolve: "resolving",
		pipeline.StageReport:  "reporting",
	}
)

type fileItem struct {
	path     string
	status   string
	stage    pipeline.Stage
	finished bool
	order    int // when it finished, for the recent list
}

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	byPath  map[string]int
	width   int

	runLabel string
	finished int
	failed   int
	cached   int
	done     bool
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel renders the per-file progress of a directory check fed
// by events. The program quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = activeStyle

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileItem{path: f, status: "queued"}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(pipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			m.runLabel = label
		}
		return nil
	}
	idx, ok := m.byPath[ev.File]
	if !ok || m.items[idx].finished {
		return nil
	}
	it := &m.items[idx]
	if label != "" {
		it.status, it.stage = label, ev.Stage
	}
	if ev.Terminal() {
		m.finished++
		it.finished, it.order = true, m.finished
		switch ev.Status {
		case pipeline.StatusError:
			m.failed++
		case pipeline.StatusCached:
			m.cached++
		}
	}
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 1
	}
	sum := 0.0
	for _, it := range m.items {
		if it.finished {
			sum++
		} else {
			sum += stageWeight[it.stage]
		}
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.runLabel != "" {
		header += " (" + m.runLabel + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = fmt.Sprintf("%s %s [%d/%d]", m.spinner.View(), header, m.finished, len(m.items))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	rows, hidden := m.visibleRows()
	nameWidth := max(m.width-16, 20)
	for _, it := range rows {
		status := fmt.Sprintf("%10s", it.status)
		style, ok := statusStyles[it.status]
		if !ok {
			style = activeStyle
		}
		fmt.Fprintf(&b, "  %s  %s\n", style.Render(status), truncatePath(it.path, nameWidth))
	}
	if hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	if m.failed > 0 || m.cached > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d failed, %d from cache", m.failed, m.cached)))
		b.WriteByte('\n')
	}
	return b.String()
}

// visibleRows: active files first, then the latest finished ones, then queued.
func (m *progressModel) visibleRows() ([]fileItem, int) {
	if len(m.items) <= maxRows {
		return m.items, 0
	}
	var active, recent, queued []fileItem
	for _, it := range m.items {
		switch {
		case it.finished:
			recent = append(recent, it)
		case it.stage != "":
			active = append(active, it)
		default:
			queued = append(queued, it)
		}
	}
	// recent: newest first
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	rows := append(active, recent...)
	rows = append(rows, queued...)
	return rows[:maxRows], len(m.items) - maxRows
}

func statusLabel(stage pipeline.Stage, status pipeline.Status) string {
	switch status {
	case pipeline.StatusQueued, pipeline.StatusError, pipeline.StatusCached:
		return string(status)
	case pipeline.StatusDone:
		if stage == pipeline.StageReport {
			return "done"
		}
		return stageVerb[stage]
	case pipeline.StatusWorking:
		return stageVerb[stage]
	}
	return ""
}

// truncatePath keeps the end of a path, where the file name is.
func truncatePath(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	runes := []rune(path)
	for len(runes) > 0 && runewidth.StringWidth(string(runes))+1 > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}
