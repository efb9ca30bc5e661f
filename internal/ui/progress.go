// Package ui renders the terminal progress view of a directory run.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kind/internal/driver"
)

// maxRows — сколько файлов видно одновременно; остальные сворачиваются
// в строку "... N more".
const maxRows = 12

type styles struct {
	title   lipgloss.Style
	queued  lipgloss.Style
	working lipgloss.Style
	done    lipgloss.Style
	failed  lipgloss.Style
	dim     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		queued:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		working: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		done:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

type fileRow struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
	seq     int // порядок последнего изменения, для выбора видимых строк
}

func (r fileRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	style   styles

	rows  []fileRow
	index map[string]int
	stage driver.Stage // стадия всего прогона
	seq   int
	width int
	done  bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file
// progress of a directory run. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		style:   defaultStyles(),
		rows:    make([]fileRow, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file, stage: driver.StageLoad}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.listen())
	case doneMsg:
		m.done = true
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
	case tea.KeyMsg:
		// Ctrl+C прерывает только отрисовку; разбор доработает сам.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		m.stage = ev.Stage
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	m.seq++
	row := &m.rows[idx]
	row.stage, row.status, row.seq = ev.Stage, ev.Status, m.seq
	if row.finished() {
		row.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

// percent — доля работы: завершённые файлы считаются целиком,
// остальные по стадии, на которой они сейчас.
func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		switch {
		case r.finished():
			total++
		case r.status == driver.StatusWorking:
			total += stageWeight(r.stage)
		}
	}
	return total / float64(len(m.rows))
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageLex:
		return 0.4
	case driver.StageParse:
		return 0.5
	}
	return 0
}

// counts возвращает число завершённых файлов и файлов с ошибками.
func (m *progressModel) counts() (finished, failed int) {
	for _, r := range m.rows {
		if r.finished() {
			finished++
		}
		if r.status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

// visible выбирает строки для отрисовки: сначала ошибки и файлы в работе,
// затем недавно изменённые. Исходный порядок путей сохраняется.
func (m *progressModel) visible() (rows []fileRow, hidden int) {
	if len(m.rows) <= maxRows {
		return m.rows, 0
	}
	rank := func(r fileRow) int {
		switch r.status {
		case driver.StatusError:
			return 3
		case driver.StatusWorking:
			return 2
		case driver.StatusDone:
			return 1
		}
		return 0
	}
	picked := make([]bool, len(m.rows))
	for n := 0; n < maxRows; n++ {
		best := -1
		for i, r := range m.rows {
			if picked[i] {
				continue
			}
			if best < 0 || rank(r) > rank(m.rows[best]) ||
				(rank(r) == rank(m.rows[best]) && r.seq > m.rows[best].seq) {
				best = i
			}
		}
		picked[best] = true
	}
	for i, r := range m.rows {
		if picked[i] {
			rows = append(rows, r)
		}
	}
	return rows, len(m.rows) - maxRows
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if label := stageLabel(m.stage); label != "" && !m.done {
		header = fmt.Sprintf("%s (%s)", header, label)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(m.style.title.Render(header))
	b.WriteString("\n\n")

	const statusWidth, timeWidth = 9, 9
	nameWidth := max(m.width-statusWidth-timeWidth-6, 20)
	rows, hidden := m.visible()
	for _, r := range rows {
		label := statusLabel(r)
		elapsed := ""
		if r.finished() && r.elapsed > 0 {
			elapsed = formatElapsed(r.elapsed)
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			m.statusStyle(r.status).Render(fmt.Sprintf("%*s", statusWidth, label)),
			m.style.dim.Render(fmt.Sprintf("%*s", timeWidth, elapsed)),
			truncate(r.path, nameWidth))
	}
	if hidden > 0 {
		b.WriteString(m.style.dim.Render(fmt.Sprintf("  ... %d more", hidden)))
		b.WriteString("\n")
	}

	finished, failed := m.counts()
	summary := fmt.Sprintf("%d/%d files", finished, len(m.rows))
	if failed > 0 {
		summary += " · " + m.style.failed.Render(fmt.Sprintf("%d with errors", failed))
	}
	b.WriteString("\n  " + summary + "\n")

	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) statusStyle(s driver.Status) lipgloss.Style {
	switch s {
	case driver.StatusDone:
		return m.style.done
	case driver.StatusError:
		return m.style.failed
	case driver.StatusWorking:
		return m.style.working
	}
	return m.style.queued
}

func statusLabel(r fileRow) string {
	if r.status == driver.StatusWorking {
		return stageLabel(r.stage)
	}
	return r.status.String()
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageLex:
		return "lexing"
	case driver.StageParse:
		return "parsing"
	}
	return ""
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// truncate обрезает строку до width колонок терминала, не разрывая
// широкие символы.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// ширина хвоста "..." входит в width
	return runewidth.Truncate(value, width, "...")
}
