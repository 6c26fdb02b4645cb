package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tempo/internal/domain"
	"tempo/internal/engine"
	"tempo/internal/logging"
	"tempo/internal/ports"
	"tempo/internal/services"
)

type uiState int

const (
	stateList uiState = iota
	stateStartForm
	stateLogForm
)

// tickMsg drives the once-per-second display refresh. The tick is a
// pure read: elapsed times are recomputed on demand and nothing in the
// engine is mutated by it.
type tickMsg time.Time

// opDoneMsg reports the outcome of an engine operation that hit the
// session store
type opDoneMsg struct {
	err error
}

// Model is the interactive timer list
type Model struct {
	engine *engine.Engine
	manual *services.ManualEntryService
	tasks  ports.TaskStore

	keys   KeyMap
	help   help.Model
	state  uiState
	cursor int
	width  int
	height int
	now    time.Time
	errMsg string

	startForm *startForm
	logForm   *logForm
}

// NewModel creates the TUI model. The engine must already be hydrated.
func NewModel(eng *engine.Engine, manual *services.ManualEntryService, tasks ports.TaskStore) *Model {
	return &Model{
		engine: eng,
		manual: manual,
		tasks:  tasks,
		keys:   NewKeyMap(),
		help:   help.New(),
		now:    eng.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.now = m.engine.Now()
		return m, tick()

	case opDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			logging.Logger.Warn("timer operation failed", "error", msg.err)
		} else {
			m.errMsg = ""
		}
		return m, nil
	}

	switch m.state {
	case stateStartForm:
		return m.updateStartForm(msg)
	case stateLogForm:
		return m.updateLogForm(msg)
	default:
		return m.updateList(msg)
	}
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	timers := m.engine.Timers()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncSelection(timers)
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(timers)-1 {
			m.cursor++
		}
		m.syncSelection(timers)
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		if timer, ok := m.timerUnderCursor(timers); ok {
			// local transitions, no store call involved
			var err error
			if timer.Running() {
				_, err = m.engine.Pause(timer.ID)
			} else {
				_, err = m.engine.Resume(timer.ID)
			}
			if err != nil {
				m.errMsg = err.Error()
			}
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Stop):
		timer, ok := m.timerUnderCursor(timers)
		if !ok {
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
		}
		return m, func() tea.Msg {
			_, err := m.engine.Stop(context.Background(), timer.ID)
			return opDoneMsg{err: err}
		}

	case key.Matches(keyMsg, m.keys.New):
		form, err := newStartForm(m.tasks)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.startForm = form
		m.state = stateStartForm
		return m, form.Init()

	case key.Matches(keyMsg, m.keys.Log):
		m.logForm = newLogForm()
		m.state = stateLogForm
		return m, m.logForm.Init()
	}

	return m, nil
}

func (m *Model) updateStartForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cancelled, cmd := m.startForm.Update(msg)
	if !done {
		return m, cmd
	}

	m.state = stateList
	if cancelled {
		return m, nil
	}

	taskID := m.startForm.TaskID()
	return m, func() tea.Msg {
		ctx := context.Background()
		task, err := m.tasks.Get(ctx, taskID)
		if err != nil {
			return opDoneMsg{err: err}
		}
		_, err = m.engine.Start(ctx, task.Ref())
		return opDoneMsg{err: err}
	}
}

func (m *Model) updateLogForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cancelled, cmd := m.logForm.Update(msg)
	if !done {
		return m, cmd
	}

	m.state = stateList
	if cancelled {
		return m, nil
	}

	entry, err := m.logForm.Entry()
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	return m, func() tea.Msg {
		_, err := m.manual.Log(context.Background(), entry)
		return opDoneMsg{err: err}
	}
}

// timerUnderCursor resolves the cursor position against the current
// timer list
func (m *Model) timerUnderCursor(timers []domain.Timer) (domain.Timer, bool) {
	if len(timers) == 0 {
		return domain.Timer{}, false
	}
	if m.cursor >= len(timers) {
		m.cursor = len(timers) - 1
	}
	return timers[m.cursor], true
}

func (m *Model) syncSelection(timers []domain.Timer) {
	if timer, ok := m.timerUnderCursor(timers); ok {
		m.engine.Select(timer.ID)
	}
}

func (m *Model) View() string {
	switch m.state {
	case stateStartForm:
		return m.startForm.View()
	case stateLogForm:
		return m.logForm.View()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("tempo"))
	b.WriteString("\n")

	timers := m.engine.Timers()
	if len(timers) == 0 {
		b.WriteString(MutedStyle.Render("No active timers. Press n to start one."))
		b.WriteString("\n")
	}

	for i, timer := range timers {
		icon := RunningIconStyle.Render(SymbolRunning)
		if !timer.Running() {
			icon = PausedIconStyle.Render(SymbolPaused)
		}

		cursor := "  "
		titleStyle := NormalStyle
		if i == m.cursor {
			cursor = SelectedStyle.Render("▸ ")
			titleStyle = SelectedStyle
		}

		elapsed := ClockStyle.Render(domain.FormatClock(timer.ElapsedSeconds(m.now)))
		line := fmt.Sprintf("%s%s %s %s %s",
			cursor,
			icon,
			elapsed,
			titleStyle.Render(timer.Task.Title),
			MutedStyle.Render(fmt.Sprintf("#%d", timer.Task.TaskID)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(timers) > 1 {
		total := domain.TotalElapsedSeconds(timers, m.now)
		b.WriteString(TotalStyle.Render(fmt.Sprintf("total %s across %d timers", domain.FormatClock(total), len(timers))))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
