package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/weatherbar/internal/controller"
	"github.com/five82/weatherbar/internal/state"
)

// Options configures the Bubble Tea model.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Actions   chan<- controller.Action
	LogPath   string
	PollTick  time.Duration
	ThemeName string
}

// Model is the Bubble Tea model for the WeatherBar menu.
type Model struct {
	ctx      context.Context
	store    *state.Store
	actions  chan<- controller.Action
	logPath  string
	pollTick time.Duration

	theme Theme
	keys  keyMap

	width  int
	height int
	ready  bool

	snapshot state.Snapshot
	cursor   int
	showHelp bool

	modal   Modal
	pending []dialogRequestMsg
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	return Model{
		ctx:      ctx,
		store:    opts.Store,
		actions:  opts.Actions,
		logPath:  opts.LogPath,
		pollTick: pollTick,
		theme:    GetTheme(themeName),
		keys:     DefaultKeyMap(),
		cursor:   1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case dialogRequestMsg:
		return m.openDialog(msg)

	case logLoadedMsg:
		if lm, ok := m.modal.(*logModal); ok {
			lm.setLines(msg, m.theme.Styles())
		}
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// openDialog shows a dialog, or queues it behind the one already open.
// An open log view gives way to the dialog.
func (m Model) openDialog(req dialogRequestMsg) (tea.Model, tea.Cmd) {
	if _, busy := m.modal.(*dialogModal); busy {
		m.pending = append(m.pending, req)
		return m, nil
	}
	m.showHelp = false
	m.modal = newDialogModal(req)
	return m, nil
}

// closeModal drops the current modal and shows the next queued dialog.
func (m *Model) closeModal() {
	m.modal = nil
	if len(m.pending) > 0 {
		next := m.pending[0]
		m.pending = m.pending[1:]
		m.modal = newDialogModal(next)
	}
}

// quit answers every outstanding dialog so the controller is not left waiting.
func (m *Model) quit() tea.Cmd {
	if d, ok := m.modal.(*dialogModal); ok {
		d.cancel()
	}
	for _, req := range m.pending {
		newDialogModal(req).cancel()
	}
	m.modal = nil
	m.pending = nil
	return tea.Quit
}

// handleKey routes keys to the modal first, then help, then the menu.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		m.modal = next
		if done {
			m.closeModal()
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		items := m.menuItems()
		if m.cursor >= 0 && m.cursor < len(items) {
			return m, m.activate(items[m.cursor])
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.activate(m.findItem(controller.ActionRefresh))
	case key.Matches(msg, m.keys.ToggleUnits):
		return m, m.activate(m.findItem(controller.ActionToggleUnits))
	case key.Matches(msg, m.keys.ChangeLocation):
		return m, m.activate(m.findItem(controller.ActionChangeLocation))
	case key.Matches(msg, m.keys.ToggleLive):
		return m, m.activate(m.findItem(controller.ActionToggleLive))
	case key.Matches(msg, m.keys.About):
		return m, m.activate(m.findItem(controller.ActionAbout))
	case key.Matches(msg, m.keys.ShowLog):
		return m, m.activate(menuItem{kind: itemShowLog, enabled: true})
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderMenuBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderDropdown())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// NewProgram wraps the model in a full-screen program bound to ctx.
func NewProgram(ctx context.Context, m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}
