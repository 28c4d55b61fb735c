package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/weatherbar/internal/logtail"
)

// LogLines is the number of trailing log lines shown by Show Log.
const LogLines = 200

type logLoadedMsg struct {
	lines []string
	err   error
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogLines)
		return logLoadedMsg{lines: lines, err: err}
	}
}

type logModal struct {
	path     string
	loaded   bool
	err      error
	lines    []string
	viewport viewport.Model
}

func newLogModal(path string, width, height int) *logModal {
	vp := viewport.New(max(width-8, 20), max(height-8, 5))
	return &logModal{path: path, viewport: vp}
}

func (l *logModal) setLines(msg logLoadedMsg, styles Styles) {
	l.loaded = true
	l.err = msg.err
	l.lines = msg.lines
	switch {
	case msg.err != nil:
		l.viewport.SetContent(fmt.Sprintf("Could not read log: %v", msg.err))
	case len(msg.lines) == 0:
		l.viewport.SetContent("Log is empty.")
	default:
		rendered := make([]string, len(msg.lines))
		for i, line := range msg.lines {
			rendered[i] = formatLogLine(line, styles)
		}
		l.viewport.SetContent(strings.Join(rendered, "\n"))
		l.viewport.GotoBottom()
	}
}

// Update implements Modal.
func (l *logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape), key.Matches(km, keys.ShowLog):
			return l, nil, true
		case key.Matches(km, keys.Refresh):
			return l, loadLogCmd(l.path), false
		}
	}
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd, false
}

// View implements Modal.
func (l *logModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Log"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(l.path))
	b.WriteString("\n\n")
	if !l.loaded {
		b.WriteString(styles.MutedText.Render("Loading..."))
	} else {
		b.WriteString(l.viewport.View())
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("esc close  r reload  j/k scroll"))

	return placeModal(theme, width, height, styles.Modal.Render(b.String()))
}

// formatLogLine dims the timestamp and drops the logger prefix.
func formatLogLine(line string, styles Styles) string {
	entry := logtail.Parse(line)
	if entry.Time.IsZero() {
		return styles.Text.Render(entry.Message)
	}
	return styles.FaintText.Render(entry.Time.Format("Jan 02 15:04:05")) + " " + styles.Text.Render(entry.Message)
}
