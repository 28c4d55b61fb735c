package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/weatherbar/internal/controller"
)

// dialogRequestMsg asks the UI to show a dialog. The answer is delivered on
// reply exactly once.
type dialogRequestMsg struct {
	dialog controller.Dialog
	reply  chan<- controller.Answer
}

type dialogModal struct {
	req     dialogRequestMsg
	buttons []string
	focus   int
	input   textinput.Model
	hasText bool
}

func newDialogModal(req dialogRequestMsg) *dialogModal {
	buttons := req.dialog.Buttons
	if len(buttons) == 0 {
		buttons = []string{"OK"}
	}
	d := &dialogModal{req: req, buttons: buttons}
	if req.dialog.Input {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		ti.Prompt = "> "
		ti.SetValue(req.dialog.Default)
		ti.CursorEnd()
		if req.dialog.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.Focus()
		d.input = ti
		d.hasText = true
	}
	return d
}

// Update implements Modal.
func (d *dialogModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if d.hasText {
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return d, cmd, false
		}
		return d, nil, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		d.answer(controller.Dismissed)
		return d, nil, true
	case key.Matches(km, keys.Confirm):
		d.answer(d.focus)
		return d, nil, true
	case key.Matches(km, keys.NextButton):
		d.focus = (d.focus + 1) % len(d.buttons)
		return d, nil, false
	case key.Matches(km, keys.PrevButton):
		d.focus = (d.focus - 1 + len(d.buttons)) % len(d.buttons)
		return d, nil, false
	}

	if d.hasText {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(km)
		return d, cmd, false
	}

	switch km.String() {
	case "right", "l":
		d.focus = (d.focus + 1) % len(d.buttons)
	case "left", "h":
		d.focus = (d.focus - 1 + len(d.buttons)) % len(d.buttons)
	}
	return d, nil, false
}

// answer replies without blocking; a second answer is dropped.
func (d *dialogModal) answer(button int) {
	ans := controller.Answer{Button: button}
	if d.hasText {
		ans.Text = d.input.Value()
	}
	select {
	case d.req.reply <- ans:
	default:
	}
}

// cancel closes the dialog as if escape had been pressed.
func (d *dialogModal) cancel() {
	d.answer(controller.Dismissed)
}

// View implements Modal.
func (d *dialogModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(d.req.dialog.Title))
	if msg := strings.TrimSpace(d.req.dialog.Message); msg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Text.Render(msg))
	}
	if d.hasText {
		b.WriteString("\n\n")
		b.WriteString(d.input.View())
	}
	b.WriteString("\n\n")

	rendered := make([]string, len(d.buttons))
	for i, label := range d.buttons {
		if i == d.focus {
			rendered[i] = styles.Focused.Render(label)
		} else {
			rendered[i] = styles.Button.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	modalWidth := 56
	if width > 0 && width-4 < modalWidth {
		modalWidth = width - 4
	}
	return placeModal(theme, width, height, styles.Modal.Width(modalWidth).Render(b.String()))
}
