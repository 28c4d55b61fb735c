package ui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/weatherbar/internal/controller"
)

// Sender delivers messages into a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Prompter shows controller dialogs inside the Bubble Tea program.
type Prompter struct {
	mu     sync.Mutex
	sender Sender
}

var _ controller.Prompter = (*Prompter)(nil)

// NewPrompter returns a Prompter with no program attached.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Attach connects the Prompter to a program.
func (p *Prompter) Attach(s Sender) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sender = s
}

// Prompt implements controller.Prompter.
func (p *Prompter) Prompt(ctx context.Context, d controller.Dialog) (controller.Answer, error) {
	p.mu.Lock()
	sender := p.sender
	p.mu.Unlock()
	if sender == nil {
		return controller.Answer{}, errors.New("prompter is not attached to a program")
	}

	reply := make(chan controller.Answer, 1)
	sender.Send(dialogRequestMsg{dialog: d, reply: reply})

	select {
	case ans := <-reply:
		return ans, nil
	case <-ctx.Done():
		return controller.Answer{}, ctx.Err()
	}
}

func sendActionCmd(ctx context.Context, actions chan<- controller.Action, action controller.Action) tea.Cmd {
	if actions == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case actions <- action:
		case <-ctx.Done():
		}
		return nil
	}
}
