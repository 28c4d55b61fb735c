package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Menu navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Menu shortcuts
	Refresh        key.Binding
	ToggleUnits    key.Binding
	ChangeLocation key.Binding
	ToggleLive     key.Binding
	ShowLog        key.Binding
	About          key.Binding

	// Dialogs
	NextButton key.Binding
	PrevButton key.Binding
	Confirm    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Activate item"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Update now"),
		),
		ToggleUnits: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Toggle units"),
		),
		ChangeLocation: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Change location"),
		),
		ToggleLive: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle live location"),
		),
		ShowLog: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Show log"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "About"),
		),

		NextButton: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next button"),
		),
		PrevButton: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous button"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Refresh, k.ToggleUnits, k.ChangeLocation, k.ToggleLive, k.ShowLog, k.About},
		{k.NextButton, k.PrevButton, k.Confirm, k.Escape},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
