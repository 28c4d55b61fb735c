package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/weatherbar/internal/controller"
)

type itemKind int

const (
	itemInfo itemKind = iota
	itemAction
	itemShowLog
	itemQuit
)

type menuItem struct {
	label   string
	kind    itemKind
	action  controller.Action
	enabled bool
}

// menuItems builds the dropdown from the current snapshot.
func (m Model) menuItems() []menuItem {
	snap := m.snapshot

	updated := snap.UpdatedLabel()
	if updated == "" {
		updated = "Waiting for weather..."
	}

	live := "[ ] Live Location"
	if snap.Live {
		live = "[x] Live Location"
	}

	return []menuItem{
		{label: updated, kind: itemInfo},
		{label: "Update Now", kind: itemAction, action: controller.ActionRefresh, enabled: true},
		{label: snap.UnitsLabel(), kind: itemAction, action: controller.ActionToggleUnits, enabled: true},
		{label: "Change Location", kind: itemAction, action: controller.ActionChangeLocation, enabled: snap.ChangeLocationEnabled()},
		{label: live, kind: itemAction, action: controller.ActionToggleLive, enabled: true},
		{label: "Show Log", kind: itemShowLog, enabled: true},
		{label: "About", kind: itemAction, action: controller.ActionAbout, enabled: true},
		{label: "Quit", kind: itemQuit, enabled: true},
	}
}

// moveCursor steps over the info line at the top.
func (m *Model) moveCursor(delta int) {
	items := m.menuItems()
	next := m.cursor + delta
	if next < 1 {
		next = 1
	}
	if next > len(items)-1 {
		next = len(items) - 1
	}
	m.cursor = next
}

// activate runs the item under the cursor or a shortcut.
func (m *Model) activate(item menuItem) tea.Cmd {
	if !item.enabled {
		return nil
	}
	switch item.kind {
	case itemAction:
		return sendActionCmd(m.ctx, m.actions, item.action)
	case itemShowLog:
		m.modal = newLogModal(m.logPath, m.width, m.height)
		return loadLogCmd(m.logPath)
	case itemQuit:
		return tea.Quit
	default:
		return nil
	}
}

// findItem returns the first item performing action.
func (m Model) findItem(action controller.Action) menuItem {
	for _, item := range m.menuItems() {
		if item.kind == itemAction && item.action == action {
			return item
		}
	}
	return menuItem{}
}

// renderMenuBar renders the title line as it would appear in a status bar.
func (m Model) renderMenuBar() string {
	styles := m.theme.Styles()

	title := m.snapshot.Title
	if title == "" {
		title = "…"
	}

	parts := []string{
		styles.Logo.Render("WeatherBar"),
		styles.Text.Bold(true).Render(title),
	}
	if loc := strings.TrimSpace(m.snapshot.Location); loc != "" {
		parts = append(parts, styles.MutedText.Render(loc))
	}
	if m.snapshot.Live {
		parts = append(parts, styles.AccentText.Render("live"))
	}
	return styles.MenuBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderDropdown renders the menu entries.
func (m Model) renderDropdown() string {
	styles := m.theme.Styles()

	items := m.menuItems()
	lines := make([]string, 0, len(items)+1)
	for i, item := range items {
		label := item.label
		switch {
		case item.kind == itemInfo:
			if m.snapshot.NoConnection {
				lines = append(lines, styles.DangerText.Render(label))
			} else {
				lines = append(lines, styles.MutedText.Render(label))
			}
			lines = append(lines, styles.FaintText.Render(strings.Repeat("─", 24)))
			continue
		case i == m.cursor && item.enabled:
			label = styles.Selected.Render(" " + label + " ")
		case i == m.cursor:
			label = styles.Selected.Foreground(styles.Disabled.GetForeground()).Render(" " + label + " ")
		case !item.enabled:
			label = styles.Disabled.Render(" " + label + " ")
		default:
			label = styles.Text.Render(" " + label + " ")
		}
		lines = append(lines, label)
	}
	return styles.Dropdown.Render(strings.Join(lines, "\n"))
}

// renderFooter renders the command hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	type hint struct{ key, desc string }
	hints := []hint{
		{"r", "Update"},
		{"u", "Units"},
		{"c", "Location"},
		{"L", "Live"},
		{"l", "Log"},
		{"?", "More"},
		{"q", "Quit"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.WarningText.Render(h.key) + " " + styles.MutedText.Render(h.desc)
	}
	return styles.Footer.Render(strings.Join(parts, "  "))
}
