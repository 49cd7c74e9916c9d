package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/taskboard/internal/config"
)

// keyMap is the set of bindings built from the configured key mappings
type keyMap struct {
	PrevColumn key.Binding
	NextColumn key.Binding
	PrevTask   key.Binding
	NextTask   key.Binding

	Grab   key.Binding
	Drop   key.Binding
	Cancel key.Binding

	Refresh  key.Binding
	ViewTask key.Binding

	ToggleNotifications key.Binding
	ClearNotifications  key.Binding

	Help key.Binding
	Quit key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		PrevColumn: key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp("←/"+km.PrevColumn, "prev column")),
		NextColumn: key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp("→/"+km.NextColumn, "next column")),
		PrevTask:   key.NewBinding(key.WithKeys(km.PrevTask, "up"), key.WithHelp("↑/"+km.PrevTask, "up")),
		NextTask:   key.NewBinding(key.WithKeys(km.NextTask, "down"), key.WithHelp("↓/"+km.NextTask, "down")),

		Grab:   key.NewBinding(key.WithKeys(km.Grab), key.WithHelp(km.Grab, "grab task")),
		Drop:   key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(km.Drop, "drop")),
		Cancel: key.NewBinding(key.WithKeys(km.Cancel), key.WithHelp(km.Cancel, "cancel")),

		Refresh:  key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh")),
		ViewTask: key.NewBinding(key.WithKeys(km.ViewTask), key.WithHelp(km.ViewTask, "details")),

		ToggleNotifications: key.NewBinding(key.WithKeys(km.ToggleNotifications), key.WithHelp(km.ToggleNotifications, "reminders")),
		ClearNotifications:  key.NewBinding(key.WithKeys(km.ClearNotifications), key.WithHelp(km.ClearNotifications, "clear reminders")),

		Help: key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit: key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Drop, k.Refresh, k.ToggleNotifications, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevTask, k.NextTask},
		{k.Grab, k.Drop, k.Cancel},
		{k.Refresh, k.ViewTask},
		{k.ToggleNotifications, k.ClearNotifications},
		{k.Help, k.Quit},
	}
}
