package tui

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings handled by the root model. Table bindings live
// in the questions view.
type KeyMap struct {
	Quit          key.Binding
	Help          key.Binding
	Upload        key.Binding
	Notifications key.Binding
	Dismiss       key.Binding
}

// DefaultKeyMap returns the root bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Upload:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload spreadsheet")),
		Notifications: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notification history")),
		Dismiss:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss toast")),
	}
}

// General returns the bindings listed under the help dialog's general section.
func (k KeyMap) General() []key.Binding {
	return []key.Binding{k.Upload, k.Notifications, k.Dismiss, k.Help, k.Quit}
}
