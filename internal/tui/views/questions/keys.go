package questions

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap holds the table bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Retry      key.Binding

	Agree      key.Binding
	Disagree   key.Binding
	Clear      key.Binding
	Toggle     key.Binding
	Categories key.Binding

	ViewQuestion key.Binding
	ViewAnswer   key.Binding
}

// DefaultKeyMap returns the default table bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextFilter: key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab/f", "next filter")),
		PrevFilter: key.NewBinding(key.WithKeys("shift+tab", "F"), key.WithHelp("shift+tab/F", "previous filter")),
		NextPage:   key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "previous page")),
		Retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry / refresh")),

		Agree:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agree")),
		Disagree:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "disagree")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear score")),
		Toggle:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "toggle category")),
		Categories: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "pick categories")),

		ViewQuestion: key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter/v", "full question")),
		ViewAnswer:   key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "full answer")),
	}
}

// Navigation returns the bindings that move through rows, pages and filters.
func (k KeyMap) Navigation() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.NextFilter, k.PrevFilter, k.Retry}
}

// Editing returns the bindings that mutate the selected row.
func (k KeyMap) Editing() []key.Binding {
	return []key.Binding{k.Agree, k.Disagree, k.Clear, k.Toggle, k.Categories}
}

// Viewing returns the bindings that open the text viewer.
func (k KeyMap) Viewing() []key.Binding {
	return []key.Binding{k.ViewQuestion, k.ViewAnswer}
}
