package components

import "charm.land/bubbles/v2/key"

// NavKeys are the bindings shared by list-style components.
type NavKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultNavKeys returns arrow/vi navigation with enter to select.
func DefaultNavKeys() NavKeys {
	return NavKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
	}
}
