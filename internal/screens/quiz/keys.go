package quiz

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Number key.Binding
	Next   key.Binding
	Retry  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "Navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Answer"),
		),
		Number: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Pick"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("Enter/n", "Next"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),
	}
}
