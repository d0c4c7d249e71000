package play

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the player key bindings.
type keyMap struct {
	Select   key.Binding
	Next     key.Binding
	Previous key.Binding
	Retake   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "c", "d", "e", "f", "g", "h", "i"),
			key.WithHelp("1-9/a-i", "answer"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "right", "n"),
			key.WithHelp("enter/→", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←", "back"),
		),
		Retake: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retake"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Next, k.Previous, k.Retake, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// optionForKey maps a select key to an option index.
func optionForKey(value string) (int, bool) {
	if len(value) != 1 {
		return 0, false
	}
	switch c := value[0]; {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	default:
		return 0, false
	}
}
