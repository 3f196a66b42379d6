package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Check   key.Binding
	Clear   key.Binding
	Next    key.Binding
	NextCat key.Binding
	PrevCat key.Binding
	Weak    key.Binding
	Guide   key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Check:   key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "check")),
		Clear:   key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "clear")),
		Next:    key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next item")),
		NextCat: key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]", "next category")),
		PrevCat: key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[", "prev category")),
		Weak:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "practice weak item")),
		Guide:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle guide")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "lift pen")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Check, k.Clear, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Check, k.Clear, k.Next},
		{k.NextCat, k.PrevCat, k.Weak},
		{k.Guide, k.Cancel, k.Help, k.Quit},
	}
}
