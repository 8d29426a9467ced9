package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Chat       key.Binding
	Weather    key.Binding
	Similarity key.Binding
	Next       key.Binding
	Prev       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Chat:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "chat")),
		Weather:    key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "weather")),
		Similarity: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "similarity")),
		Next:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		Prev:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev tab")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Quit}
}

// widget-local bindings
var (
	submitKey     = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send"))
	lookupKey     = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "look up"))
	nextFieldKey  = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	prevFieldKey  = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field"))
	compareKey    = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "check"))
	scrollUpKey   = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up"))
	scrollDownKey = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down"))
)
