package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Restart key.Binding
	Pause   key.Binding
	Preset  key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Restart: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "restart")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Preset:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next preset")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Restart, k.Pause},
		{k.Preset, k.Theme},
		{k.Help, k.Quit},
	}
}
