package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Talk    key.Binding
	Options [4]key.Binding
	Skip    key.Binding
	Hide    key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Restart key.Binding
	Copy    key.Binding
	Status  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Talk: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "talk")),
		Options: [4]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1-4", "answer")),
			key.NewBinding(key.WithKeys("2")),
			key.NewBinding(key.WithKeys("3")),
			key.NewBinding(key.WithKeys("4")),
		},
		Skip:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "skip text")),
		Hide:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "north")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "south")),
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "west")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "east")),
		Jump:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "walk to next stop")),
		Restart: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy transcript")),
		Status:  key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "scene status")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Talk, k.Options[0], k.Skip, k.Jump, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Talk, k.Options[0], k.Skip, k.Hide},
		{k.Up, k.Down, k.Left, k.Right, k.Jump},
		{k.Restart, k.Copy, k.Status, k.Help, k.Quit},
	}
}
