package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	AddChild     key.Binding
	AddRoot      key.Binding
	Delete       key.Binding
	MoveEarlier  key.Binding
	MoveLater    key.Binding
	StartEarlier key.Binding
	StartLater   key.Binding
	EndEarlier   key.Binding
	EndLater     key.Binding
	Mode         key.Binding
	Submit       key.Binding
	Resubmit     key.Binding
	Narrow       key.Binding
	Widen        key.Binding
	Reload       key.Binding
	Cancel       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),
		Toggle:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		AddChild:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add subtask")),
		AddRoot:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add task")),
		Delete:       key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		MoveEarlier:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move -1d")),
		MoveLater:    key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move +1d")),
		StartEarlier: key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "start -1d")),
		StartLater:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "start +1d")),
		EndEarlier:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "end -1d")),
		EndLater:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "end +1d")),
		Mode:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "weekly/monthly/all")),
		Submit:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit timesheet")),
		Resubmit:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "resubmit timesheet")),
		Narrow:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow grid")),
		Widen:        key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("+", "widen grid")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.AddChild, k.Delete, k.Mode, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Toggle},
		{k.AddChild, k.AddRoot, k.Delete, k.Reload},
		{k.MoveEarlier, k.MoveLater, k.StartEarlier, k.StartLater, k.EndEarlier, k.EndLater},
		{k.Mode, k.Submit, k.Resubmit, k.Narrow, k.Widen},
		{k.Cancel, k.Help, k.Quit},
	}
}
