package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Add      key.Binding
	Edit     key.Binding
	Done     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	DayBack  key.Binding
	DayFwd   key.Binding
	Today    key.Binding
	Timer    key.Binding
	Reset    key.Binding
	Switch   key.Binding
	Select   key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Tab:      key.NewBinding(key.WithKeys("tab", "1", "2", "3", "4"), key.WithHelp("tab/1-4", "switch tab")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	MoveUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
	PrevDay:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move to previous day")),
	NextDay:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move to next day")),
	DayBack:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous day")),
	DayFwd:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
	Today:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to today")),
	Timer:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
	Switch:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "focus/break")),
	Select:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time this task")),
	Theme:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "cycle theme")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// ShortHelp is shown in the status bar
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Done, k.Delete, k.Timer, k.Help, k.Quit}
}

// FullHelp is shown on the help screen
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.DayBack, k.DayFwd, k.Today},
		{k.Add, k.Edit, k.Done, k.Delete},
		{k.MoveUp, k.MoveDown, k.PrevDay, k.NextDay},
		{k.Timer, k.Reset, k.Switch, k.Select},
		{k.Theme, k.Help, k.Quit},
	}
}
