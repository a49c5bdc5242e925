package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Search   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	LoadMore key.Binding
	Back     key.Binding
	Clear    key.Binding
	Close    key.Binding
	Cry      key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		LoadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Back:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "back to list")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear search")),
		Close:    key.NewBinding(key.WithKeys("x"), key.WithHelp("esc/x", "close")),
		Cry:      key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "play cry")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.LoadMore, k.Clear, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Search, k.Open, k.LoadMore, k.Back, k.Clear},
		{k.Close, k.Cry, k.Quit},
	}
}

// matches reports whether an enabled binding carries the key string of a tea.KeyMsg.
func matches(k string, b key.Binding) bool {
	if !b.Enabled() {
		return false
	}
	for _, bk := range b.Keys() {
		if bk == k {
			return true
		}
	}
	return false
}

type overlayHelp struct {
	keys KeyMap
}

func (h overlayHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Close, h.keys.Cry}
}

func (h overlayHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
