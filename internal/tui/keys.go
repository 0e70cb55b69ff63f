package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"folio-cli/internal/model"
)

type keyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Up      key.Binding
	Down    key.Binding
	Focus   key.Binding
	Select  key.Binding
	Toggle  key.Binding
	Title   key.Binding
	Chapter key.Binding
	Add     key.Binding
	Rename  key.Binding
	Delete  key.Binding

	EditContent key.Binding
	EditLabel   key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	DeleteBlock key.Binding
	Save        key.Binding

	Library key.Binding
	Preview key.Binding
	Search  key.Binding
	Remove  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "expand/collapse")),
		Title:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "document title")),
		Chapter: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "add chapter")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add section")),
		Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),

		EditContent: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit content")),
		EditLabel:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "edit label")),
		MoveUp:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		DeleteBlock: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete block")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save to library")),

		Library: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "library")),
		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
	}
}

// paletteKeys maps 1..9,0 to the block types in palette order.
var paletteKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

func paletteType(k string) (model.BlockType, bool) {
	types := model.BlockTypes()
	for i, pk := range paletteKeys {
		if pk == k && i < len(types) {
			return types[i], true
		}
	}
	return "", false
}
