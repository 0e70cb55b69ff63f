package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"folio-cli/internal/document"
	"folio-cli/internal/editor"
	"folio-cli/internal/model"
	"folio-cli/internal/publish"
)

type view int

const (
	viewEditor view = iota
	viewLibrary
	viewPreview
)

type pane int

const (
	paneOutline pane = iota
	paneBlocks
)

type promptKind int

const (
	promptNone promptKind = iota
	promptTitle
	promptRenameChapter
	promptRenameSection
	promptContent
	promptLabel
	promptSaveName
	promptSearch
)

// consumePendingMsg asks the editor to run the pending-insert consumer.
type consumePendingMsg struct{}

func consumePending() tea.Msg { return consumePendingMsg{} }

type appModel struct {
	s    *editor.Session
	opt  Options
	keys keyMap

	width  int
	height int

	view view
	pane pane
	row  int
	lib  int

	query string

	prompt    promptKind
	promptFor string
	input     textinput.Model
	preview   viewport.Model

	flash string
}

func newAppModel(s *editor.Session, opt Options) appModel {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 1000
	in.Cursor.SetMode(cursor.CursorStatic)

	m := appModel{
		s:       s,
		opt:     opt,
		keys:    defaultKeyMap(),
		width:   100,
		height:  30,
		input:   in,
		preview: viewport.New(96, 24),
	}
	if i := rowIndex(m.rows(), s.Selection().SectionID); i >= 0 {
		m.row = i
	}
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) rows() []outlineRow {
	return flattenOutline(m.s.Chapters())
}

func (m appModel) components() []model.LibraryComponent {
	return m.s.SearchLibrary(m.query)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview.Width = max(msg.Width-4, 20)
		m.preview.Height = max(msg.Height-4, 5)
		if m.view == viewPreview {
			m.refreshPreview()
		}
		return m, nil

	case consumePendingMsg:
		if id, ok := m.s.ConsumePendingInsert(); ok {
			m.flash = "Inserted block " + id
		} else if c, pending := m.s.PendingInsert(); pending {
			m.flash = "Select a section to insert “" + c.Name + "”"
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		m.flash = ""
		switch m.view {
		case viewLibrary:
			return m.updateLibrary(msg)
		case viewPreview:
			return m.updatePreview(msg)
		default:
			return m.updateEditor(msg)
		}
	}
	return m, nil
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Focus):
		if m.pane == paneOutline {
			m.pane = paneBlocks
		} else {
			m.pane = paneOutline
		}
		return m, nil
	case key.Matches(msg, k.Library):
		m.view = viewLibrary
		m.lib = 0
		return m, nil
	case key.Matches(msg, k.Preview):
		m.view = viewPreview
		m.refreshPreview()
		m.preview.GotoTop()
		return m, nil
	case key.Matches(msg, k.Title):
		cmd := m.openPrompt(promptTitle, "", m.s.Meta().Title)
		return m, cmd
	case key.Matches(msg, k.Chapter):
		id := m.s.AddChapter()
		m.pane = paneOutline
		m.row = rowIndex(m.rows(), id)
		return m, nil
	}

	if t, ok := paletteType(msg.String()); ok {
		if _, added := m.s.AddBlock(t); !added {
			m.flash = "Select a top-level section to add blocks"
		}
		return m, nil
	}

	if m.pane == paneBlocks {
		return m.updateBlocks(msg)
	}
	return m.updateOutline(msg)
}

func (m appModel) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	if len(rows) == 0 {
		return m, nil
	}
	m.row = clamp(m.row, 0, len(rows)-1)
	r := rows[m.row]
	k := m.keys

	switch {
	case key.Matches(msg, k.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, k.Down):
		if m.row < len(rows)-1 {
			m.row++
		}
	case key.Matches(msg, k.Select):
		if r.kind == rowChapter {
			m.s.ToggleChapter(r.id)
			return m, nil
		}
		m.s.SelectSection(r.id)
		m.pane = paneBlocks
		// A request parked while nothing was selected lands now.
		return m, consumePending
	case key.Matches(msg, k.Toggle):
		switch r.kind {
		case rowChapter:
			m.s.ToggleChapter(r.id)
		case rowSection:
			m.s.ToggleSection(r.id)
		}
	case key.Matches(msg, k.Add):
		switch r.kind {
		case rowChapter:
			if !r.expanded {
				m.s.ToggleChapter(r.id)
			}
			if id, ok := m.s.AddSection(r.id); ok {
				m.row = rowIndex(m.rows(), id)
			}
		case rowSection:
			if !r.expanded {
				m.s.ToggleSection(r.id)
			}
			if id, ok := m.s.AddSubsection(r.id); ok {
				m.row = rowIndex(m.rows(), id)
			}
		default:
			m.flash = "Sections nest one level deep"
		}
	case key.Matches(msg, k.Rename):
		if r.kind == rowChapter {
			cmd := m.openPrompt(promptRenameChapter, r.id, r.title)
			return m, cmd
		}
		cmd := m.openPrompt(promptRenameSection, r.id, r.title)
		return m, cmd
	case key.Matches(msg, k.Delete):
		if r.kind == rowChapter {
			m.s.DeleteChapter(r.id)
		} else {
			m.s.DeleteSection(r.id)
		}
		m.row = clamp(m.row, 0, len(m.rows())-1)
	}
	return m, nil
}

func (m appModel) updateBlocks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bs := m.s.CurrentBlocks()
	sel := m.s.Selection().BlockID
	idx := -1
	for i, b := range bs {
		if b.ID == sel {
			idx = i
		}
	}
	k := m.keys

	switch {
	case key.Matches(msg, k.Up):
		if len(bs) > 0 {
			m.s.SelectBlock(bs[clamp(idx-1, 0, len(bs)-1)].ID)
		}
	case key.Matches(msg, k.Down):
		if len(bs) > 0 {
			m.s.SelectBlock(bs[clamp(idx+1, 0, len(bs)-1)].ID)
		}
	case key.Matches(msg, k.EditContent):
		if b, ok := m.s.SelectedBlock(); ok {
			cmd := m.openPrompt(promptContent, b.ID, b.Content)
			return m, cmd
		}
	case key.Matches(msg, k.EditLabel):
		if b, ok := m.s.SelectedBlock(); ok {
			cmd := m.openPrompt(promptLabel, b.ID, b.Label)
			return m, cmd
		}
	case key.Matches(msg, k.MoveUp):
		m.s.MoveBlock(sel, document.Up)
	case key.Matches(msg, k.MoveDown):
		m.s.MoveBlock(sel, document.Down)
	case key.Matches(msg, k.DeleteBlock):
		m.s.DeleteBlock(sel)
	case key.Matches(msg, k.Save):
		if b, ok := m.s.SelectedBlock(); ok {
			cmd := m.openPrompt(promptSaveName, b.ID, b.Label)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	comps := m.components()
	m.lib = clamp(m.lib, 0, len(comps)-1)
	k := m.keys

	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Quit):
		m.view = viewEditor
	case key.Matches(msg, k.Up):
		if m.lib > 0 {
			m.lib--
		}
	case key.Matches(msg, k.Down):
		if m.lib < len(comps)-1 {
			m.lib++
		}
	case key.Matches(msg, k.Search):
		cmd := m.openPrompt(promptSearch, "", m.query)
		return m, cmd
	case key.Matches(msg, k.Remove):
		if len(comps) > 0 {
			m.s.RemoveFromLibrary(comps[m.lib].ID)
			m.lib = clamp(m.lib, 0, len(m.components())-1)
		}
	case key.Matches(msg, k.Select):
		if len(comps) == 0 {
			return m, nil
		}
		if m.s.SetPendingInsert(comps[m.lib].ID) {
			m.view = viewEditor
			m.pane = paneBlocks
			return m, consumePending
		}
	}
	return m, nil
}

func (m appModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) {
		m.view = viewEditor
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.prompt == promptSearch {
			m.query = ""
		}
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		kind, id, v := m.prompt, m.promptFor, m.input.Value()
		m.closePrompt()
		m.applyPrompt(kind, id, v)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptSearch {
		m.query = m.input.Value()
		m.lib = 0
	}
	return m, cmd
}

func (m *appModel) applyPrompt(kind promptKind, id, v string) {
	switch kind {
	case promptTitle:
		m.s.SetTitle(v)
	case promptRenameChapter:
		m.s.RenameChapter(id, v)
	case promptRenameSection:
		m.s.RenameSection(id, v)
	case promptContent:
		m.s.UpdateBlock(id, document.BlockPatch{Content: &v})
	case promptLabel:
		m.s.UpdateBlock(id, document.BlockPatch{Label: &v})
	case promptSaveName:
		if c, ok := m.s.SaveBlock(id, v); ok {
			m.flash = "Saved “" + c.Name + "” to library"
		}
	case promptSearch:
		m.query = strings.TrimSpace(v)
	}
}

func (m *appModel) openPrompt(kind promptKind, id, value string) tea.Cmd {
	m.prompt = kind
	m.promptFor = id
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *appModel) closePrompt() {
	m.prompt = promptNone
	m.promptFor = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *appModel) refreshPreview() {
	md := publish.RenderDocument(m.s.Meta(), m.s.Chapters(), publish.RenderOptions{
		IndexStyle: m.opt.IndexStyle,
		TOC:        true,
	})
	m.preview.SetContent(RenderMarkdown(md, m.preview.Width-2))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
