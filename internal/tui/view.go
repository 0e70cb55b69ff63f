package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"folio-cli/internal/blocks"
	"folio-cli/internal/model"
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewLibrary:
		body = m.viewLibrary()
	case viewPreview:
		body = m.preview.View()
	default:
		body = m.viewEditor()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewFooter())
}

func (m appModel) viewHeader() string {
	meta := m.s.Meta()
	where := "Editor"
	switch m.view {
	case viewLibrary:
		where = "Library"
	case viewPreview:
		where = "Preview"
	}
	line := styleTitle().Render(meta.Title) + styleMuted().Render("  ·  "+where)
	if c, ok := m.s.PendingInsert(); ok {
		line += styleAccent().Render("  ⇢ " + c.Name)
	}
	return truncate(line, m.width)
}

func (m appModel) viewFooter() string {
	if m.prompt != promptNone {
		return renderInputLine(m.width, promptText(m.prompt), m.input.View())
	}
	if m.flash != "" {
		return lipgloss.NewStyle().Foreground(colorFlashFg).Render(truncate(m.flash, m.width))
	}
	var bs []key.Binding
	k := m.keys
	switch m.view {
	case viewLibrary:
		bs = []key.Binding{k.Select, k.Search, k.Remove, k.Back}
	case viewPreview:
		bs = []key.Binding{k.Up, k.Down, k.Back}
	default:
		if m.pane == paneBlocks {
			bs = []key.Binding{k.Focus, k.EditContent, k.EditLabel, k.MoveUp, k.MoveDown, k.DeleteBlock, k.Save, k.Library, k.Preview, k.Quit}
		} else {
			bs = []key.Binding{k.Focus, k.Select, k.Toggle, k.Chapter, k.Add, k.Rename, k.Delete, k.Library, k.Preview, k.Quit}
		}
	}
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleMuted().Render(truncate(strings.Join(parts, "  "), m.width))
}

func promptText(p promptKind) string {
	switch p {
	case promptTitle:
		return "Title:"
	case promptRenameChapter, promptRenameSection:
		return "Rename:"
	case promptContent:
		return "Content:"
	case promptLabel:
		return "Label:"
	case promptSaveName:
		return "Save as:"
	case promptSearch:
		return "Search:"
	default:
		return ""
	}
}

func (m appModel) paneSize() (outlineW, blocksW, h int) {
	h = max(m.height-4, 3)
	outlineW = max(m.width/3, 24)
	blocksW = max(m.width-outlineW-4, 20)
	return outlineW, blocksW, h
}

func (m appModel) viewEditor() string {
	outlineW, blocksW, h := m.paneSize()
	left := stylePane(m.pane == paneOutline).Width(outlineW).Height(h).Render(strings.Join(m.outlineLines(outlineW-2), "\n"))
	right := stylePane(m.pane == paneBlocks).Width(blocksW).Height(h).Render(strings.Join(m.blockLines(blocksW-2), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m appModel) outlineLines(w int) []string {
	rows := m.rows()
	if len(rows) == 0 {
		return []string{styleMuted().Render("No chapters. Press C to add one.")}
	}
	selected := m.s.Selection().SectionID
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		twisty := glyphLeaf()
		if r.hasChildren || r.kind == rowChapter {
			twisty = glyphTwistyCollapsed()
			if r.expanded {
				twisty = glyphTwistyExpanded()
			}
		}
		marker := " "
		if r.id == selected {
			marker = glyphSelected()
		}
		line := truncate(strings.Repeat("  ", r.depth)+twisty+" "+r.title, w-2)
		switch {
		case m.pane == paneOutline && i == m.row:
			line = styleSelected().Render(line)
		case r.kind == rowChapter:
			line = styleTitle().Render(line)
		}
		lines = append(lines, marker+" "+line)
	}
	return lines
}

func (m appModel) blockLines(w int) []string {
	sectionID := m.s.Selection().SectionID
	sec, ok := m.s.Section(sectionID)
	if !ok {
		return []string{styleMuted().Render("No section selected.")}
	}
	lines := []string{styleTitle().Render(truncate(sec.Title, w)), ""}
	if len(sec.Blocks) == 0 {
		lines = append(lines, styleMuted().Render("No blocks yet."))
	}
	sel := m.s.Selection().BlockID
	for _, b := range sec.Blocks {
		lines = append(lines, m.blockLine(b, b.ID == sel, w))
	}
	lines = append(lines, "", styleMuted().Render(truncate(paletteHint(), w)))
	return lines
}

func (m appModel) blockLine(b model.Block, selected bool, w int) string {
	cond := ""
	if len(b.PreConditions) > 0 {
		cond = " " + glyphCondition()
	}
	text := fmt.Sprintf("[%s] %s: %s%s", b.Type, b.Label, strings.ReplaceAll(b.Content, "\n", " "), cond)
	text = truncate(text, w)
	if selected {
		return styleSelected().Render(text)
	}
	return text
}

func paletteHint() string {
	types := model.BlockTypes()
	parts := make([]string, 0, len(types))
	for i, t := range types {
		parts = append(parts, paletteKeys[i]+" "+string(t))
	}
	return "Add: " + strings.Join(parts, "  ")
}

func (m appModel) viewLibrary() string {
	_, _, h := m.paneSize()
	w := max(m.width-4, 20)
	comps := m.components()
	lines := make([]string, 0, len(comps)+2)
	if m.query != "" {
		lines = append(lines, styleMuted().Render("Filter: "+m.query), "")
	}
	if len(comps) == 0 {
		lines = append(lines, styleMuted().Render("No saved components."))
	}
	for i, c := range comps {
		line := truncate(fmt.Sprintf("%-24s %-10s %s  %s", c.Name, c.Type, c.SavedAt, blocks.Preview(c.Preview)), w)
		if i == m.lib {
			line = styleSelected().Render(line)
		}
		lines = append(lines, line)
	}
	return stylePane(true).Width(w).Height(h).Render(strings.Join(lines, "\n"))
}
