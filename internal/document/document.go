// Package document owns the outline (chapters, sections, one level of child
// sections, blocks) and the current selection.
//
// Every operation takes identities. An identity that matches nothing makes the
// operation a no-op; block-scoped operations are no-ops while no section is
// selected. Mutators report whether anything changed.
package document

import (
	"fmt"
	"strings"

	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

const defaultTitle = "Untitled Document"

type Model struct {
	gen      ids.Generator
	meta     model.Meta
	chapters []model.Chapter

	// Selection by identity; "" means none. The effective section selection is
	// derived on read (see SelectedSectionID).
	sectionID string
	blockID   string
}

// New returns an empty document. A nil generator uses ids.Default().
func New(gen ids.Generator) *Model {
	if gen == nil {
		gen = ids.Default()
	}
	return &Model{gen: gen, meta: model.Meta{Title: defaultTitle}, chapters: []model.Chapter{}}
}

// NewFrom returns a document holding deep copies of chapters.
func NewFrom(gen ids.Generator, meta model.Meta, chapters []model.Chapter) *Model {
	m := New(gen)
	if strings.TrimSpace(meta.Title) != "" {
		m.meta.Title = strings.TrimSpace(meta.Title)
	}
	m.meta.Author = strings.TrimSpace(meta.Author)
	for _, ch := range chapters {
		m.chapters = append(m.chapters, ch.Copy())
	}
	return m
}

func (m *Model) Meta() model.Meta { return m.meta }

// SetTitle sets the document title. Blank input is ignored.
func (m *Model) SetTitle(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" || title == m.meta.Title {
		return false
	}
	m.meta.Title = title
	return true
}

// Chapters returns a deep copy of the outline.
func (m *Model) Chapters() []model.Chapter {
	out := make([]model.Chapter, 0, len(m.chapters))
	for _, ch := range m.chapters {
		out = append(out, ch.Copy())
	}
	return out
}

func (m *Model) Chapter(id string) (model.Chapter, bool) {
	i := m.chapterIndex(id)
	if i < 0 {
		return model.Chapter{}, false
	}
	return m.chapters[i].Copy(), true
}

// Section looks id up among top-level sections and their direct children.
func (m *Model) Section(id string) (model.Section, bool) {
	s := m.findSection(id)
	if s == nil {
		return model.Section{}, false
	}
	return s.Copy(), true
}

func (m *Model) AddChapter() string {
	ch := model.Chapter{
		ID:       m.gen.New(ids.PrefixChapter),
		Title:    fmt.Sprintf("Chapter %d: New Chapter", len(m.chapters)+1),
		Sections: []model.Section{},
		Expanded: true,
	}
	m.chapters = append(m.chapters, ch)
	return ch.ID
}

func (m *Model) AddSection(chapterID string) (string, bool) {
	ci := m.chapterIndex(chapterID)
	if ci < 0 {
		return "", false
	}
	ch := &m.chapters[ci]
	sec := newSection(m.gen, fmt.Sprintf("%d.%d New Section", ci+1, len(ch.Sections)+1))
	ch.Sections = append(ch.Sections, sec)
	return sec.ID, true
}

// AddSubsection appends a child to a top-level section.
func (m *Model) AddSubsection(sectionID string) (string, bool) {
	for ci := range m.chapters {
		for si := range m.chapters[ci].Sections {
			s := &m.chapters[ci].Sections[si]
			if s.ID != sectionID {
				continue
			}
			child := newSection(m.gen, fmt.Sprintf("%d.%d.%d New Section", ci+1, si+1, len(s.Children)+1))
			s.Children = append(s.Children, child)
			return child.ID, true
		}
	}
	return "", false
}

func newSection(gen ids.Generator, title string) model.Section {
	return model.Section{
		ID:       gen.New(ids.PrefixSection),
		Title:    title,
		Blocks:   []model.Block{},
		Children: []model.Section{},
		Expanded: false,
	}
}

// RenameChapter sets a trimmed title. Blank input keeps the current title.
func (m *Model) RenameChapter(chapterID, title string) bool {
	title = strings.TrimSpace(title)
	i := m.chapterIndex(chapterID)
	if i < 0 || title == "" {
		return false
	}
	m.chapters[i].Title = title
	return true
}

// RenameSection is RenameChapter for sections (top-level or one level nested).
func (m *Model) RenameSection(sectionID, title string) bool {
	title = strings.TrimSpace(title)
	s := m.findSection(sectionID)
	if s == nil || title == "" {
		return false
	}
	s.Title = title
	return true
}

func (m *Model) ToggleChapter(chapterID string) bool {
	i := m.chapterIndex(chapterID)
	if i < 0 {
		return false
	}
	m.chapters[i].Expanded = !m.chapters[i].Expanded
	return true
}

func (m *Model) ToggleSection(sectionID string) bool {
	s := m.findSection(sectionID)
	if s == nil {
		return false
	}
	s.Expanded = !s.Expanded
	return true
}

// DeleteChapter removes the chapter with everything in it. When the selected
// section lived there, section and block selection are cleared.
func (m *Model) DeleteChapter(chapterID string) bool {
	i := m.chapterIndex(chapterID)
	if i < 0 {
		return false
	}
	selected := m.SelectedSectionID()
	if selected != "" {
		for _, s := range m.chapters[i].Sections {
			if sectionContains(s, selected) {
				m.clearSelection()
				break
			}
		}
	}
	m.chapters = append(m.chapters[:i], m.chapters[i+1:]...)
	return true
}

// DeleteSection removes a top-level or child section. Selection is cleared when
// it pointed at the section or at one of its children.
func (m *Model) DeleteSection(sectionID string) bool {
	selected := m.SelectedSectionID()
	for ci := range m.chapters {
		ch := &m.chapters[ci]
		for si := range ch.Sections {
			s := ch.Sections[si]
			if s.ID == sectionID {
				if selected != "" && sectionContains(s, selected) {
					m.clearSelection()
				}
				ch.Sections = append(ch.Sections[:si], ch.Sections[si+1:]...)
				return true
			}
			for ki, child := range s.Children {
				if child.ID != sectionID {
					continue
				}
				if selected == child.ID {
					m.clearSelection()
				}
				ch.Sections[si].Children = append(s.Children[:ki], s.Children[ki+1:]...)
				return true
			}
		}
	}
	return false
}

func sectionContains(s model.Section, id string) bool {
	if s.ID == id {
		return true
	}
	for _, c := range s.Children {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) clearSelection() {
	m.sectionID = ""
	m.blockID = ""
}

// SelectSection sets the section selection ("" clears it). Block selection is
// left alone.
func (m *Model) SelectSection(sectionID string) {
	m.sectionID = strings.TrimSpace(sectionID)
}

func (m *Model) SelectBlock(blockID string) {
	m.blockID = strings.TrimSpace(blockID)
}

// SelectedSectionID returns the effective section selection: the explicit one,
// or, when there is none, the first section of the first chapter.
func (m *Model) SelectedSectionID() string {
	if m.sectionID != "" {
		return m.sectionID
	}
	if len(m.chapters) > 0 && len(m.chapters[0].Sections) > 0 {
		return m.chapters[0].Sections[0].ID
	}
	return ""
}

func (m *Model) SelectedBlockID() string { return m.blockID }

func (m *Model) Selection() model.Selection {
	return model.Selection{SectionID: m.SelectedSectionID(), BlockID: m.blockID}
}

// CurrentBlocks returns a copy of the selected section's blocks.
func (m *Model) CurrentBlocks() []model.Block {
	s := m.findSection(m.SelectedSectionID())
	if s == nil {
		return []model.Block{}
	}
	out := make([]model.Block, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		out = append(out, b.Copy())
	}
	return out
}

// SelectedBlock looks the block selection up within the current blocks.
func (m *Model) SelectedBlock() (model.Block, bool) {
	if m.blockID == "" {
		return model.Block{}, false
	}
	for _, b := range m.CurrentBlocks() {
		if b.ID == m.blockID {
			return b, true
		}
	}
	return model.Block{}, false
}

func (m *Model) chapterIndex(id string) int {
	for i := range m.chapters {
		if m.chapters[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) findSection(id string) *model.Section {
	if id == "" {
		return nil
	}
	for ci := range m.chapters {
		for si := range m.chapters[ci].Sections {
			s := &m.chapters[ci].Sections[si]
			if s.ID == id {
				return s
			}
			for ki := range s.Children {
				if s.Children[ki].ID == id {
					return &s.Children[ki]
				}
			}
		}
	}
	return nil
}

// ChapterOf returns the chapter holding sectionID (at either level).
func (m *Model) ChapterOf(sectionID string) (model.Chapter, bool) {
	for _, ch := range m.chapters {
		for _, s := range ch.Sections {
			if sectionContains(s, sectionID) {
				return ch.Copy(), true
			}
		}
	}
	return model.Chapter{}, false
}
