// Package editor joins the document and the component library into one editing
// session. It owns the pending-insert consumer and serializes access so a
// presentation layer can drive it from any goroutine.
package editor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"folio-cli/internal/blocks"
	"folio-cli/internal/document"
	"folio-cli/internal/ids"
	"folio-cli/internal/library"
	"folio-cli/internal/model"
)

type Options struct {
	Gen    ids.Generator
	Now    func() time.Time
	Logger *zap.Logger
	Seed   Seed
	Meta   model.Meta
}

type Session struct {
	mu  sync.Mutex
	gen ids.Generator
	doc *document.Model
	lib *library.Library
	log *zap.Logger
}

// State is a point-in-time copy of everything a caller can query.
type State struct {
	Meta          model.Meta               `json:"meta" yaml:"meta"`
	Chapters      []model.Chapter          `json:"chapters" yaml:"chapters"`
	Selection     model.Selection          `json:"selection" yaml:"selection"`
	CurrentBlocks []model.Block            `json:"currentBlocks" yaml:"currentBlocks"`
	Library       []model.LibraryComponent `json:"library" yaml:"library"`
	PendingInsert *model.LibraryComponent  `json:"pendingInsert" yaml:"pendingInsert"`
}

func NewSession(opt Options) *Session {
	gen := opt.Gen
	if gen == nil {
		gen = ids.Default()
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	meta := opt.Meta

	var doc *document.Model
	var lib *library.Library
	if opt.Seed == SeedEmpty {
		doc = document.NewFrom(gen, meta, nil)
		lib = library.New(gen, opt.Now)
	} else {
		if meta.Title == "" {
			meta.Title = sampleTitle
		}
		doc = document.NewFrom(gen, meta, SampleChapters(gen))
		lib = library.NewFrom(gen, opt.Now, SampleComponents())
	}
	return &Session{gen: gen, doc: doc, lib: lib, log: log}
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Meta:          s.doc.Meta(),
		Chapters:      s.doc.Chapters(),
		Selection:     s.doc.Selection(),
		CurrentBlocks: s.doc.CurrentBlocks(),
		Library:       s.lib.Components(),
	}
	if c, ok := s.lib.PendingInsert(); ok {
		st.PendingInsert = &c
	}
	return st
}

func (s *Session) Meta() model.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Meta()
}

func (s *Session) Chapters() []model.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Chapters()
}

func (s *Session) Section(id string) (model.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Section(id)
}

func (s *Session) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Selection()
}

func (s *Session) CurrentBlocks() []model.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.CurrentBlocks()
}

func (s *Session) SelectedBlock() (model.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.SelectedBlock()
}

func (s *Session) Components() []model.LibraryComponent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.Components()
}

func (s *Session) SearchLibrary(query string) []model.LibraryComponent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.Search(query)
}

func (s *Session) PendingInsert() (model.LibraryComponent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.PendingInsert()
}

// logResult records a mutation outcome. Ignored operations are not errors.
func (s *Session) logResult(op string, changed bool, fields ...zap.Field) bool {
	if changed {
		s.log.Debug(op, fields...)
	} else {
		s.log.Debug(op+" ignored", fields...)
	}
	return changed
}

func (s *Session) SetTitle(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("title set", s.doc.SetTitle(title), zap.String("title", title))
}

func (s *Session) AddChapter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.doc.AddChapter()
	s.logResult("chapter added", true, zap.String("chapter", id))
	return id
}

func (s *Session) AddSection(chapterID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.doc.AddSection(chapterID)
	s.logResult("section added", ok, zap.String("chapter", chapterID), zap.String("section", id))
	return id, ok
}

func (s *Session) AddSubsection(sectionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.doc.AddSubsection(sectionID)
	s.logResult("subsection added", ok, zap.String("parent", sectionID), zap.String("section", id))
	return id, ok
}

func (s *Session) RenameChapter(chapterID, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("chapter renamed", s.doc.RenameChapter(chapterID, title), zap.String("chapter", chapterID))
}

func (s *Session) RenameSection(sectionID, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("section renamed", s.doc.RenameSection(sectionID, title), zap.String("section", sectionID))
}

func (s *Session) ToggleChapter(chapterID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("chapter toggled", s.doc.ToggleChapter(chapterID), zap.String("chapter", chapterID))
}

func (s *Session) ToggleSection(sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("section toggled", s.doc.ToggleSection(sectionID), zap.String("section", sectionID))
}

func (s *Session) DeleteChapter(chapterID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("chapter deleted", s.doc.DeleteChapter(chapterID), zap.String("chapter", chapterID))
}

func (s *Session) DeleteSection(sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("section deleted", s.doc.DeleteSection(sectionID), zap.String("section", sectionID))
}

func (s *Session) SelectSection(sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SelectSection(sectionID)
}

func (s *Session) SelectBlock(blockID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SelectBlock(blockID)
}

func (s *Session) AddBlock(t model.BlockType) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.doc.AddBlock(t)
	s.logResult("block added", ok, zap.String("type", string(t)), zap.String("block", id))
	return id, ok
}

func (s *Session) UpdateBlock(blockID string, patch document.BlockPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("block updated", s.doc.UpdateBlock(blockID, patch), zap.String("block", blockID))
}

func (s *Session) DeleteBlock(blockID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("block deleted", s.doc.DeleteBlock(blockID), zap.String("block", blockID))
}

func (s *Session) MoveBlock(blockID string, dir document.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("block moved", s.doc.MoveBlock(blockID, dir), zap.String("block", blockID), zap.String("direction", string(dir)))
}

func (s *Session) SetBlockProperty(blockID, key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("block property set", s.doc.SetBlockProperty(blockID, key, value), zap.String("block", blockID), zap.String("key", key))
}

func (s *Session) SetPostCondition(blockID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("post-condition set", s.doc.SetPostCondition(blockID, text), zap.String("block", blockID))
}

func (s *Session) AddPreCondition(blockID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.doc.AddPreCondition(blockID)
	s.logResult("pre-condition added", ok, zap.String("block", blockID), zap.String("condition", id))
	return id, ok
}

func (s *Session) UpdatePreCondition(blockID, condID string, patch document.PreConditionPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("pre-condition updated", s.doc.UpdatePreCondition(blockID, condID, patch), zap.String("block", blockID), zap.String("condition", condID))
}

func (s *Session) RemovePreCondition(blockID, condID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("pre-condition removed", s.doc.RemovePreCondition(blockID, condID), zap.String("block", blockID), zap.String("condition", condID))
}

// SaveBlock stores a copy of blockID (looked up in the current section) in the library.
func (s *Session) SaveBlock(blockID, name string) (model.LibraryComponent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(blockID, name)
}

// SaveSelectedBlock saves the selected block, if any. The selection is read and
// saved under the same lock.
func (s *Session) SaveSelectedBlock(name string) (model.LibraryComponent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(s.doc.SelectedBlockID(), name)
}

func (s *Session) saveLocked(blockID, name string) (model.LibraryComponent, bool) {
	for _, b := range s.doc.CurrentBlocks() {
		if b.ID != blockID {
			continue
		}
		c := s.lib.Save(b, name)
		s.logResult("block saved to library", true, zap.String("block", blockID), zap.String("component", c.ID))
		return c, true
	}
	s.logResult("block saved to library", false, zap.String("block", blockID))
	return model.LibraryComponent{}, false
}

func (s *Session) RemoveFromLibrary(componentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logResult("component removed", s.lib.Remove(componentID), zap.String("component", componentID))
}

// SetPendingInsert fills the handoff slot with componentID ("" clears it).
func (s *Session) SetPendingInsert(componentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPendingLocked(componentID)
}

func (s *Session) setPendingLocked(componentID string) bool {
	if componentID == "" {
		s.lib.SetPendingInsert(nil)
		return s.logResult("pending insert cleared", true)
	}
	c, ok := s.lib.Component(componentID)
	if !ok {
		return s.logResult("pending insert set", false, zap.String("component", componentID))
	}
	s.lib.SetPendingInsert(&c)
	return s.logResult("pending insert set", true, zap.String("component", componentID))
}

// ConsumePendingInsert appends a fresh clone of the pending template to the
// selected section, selects it and clears the slot. The slot is taken and
// cleared under the same lock as the insert, so a request is inserted at most
// once however often this is called. With no selected section the request
// stays pending.
func (s *Session) ConsumePendingInsert() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumeLocked()
}

func (s *Session) consumeLocked() (string, bool) {
	sectionID := s.doc.SelectedSectionID()
	if sectionID == "" {
		return "", false
	}
	c, ok := s.lib.TakePendingInsert()
	if !ok {
		return "", false
	}
	clone := blocks.Clone(s.gen, c.Block)
	appended := s.doc.UpdateSectionBlocks(sectionID, func(bs []model.Block) []model.Block {
		return append(bs, clone)
	})
	if !appended {
		// Child sections don't hold insertable blocks; keep the request.
		s.lib.SetPendingInsert(&c)
		s.logResult("component inserted", false, zap.String("component", c.ID), zap.String("section", sectionID))
		return "", false
	}
	s.doc.SelectBlock(clone.ID)
	s.logResult("component inserted", true, zap.String("component", c.ID), zap.String("section", sectionID), zap.String("block", clone.ID))
	return clone.ID, true
}

// UseComponent requests an insert of componentID and consumes it right away.
func (s *Session) UseComponent(componentID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.setPendingLocked(componentID) {
		return "", false
	}
	return s.consumeLocked()
}
