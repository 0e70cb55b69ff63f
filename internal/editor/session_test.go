package editor

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"folio-cli/internal/document"
	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

var testNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

func newTestSession(seed Seed) *Session {
	return NewSession(Options{
		Gen:  ids.NewSequence(func() time.Time { return testNow }),
		Now:  func() time.Time { return testNow },
		Seed: seed,
	})
}

func TestNewSession_SampleSeed(t *testing.T) {
	s := newTestSession(SeedSample)
	st := s.Snapshot()
	if st.Meta.Title != "Aircraft Maintenance Manual - Boeing 737" {
		t.Fatalf("unexpected title %q", st.Meta.Title)
	}
	if len(st.Chapters) != 3 || len(st.Library) != 6 {
		t.Fatalf("unexpected seed: %d chapters, %d components", len(st.Chapters), len(st.Library))
	}
	// Auto-selection lands on 1.1.
	if st.Selection.SectionID != st.Chapters[0].Sections[0].ID {
		t.Fatalf("expected first section auto-selected")
	}
	if len(st.CurrentBlocks) != 2 || st.CurrentBlocks[0].Content != "Purpose & Scope" {
		t.Fatalf("unexpected current blocks %+v", st.CurrentBlocks)
	}
	if st.PendingInsert != nil {
		t.Fatalf("expected empty pending slot")
	}
}

func TestNewSession_EmptySeed(t *testing.T) {
	s := newTestSession(SeedEmpty)
	st := s.Snapshot()
	if len(st.Chapters) != 0 || len(st.Library) != 0 || st.Selection.SectionID != "" {
		t.Fatalf("expected empty session, got %+v", st)
	}
}

func TestConsumePendingInsert_AppendsCloneAndClears(t *testing.T) {
	s := newTestSession(SeedSample)
	sectionID := s.Selection().SectionID
	before := len(s.CurrentBlocks())

	tmpl, _ := s.lib.Component("lib-3")
	if !s.SetPendingInsert("lib-3") {
		t.Fatalf("expected pending set")
	}
	id, ok := s.ConsumePendingInsert()
	if !ok {
		t.Fatalf("expected insert")
	}

	bs := s.CurrentBlocks()
	if len(bs) != before+1 {
		t.Fatalf("expected exactly one new block, got %d -> %d", before, len(bs))
	}
	got := bs[len(bs)-1]
	if got.ID != id || got.ID == tmpl.Block.ID {
		t.Fatalf("inserted block must carry a fresh identity; got %q template %q", got.ID, tmpl.Block.ID)
	}
	if got.Type != tmpl.Block.Type || got.Content != tmpl.Block.Content || got.Label != tmpl.Block.Label {
		t.Fatalf("inserted block differs from template: %+v", got)
	}
	for k, v := range tmpl.Block.Properties {
		if got.Properties[k] != v {
			t.Fatalf("property %s: expected %q, got %q", k, v, got.Properties[k])
		}
	}
	if sel := s.Selection(); sel.SectionID != sectionID || sel.BlockID != id {
		t.Fatalf("expected inserted block selected, got %+v", sel)
	}
	if _, ok := s.PendingInsert(); ok {
		t.Fatalf("expected pending slot cleared")
	}

	// Re-evaluating the consumer must not insert twice.
	if _, ok := s.ConsumePendingInsert(); ok {
		t.Fatalf("second consume must be a no-op")
	}
	if len(s.CurrentBlocks()) != before+1 {
		t.Fatalf("duplicate insertion")
	}
}

func TestConsumePendingInsert_RepeatedInsertsGetDistinctIDs(t *testing.T) {
	s := newTestSession(SeedSample)
	a, _ := s.UseComponent("lib-6")
	b, _ := s.UseComponent("lib-6")
	if a == "" || b == "" || a == b {
		t.Fatalf("expected two distinct inserts, got %q and %q", a, b)
	}
}

func TestConsumePendingInsert_WaitsForSection(t *testing.T) {
	s := newTestSession(SeedEmpty)
	s.lib.Save(model.Block{ID: "blk-src", Type: model.BlockButton, Label: "Go", Content: "Go"}, "")
	comp := s.Components()[0]

	s.SetPendingInsert(comp.ID)
	if _, ok := s.ConsumePendingInsert(); ok {
		t.Fatalf("expected no insert without a section")
	}
	if _, ok := s.PendingInsert(); !ok {
		t.Fatalf("request must stay pending until a section exists")
	}

	ch := s.AddChapter()
	s.AddSection(ch)
	if _, ok := s.ConsumePendingInsert(); !ok {
		t.Fatalf("expected insert once a section exists")
	}
	if _, ok := s.PendingInsert(); ok {
		t.Fatalf("expected slot cleared")
	}
}

func TestSaveBlock_CopiesSelectedBlock(t *testing.T) {
	s := newTestSession(SeedSample)
	blocks := s.CurrentBlocks()
	s.SelectBlock(blocks[1].ID)

	c, ok := s.SaveSelectedBlock("Intro paragraph")
	if !ok {
		t.Fatalf("expected save")
	}
	if c.Block.ID == blocks[1].ID || c.Name != "Intro paragraph" || c.SavedAt != "2026-02-10" {
		t.Fatalf("unexpected component %+v", c)
	}
	if s.Components()[0].ID != c.ID {
		t.Fatalf("expected newest component first")
	}

	content := "rewritten"
	s.UpdateBlock(blocks[1].ID, document.BlockPatch{Content: &content})
	stored := s.Components()[0]
	if stored.Block.Content == content {
		t.Fatalf("library copy followed the document block")
	}

	if _, ok := s.SaveBlock("blk-missing", ""); ok {
		t.Fatalf("expected unknown block ignored")
	}
}

func TestSaveSelectedBlock_ConcurrentSelection(t *testing.T) {
	s := newTestSession(SeedSample)
	bs := s.CurrentBlocks()
	want := map[string]bool{bs[0].Content: true, bs[1].Content: true}
	s.SelectBlock(bs[0].ID)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.SelectBlock(bs[i%2].ID)
		}
	}()
	for i := 0; i < 200; i++ {
		c, ok := s.SaveSelectedBlock("")
		if !ok {
			t.Fatalf("expected the selected block saved on iteration %d", i)
		}
		if !want[c.Block.Content] {
			t.Fatalf("saved a block that was never selected: %+v", c.Block)
		}
	}
	wg.Wait()

	s.SelectBlock("")
	if _, ok := s.SaveSelectedBlock("none"); ok {
		t.Fatalf("expected no save without a block selection")
	}
}

func TestSession_LogsIgnoredOperations(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := NewSession(Options{Gen: ids.NewSequence(nil), Seed: SeedEmpty, Logger: zap.New(core)})

	s.DeleteChapter("ch-missing")
	s.AddChapter()

	if got := logs.FilterMessage("chapter deleted ignored").Len(); got != 1 {
		t.Fatalf("expected ignored delete logged once, got %d", got)
	}
	if got := logs.FilterMessage("chapter added").Len(); got != 1 {
		t.Fatalf("expected add logged once, got %d", got)
	}
}
