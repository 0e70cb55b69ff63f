package library

import (
	"strings"
	"testing"
	"time"

	"folio-cli/internal/blocks"
	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

var testNow = time.Date(2026, 2, 10, 15, 4, 5, 0, time.UTC)

func newTestLibrary() (*Library, ids.Generator) {
	gen := ids.NewSequence(func() time.Time { return testNow })
	return New(gen, func() time.Time { return testNow }), gen
}

func TestSave_CopiesUnderNewIdentity(t *testing.T) {
	l, gen := newTestLibrary()
	src := blocks.New(gen, model.BlockParagraph)
	src.Content = "Warning: Follow all safety procedures."

	c := l.Save(src, "")
	if c.Block.ID == src.ID {
		t.Fatalf("saved block must not reuse the source identity")
	}
	if c.Name != "Paragraph" || c.Type != model.BlockParagraph || c.SavedAt != "2026-02-10" {
		t.Fatalf("unexpected component %+v", c)
	}
	if c.Preview != src.Content {
		t.Fatalf("unexpected preview %q", c.Preview)
	}

	src.Content = "changed"
	src.Properties[model.PropColor] = "#dc2626"
	stored, _ := l.Component(c.ID)
	if stored.Block.Content != "Warning: Follow all safety procedures." || stored.Block.Properties[model.PropColor] != "#1e293b" {
		t.Fatalf("mutating the source changed the saved copy: %+v", stored.Block)
	}
}

func TestSave_SavedAtUsesUTCDate(t *testing.T) {
	// 23:30 on Feb 9 at UTC-5 is already Feb 10 in UTC.
	local := time.Date(2026, 2, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	gen := ids.NewSequence(func() time.Time { return local })
	l := New(gen, func() time.Time { return local })

	c := l.Save(blocks.New(gen, model.BlockButton), "")
	if c.SavedAt != "2026-02-10" {
		t.Fatalf("expected UTC date, got %q", c.SavedAt)
	}
}

func TestSave_NameAndPreviewTruncation(t *testing.T) {
	l, gen := newTestLibrary()
	src := blocks.New(gen, model.BlockQuiz)
	src.Content = strings.Repeat("q", 100)

	c := l.Save(src, "  Knowledge Check ")
	if c.Name != "Knowledge Check" {
		t.Fatalf("unexpected name %q", c.Name)
	}
	if c.Preview != strings.Repeat("q", 80)+"..." {
		t.Fatalf("unexpected preview %q", c.Preview)
	}
}

func TestSave_NewestFirst(t *testing.T) {
	l, gen := newTestLibrary()
	a := l.Save(blocks.New(gen, model.BlockButton), "A")
	b := l.Save(blocks.New(gen, model.BlockTable), "B")
	got := l.Components()
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestRemove(t *testing.T) {
	l, gen := newTestLibrary()
	c := l.Save(blocks.New(gen, model.BlockButton), "")
	l.SetPendingInsert(&c)

	if l.Remove("lib-missing") {
		t.Fatalf("expected unknown id ignored")
	}
	if !l.Remove(c.ID) || len(l.Components()) != 0 {
		t.Fatalf("expected component removed")
	}
	if _, ok := l.PendingInsert(); !ok {
		t.Fatalf("removal must not cascade into the pending slot")
	}
}

func TestSearch(t *testing.T) {
	l, gen := newTestLibrary()
	radio := blocks.New(gen, model.BlockRadio)
	radio.Content = "Go, No-Go, Conditional"
	l.Save(radio, "Decision Matrix")
	l.Save(blocks.New(gen, model.BlockTable), "Procedure Table")

	if got := l.Search("matrix"); len(got) != 1 || got[0].Name != "Decision Matrix" {
		t.Fatalf("name search: %+v", got)
	}
	if got := l.Search("TABLE"); len(got) != 1 {
		t.Fatalf("type search: %+v", got)
	}
	if got := l.Search("no-go"); len(got) != 1 {
		t.Fatalf("preview search: %+v", got)
	}
	if got := l.Search(""); len(got) != 2 {
		t.Fatalf("empty query should match all, got %d", len(got))
	}
}

func TestTakePendingInsert_ConsumesOnce(t *testing.T) {
	l, gen := newTestLibrary()
	c := l.Save(blocks.New(gen, model.BlockDialog), "")

	if _, ok := l.TakePendingInsert(); ok {
		t.Fatalf("expected empty slot")
	}
	l.SetPendingInsert(&c)
	got, ok := l.TakePendingInsert()
	if !ok || got.ID != c.ID {
		t.Fatalf("expected pending component")
	}
	if _, ok := l.TakePendingInsert(); ok {
		t.Fatalf("second take must find the slot empty")
	}

	l.SetPendingInsert(&c)
	l.SetPendingInsert(nil)
	if _, ok := l.PendingInsert(); ok {
		t.Fatalf("expected slot cleared")
	}
}
