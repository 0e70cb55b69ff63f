package document

import (
	"strings"
	"testing"

	"folio-cli/internal/model"
)

func sectionWithBlocks(t *testing.T, types ...model.BlockType) (*Model, string, []string) {
	t.Helper()
	m := newTestModel()
	ch := m.AddChapter()
	sec, _ := m.AddSection(ch)
	m.SelectSection(sec)
	var out []string
	for _, typ := range types {
		id, ok := m.AddBlock(typ)
		if !ok {
			t.Fatalf("AddBlock(%s) failed", typ)
		}
		out = append(out, id)
	}
	return m, sec, out
}

func order(m *Model) string {
	var ids []string
	for _, b := range m.CurrentBlocks() {
		ids = append(ids, b.ID)
	}
	return strings.Join(ids, ",")
}

func TestBlockOps_RequireSelectedSection(t *testing.T) {
	m := newTestModel()
	m.AddChapter()
	if _, ok := m.AddBlock(model.BlockParagraph); ok {
		t.Fatalf("expected no-op without a section")
	}
	content := "x"
	if m.UpdateBlock("blk-1", BlockPatch{Content: &content}) || m.DeleteBlock("blk-1") || m.MoveBlock("blk-1", Up) {
		t.Fatalf("expected no-ops without a section")
	}
}

func TestAddBlock_RejectsUnknownType(t *testing.T) {
	m, _, _ := sectionWithBlocks(t)
	if _, ok := m.AddBlock(model.BlockType("video")); ok {
		t.Fatalf("expected unknown type rejected")
	}
}

func TestMoveBlock_BoundariesAndInvolution(t *testing.T) {
	m, _, ids := sectionWithBlocks(t, model.BlockHeading, model.BlockParagraph, model.BlockTable)
	orig := order(m)

	if m.MoveBlock(ids[0], Up) || m.MoveBlock(ids[2], Down) {
		t.Fatalf("expected boundary moves to be no-ops")
	}
	if order(m) != orig {
		t.Fatalf("boundary move changed order")
	}

	if !m.MoveBlock(ids[1], Up) {
		t.Fatalf("expected move")
	}
	if got, want := order(m), strings.Join([]string{ids[1], ids[0], ids[2]}, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	m.MoveBlock(ids[1], Down)
	if order(m) != orig {
		t.Fatalf("up then down should restore order")
	}
	if m.MoveBlock("blk-missing", Down) {
		t.Fatalf("expected unknown block ignored")
	}
}

func TestUpdateBlock_MergesFields(t *testing.T) {
	m, _, ids := sectionWithBlocks(t, model.BlockParagraph)
	content := "Follow the procedure."
	label := "Intro"
	if !m.UpdateBlock(ids[0], BlockPatch{Content: &content, Label: &label}) {
		t.Fatalf("expected update")
	}
	b, _ := m.SelectedBlock()
	if b.Content != content || b.Label != label || b.Type != model.BlockParagraph {
		t.Fatalf("unexpected block %+v", b)
	}
	if b.Properties[model.PropFontSize] != "16" {
		t.Fatalf("expected properties untouched")
	}
	if m.UpdateBlock("blk-missing", BlockPatch{Content: &content}) {
		t.Fatalf("expected unknown block ignored")
	}
}

func TestUpdateBlock_OnlySearchesSelectedSection(t *testing.T) {
	m, sec, ids := sectionWithBlocks(t, model.BlockParagraph)
	ch, _ := m.ChapterOf(sec)
	other, _ := m.AddSection(ch.ID)
	m.SelectSection(other)

	content := "changed"
	if m.UpdateBlock(ids[0], BlockPatch{Content: &content}) {
		t.Fatalf("expected block in another section to be ignored")
	}
}

func TestDeleteBlock_ClearsBlockSelection(t *testing.T) {
	m, _, ids := sectionWithBlocks(t, model.BlockParagraph, model.BlockButton)
	if m.SelectedBlockID() != ids[1] {
		t.Fatalf("expected last added block selected")
	}
	m.DeleteBlock(ids[0])
	if m.SelectedBlockID() != ids[1] {
		t.Fatalf("deleting another block must keep selection")
	}
	m.DeleteBlock(ids[1])
	if m.SelectedBlockID() != "" || len(m.CurrentBlocks()) != 0 {
		t.Fatalf("expected selection cleared and list empty")
	}
}

func TestUpdateSectionBlocks_IgnoresChildSections(t *testing.T) {
	m, sec, _ := sectionWithBlocks(t)
	child, _ := m.AddSubsection(sec)
	called := false
	if m.UpdateSectionBlocks(child, func(bs []model.Block) []model.Block { called = true; return bs }) {
		t.Fatalf("expected child section not matched")
	}
	if called {
		t.Fatalf("transform must not run for unmatched section")
	}
}

func TestPreConditions_AddUpdateRemove(t *testing.T) {
	m, _, ids := sectionWithBlocks(t, model.BlockButton)
	cid, ok := m.AddPreCondition(ids[0])
	if !ok {
		t.Fatalf("expected condition added")
	}
	b, _ := m.SelectedBlock()
	if len(b.PreConditions) != 1 || b.PreConditions[0].Operator != model.OpEq || b.PreConditions[0].Field != "" {
		t.Fatalf("unexpected conditions %+v", b.PreConditions)
	}

	field, value := "crewRole", "captain"
	op := model.OpNe
	if !m.UpdatePreCondition(ids[0], cid, PreConditionPatch{Field: &field, Operator: &op, Value: &value}) {
		t.Fatalf("expected update")
	}
	bad := model.Operator("~=")
	m.UpdatePreCondition(ids[0], cid, PreConditionPatch{Operator: &bad})
	b, _ = m.SelectedBlock()
	got := b.PreConditions[0]
	if got.Field != field || got.Operator != model.OpNe || got.Value != value {
		t.Fatalf("unexpected condition %+v", got)
	}

	if m.RemovePreCondition(ids[0], "cond-missing") {
		t.Fatalf("expected unknown condition ignored")
	}
	if !m.RemovePreCondition(ids[0], cid) {
		t.Fatalf("expected removal")
	}
	b, _ = m.SelectedBlock()
	if len(b.PreConditions) != 0 {
		t.Fatalf("expected no conditions left")
	}
}

func TestSetBlockPropertyAndPostCondition(t *testing.T) {
	m, _, ids := sectionWithBlocks(t, model.BlockHeading)
	if !m.SetBlockProperty(ids[0], model.PropFontSize, "24") {
		t.Fatalf("expected property set")
	}
	if !m.SetPostCondition(ids[0], "section.complete = true") {
		t.Fatalf("expected post-condition set")
	}
	b, _ := m.SelectedBlock()
	if b.Properties[model.PropFontSize] != "24" || b.Properties[model.PropColor] != "#1e293b" {
		t.Fatalf("unexpected properties %v", b.Properties)
	}
	if b.PostCondition != "section.complete = true" {
		t.Fatalf("unexpected post-condition %q", b.PostCondition)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection(" UP "); err != nil || d != Up {
		t.Fatalf("expected up, got %q %v", d, err)
	}
	if _, err := ParseDirection("left"); err == nil {
		t.Fatalf("expected error")
	}
}
