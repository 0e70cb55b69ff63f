package publish

import (
	"strings"
	"testing"

	"folio-cli/internal/model"
)

func testChapters() []model.Chapter {
	return []model.Chapter{
		{
			ID:    "ch-1",
			Title: "Chapter 1: Introduction",
			Sections: []model.Section{
				{
					ID:    "sec-1",
					Title: "1.1 Purpose & Scope",
					Blocks: []model.Block{
						{ID: "blk-1", Type: model.BlockHeading, Label: "Heading", Content: "Purpose & Scope"},
						{ID: "blk-2", Type: model.BlockCheckbox, Label: "Pre-flight", Content: "Fuel, Oil, , Tires",
							PreConditions: []model.PreCondition{{ID: "cond-1", Field: "engine", Operator: model.OpNe, Value: "running"}}},
					},
					Children: []model.Section{
						{ID: "sec-1-1", Title: "1.1.1 New Section", Blocks: []model.Block{
							{ID: "blk-3", Type: model.BlockTable, Label: "Table", Content: "2x1"},
						}},
					},
				},
			},
		},
		{
			ID:    "ch-2",
			Title: "Chapter 2: Procedures",
			Sections: []model.Section{
				{ID: "sec-2", Title: "2.1 Standard Operations", Blocks: []model.Block{
					{ID: "blk-4", Type: model.BlockDialog, Label: "Dialog", Content: "Confirm Shutdown", PostCondition: "log shutdown"},
				}},
			},
		},
	}
}

func TestRenderDocument_DecimalWithTOC(t *testing.T) {
	t.Parallel()

	md := RenderDocument(model.Meta{Title: "Manual", Author: "J. Carter"}, testChapters(), RenderOptions{TOC: true})
	for _, want := range []string{
		"# Manual\n",
		"Author: J. Carter",
		"2 chapters · 3 sections",
		"## Table of Contents",
		"- 1 Introduction\n",
		"  - 1.1 Purpose & Scope\n",
		"## 2 Procedures\n",
		"### 1.1 Purpose & Scope\n",
		"#### 1.1.1 New Section\n",
		"*Shown when engine != running*",
		"- [ ] Fuel\n- [ ] Oil\n- [ ] Tires\n",
		"| Col 1 | Col 2 |\n| --- | --- |\n|   |   |\n",
		"> **Dialog:** Confirm Shutdown",
		"*Then: log shutdown*",
		"*End of Document*",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestRenderDocument_UntitledAndEmpty(t *testing.T) {
	t.Parallel()

	md := RenderDocument(model.Meta{}, nil, RenderOptions{TOC: true})
	if !strings.HasPrefix(md, "# Untitled Document\n") {
		t.Fatalf("unexpected header:\n%s", md)
	}
	if strings.Contains(md, "Table of Contents") {
		t.Fatalf("expected no TOC for an empty document")
	}
}

func TestRenderSection_ChildNumbering(t *testing.T) {
	t.Parallel()

	md, err := RenderSection(testChapters(), "sec-1-1", RenderOptions{IndexStyle: model.IndexRoman})
	if err != nil {
		t.Fatalf("RenderSection: %v", err)
	}
	if !strings.HasPrefix(md, "#### I.I.I New Section\n") {
		t.Fatalf("unexpected section header:\n%s", md)
	}
	if _, err := RenderSection(testChapters(), "nope", RenderOptions{}); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestRenderBlock_Types(t *testing.T) {
	t.Parallel()

	cases := []struct {
		b    model.Block
		want string
	}{
		{model.Block{Type: model.BlockParagraph, Content: "Hello"}, "Hello\n"},
		{model.Block{Type: model.BlockImage, Label: "Diagram"}, "*[Image placeholder: Diagram]*\n"},
		{model.Block{Type: model.BlockImage, Label: "Diagram", Content: "fig.png"}, "![Diagram](fig.png)\n"},
		{model.Block{Type: model.BlockButton}, "[Button]\n"},
		{model.Block{Type: model.BlockRadio, Label: "Pick", Content: "A,B"}, "**Pick**\n\n- ( ) A\n- ( ) B\n"},
		{model.Block{Type: model.BlockDropdown, Label: "Mode", Content: "Select"}, "**Mode**: ▾ Select\n"},
	}
	for _, tc := range cases {
		if got := RenderBlock(tc.b); got != tc.want {
			t.Fatalf("RenderBlock(%s)=%q, want %q", tc.b.Type, got, tc.want)
		}
	}
	quiz := RenderBlock(model.Block{Type: model.BlockQuiz, Content: "Why?"})
	if !strings.Contains(quiz, "> **Why?**") || !strings.Contains(quiz, "> - D. Answer Option D") {
		t.Fatalf("unexpected quiz:\n%s", quiz)
	}
}

func TestNumber_Styles(t *testing.T) {
	t.Parallel()

	cases := []struct {
		style model.IndexStyle
		path  []int
		want  string
	}{
		{model.IndexDecimal, []int{1, 2, 3}, "1.2.3"},
		{"", []int{4}, "4"},
		{model.IndexRoman, []int{1, 4, 9, 14}, "I.IV.IX.XIV"},
		{model.IndexRoman, []int{1994}, "MCMXCIV"},
		{model.IndexAlpha, []int{1, 26, 27}, "A.Z.AA"},
		{model.IndexBullet, []int{1, 2}, "•"},
	}
	for _, tc := range cases {
		if got := Number(tc.style, tc.path...); got != tc.want {
			t.Fatalf("Number(%s,%v)=%q, want %q", tc.style, tc.path, got, tc.want)
		}
	}
}
