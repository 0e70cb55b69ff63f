// Package blocks holds the per-type defaults for new blocks and the helpers used
// when blocks are copied between the document and the library.
package blocks

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

type defaults struct {
	label   string
	content string
}

var defaultsByType = map[model.BlockType]defaults{
	model.BlockParagraph: {"Paragraph", "Start typing your content here..."},
	model.BlockHeading:   {"Heading", "Section Heading"},
	model.BlockImage:     {"Image", ""},
	model.BlockButton:    {"Button", "Click Me"},
	model.BlockRadio:     {"Radio Group", "Option 1, Option 2, Option 3"},
	model.BlockCheckbox:  {"Checkbox List", "Item 1, Item 2, Item 3"},
	model.BlockDropdown:  {"Dropdown", "Select an option"},
	model.BlockTable:     {"Table", "3x3"},
	model.BlockQuiz:      {"Quiz", "What is the answer?"},
	model.BlockDialog:    {"Dialog", "Dialog Title"},
}

// DefaultLabel returns the display label a new block of type t starts with.
func DefaultLabel(t model.BlockType) string {
	return defaultsByType[t].label
}

// DefaultContent returns the content a new block of type t starts with.
func DefaultContent(t model.BlockType) string {
	return defaultsByType[t].content
}

// DefaultProperties returns a fresh copy of the style properties every new block gets.
func DefaultProperties() map[string]string {
	return map[string]string{
		model.PropFontSize:  "16",
		model.PropColor:     "#1e293b",
		model.PropAlignment: "left",
		model.PropPadding:   "8",
	}
}

// New builds a block of type t with a fresh identity and the type's defaults.
func New(gen ids.Generator, t model.BlockType) model.Block {
	return model.Block{
		ID:            gen.New(ids.PrefixBlock),
		Type:          t,
		Label:         DefaultLabel(t),
		Content:       DefaultContent(t),
		Properties:    DefaultProperties(),
		PreConditions: []model.PreCondition{},
		PostCondition: "",
	}
}

// Clone deep-copies b under a new identity. Pre-condition identities are kept:
// they only need to be unique within their block.
func Clone(gen ids.Generator, b model.Block) model.Block {
	out := b.Copy()
	out.ID = gen.New(ids.PrefixBlock)
	return out
}

const previewLen = 80

// Preview returns the first 80 characters of content, with "..." appended when cut.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLen {
		return content
	}
	r := []rune(content)
	return string(r[:previewLen]) + "..."
}

// Options splits comma-separated radio/checkbox content into trimmed entries.
func Options(content string) []string {
	parts := strings.Split(content, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TableSize parses a "<cols>x<rows>" descriptor. ok is false when content isn't one.
func TableSize(content string) (cols, rows int, ok bool) {
	a, b, found := strings.Cut(strings.ToLower(strings.TrimSpace(content)), "x")
	if !found {
		return 0, 0, false
	}
	c, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil || c <= 0 {
		return 0, 0, false
	}
	r, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil || r <= 0 {
		return 0, 0, false
	}
	return c, r, true
}
