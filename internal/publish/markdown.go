package publish

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"folio-cli/internal/blocks"
	"folio-cli/internal/model"
)

type RenderOptions struct {
	IndexStyle model.IndexStyle
	// TOC adds a table of contents after the title page.
	TOC bool
}

var (
	chapterPrefix = regexp.MustCompile(`^Chapter \d+:\s*`)
	sectionPrefix = regexp.MustCompile(`^\d+(\.\d+)+\s*`)
)

// RenderDocument renders the whole document as markdown.
func RenderDocument(meta model.Meta, chapters []model.Chapter, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = "Untitled Document"
	}
	writeLn("# " + title)
	writeLn("")
	if author := strings.TrimSpace(meta.Author); author != "" {
		writeLn("Author: " + author)
		writeLn("")
	}
	writeLn(fmt.Sprintf("%d chapters · %d sections", len(chapters), countSections(chapters)))
	writeLn("")

	if opt.TOC && len(chapters) > 0 {
		writeLn("## Table of Contents")
		writeLn("")
		for ci, ch := range chapters {
			writeLn("- " + Number(opt.IndexStyle, ci+1) + " " + chapterTitle(ch))
			for si, s := range ch.Sections {
				writeLn("  - " + Number(opt.IndexStyle, ci+1, si+1) + " " + sectionTitle(s))
			}
		}
		writeLn("")
	}

	for ci, ch := range chapters {
		writeLn("---")
		writeLn("")
		writeLn("## " + Number(opt.IndexStyle, ci+1) + " " + chapterTitle(ch))
		writeLn("")
		for si, s := range ch.Sections {
			renderSection(&buf, s, opt.IndexStyle, []int{ci + 1, si + 1})
		}
	}

	writeLn("---")
	writeLn("")
	writeLn("*End of Document*")
	return buf.String()
}

// RenderSection renders one section (top-level or child) with its numbering
// taken from its position in chapters.
func RenderSection(chapters []model.Chapter, sectionID string, opt RenderOptions) (string, error) {
	sectionID = strings.TrimSpace(sectionID)
	for ci, ch := range chapters {
		for si, s := range ch.Sections {
			if s.ID == sectionID {
				var buf bytes.Buffer
				renderSection(&buf, s, opt.IndexStyle, []int{ci + 1, si + 1})
				return buf.String(), nil
			}
			for ki, c := range s.Children {
				if c.ID == sectionID {
					var buf bytes.Buffer
					renderSection(&buf, c, opt.IndexStyle, []int{ci + 1, si + 1, ki + 1})
					return buf.String(), nil
				}
			}
		}
	}
	return "", fmt.Errorf("section not found: %s", sectionID)
}

func renderSection(buf *bytes.Buffer, s model.Section, style model.IndexStyle, path []int) {
	// ### for top-level sections, #### for children.
	fmt.Fprintf(buf, "%s %s %s\n\n", strings.Repeat("#", len(path)+1), Number(style, path...), sectionTitle(s))
	for _, b := range s.Blocks {
		buf.WriteString(RenderBlock(b))
		buf.WriteString("\n")
	}
	for ki, c := range s.Children {
		renderSection(buf, c, style, append(append([]int{}, path...), ki+1))
	}
}

// RenderBlock renders one block as a markdown fragment ending in a newline.
func RenderBlock(b model.Block) string {
	var buf bytes.Buffer
	if note := conditionNote(b.PreConditions); note != "" {
		buf.WriteString(note + "\n\n")
	}
	content := strings.TrimSpace(b.Content)
	label := strings.TrimSpace(b.Label)

	switch b.Type {
	case model.BlockHeading:
		buf.WriteString("### " + content + "\n")
	case model.BlockParagraph:
		buf.WriteString(content + "\n")
	case model.BlockImage:
		if content == "" {
			buf.WriteString("*[Image placeholder: " + label + "]*\n")
		} else {
			buf.WriteString("![" + label + "](" + content + ")\n")
		}
	case model.BlockButton:
		if content == "" {
			content = "Button"
		}
		buf.WriteString("[" + content + "]\n")
	case model.BlockRadio:
		buf.WriteString("**" + label + "**\n\n")
		for _, o := range blocks.Options(b.Content) {
			buf.WriteString("- ( ) " + o + "\n")
		}
	case model.BlockCheckbox:
		buf.WriteString("**" + label + "**\n\n")
		for _, o := range blocks.Options(b.Content) {
			buf.WriteString("- [ ] " + o + "\n")
		}
	case model.BlockDropdown:
		buf.WriteString("**" + label + "**: ▾ " + content + "\n")
	case model.BlockTable:
		writeTable(&buf, b.Content)
	case model.BlockQuiz:
		buf.WriteString("> **Knowledge Check**\n>\n> **" + content + "**\n>\n")
		for _, letter := range []string{"A", "B", "C", "D"} {
			buf.WriteString("> - " + letter + ". Answer Option " + letter + "\n")
		}
	case model.BlockDialog:
		buf.WriteString("> **Dialog:** " + content + "\n")
	default:
		buf.WriteString(label + ": " + content + "\n")
	}

	if post := strings.TrimSpace(b.PostCondition); post != "" {
		buf.WriteString("\n*Then: " + post + "*\n")
	}
	return buf.String()
}

func writeTable(buf *bytes.Buffer, content string) {
	cols, rows, ok := blocks.TableSize(content)
	if !ok {
		cols, rows = 3, 3
	}
	head := make([]string, cols)
	sep := make([]string, cols)
	empty := make([]string, cols)
	for i := range head {
		head[i] = "Col " + strconv.Itoa(i+1)
		sep[i] = "---"
		empty[i] = " "
	}
	buf.WriteString("| " + strings.Join(head, " | ") + " |\n")
	buf.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for r := 0; r < rows; r++ {
		buf.WriteString("| " + strings.Join(empty, " | ") + " |\n")
	}
}

func conditionNote(conds []model.PreCondition) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		field := strings.TrimSpace(c.Field)
		if field == "" {
			continue
		}
		parts = append(parts, field+" "+string(c.Operator)+" "+strings.TrimSpace(c.Value))
	}
	if len(parts) == 0 {
		return ""
	}
	return "*Shown when " + strings.Join(parts, " and ") + "*"
}

func chapterTitle(ch model.Chapter) string {
	return chapterPrefix.ReplaceAllString(strings.TrimSpace(ch.Title), "")
}

func sectionTitle(s model.Section) string {
	return sectionPrefix.ReplaceAllString(strings.TrimSpace(s.Title), "")
}

func countSections(chapters []model.Chapter) int {
	n := 0
	for _, ch := range chapters {
		for _, s := range ch.Sections {
			n += 1 + len(s.Children)
		}
	}
	return n
}
