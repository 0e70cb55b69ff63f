package tui

import "folio-cli/internal/model"

type rowKind int

const (
	rowChapter rowKind = iota
	rowSection
	rowChild
)

type outlineRow struct {
	kind      rowKind
	id        string
	chapterID string
	// parentID is the owning top-level section for child rows.
	parentID    string
	title       string
	depth       int
	expanded    bool
	hasChildren bool
}

// flattenOutline lists the visible rows: sections only under expanded
// chapters, children only under expanded sections.
func flattenOutline(chapters []model.Chapter) []outlineRow {
	rows := make([]outlineRow, 0, len(chapters)*4)
	for _, ch := range chapters {
		rows = append(rows, outlineRow{
			kind:        rowChapter,
			id:          ch.ID,
			chapterID:   ch.ID,
			title:       ch.Title,
			expanded:    ch.Expanded,
			hasChildren: len(ch.Sections) > 0,
		})
		if !ch.Expanded {
			continue
		}
		for _, s := range ch.Sections {
			rows = append(rows, outlineRow{
				kind:        rowSection,
				id:          s.ID,
				chapterID:   ch.ID,
				title:       s.Title,
				depth:       1,
				expanded:    s.Expanded,
				hasChildren: len(s.Children) > 0,
			})
			if !s.Expanded {
				continue
			}
			for _, c := range s.Children {
				rows = append(rows, outlineRow{
					kind:      rowChild,
					id:        c.ID,
					chapterID: ch.ID,
					parentID:  s.ID,
					title:     c.Title,
					depth:     2,
				})
			}
		}
	}
	return rows
}

func rowIndex(rows []outlineRow, id string) int {
	for i, r := range rows {
		if r.id == id {
			return i
		}
	}
	return -1
}
