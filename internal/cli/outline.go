package cli

import (
	"github.com/spf13/cobra"

	"folio-cli/internal/model"
	"folio-cli/internal/publish"
)

type outlineEntry struct {
	ID     string `json:"id" yaml:"id"`
	Kind   string `json:"kind" yaml:"kind"`
	Number string `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	Blocks int    `json:"blocks" yaml:"blocks"`
}

func newOutlineCmd(app *App) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Show the starting document outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(app, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			st := s.Snapshot()
			if flat {
				return writeOut(cmd, app, map[string]any{
					"data": flattenOutline(st.Chapters, app.cfg.IndexStyle),
					"meta": st.Meta,
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"meta":      st.Meta,
					"chapters":  st.Chapters,
					"selection": st.Selection,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "One entry per chapter/section with its outline number")
	return cmd
}

func flattenOutline(chapters []model.Chapter, style model.IndexStyle) []outlineEntry {
	out := make([]outlineEntry, 0)
	for ci, ch := range chapters {
		out = append(out, outlineEntry{ID: ch.ID, Kind: "chapter", Number: publish.Number(style, ci+1), Title: ch.Title})
		for si, sec := range ch.Sections {
			out = append(out, outlineEntry{ID: sec.ID, Kind: "section", Number: publish.Number(style, ci+1, si+1), Title: sec.Title, Blocks: len(sec.Blocks)})
			for ki, c := range sec.Children {
				out = append(out, outlineEntry{ID: c.ID, Kind: "subsection", Number: publish.Number(style, ci+1, si+1, ki+1), Title: c.Title, Blocks: len(c.Blocks)})
			}
		}
	}
	return out
}
