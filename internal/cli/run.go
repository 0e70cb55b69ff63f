package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"folio-cli/internal/editor"
	"folio-cli/internal/model"
)

type runResult struct {
	Document      runDocument              `json:"document" yaml:"document"`
	Selection     model.Selection          `json:"selection" yaml:"selection"`
	Library       []model.LibraryComponent `json:"library" yaml:"library"`
	PendingInsert *model.LibraryComponent  `json:"pendingInsert" yaml:"pendingInsert"`
	Steps         []editor.StepResult      `json:"steps" yaml:"steps"`
	Preview       string                   `json:"preview,omitempty" yaml:"preview,omitempty"`
}

type runDocument struct {
	Meta     model.Meta      `json:"meta" yaml:"meta"`
	Chapters []model.Chapter `json:"chapters" yaml:"chapters"`
}

func newRunCmd(app *App) *cobra.Command {
	var preview bool
	var style string

	cmd := &cobra.Command{
		Use:   "run <script.yaml|->",
		Short: "Apply an op script to a fresh in-memory session and print the result",
		Long: strings.TrimSpace(`
Scripts are YAML (or JSON). Each op may name what it creates with "as:" and
later ops may refer to that alias or to a literal id:

  title: Ground Operations Manual
  seed: empty
  ops:
    - op: addChapter
      as: ops
    - op: addSection
      chapter: ops
      as: fueling
    - op: selectSection
      section: fueling
    - op: addBlock
      type: checkbox

Nothing is written to disk.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			if args[0] == "-" {
				r = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			sc, err := editor.ParseScript(r)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt, err := renderOptions(app, style, false)
			if err != nil {
				return writeErr(cmd, err)
			}

			s, err := newSession(app, sc.Seed)
			if err != nil {
				return writeErr(cmd, err)
			}
			steps, err := editor.Run(s, sc)
			if err != nil {
				return writeErr(cmd, err)
			}

			st := s.Snapshot()
			res := runResult{
				Document:      runDocument{Meta: st.Meta, Chapters: st.Chapters},
				Selection:     st.Selection,
				Library:       st.Library,
				PendingInsert: st.PendingInsert,
				Steps:         steps,
			}
			if preview {
				res.Preview, _ = renderPreview(st.Meta, st.Chapters, "", opt)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().BoolVar(&preview, "preview", false, "Include the rendered Markdown preview")
	cmd.Flags().StringVar(&style, "style", "", "Index style for --preview (decimal|roman|alpha|bullet)")
	return cmd
}
