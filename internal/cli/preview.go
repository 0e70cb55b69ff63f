package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio-cli/internal/model"
	"folio-cli/internal/publish"
	"folio-cli/internal/tui"
)

func newPreviewCmd(app *App) *cobra.Command {
	var style string
	var sectionID string
	var raw bool
	var toc bool
	var width int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the document as Markdown (styled for the terminal unless --raw)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := renderOptions(app, style, toc)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := newSession(app, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			md, err := renderPreview(s.Meta(), s.Chapters(), sectionID, opt)
			if err != nil {
				return writeErr(cmd, err)
			}

			if raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMarkdown(md, width))
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "Index style (decimal|roman|alpha|bullet); default from config")
	cmd.Flags().StringVar(&sectionID, "section", "", "Render a single section")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown source instead of terminal rendering")
	cmd.Flags().BoolVar(&toc, "toc", true, "Include a table of contents")
	cmd.Flags().IntVar(&width, "width", 100, "Wrap width for terminal rendering")
	return cmd
}

func renderOptions(app *App, style string, toc bool) (publish.RenderOptions, error) {
	is := app.cfg.IndexStyle
	if v := strings.ToLower(strings.TrimSpace(style)); v != "" {
		is = model.IndexStyle(v)
	}
	if !is.Valid() {
		return publish.RenderOptions{}, errInvalidFlag("style", style, "decimal|roman|alpha|bullet")
	}
	return publish.RenderOptions{IndexStyle: is, TOC: toc}, nil
}

func renderPreview(meta model.Meta, chapters []model.Chapter, sectionID string, opt publish.RenderOptions) (string, error) {
	if strings.TrimSpace(sectionID) == "" {
		return publish.RenderDocument(meta, chapters, opt), nil
	}
	md, err := publish.RenderSection(chapters, sectionID, opt)
	if err != nil {
		return "", errNotFound("section", sectionID)
	}
	return md, nil
}
