package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio-cli/internal/docs"
	"folio-cli/internal/tui"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var asData bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show reference pages (scripts, keys, config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `folio docs` to list topics)", topic))
			}
			switch {
			case asData:
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
			case raw:
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			default:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMarkdown(body, 100))
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	cmd.Flags().BoolVar(&asData, "data", false, "Wrap the page in the output envelope (--format applies)")
	return cmd
}
