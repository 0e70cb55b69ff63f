package cli

import (
	"github.com/spf13/cobra"
)

func newLibraryCmd(app *App) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Saved block templates",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List library components (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(app, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": s.SearchLibrary(query)})
		},
	}
	listCmd.Flags().StringVar(&query, "query", "", "Case-insensitive filter over name, type and preview")

	showCmd := &cobra.Command{
		Use:   "show <component-id>",
		Short: "Show one library component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(app, "")
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, c := range s.Components() {
				if c.ID == args[0] {
					return writeOut(cmd, app, map[string]any{"data": c})
				}
			}
			return writeErr(cmd, errNotFound("component", args[0]))
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	return cmd
}
