package cli

import (
	"github.com/spf13/cobra"

	"folio-cli/internal/blocks"
	"folio-cli/internal/model"
)

type blockTypeInfo struct {
	Type       model.BlockType   `json:"type" yaml:"type"`
	Label      string            `json:"label" yaml:"label"`
	Content    string            `json:"content" yaml:"content"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Block palette",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List block types with the defaults a new block starts with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]blockTypeInfo, 0, len(model.BlockTypes()))
			for _, t := range model.BlockTypes() {
				out = append(out, blockTypeInfo{
					Type:       t,
					Label:      blocks.DefaultLabel(t),
					Content:    blocks.DefaultContent(t),
					Properties: blocks.DefaultProperties(),
				})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	})
	return cmd
}
