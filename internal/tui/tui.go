// Package tui is the interactive editor: an outline pane, a blocks pane, the
// component library and a rendered preview.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"folio-cli/internal/editor"
	"folio-cli/internal/model"
)

type Options struct {
	IndexStyle model.IndexStyle
	// Glyphs is "unicode" or "ascii".
	Glyphs string
}

func Run(s *editor.Session, opt Options) error {
	applyColorProfilePreference()
	if gs, ok := parseGlyphs(opt.Glyphs); ok {
		setGlyphs(gs)
	}
	m := newAppModel(s, opt)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
