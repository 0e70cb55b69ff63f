package editor

import (
	"fmt"
	"strings"

	"folio-cli/internal/blocks"
	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

type Seed string

const (
	SeedSample Seed = "sample"
	SeedEmpty  Seed = "empty"
)

func ParseSeed(s string) (Seed, error) {
	switch Seed(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeedSample:
		return SeedSample, nil
	case SeedEmpty:
		return SeedEmpty, nil
	default:
		return "", fmt.Errorf("invalid seed: %q (expected sample|empty)", s)
	}
}

const sampleTitle = "Aircraft Maintenance Manual - Boeing 737"

func withContent(b model.Block, content string) model.Block {
	b.Content = content
	return b
}

func withFontSize(b model.Block, size string) model.Block {
	b.Properties[model.PropFontSize] = size
	return b
}

func sampleSection(gen ids.Generator, title string, expanded bool, bs ...model.Block) model.Section {
	return model.Section{
		ID:       gen.New(ids.PrefixSection),
		Title:    title,
		Blocks:   bs,
		Children: []model.Section{},
		Expanded: expanded,
	}
}

// SampleChapters returns the starter outline new sessions open with.
func SampleChapters(gen ids.Generator) []model.Chapter {
	return []model.Chapter{
		{
			ID:       gen.New(ids.PrefixChapter),
			Title:    "Chapter 1: Introduction",
			Expanded: true,
			Sections: []model.Section{
				sampleSection(gen, "1.1 Purpose & Scope", true,
					withFontSize(withContent(blocks.New(gen, model.BlockHeading), "Purpose & Scope"), "24"),
					withContent(blocks.New(gen, model.BlockParagraph),
						"This document provides comprehensive guidelines for all operational procedures. It is intended for use by authorized personnel who have completed the required training modules."),
				),
				sampleSection(gen, "1.2 Definitions", false,
					withFontSize(withContent(blocks.New(gen, model.BlockHeading), "Definitions & Acronyms"), "20"),
					withContent(blocks.New(gen, model.BlockTable), "3x2"),
				),
			},
		},
		{
			ID:       gen.New(ids.PrefixChapter),
			Title:    "Chapter 2: Procedures",
			Expanded: false,
			Sections: []model.Section{
				sampleSection(gen, "2.1 Standard Operations", false,
					withContent(blocks.New(gen, model.BlockParagraph), "Follow the standard operating procedure outlined below."),
					withContent(blocks.New(gen, model.BlockCheckbox), "Step 1 complete, Step 2 complete, Step 3 complete"),
				),
			},
		},
		{
			ID:       gen.New(ids.PrefixChapter),
			Title:    "Chapter 3: Assessment",
			Expanded: false,
			Sections: []model.Section{
				sampleSection(gen, "3.1 Knowledge Check", false,
					withContent(blocks.New(gen, model.BlockQuiz), "What is the correct procedure for emergency evacuation?"),
				),
			},
		},
	}
}

func seedComponent(id, name string, typ model.BlockType, preview, content, savedAt, color string) model.LibraryComponent {
	props := blocks.DefaultProperties()
	if color != "" {
		props[model.PropColor] = color
	}
	return model.LibraryComponent{
		ID:      id,
		Name:    name,
		Type:    typ,
		Preview: preview,
		SavedAt: savedAt,
		Block: model.Block{
			ID:            strings.Replace(id, "lib-", "lib-block-", 1),
			Type:          typ,
			Label:         name,
			Content:       content,
			Properties:    props,
			PreConditions: []model.PreCondition{},
		},
	}
}

// SampleComponents returns the starter library, newest first.
func SampleComponents() []model.LibraryComponent {
	return []model.LibraryComponent{
		seedComponent("lib-1", "Safety Warning Block", model.BlockParagraph,
			"Warning: Follow all safety procedures before proceeding.",
			"Warning: Follow all safety procedures before proceeding. Ensure all personnel have been briefed and protective equipment is in place.",
			"2026-02-08", "#dc2626"),
		seedComponent("lib-2", "Compliance Checklist", model.BlockCheckbox,
			"Pre-flight inspection, Documentation verified, Crew briefed",
			"Pre-flight inspection, Documentation verified, Crew briefed, Safety equipment check",
			"2026-02-07", ""),
		seedComponent("lib-3", "Decision Matrix", model.BlockRadio,
			"Go / No-Go / Conditional", "Go, No-Go, Conditional", "2026-02-06", ""),
		seedComponent("lib-4", "Procedure Table", model.BlockTable,
			"Step | Action | Verification", "3x3", "2026-02-05", ""),
		seedComponent("lib-5", "Knowledge Check", model.BlockQuiz,
			"Multiple choice quiz with 4 options", "What is the correct procedure for emergency evacuation?", "2026-02-04", ""),
		seedComponent("lib-6", "Action Button", model.BlockButton,
			"Proceed to Next Section", "Proceed to Next Section", "2026-02-03", ""),
	}
}
