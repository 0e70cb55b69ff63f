package document

import (
	"fmt"
	"strings"

	"folio-cli/internal/blocks"
	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return "", fmt.Errorf("invalid direction: %q (expected up|down)", s)
	}
}

// BlockPatch is a partial block update. Nil fields are left unchanged. The
// identity is never patched. Properties and PreConditions replace the whole
// value when non-nil.
type BlockPatch struct {
	Type          *model.BlockType
	Label         *string
	Content       *string
	Properties    map[string]string
	PreConditions []model.PreCondition
	PostCondition *string
}

func (p BlockPatch) apply(b model.Block) model.Block {
	if p.Type != nil && p.Type.Valid() {
		b.Type = *p.Type
	}
	if p.Label != nil {
		b.Label = *p.Label
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Properties != nil {
		b.Properties = make(map[string]string, len(p.Properties))
		for k, v := range p.Properties {
			b.Properties[k] = v
		}
	}
	if p.PreConditions != nil {
		b.PreConditions = append([]model.PreCondition{}, p.PreConditions...)
	}
	if p.PostCondition != nil {
		b.PostCondition = *p.PostCondition
	}
	return b
}

// UpdateSectionBlocks replaces the blocks of the top-level section sectionID
// with transform(blocks). Child sections are not searched. Every block
// mutation goes through here.
func (m *Model) UpdateSectionBlocks(sectionID string, transform func([]model.Block) []model.Block) bool {
	if transform == nil {
		return false
	}
	for ci := range m.chapters {
		for si := range m.chapters[ci].Sections {
			s := &m.chapters[ci].Sections[si]
			if s.ID != sectionID {
				continue
			}
			in := make([]model.Block, 0, len(s.Blocks))
			for _, b := range s.Blocks {
				in = append(in, b.Copy())
			}
			out := transform(in)
			if out == nil {
				out = []model.Block{}
			}
			s.Blocks = out
			return true
		}
	}
	return false
}

// AddBlock appends a default block of type t to the selected section and
// selects it.
func (m *Model) AddBlock(t model.BlockType) (string, bool) {
	sectionID := m.SelectedSectionID()
	if sectionID == "" || !t.Valid() {
		return "", false
	}
	b := blocks.New(m.gen, t)
	appended := m.UpdateSectionBlocks(sectionID, func(bs []model.Block) []model.Block {
		return append(bs, b)
	})
	if !appended {
		return "", false
	}
	m.blockID = b.ID
	return b.ID, true
}

// UpdateBlock merges patch into blockID within the selected section.
func (m *Model) UpdateBlock(blockID string, patch BlockPatch) bool {
	sectionID := m.SelectedSectionID()
	if sectionID == "" {
		return false
	}
	found := false
	m.UpdateSectionBlocks(sectionID, func(bs []model.Block) []model.Block {
		for i := range bs {
			if bs[i].ID == blockID {
				bs[i] = patch.apply(bs[i])
				found = true
			}
		}
		return bs
	})
	return found
}

func (m *Model) DeleteBlock(blockID string) bool {
	sectionID := m.SelectedSectionID()
	if sectionID == "" {
		return false
	}
	if m.blockID == blockID {
		m.blockID = ""
	}
	found := false
	m.UpdateSectionBlocks(sectionID, func(bs []model.Block) []model.Block {
		out := bs[:0]
		for _, b := range bs {
			if b.ID == blockID {
				found = true
				continue
			}
			out = append(out, b)
		}
		return out
	})
	return found
}

// MoveBlock swaps blockID with its neighbour in dir. Moving past either end is
// a no-op.
func (m *Model) MoveBlock(blockID string, dir Direction) bool {
	sectionID := m.SelectedSectionID()
	if sectionID == "" {
		return false
	}
	moved := false
	m.UpdateSectionBlocks(sectionID, func(bs []model.Block) []model.Block {
		i := -1
		for k := range bs {
			if bs[k].ID == blockID {
				i = k
				break
			}
		}
		if i < 0 {
			return bs
		}
		j := i + 1
		if dir == Up {
			j = i - 1
		} else if dir != Down {
			return bs
		}
		if j < 0 || j >= len(bs) {
			return bs
		}
		bs[i], bs[j] = bs[j], bs[i]
		moved = true
		return bs
	})
	return moved
}

// SetBlockProperty sets one style property on a block in the selected section.
func (m *Model) SetBlockProperty(blockID, key, value string) bool {
	key = strings.TrimSpace(key)
	b, ok := m.currentBlock(blockID)
	if !ok || key == "" {
		return false
	}
	props := make(map[string]string, len(b.Properties)+1)
	for k, v := range b.Properties {
		props[k] = v
	}
	props[key] = value
	return m.UpdateBlock(blockID, BlockPatch{Properties: props})
}

func (m *Model) SetPostCondition(blockID, text string) bool {
	return m.UpdateBlock(blockID, BlockPatch{PostCondition: &text})
}

// AddPreCondition appends an empty "=" rule and returns its identity.
func (m *Model) AddPreCondition(blockID string) (string, bool) {
	b, ok := m.currentBlock(blockID)
	if !ok {
		return "", false
	}
	c := model.PreCondition{ID: m.gen.New(ids.PrefixPreCondition), Operator: model.OpEq}
	conds := append(append([]model.PreCondition{}, b.PreConditions...), c)
	if !m.UpdateBlock(blockID, BlockPatch{PreConditions: conds}) {
		return "", false
	}
	return c.ID, true
}

type PreConditionPatch struct {
	Field    *string
	Operator *model.Operator
	Value    *string
}

// UpdatePreCondition merges patch into one rule. Unknown operators are ignored.
func (m *Model) UpdatePreCondition(blockID, condID string, patch PreConditionPatch) bool {
	b, ok := m.currentBlock(blockID)
	if !ok {
		return false
	}
	found := false
	conds := append([]model.PreCondition{}, b.PreConditions...)
	for i := range conds {
		if conds[i].ID != condID {
			continue
		}
		found = true
		if patch.Field != nil {
			conds[i].Field = *patch.Field
		}
		if patch.Operator != nil && patch.Operator.Valid() {
			conds[i].Operator = *patch.Operator
		}
		if patch.Value != nil {
			conds[i].Value = *patch.Value
		}
	}
	if !found {
		return false
	}
	return m.UpdateBlock(blockID, BlockPatch{PreConditions: conds})
}

func (m *Model) RemovePreCondition(blockID, condID string) bool {
	b, ok := m.currentBlock(blockID)
	if !ok {
		return false
	}
	conds := make([]model.PreCondition, 0, len(b.PreConditions))
	for _, c := range b.PreConditions {
		if c.ID != condID {
			conds = append(conds, c)
		}
	}
	if len(conds) == len(b.PreConditions) {
		return false
	}
	return m.UpdateBlock(blockID, BlockPatch{PreConditions: conds})
}

func (m *Model) currentBlock(blockID string) (model.Block, bool) {
	for _, b := range m.CurrentBlocks() {
		if b.ID == blockID {
			return b, true
		}
	}
	return model.Block{}, false
}
