package model

type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockImage     BlockType = "image"
	BlockButton    BlockType = "button"
	BlockRadio     BlockType = "radio"
	BlockCheckbox  BlockType = "checkbox"
	BlockDropdown  BlockType = "dropdown"
	BlockTable     BlockType = "table"
	BlockQuiz      BlockType = "quiz"
	BlockDialog    BlockType = "dialog"
)

// BlockTypes lists every block type in palette order.
func BlockTypes() []BlockType {
	return []BlockType{
		BlockParagraph,
		BlockHeading,
		BlockImage,
		BlockButton,
		BlockRadio,
		BlockCheckbox,
		BlockDropdown,
		BlockTable,
		BlockQuiz,
		BlockDialog,
	}
}

func (t BlockType) Valid() bool {
	for _, x := range BlockTypes() {
		if x == t {
			return true
		}
	}
	return false
}

// Style property keys every new block carries.
const (
	PropFontSize  = "fontSize"
	PropColor     = "color"
	PropAlignment = "alignment"
	PropPadding   = "padding"
)

type Operator string

const (
	OpEq  Operator = "="
	OpNe  Operator = "!="
	OpGt  Operator = ">"
	OpLt  Operator = "<"
	OpGte Operator = ">="
	OpLte Operator = "<="
)

func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte:
		return true
	default:
		return false
	}
}

// PreCondition is a conditional-visibility rule. It is data only; nothing evaluates it.
type PreCondition struct {
	ID       string   `json:"id" yaml:"id"`
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value" yaml:"value"`
}

type Block struct {
	ID            string            `json:"id" yaml:"id"`
	Type          BlockType         `json:"type" yaml:"type"`
	Label         string            `json:"label" yaml:"label"`
	Content       string            `json:"content" yaml:"content"`
	Properties    map[string]string `json:"properties" yaml:"properties"`
	PreConditions []PreCondition    `json:"preConditions" yaml:"preConditions"`
	PostCondition string            `json:"postCondition" yaml:"postCondition"`
}

// Copy returns a deep copy of b. The identity is kept.
func (b Block) Copy() Block {
	out := b
	if b.Properties != nil {
		out.Properties = make(map[string]string, len(b.Properties))
		for k, v := range b.Properties {
			out.Properties[k] = v
		}
	}
	out.PreConditions = append([]PreCondition{}, b.PreConditions...)
	return out
}

type Section struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Blocks   []Block   `json:"blocks" yaml:"blocks"`
	Children []Section `json:"children" yaml:"children"`
	Expanded bool      `json:"expanded" yaml:"expanded"`
}

func (s Section) Copy() Section {
	out := s
	out.Blocks = make([]Block, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		out.Blocks = append(out.Blocks, b.Copy())
	}
	out.Children = make([]Section, 0, len(s.Children))
	for _, c := range s.Children {
		out.Children = append(out.Children, c.Copy())
	}
	return out
}

type Chapter struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
	Expanded bool      `json:"expanded" yaml:"expanded"`
}

func (c Chapter) Copy() Chapter {
	out := c
	out.Sections = make([]Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		out.Sections = append(out.Sections, s.Copy())
	}
	return out
}

// LibraryComponent is a saved, reusable copy of a block.
type LibraryComponent struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Type    BlockType `json:"type" yaml:"type"`
	Preview string    `json:"preview" yaml:"preview"`
	Block   Block     `json:"block" yaml:"block"`
	SavedAt string    `json:"savedAt" yaml:"savedAt"` // YYYY-MM-DD
}

func (c LibraryComponent) Copy() LibraryComponent {
	out := c
	out.Block = c.Block.Copy()
	return out
}

type Meta struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
}

// Selection references entities by identity. Empty means none.
type Selection struct {
	SectionID string `json:"sectionId,omitempty" yaml:"sectionId,omitempty"`
	BlockID   string `json:"blockId,omitempty" yaml:"blockId,omitempty"`
}

// IndexStyle selects how outline ordinals are printed.
type IndexStyle string

const (
	IndexDecimal IndexStyle = "decimal"
	IndexRoman   IndexStyle = "roman"
	IndexAlpha   IndexStyle = "alpha"
	IndexBullet  IndexStyle = "bullet"
)

func (s IndexStyle) Valid() bool {
	switch s {
	case IndexDecimal, IndexRoman, IndexAlpha, IndexBullet:
		return true
	default:
		return false
	}
}
