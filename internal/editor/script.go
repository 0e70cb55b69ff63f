package editor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"folio-cli/internal/document"
	"folio-cli/internal/model"
)

// Script is a list of editing operations applied in order to a session.
//
//	title: Ground Operations Manual
//	ops:
//	  - op: addChapter
//	    as: ops
//	  - op: addSection
//	    chapter: ops
//	    as: fueling
//	  - op: selectSection
//	    section: fueling
//	  - op: addBlock
//	    type: heading
type Script struct {
	Title string `yaml:"title,omitempty"`
	Seed  string `yaml:"seed,omitempty"`
	Ops   []Op   `yaml:"ops"`
}

// Op is one step. References (chapter, section, block, component, condition)
// may be an alias set by an earlier step's "as" or a literal identity.
type Op struct {
	Op        string `yaml:"op"`
	As        string `yaml:"as,omitempty"`
	Chapter   string `yaml:"chapter,omitempty"`
	Section   string `yaml:"section,omitempty"`
	Block     string `yaml:"block,omitempty"`
	Component string `yaml:"component,omitempty"`
	Condition string `yaml:"condition,omitempty"`

	Title     string `yaml:"title,omitempty"`
	Name      string `yaml:"name,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Direction string `yaml:"direction,omitempty"`
	Key       string `yaml:"key,omitempty"`
	Text      string `yaml:"text,omitempty"`

	Label         *string           `yaml:"label,omitempty"`
	Content       *string           `yaml:"content,omitempty"`
	Value         *string           `yaml:"value,omitempty"`
	Field         *string           `yaml:"field,omitempty"`
	Operator      *string           `yaml:"operator,omitempty"`
	Properties    map[string]string `yaml:"properties,omitempty"`
	PostCondition *string           `yaml:"postCondition,omitempty"`
}

// StepResult reports what one step did. Changed=false means the step was a
// no-op (unknown identity, no selection, boundary).
type StepResult struct {
	Index   int    `json:"index" yaml:"index"`
	Op      string `json:"op" yaml:"op"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Changed bool   `json:"changed" yaml:"changed"`
}

type UnknownOpError struct {
	Op string
}

func (e UnknownOpError) Error() string {
	return fmt.Sprintf("unknown op: %q", e.Op)
}

type ScriptError struct {
	Index int
	Op    string
	Err   error
}

func (e ScriptError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e ScriptError) Unwrap() error { return e.Err }

// ParseScript decodes a YAML (or JSON) script and validates every step.
func ParseScript(r io.Reader) (Script, error) {
	var sc Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, errors.New("empty script")
		}
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Script{}, err
	}
	return sc, nil
}

type opSpec struct {
	requires []string
}

var opSpecs = map[string]opSpec{
	"setTitle":             {requires: []string{"title"}},
	"addChapter":           {},
	"addSection":           {requires: []string{"chapter"}},
	"addSubsection":        {requires: []string{"section"}},
	"renameChapter":        {requires: []string{"chapter", "title"}},
	"renameSection":        {requires: []string{"section", "title"}},
	"toggleChapter":        {requires: []string{"chapter"}},
	"toggleSection":        {requires: []string{"section"}},
	"deleteChapter":        {requires: []string{"chapter"}},
	"deleteSection":        {requires: []string{"section"}},
	"selectSection":        {},
	"selectBlock":          {},
	"addBlock":             {requires: []string{"type"}},
	"updateBlock":          {requires: []string{"block"}},
	"deleteBlock":          {requires: []string{"block"}},
	"moveBlock":            {requires: []string{"block", "direction"}},
	"setProperty":          {requires: []string{"block", "key", "value"}},
	"addPreCondition":      {requires: []string{"block"}},
	"updatePreCondition":   {requires: []string{"block", "condition"}},
	"removePreCondition":   {requires: []string{"block", "condition"}},
	"setPostCondition":     {requires: []string{"block"}},
	"saveToLibrary":        {requires: []string{"block"}},
	"removeFromLibrary":    {requires: []string{"component"}},
	"setPendingInsert":     {},
	"consumePendingInsert": {},
	"useComponent":         {requires: []string{"component"}},
}

func (op Op) has(field string) bool {
	switch field {
	case "chapter":
		return strings.TrimSpace(op.Chapter) != ""
	case "section":
		return strings.TrimSpace(op.Section) != ""
	case "block":
		return strings.TrimSpace(op.Block) != ""
	case "component":
		return strings.TrimSpace(op.Component) != ""
	case "condition":
		return strings.TrimSpace(op.Condition) != ""
	case "title":
		return op.Title != ""
	case "type":
		return strings.TrimSpace(op.Type) != ""
	case "direction":
		return strings.TrimSpace(op.Direction) != ""
	case "key":
		return strings.TrimSpace(op.Key) != ""
	case "value":
		return op.Value != nil
	default:
		return false
	}
}

// Validate reports every malformed step at once.
func (sc Script) Validate() error {
	var errs error
	if _, err := ParseSeed(sc.Seed); err != nil {
		errs = multierr.Append(errs, err)
	}
	for i, op := range sc.Ops {
		spec, ok := opSpecs[op.Op]
		if !ok {
			errs = multierr.Append(errs, ScriptError{Index: i, Op: op.Op, Err: UnknownOpError{Op: op.Op}})
			continue
		}
		for _, f := range spec.requires {
			if !op.has(f) {
				errs = multierr.Append(errs, ScriptError{Index: i, Op: op.Op, Err: fmt.Errorf("missing %s", f)})
			}
		}
		if op.Type != "" && !model.BlockType(op.Type).Valid() {
			errs = multierr.Append(errs, ScriptError{Index: i, Op: op.Op, Err: fmt.Errorf("invalid block type: %q", op.Type)})
		}
		if op.Direction != "" {
			if _, err := document.ParseDirection(op.Direction); err != nil {
				errs = multierr.Append(errs, ScriptError{Index: i, Op: op.Op, Err: err})
			}
		}
		if op.Operator != nil && !model.Operator(*op.Operator).Valid() {
			errs = multierr.Append(errs, ScriptError{Index: i, Op: op.Op, Err: fmt.Errorf("invalid operator: %q", *op.Operator)})
		}
	}
	return errs
}

type runner struct {
	s       *Session
	aliases map[string]string
}

func (r *runner) ref(v string) string {
	v = strings.TrimSpace(v)
	if id, ok := r.aliases[v]; ok {
		return id
	}
	return v
}

// Run applies the script to s. Steps that don't apply are recorded as
// unchanged; only malformed steps stop the run.
func Run(s *Session, sc Script) ([]StepResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if sc.Title != "" {
		s.SetTitle(sc.Title)
	}
	r := &runner{s: s, aliases: map[string]string{}}
	out := make([]StepResult, 0, len(sc.Ops))
	for i, op := range sc.Ops {
		res, err := r.step(op)
		if err != nil {
			return out, ScriptError{Index: i, Op: op.Op, Err: err}
		}
		res.Index = i
		res.Op = op.Op
		if res.ID != "" && strings.TrimSpace(op.As) != "" {
			r.aliases[strings.TrimSpace(op.As)] = res.ID
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *runner) step(op Op) (StepResult, error) {
	s := r.s
	switch op.Op {
	case "setTitle":
		return StepResult{Changed: s.SetTitle(op.Title)}, nil
	case "addChapter":
		return StepResult{ID: s.AddChapter(), Changed: true}, nil
	case "addSection":
		id, ok := s.AddSection(r.ref(op.Chapter))
		return StepResult{ID: id, Changed: ok}, nil
	case "addSubsection":
		id, ok := s.AddSubsection(r.ref(op.Section))
		return StepResult{ID: id, Changed: ok}, nil
	case "renameChapter":
		return StepResult{Changed: s.RenameChapter(r.ref(op.Chapter), op.Title)}, nil
	case "renameSection":
		return StepResult{Changed: s.RenameSection(r.ref(op.Section), op.Title)}, nil
	case "toggleChapter":
		return StepResult{Changed: s.ToggleChapter(r.ref(op.Chapter))}, nil
	case "toggleSection":
		return StepResult{Changed: s.ToggleSection(r.ref(op.Section))}, nil
	case "deleteChapter":
		return StepResult{Changed: s.DeleteChapter(r.ref(op.Chapter))}, nil
	case "deleteSection":
		return StepResult{Changed: s.DeleteSection(r.ref(op.Section))}, nil
	case "selectSection":
		s.SelectSection(r.ref(op.Section))
		return StepResult{ID: s.Selection().SectionID, Changed: true}, nil
	case "selectBlock":
		s.SelectBlock(r.ref(op.Block))
		return StepResult{ID: s.Selection().BlockID, Changed: true}, nil
	case "addBlock":
		id, ok := s.AddBlock(model.BlockType(op.Type))
		return StepResult{ID: id, Changed: ok}, nil
	case "updateBlock":
		patch := document.BlockPatch{
			Label:         op.Label,
			Content:       op.Content,
			Properties:    op.Properties,
			PostCondition: op.PostCondition,
		}
		if op.Type != "" {
			t := model.BlockType(op.Type)
			patch.Type = &t
		}
		return StepResult{Changed: s.UpdateBlock(r.ref(op.Block), patch)}, nil
	case "deleteBlock":
		return StepResult{Changed: s.DeleteBlock(r.ref(op.Block))}, nil
	case "moveBlock":
		dir, err := document.ParseDirection(op.Direction)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Changed: s.MoveBlock(r.ref(op.Block), dir)}, nil
	case "setProperty":
		return StepResult{Changed: s.SetBlockProperty(r.ref(op.Block), op.Key, *op.Value)}, nil
	case "addPreCondition":
		blockID := r.ref(op.Block)
		id, ok := s.AddPreCondition(blockID)
		if ok && (op.Field != nil || op.Operator != nil || op.Value != nil) {
			s.UpdatePreCondition(blockID, id, conditionPatch(op))
		}
		return StepResult{ID: id, Changed: ok}, nil
	case "updatePreCondition":
		return StepResult{Changed: s.UpdatePreCondition(r.ref(op.Block), r.ref(op.Condition), conditionPatch(op))}, nil
	case "removePreCondition":
		return StepResult{Changed: s.RemovePreCondition(r.ref(op.Block), r.ref(op.Condition))}, nil
	case "setPostCondition":
		return StepResult{Changed: s.SetPostCondition(r.ref(op.Block), op.Text)}, nil
	case "saveToLibrary":
		c, ok := s.SaveBlock(r.ref(op.Block), op.Name)
		return StepResult{ID: c.ID, Changed: ok}, nil
	case "removeFromLibrary":
		return StepResult{Changed: s.RemoveFromLibrary(r.ref(op.Component))}, nil
	case "setPendingInsert":
		return StepResult{Changed: s.SetPendingInsert(r.ref(op.Component))}, nil
	case "consumePendingInsert":
		id, ok := s.ConsumePendingInsert()
		return StepResult{ID: id, Changed: ok}, nil
	case "useComponent":
		id, ok := s.UseComponent(r.ref(op.Component))
		return StepResult{ID: id, Changed: ok}, nil
	default:
		return StepResult{}, UnknownOpError{Op: op.Op}
	}
}

func conditionPatch(op Op) document.PreConditionPatch {
	p := document.PreConditionPatch{Field: op.Field, Value: op.Value}
	if op.Operator != nil {
		o := model.Operator(*op.Operator)
		p.Operator = &o
	}
	return p
}
