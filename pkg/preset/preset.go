// Package preset loads named L-system configurations from TOML.
//
// A preset bundles a grammar (axiom and rules), the symbol to action
// bindings, the turn angle, the generation count and canvas settings. A set
// of built-in presets is embedded in the binary; user files can add presets
// or replace built-ins by name:
//
//	[fern]
//	axiom = "X"
//	angle = 25.0
//	generations = 5
//
//	[fern.rules]
//	X = "F+[[X]-X]-F[-FX]+X"
//	F = "FF"
//
//	[fern.actions]
//	X = "idle"
package preset

import (
	"sort"
	"strings"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/grammar"
	"github.com/matzehuels/sprout/pkg/raster"
	"github.com/matzehuels/sprout/pkg/turtle"
)

// Canvas defaults, matching the classic plant rendering.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultMargin = 0.05
	DefaultStep   = 5.0
)

// Preset is one named L-system configuration.
type Preset struct {
	// Name is the table name the preset was loaded from.
	Name string `toml:"-"`

	Description string            `toml:"description"`
	Axiom       string            `toml:"axiom"`
	Rules       map[string]string `toml:"rules"`
	Actions     map[string]string `toml:"actions"`

	// Angle is the turn angle in degrees.
	Angle       float64 `toml:"angle"`
	Generations int     `toml:"generations"`
	Step        float64 `toml:"step"`

	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Margin     float64 `toml:"margin"`
	Ink        string  `toml:"ink"`
	Background string  `toml:"background"`

	// marginSet records that the file gave margin explicitly, so a zero
	// margin is kept rather than defaulted.
	marginSet bool

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks every field and fills zero canvas settings
// with defaults. A margin of 0 written explicitly in a preset file is kept.
// It is idempotent.
func (p *Preset) ValidateAndSetDefaults() error {
	if p.validated {
		return nil
	}
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.Margin == 0 && !p.marginSet {
		p.Margin = DefaultMargin
	}
	if p.Step == 0 {
		p.Step = DefaultStep
	}
	if p.Ink == "" {
		p.Ink = raster.Black.Hex()
	}
	if p.Background == "" {
		p.Background = raster.White.Hex()
	}

	if err := p.Validate(); err != nil {
		return err
	}
	p.validated = true
	return nil
}

// Validate checks every field without applying defaults. Call it again after
// changing a preset that was already validated.
func (p *Preset) Validate() error {
	if err := p.check(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "preset %q", p.Name)
	}
	return nil
}

func (p *Preset) check() error {
	if err := errors.ValidateAxiom(p.Axiom); err != nil {
		return err
	}
	checks := []error{
		errors.ValidateGenerations(p.Generations),
		errors.ValidateAngle(p.Angle),
		errors.ValidateStep(p.Step),
		errors.ValidateMargin(p.Margin),
		errors.ValidateCanvas(p.Width, p.Height),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if _, err := p.Productions(); err != nil {
		return err
	}
	if _, err := p.Table(); err != nil {
		return err
	}
	_, _, err := p.Colors()
	return err
}

// Sequence returns the axiom as a sequence.
func (p *Preset) Sequence() grammar.Sequence {
	return grammar.Parse(p.Axiom)
}

// Productions builds the production set from Rules.
func (p *Preset) Productions() (grammar.ProductionSet, error) {
	rules := make([]grammar.Rule, 0, len(p.Rules))
	for _, from := range sortedKeys(p.Rules) {
		r, err := grammar.NewRule(from, p.Rules[from])
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return grammar.NewProductionSet(rules...), nil
}

// Table returns the default bindings for Angle with Actions applied on top.
func (p *Preset) Table() (turtle.ActionTable, error) {
	delta := turtle.Radians(p.Angle)
	table := turtle.DefaultTable(delta)
	for _, sym := range sortedKeys(p.Actions) {
		if err := errors.ValidateRuleKey(sym); err != nil {
			return nil, err
		}
		act, err := turtle.ParseAction(p.Actions[sym], delta)
		if err != nil {
			return nil, err
		}
		table[[]rune(sym)[0]] = act
	}
	return table, nil
}

// Colors parses Ink and Background.
func (p *Preset) Colors() (ink, background raster.Color, err error) {
	if ink, err = raster.ParseHex(p.Ink); err != nil {
		return 0, 0, err
	}
	if background, err = raster.ParseHex(p.Background); err != nil {
		return 0, 0, err
	}
	return ink, background, nil
}

// RuleSummary formats the rules as "X→…, F→…", sorted by symbol.
func (p *Preset) RuleSummary() string {
	keys := sortedKeys(p.Rules)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "→" + p.Rules[k]
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
