package grammar

import (
	"sort"

	"github.com/matzehuels/sprout/pkg/errors"
)

// Symbol is a single letter of the grammar alphabet.
type Symbol = rune

// Sequence is an ordered string of symbols.
type Sequence []Symbol

// Parse converts a string to a Sequence, one symbol per rune.
func Parse(s string) Sequence {
	return Sequence([]rune(s))
}

// String returns the sequence as text.
func (s Sequence) String() string {
	return string(s)
}

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Histogram counts how often each symbol occurs in s.
func (s Sequence) Histogram() map[Symbol]int {
	h := make(map[Symbol]int)
	for _, sym := range s {
		h[sym]++
	}
	return h
}

// Rule rewrites one symbol into a replacement sequence.
type Rule struct {
	From Symbol
	To   Sequence
}

// NewRule builds a rule from its textual form. from must be exactly one symbol.
func NewRule(from, to string) (Rule, error) {
	if err := errors.ValidateRuleKey(from); err != nil {
		return Rule{}, err
	}
	return Rule{From: []rune(from)[0], To: Parse(to)}, nil
}

// MustRule is like NewRule but panics on an invalid left-hand side.
// It is meant for rules written as literals.
func MustRule(from, to string) Rule {
	r, err := NewRule(from, to)
	if err != nil {
		panic(err)
	}
	return r
}

// ProductionSet maps a symbol to its replacement. Symbols with no entry are
// rewritten to themselves.
type ProductionSet map[Symbol]Sequence

// NewProductionSet collects rules into a set. When two rules share a
// left-hand side, the later one wins.
func NewProductionSet(rules ...Rule) ProductionSet {
	ps := make(ProductionSet, len(rules))
	for _, r := range rules {
		ps[r.From] = r.To
	}
	return ps
}

// Rules returns the productions sorted by symbol.
func (ps ProductionSet) Rules() []Rule {
	out := make([]Rule, 0, len(ps))
	for from, to := range ps {
		out = append(out, Rule{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// Replacement returns what sym rewrites to and whether a production exists.
func (ps ProductionSet) Replacement(sym Symbol) (Sequence, bool) {
	to, ok := ps[sym]
	return to, ok
}
