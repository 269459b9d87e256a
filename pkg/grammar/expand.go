package grammar

import (
	"slices"

	"github.com/matzehuels/sprout/pkg/errors"
)

// DefaultMaxLength is the ceiling applied by DefaultEngine: 16M symbols, or
// 64 MiB for a single generation.
const DefaultMaxLength = 1 << 24

// DefaultMaxGenerations is the pass ceiling applied when an Engine sets none.
// Growing grammars hit the length ceiling long before it; it only binds for
// grammars whose length stays flat.
const DefaultMaxGenerations = 4096

// maxLengthLimit keeps saturating arithmetic in Project clear of int overflow.
const maxLengthLimit = 1 << 30

// DefaultEngine expands with the DefaultMaxLength and DefaultMaxGenerations
// ceilings.
var DefaultEngine = Engine{MaxLength: DefaultMaxLength, MaxGenerations: DefaultMaxGenerations}

// Engine rewrites sequences under a length ceiling and a pass ceiling.
type Engine struct {
	// MaxLength is the largest number of symbols any generation may hold,
	// the axiom included. Zero or negative means DefaultMaxLength.
	MaxLength int

	// MaxGenerations is the most rewriting passes Expand will run. Zero or
	// negative means DefaultMaxGenerations.
	MaxGenerations int
}

func (e Engine) limit() int {
	switch {
	case e.MaxLength <= 0:
		return DefaultMaxLength
	case e.MaxLength > maxLengthLimit:
		return maxLengthLimit
	default:
		return e.MaxLength
	}
}

func (e Engine) generationLimit() int {
	if e.MaxGenerations <= 0 {
		return DefaultMaxGenerations
	}
	return e.MaxGenerations
}

// Expand rewrites axiom using DefaultEngine. See Engine.Expand.
func Expand(axiom Sequence, rules ProductionSet, generations int) (Sequence, error) {
	return DefaultEngine.Expand(axiom, rules, generations)
}

// Expand applies rules to axiom for the given number of generations.
//
// Every generation is a single pass that builds a new sequence; the axiom is
// never modified. Lengths are projected before anything is allocated, and an
// error with code SEQUENCE_TOO_LARGE is returned if any generation would
// exceed the ceiling. Once a pass leaves the sequence unchanged, the
// remaining passes are skipped.
func (e Engine) Expand(axiom Sequence, rules ProductionSet, generations int) (Sequence, error) {
	lengths, err := e.Project(axiom, rules, generations)
	if err != nil {
		return nil, err
	}

	cur := axiom.Clone()
	for g := 1; g <= generations; g++ {
		next := rewrite(cur, rules, lengths[g])
		if slices.Equal(next, cur) {
			break
		}
		cur = next
	}
	return cur, nil
}

// rewrite performs one generation. size is the exact output length.
func rewrite(seq Sequence, rules ProductionSet, size int) Sequence {
	out := make(Sequence, 0, size)
	for _, sym := range seq {
		if to, ok := rules.Replacement(sym); ok {
			out = append(out, to...)
		} else {
			out = append(out, sym)
		}
	}
	return out
}

// Project returns the length of every generation from 0 (the axiom) through
// generations without expanding anything. It works on per-symbol occurrence
// counts, so its cost depends on the alphabet size rather than the sequence
// length. A generation longer than MaxLength, or more generations than
// MaxGenerations, is refused with SEQUENCE_TOO_LARGE.
func (e Engine) Project(axiom Sequence, rules ProductionSet, generations int) ([]int, error) {
	if err := errors.ValidateGenerations(generations); err != nil {
		return nil, err
	}
	limit := e.limit()
	maxGens := e.generationLimit()
	if len(axiom) > limit {
		return nil, tooLarge(0, len(axiom), limit)
	}

	alpha := newAlphabet(axiom, rules)
	counts := make([]int, alpha.size())
	for _, sym := range axiom {
		counts[alpha.index[sym]]++
	}

	// expansion[i] lists (target index, multiplicity) for symbol i.
	expansion := make([][]term, alpha.size())
	for i, sym := range alpha.symbols {
		to, ok := rules[sym]
		if !ok {
			expansion[i] = []term{{idx: i, mult: 1}}
			continue
		}
		mult := make(map[int]int)
		var order []int
		for _, t := range to {
			j := alpha.index[t]
			if _, seen := mult[j]; !seen {
				order = append(order, j)
			}
			mult[j]++
		}
		for _, j := range order {
			expansion[i] = append(expansion[i], term{idx: j, mult: mult[j]})
		}
	}

	// lengths grows one generation at a time so the ceilings, not the
	// caller's count, bound its size.
	lengths := make([]int, 1, min(generations, maxGens)+1)
	lengths[0] = len(axiom)
	ceiling := limit + 1
	for g := 1; g <= generations; g++ {
		next := make([]int, len(counts))
		for i, c := range counts {
			if c == 0 {
				continue
			}
			for _, t := range expansion[i] {
				next[t.idx] = satAdd(next[t.idx], satMul(c, t.mult, ceiling), ceiling)
			}
		}
		total := 0
		for _, c := range next {
			total = satAdd(total, c, ceiling)
		}
		if total > limit {
			return nil, tooLarge(g, total, limit)
		}
		if g > maxGens {
			return nil, errors.New(errors.ErrCodeSequenceTooLarge,
				"%d generations exceed the ceiling of %d passes", generations, maxGens)
		}
		lengths = append(lengths, total)
		counts = next
	}
	return lengths, nil
}

// IsTooLarge reports whether err is a SEQUENCE_TOO_LARGE refusal.
func IsTooLarge(err error) bool {
	return errors.Is(err, errors.ErrCodeSequenceTooLarge)
}

func tooLarge(generation, length, limit int) error {
	return errors.New(errors.ErrCodeSequenceTooLarge,
		"generation %d would exceed %d symbols (projected at least %d)", generation, limit, length)
}

type term struct {
	idx  int
	mult int
}

// alphabet assigns dense indexes to every symbol reachable from the axiom or
// mentioned by a production.
type alphabet struct {
	symbols []Symbol
	index   map[Symbol]int
}

func newAlphabet(axiom Sequence, rules ProductionSet) *alphabet {
	a := &alphabet{index: make(map[Symbol]int)}
	for _, sym := range axiom {
		a.add(sym)
	}
	for _, r := range rules.Rules() {
		a.add(r.From)
		for _, sym := range r.To {
			a.add(sym)
		}
	}
	return a
}

func (a *alphabet) add(sym Symbol) {
	if _, ok := a.index[sym]; ok {
		return
	}
	a.index[sym] = len(a.symbols)
	a.symbols = append(a.symbols, sym)
}

func (a *alphabet) size() int { return len(a.symbols) }

func satAdd(a, b, ceiling int) int {
	if a >= ceiling-b {
		return ceiling
	}
	return a + b
}

func satMul(a, b, ceiling int) int {
	if b != 0 && a > ceiling/b {
		return ceiling
	}
	if p := a * b; p < ceiling {
		return p
	}
	return ceiling
}
