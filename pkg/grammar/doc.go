// Package grammar implements context-free L-system rewriting.
//
// # Overview
//
// An L-system is an axiom (the starting [Sequence]) plus a [ProductionSet]
// mapping single symbols to replacement sequences. Each generation rewrites
// every symbol of the current sequence in one flat left-to-right pass; symbols
// without a production are copied through unchanged.
//
//	rules := grammar.NewProductionSet(
//	    grammar.MustRule("X", "F+[[X]-X]-F[-FX]+X"),
//	    grammar.MustRule("F", "FF"),
//	)
//	seq, err := grammar.Expand(grammar.Parse("+++X"), rules, 6)
//
// # Growth Ceiling
//
// Sequence length grows exponentially with the generation count. Before any
// generation is materialized, an [Engine] projects the exact length of every
// intermediate generation from symbol counts alone and refuses to expand when
// one would exceed its MaxLength. The refusal is an error with code
// SEQUENCE_TOO_LARGE (see [IsTooLarge]); the engine never truncates.
//
// Productions are not validated: an empty replacement deletes its symbol.
package grammar
