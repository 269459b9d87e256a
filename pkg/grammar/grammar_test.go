package grammar

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sprout/pkg/errors"
)

func plantRules() ProductionSet {
	return NewProductionSet(
		MustRule("X", "F+[[X]-X]-F[-FX]+X"),
		MustRule("F", "FF"),
	)
}

func TestExpandZeroGenerationsIsIdentity(t *testing.T) {
	tests := []struct {
		name  string
		axiom string
		rules ProductionSet
	}{
		{"plant axiom", "+++X", plantRules()},
		{"no rules", "F-F", nil},
		{"empty axiom", "", plantRules()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(Parse(tt.axiom), tt.rules, 0)
			if err != nil {
				t.Fatalf("Expand() error: %v", err)
			}
			if got.String() != tt.axiom {
				t.Errorf("Expand(%q, 0) = %q, want unchanged", tt.axiom, got)
			}
		})
	}
}

func TestExpandDoesNotAliasAxiom(t *testing.T) {
	axiom := Parse("X")
	got, err := Expand(axiom, plantRules(), 0)
	if err != nil {
		t.Fatal(err)
	}
	got[0] = 'Z'
	if axiom[0] != 'X' {
		t.Errorf("mutating result changed axiom to %q", axiom)
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name        string
		axiom       string
		rules       ProductionSet
		generations int
		want        string
	}{
		{
			name:        "single substitution",
			axiom:       "X",
			rules:       NewProductionSet(MustRule("X", "F")),
			generations: 1,
			want:        "F",
		},
		{
			name:        "literals pass through",
			axiom:       "+X-",
			rules:       NewProductionSet(MustRule("X", "F")),
			generations: 1,
			want:        "+F-",
		},
		{
			name:        "algae",
			axiom:       "A",
			rules:       NewProductionSet(MustRule("A", "AB"), MustRule("B", "A")),
			generations: 4,
			want:        "ABAABABA",
		},
		{
			name:        "flat pass per generation",
			axiom:       "X",
			rules:       NewProductionSet(MustRule("X", "XX")),
			generations: 3,
			want:        "XXXXXXXX",
		},
		{
			name:        "empty replacement deletes",
			axiom:       "AXB",
			rules:       NewProductionSet(MustRule("X", "")),
			generations: 1,
			want:        "AB",
		},
		{
			name:        "plant first generation",
			axiom:       "+++X",
			rules:       plantRules(),
			generations: 1,
			want:        "+++F+[[X]-X]-F[-FX]+X",
		},
		{
			name:        "later duplicate rule wins",
			axiom:       "X",
			rules:       NewProductionSet(MustRule("X", "A"), MustRule("X", "B")),
			generations: 1,
			want:        "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(Parse(tt.axiom), tt.rules, tt.generations)
			if err != nil {
				t.Fatalf("Expand() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandDeterministic(t *testing.T) {
	axiom := Parse("+++X")
	a, err := Expand(axiom, plantRules(), 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Expand(axiom, plantRules(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Expand() not deterministic (-first +second):\n%s", diff)
	}
}

func TestExpandNegativeGenerations(t *testing.T) {
	_, err := Expand(Parse("X"), plantRules(), -1)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Expand(-1) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestExpandCapEnforcement(t *testing.T) {
	eng := Engine{MaxLength: 1000}
	rules := NewProductionSet(MustRule("F", "FF"))

	// 2^9 = 512 fits, 2^10 = 1024 does not.
	seq, err := eng.Expand(Parse("F"), rules, 9)
	if err != nil {
		t.Fatalf("Expand(9) error: %v", err)
	}
	if len(seq) != 512 {
		t.Errorf("len = %d, want 512", len(seq))
	}

	_, err = eng.Expand(Parse("F"), rules, 10)
	if !IsTooLarge(err) {
		t.Fatalf("Expand(10) error = %v, want SEQUENCE_TOO_LARGE", err)
	}

	// Far past any addressable size must still be refused, not overflow.
	_, err = eng.Expand(Parse("F"), rules, 200)
	if !IsTooLarge(err) {
		t.Errorf("Expand(200) error = %v, want SEQUENCE_TOO_LARGE", err)
	}
}

func TestExpandHugeGenerationCount(t *testing.T) {
	tests := []struct {
		name        string
		generations int
	}{
		{"max int", math.MaxInt},
		{"beyond memory", 1 << 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Engine{MaxLength: 1000}.Expand(Parse("F"), NewProductionSet(MustRule("F", "FF")), tt.generations)
			if !IsTooLarge(err) {
				t.Errorf("Expand(%d) error = %v, want SEQUENCE_TOO_LARGE", tt.generations, err)
			}
		})
	}
}

func TestExpandGenerationCeiling(t *testing.T) {
	// F→F never grows, so only the pass ceiling can stop it.
	rules := NewProductionSet(MustRule("F", "F"))
	eng := Engine{MaxGenerations: 16}

	if _, err := eng.Expand(Parse("F"), rules, 2_000_000_000); !IsTooLarge(err) {
		t.Errorf("Expand(2e9) error = %v, want SEQUENCE_TOO_LARGE", err)
	}
	if _, err := DefaultEngine.Expand(Parse("F"), rules, math.MaxInt); !IsTooLarge(err) {
		t.Errorf("DefaultEngine.Expand(MaxInt) error = %v, want SEQUENCE_TOO_LARGE", err)
	}

	seq, err := eng.Expand(Parse("F+F"), rules, 16)
	if err != nil {
		t.Fatalf("Expand(16) error: %v", err)
	}
	if seq.String() != "F+F" {
		t.Errorf("Expand(16) = %q, want %q", seq, "F+F")
	}
}

func TestProjectLengthsBoundedByCeiling(t *testing.T) {
	lengths, err := Engine{MaxGenerations: 8}.Project(Parse("AB"), NewProductionSet(MustRule("A", "B"), MustRule("B", "A")), 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(lengths) != 9 {
		t.Errorf("len(Project()) = %d, want 9", len(lengths))
	}
	for g, n := range lengths {
		if n != 2 {
			t.Errorf("Project()[%d] = %d, want 2", g, n)
		}
	}
}

func TestExpandCapAppliesToIntermediateGenerations(t *testing.T) {
	// Generation 1 grows to 8 symbols, generation 2 shrinks back to 1.
	rules := NewProductionSet(MustRule("A", "BBBBBBBB"), MustRule("B", ""), MustRule("C", "A"))
	eng := Engine{MaxLength: 4}
	if _, err := eng.Expand(Parse("A"), rules, 2); !IsTooLarge(err) {
		t.Errorf("Expand() error = %v, want SEQUENCE_TOO_LARGE", err)
	}
}

func TestProject(t *testing.T) {
	lengths, err := DefaultEngine.Project(Parse("+++X"), plantRules(), 4)
	if err != nil {
		t.Fatal(err)
	}
	for g, want := range lengths {
		seq, err := Expand(Parse("+++X"), plantRules(), g)
		if err != nil {
			t.Fatal(err)
		}
		if len(seq) != want {
			t.Errorf("Project()[%d] = %d, actual length %d", g, want, len(seq))
		}
	}
}

func TestNewRule(t *testing.T) {
	r, err := NewRule("X", "F[+X]")
	if err != nil {
		t.Fatalf("NewRule() error: %v", err)
	}
	if r.From != 'X' || r.To.String() != "F[+X]" {
		t.Errorf("NewRule() = %c -> %q", r.From, r.To)
	}

	if _, err := NewRule("XY", "F"); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("NewRule(XY) error = %v, want %s", err, errors.ErrCodeInvalidPreset)
	}
}

func TestHistogram(t *testing.T) {
	h := Parse("FF+F").Histogram()
	if h['F'] != 3 || h['+'] != 1 || len(h) != 2 {
		t.Errorf("Histogram() = %v", h)
	}
}

func TestRulesSorted(t *testing.T) {
	rules := plantRules().Rules()
	if len(rules) != 2 || rules[0].From != 'F' || rules[1].From != 'X' {
		t.Errorf("Rules() = %v, want F then X", rules)
	}
}
