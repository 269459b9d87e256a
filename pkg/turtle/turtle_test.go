package turtle

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/grammar"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestWalkStackBalance(t *testing.T) {
	table := DefaultTable(Radians(25))
	got, err := Final(grammar.Parse("F[+F]F"), 100, 1, geom.Pt(0, 0), table, Options{})
	if err != nil {
		t.Fatalf("Final() error: %v", err)
	}
	want := Pose{Pos: geom.Pt(2, 0), Heading: 0}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Final() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkEmptyPopIsNoop(t *testing.T) {
	table := DefaultTable(Radians(25))

	withPop, err := Render(grammar.Parse("]F"), 2, 1, geom.Pt(0, 0), table, Options{})
	if err != nil {
		t.Fatalf("Render(]F) error: %v", err)
	}
	withoutPop, err := Render(grammar.Parse("F"), 1, 1, geom.Pt(0, 0), table, Options{})
	if err != nil {
		t.Fatalf("Render(F) error: %v", err)
	}
	if diff := cmp.Diff(withoutPop, withPop, approx); diff != "" {
		t.Errorf("empty pop changed output (-want +got):\n%s", diff)
	}
}

func TestWalkStrictPop(t *testing.T) {
	table := DefaultTable(Radians(25))
	_, err := Render(grammar.Parse("F]F"), 3, 1, geom.Pt(0, 0), table, Options{StrictPop: true})
	if !errors.Is(err, errors.ErrCodeUnbalancedStack) {
		t.Errorf("Render() error = %v, want %s", err, errors.ErrCodeUnbalancedStack)
	}

	// Balanced brackets are fine in strict mode.
	if _, err := Render(grammar.Parse("[F]F"), 4, 1, geom.Pt(0, 0), table, Options{StrictPop: true}); err != nil {
		t.Errorf("Render(balanced) error: %v", err)
	}
}

func TestWalkPopStillTurnsOnEmptyStack(t *testing.T) {
	table := ActionTable{'F': Move(), ')': Pop(math.Pi / 2)}
	got, err := Final(grammar.Parse(")F"), 2, 1, geom.Pt(0, 0), table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := Pose{Pos: geom.Pt(0, 1), Heading: math.Pi / 2}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Final() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkPushTurnsAfterSaving(t *testing.T) {
	table := ActionTable{'F': Move(), '(': Push(math.Pi / 2), ')': Pop(0)}
	segs, err := Render(grammar.Parse("(F)F"), 4, 2, geom.Pt(1, 1), table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{
		{From: geom.Pt(1, 1), To: geom.Pt(1, 3)},
		{From: geom.Pt(1, 1), To: geom.Pt(3, 1)},
	}
	if diff := cmp.Diff(want, segs, approx); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkScaleAndOrigin(t *testing.T) {
	table := DefaultTable(math.Pi / 2)
	segs, err := Render(grammar.Parse("F-F"), 3, 10, geom.Pt(5, 5), table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{
		{From: geom.Pt(5, 5), To: geom.Pt(15, 5)},
		{From: geom.Pt(15, 5), To: geom.Pt(15, 15)},
	}
	if diff := cmp.Diff(want, segs, approx); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkClampsUpto(t *testing.T) {
	table := DefaultTable(Radians(90))
	tests := []struct {
		name string
		upto int
		want int
	}{
		{"negative", -3, 0},
		{"zero", 0, 0},
		{"partial", 2, 1},
		{"exact", 3, 2},
		{"beyond", 50, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Render(grammar.Parse("F+F"), tt.upto, 1, geom.Pt(0, 0), table, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if len(segs) != tt.want {
				t.Errorf("len(segments) = %d, want %d", len(segs), tt.want)
			}
		})
	}
}

func TestWalkHeadingStaysBounded(t *testing.T) {
	table := ActionTable{'t': Turn(3 * math.Pi / 2)}
	pose, err := Final(grammar.Parse("tttttttttt"), 10, 1, geom.Pt(0, 0), table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pose.Heading) >= 2*math.Pi {
		t.Errorf("heading = %v, want within one revolution", pose.Heading)
	}
	// 10 * 270° = 2700° = 7.5 turns, so half a turn remains.
	if math.Abs(pose.Heading-math.Pi) > 1e-9 {
		t.Errorf("heading = %v, want pi", pose.Heading)
	}
}

func TestRenderMonotoneReveal(t *testing.T) {
	rules := grammar.NewProductionSet(
		grammar.MustRule("X", "F+[[X]-X]-F[-FX]+X"),
		grammar.MustRule("F", "FF"),
	)
	seq, err := grammar.Expand(grammar.Parse("+++X"), rules, 3)
	if err != nil {
		t.Fatal(err)
	}
	table := DefaultTable(Radians(25))

	full, err := Render(seq, len(seq), 3, geom.Pt(100, 100), table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{0, 1, 17, 90, len(seq) / 2, len(seq) - 1} {
		part, err := Render(seq, k, 3, geom.Pt(100, 100), table, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(part) > len(full) {
			t.Fatalf("prefix %d produced %d segments, full has %d", k, len(part), len(full))
		}
		if diff := cmp.Diff(full[:len(part)], part); diff != "" {
			t.Errorf("prefix %d is not a prefix of the full render:\n%s", k, diff)
		}
	}
}

func TestPoseStack(t *testing.T) {
	var s PoseStack
	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack returned ok")
	}
	s.Push(Pose{Heading: 1})
	s.Push(Pose{Heading: 2})
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if p, _ := s.Pop(); p.Heading != 2 {
		t.Errorf("Pop() heading = %v, want 2", p.Heading)
	}
	if p, _ := s.Pop(); p.Heading != 1 {
		t.Errorf("Pop() heading = %v, want 1", p.Heading)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}
