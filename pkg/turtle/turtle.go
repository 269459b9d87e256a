package turtle

import (
	"math"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/grammar"
)

// fullTurn is one revolution in radians.
const fullTurn = 2 * math.Pi

// Pose is a pen snapshot. Heading is in radians, 0 pointing along +x.
type Pose struct {
	Pos     geom.Point
	Heading float64
}

// turn rotates the pose, keeping the heading within one revolution.
func (p *Pose) turn(delta float64) {
	p.Heading = math.Mod(p.Heading+delta, fullTurn)
}

// PoseStack is a LIFO of saved poses.
type PoseStack struct {
	poses []Pose
}

// Push saves p on top of the stack.
func (s *PoseStack) Push(p Pose) {
	s.poses = append(s.poses, p)
}

// Pop removes and returns the top pose. ok is false when the stack is empty.
func (s *PoseStack) Pop() (p Pose, ok bool) {
	n := len(s.poses)
	if n == 0 {
		return Pose{}, false
	}
	p = s.poses[n-1]
	s.poses = s.poses[:n-1]
	return p, true
}

// Len returns the number of saved poses.
func (s *PoseStack) Len() int { return len(s.poses) }

// Segment is one drawn line, in emission order.
type Segment struct {
	From, To geom.Point
}

// Options tunes interpretation.
type Options struct {
	// StrictPop turns a pop on an empty stack into an UNBALANCED_STACK error.
	// By default it is a no-op, apart from the pop's own turn.
	StrictPop bool
}

// Walk replays commands[:upto] from a fresh pen at origin with heading 0
// and an empty stack, calling emit for every Move. upto is clamped to
// len(commands). Each Move travels scale units along the heading.
//
// Walk keeps no state between calls: rendering a longer prefix always
// repeats the segments of a shorter one, in the same order.
func Walk(commands grammar.Sequence, upto int, scale float64, origin geom.Point,
	table ActionTable, opts Options, emit func(Segment)) (Pose, error) {
	if upto > len(commands) {
		upto = len(commands)
	}
	pen := Pose{Pos: origin}
	var stack PoseStack

	for i, sym := range commands[:max(upto, 0)] {
		act := table.Lookup(sym)
		switch act.Kind {
		case KindMove:
			to := pen.Pos.Add(geom.Polar(pen.Heading, scale))
			if emit != nil {
				emit(Segment{From: pen.Pos, To: to})
			}
			pen.Pos = to
		case KindTurn:
			pen.turn(act.Angle)
		case KindPush:
			stack.Push(pen)
			pen.turn(act.Angle)
		case KindPop:
			if saved, ok := stack.Pop(); ok {
				pen = saved
			} else if opts.StrictPop {
				return pen, errors.New(errors.ErrCodeUnbalancedStack,
					"symbol %d (%q) pops an empty stack", i, sym)
			}
			pen.turn(act.Angle)
		}
	}
	return pen, nil
}

// Render collects the segments Walk emits for commands[:upto].
func Render(commands grammar.Sequence, upto int, scale float64, origin geom.Point,
	table ActionTable, opts Options) ([]Segment, error) {
	var segs []Segment
	_, err := Walk(commands, upto, scale, origin, table, opts, func(s Segment) {
		segs = append(segs, s)
	})
	return segs, err
}

// Final returns the pose the pen ends in after commands[:upto].
func Final(commands grammar.Sequence, upto int, scale float64, origin geom.Point,
	table ActionTable, opts Options) (Pose, error) {
	return Walk(commands, upto, scale, origin, table, opts, nil)
}
