package turtle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/grammar"
)

// Kind is the closed set of things a symbol can make the turtle do.
type Kind uint8

const (
	KindIdle Kind = iota
	KindMove
	KindTurn
	KindPush
	KindPop
)

var kindNames = [...]string{
	KindIdle: "idle",
	KindMove: "move",
	KindTurn: "turn",
	KindPush: "push",
	KindPop:  "pop",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Action is a turtle instruction. Angle is in radians; for Turn it is the
// rotation, for Push and Pop it is applied after the stack operation.
type Action struct {
	Kind  Kind
	Angle float64
}

// Idle does nothing.
func Idle() Action { return Action{Kind: KindIdle} }

// Move steps forward one unit along the heading, drawing a line.
func Move() Action { return Action{Kind: KindMove} }

// Turn rotates the heading by delta radians.
func Turn(delta float64) Action { return Action{Kind: KindTurn, Angle: delta} }

// Push saves the pose, then turns by delta radians.
func Push(delta float64) Action { return Action{Kind: KindPush, Angle: delta} }

// Pop restores the last saved pose if there is one, then turns by delta radians.
func Pop(delta float64) Action { return Action{Kind: KindPop, Angle: delta} }

func (a Action) String() string {
	switch a.Kind {
	case KindIdle, KindMove:
		return a.Kind.String()
	default:
		if a.Angle == 0 && a.Kind != KindTurn {
			return a.Kind.String()
		}
		return fmt.Sprintf("%s:%s", a.Kind, strconv.FormatFloat(math.Round(Degrees(a.Angle)*1e6)/1e6, 'g', -1, 64))
	}
}

// ActionTable binds symbols to actions. Lookup of a symbol that is not in
// the table yields Idle, so grammars may use placeholder symbols freely.
type ActionTable map[grammar.Symbol]Action

// Lookup returns the action for sym, or Idle.
func (t ActionTable) Lookup(sym grammar.Symbol) Action {
	if a, ok := t[sym]; ok {
		return a
	}
	return Idle()
}

// DefaultTable returns the conventional bindings for turn angle delta (radians):
//
//	F, G  move
//	+     turn by -delta
//	-     turn by +delta
//	|     turn around
//	[     push
//	]     pop
//
// Since y grows downwards on screen, "+" turns counter-clockwise as drawn.
func DefaultTable(delta float64) ActionTable {
	return ActionTable{
		'F': Move(),
		'G': Move(),
		'+': Turn(-delta),
		'-': Turn(delta),
		'|': Turn(math.Pi),
		'[': Push(0),
		']': Pop(0),
	}
}

// ParseAction parses the textual form used in preset files:
//
//	move | idle
//	turn:+ | turn:- | turn:<degrees>
//	push | push:+ | push:- | push:<degrees>
//	pop  | pop:+  | pop:-  | pop:<degrees>
//
// "+" and "-" stand for the preset's turn angle delta (radians), with the
// same sign convention as DefaultTable: "+" is -delta.
func ParseAction(spec string, delta float64) (Action, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(strings.ToLower(spec)), ":")

	angle := 0.0
	if hasArg {
		a, err := parseAngle(arg, delta)
		if err != nil {
			return Action{}, errors.Wrap(errors.ErrCodeInvalidAction, err, "action %q", spec)
		}
		angle = a
	}

	switch name {
	case "move":
		if hasArg {
			return Action{}, errors.New(errors.ErrCodeInvalidAction, "action %q: move takes no angle", spec)
		}
		return Move(), nil
	case "idle":
		if hasArg {
			return Action{}, errors.New(errors.ErrCodeInvalidAction, "action %q: idle takes no angle", spec)
		}
		return Idle(), nil
	case "turn":
		if !hasArg {
			return Action{}, errors.New(errors.ErrCodeInvalidAction, "action %q: turn needs an angle", spec)
		}
		return Turn(angle), nil
	case "push":
		return Push(angle), nil
	case "pop":
		return Pop(angle), nil
	default:
		return Action{}, errors.New(errors.ErrCodeInvalidAction,
			"unknown action %q (want move, idle, turn, push or pop)", spec)
	}
}

func parseAngle(arg string, delta float64) (float64, error) {
	switch strings.TrimSpace(arg) {
	case "+":
		return -delta, nil
	case "-":
		return delta, nil
	}
	deg, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, fmt.Errorf("angle %q is not finite", arg)
	}
	return Radians(deg), nil
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
