package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCanvasSide bounds either canvas dimension. A 4096x4096 canvas of packed
// 32-bit colors is 64 MiB, which is as much as a single frame should cost.
const MaxCanvasSide = 4096

// ValidateCanvas validates canvas dimensions in pixels.
func ValidateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas must be at least 1x1 (got %dx%d)", width, height)
	}
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return New(ErrCodeInvalidInput, "canvas too large (max %dx%d, got %dx%d)",
			MaxCanvasSide, MaxCanvasSide, width, height)
	}
	return nil
}

// ValidateGenerations validates a generation count.
func ValidateGenerations(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "generations cannot be negative (got %d)", n)
	}
	return nil
}

// ValidateMargin validates a margin fraction. The margin is applied on both
// sides of each axis, so it must leave a non-empty drawing area.
func ValidateMargin(f float64) error {
	if math.IsNaN(f) || f < 0 || f >= 0.5 {
		return New(ErrCodeInvalidInput, "margin must be in [0, 0.5) (got %v)", f)
	}
	return nil
}

// ValidateStep validates a step length in drawing units per move.
func ValidateStep(step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return New(ErrCodeInvalidInput, "step length must be a positive number (got %v)", step)
	}
	return nil
}

// ValidateAngle validates a turn angle in degrees.
func ValidateAngle(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return New(ErrCodeInvalidInput, "angle must be finite (got %v)", deg)
	}
	return nil
}

// ValidateAxiom validates a grammar axiom. Control characters are rejected
// because they cannot be written back in a preset file or shown in a terminal.
func ValidateAxiom(axiom string) error {
	if axiom == "" {
		return New(ErrCodeInvalidPreset, "axiom cannot be empty")
	}
	for _, r := range axiom {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPreset, "axiom contains control character %q", r)
		}
	}
	return nil
}

// ValidateRuleKey validates the left-hand side of a production, which must be
// exactly one symbol.
func ValidateRuleKey(key string) error {
	if n := len([]rune(key)); n != 1 {
		return New(ErrCodeInvalidPreset, "rule %q must rewrite exactly one symbol (has %d)", key, n)
	}
	if strings.TrimSpace(key) == "" {
		return New(ErrCodeInvalidPreset, "rule symbol cannot be whitespace")
	}
	return nil
}
