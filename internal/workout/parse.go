package workout

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports malformed numeric input. It is recovered locally
// by re-prompting; the draft field stays unset and the state does not
// advance.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workout: invalid numeric input %q", e.Input)
}

// ParsePositiveInt parses a strictly positive integer (sets, reps).
func ParsePositiveInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v <= 0 {
		return 0, &ValidationError{Input: text}
	}
	return v, nil
}

// ParseWeight parses a non-negative weight in kilograms. Zero is allowed
// for bodyweight movements. A decimal comma is accepted.
func ParseWeight(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, &ValidationError{Input: text}
	}
	return v, nil
}
