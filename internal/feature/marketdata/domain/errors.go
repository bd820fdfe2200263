// Package domain defines domain-level errors for the marketdata feature.
package domain

import "fmt"

// InvalidArgumentError indicates that a numeric parameter violates its
// documented lower bound (lookback windows and session offsets must be >= 1).
// It is always surfaced to the caller and never retried; insufficient stored
// history is a normal empty result, not this error.
type InvalidArgumentError struct {
	Name  string
	Value int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must be at least 1, got %d", e.Name, e.Value)
}
