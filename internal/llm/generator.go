// Package llm abstracts the opaque text-generation capability behind a small
// interface so the routing core never talks to a provider SDK directly.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// #region generator

// Generator produces free-form text from system instructions and user content.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// #endregion generator

// #region generation-error

// GenerationError marks a failed generation call. It is fatal to the turn:
// callers must surface it, never substitute a guessed route.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation call %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError reports whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// #endregion generation-error
