// Package errors provides the sentinel errors and context wrappers shared by
// the chessstego codecs. Every failure returned by the codecs wraps one of
// the sentinels below, so callers classify failures with errors.Is() and
// pull position context out with errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Codec failure kinds.
var (
	// ErrAlphabet indicates input containing a character outside the
	// permitted message alphabet.
	ErrAlphabet = errors.New("character outside alphabet")

	// ErrCapacity indicates a message that does not fit the carrier.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrFormat indicates a malformed FEN or PGN artifact.
	ErrFormat = errors.New("malformed input")

	// ErrIntegrity indicates an artifact that parses but does not carry a
	// consistent hidden payload.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrGameExhausted indicates the game ended before the whole
	// bitstream was encoded.
	ErrGameExhausted = errors.New("game ended before encoding was complete")
)

// Engine, parser and configuration failures.
var (
	// ErrInvalidFEN indicates a malformed FEN string given to the engine.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrParseFailure indicates a general PGN parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PlyError wraps a branch codec failure with the ply at which it happened.
type PlyError struct {
	Err  error  // The underlying error
	Ply  int    // 1-based ply number (0 if not applicable)
	Move string // Move text involved (if applicable)
}

// Error returns the message with ply and move context.
func (e *PlyError) Error() string {
	var parts []string
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}
	context := strings.Join(parts, ", ")

	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *PlyError) Unwrap() error {
	return e.Err
}

// SquareError wraps a board mapping failure with the square involved.
type SquareError struct {
	Err    error  // The underlying error
	Square string // Algebraic square, e.g. "b3"
	Symbol byte   // Offending piece symbol (0 if not applicable)
}

// Error returns the message with square context.
func (e *SquareError) Error() string {
	context := "square " + e.Square
	if e.Symbol != 0 {
		context = fmt.Sprintf("symbol %q on square %s", e.Symbol, e.Square)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *SquareError) Unwrap() error {
	return e.Err
}

// ParseError represents a PGN syntax error with location context.
type ParseError struct {
	Err      error  // The underlying error
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		loc := fmt.Sprintf("line %d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(", column %d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
// It lets callers that import this package under the name errors keep
// using errors.Is without a second import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
