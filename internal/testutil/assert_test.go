package testutil

import (
	"errors"
	"fmt"
	"testing"
)

// Failure paths can't be observed without mocking testing.TB, so these
// exercise the success paths and the message formatting.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3}, "slice of %d", 3)
	AssertEqual(t, nil, nil)
}

func TestAssertErrorIs_Success(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
}

func TestAssertHelpers_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertContains(t, "6bk/6rb/8/8/8/8/BR6/KB6 w - - 1 1", "w - - 1 1")
	AssertTrue(t, len("hello") == 5)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"plain string", []interface{}{"context"}, "context"},
		{"format string", []interface{}{"ply %d", 4}, "ply 4"},
		{"non-string", []interface{}{42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			AssertEqual(t, formatMessage(tt.args...), tt.want)
		})
	}
}

func TestPrefix(t *testing.T) {
	AssertEqual(t, prefix(), "")
	AssertEqual(t, prefix("square %s", "b3"), "square b3: ")
}
