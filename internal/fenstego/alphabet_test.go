package fenstego

import (
	"math/big"
	"testing"

	"github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/testutil"
)

func TestMessageToInt(t *testing.T) {
	tests := []struct {
		msg  string
		want int64
	}{
		{"", 0},
		{"a", 0},
		{"b", 1},
		{`\`, 27},
		{"ba", 28},
		{"bb", 29},
	}

	for _, tt := range tests {
		got, err := MessageToInt(tt.msg)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got.Int64(), tt.want, "MessageToInt(%q)", tt.msg)
	}
}

func TestMessageToInt_Alphabet(t *testing.T) {
	_, err := MessageToInt("abc5")
	testutil.AssertErrorIs(t, err, errors.ErrAlphabet)
	testutil.AssertContains(t, err.Error(), "'5'")
}

func TestIntToMessage(t *testing.T) {
	tests := []struct {
		n      int64
		length int
		want   string
	}{
		{0, 0, ""},
		{0, 3, "aaa"},
		{1, 1, "b"},
		{28, 2, "ba"},
		{28, 4, "aaba"},
	}

	for _, tt := range tests {
		got, err := IntToMessage(big.NewInt(tt.n), tt.length)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got, tt.want, "IntToMessage(%d, %d)", tt.n, tt.length)
	}
}

func TestIntToMessage_TooLarge(t *testing.T) {
	for _, c := range []struct {
		n      int64
		length int
	}{{28, 1}, {1, 0}, {-1, 3}} {
		_, err := IntToMessage(big.NewInt(c.n), c.length)
		testutil.AssertErrorIs(t, err, errors.ErrIntegrity, "IntToMessage(%d, %d)", c.n, c.length)
	}
}

func TestPlacement_RoundTrip(t *testing.T) {
	for _, p := range []string{BasePlacement, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR", "8/8/8/8/8/8/8/8"} {
		g, err := ParsePlacement(p)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, g.Placement(), p)
	}
}
