package engine

import (
	"testing"

	chesserrors "github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/testutil"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", InitialFEN, "e2e4", "e4"},
		{"knight", InitialFEN, "g1f3", "Nf3"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N3NK1 w - - 0 1", "b1d2", "Nbd2"},
		{"rank disambiguation low", "4k3/R7/8/8/8/8/R7/4K3 w - - 0 1", "a2a5", "R2a5"},
		{"rank disambiguation high", "4k3/R7/8/8/8/8/R7/4K3 w - - 0 1", "a7a5", "R7a5"},
		{"square disambiguation", "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", "a1b2", "Qa1b2"},
		{"pawn capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5", "exd5"},
		{"promotion with check", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e7e8q", "e8=Q+"},
		{"underpromotion", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e7e8n", "e8=N"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2", "d8h4", "Qh4#"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
		{"kingside castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"queenside castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			testutil.AssertNoError(t, err)

			legal := GenerateLegalMoves(board)
			got := SAN(board, legalMove(t, board, tt.move), legal)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestResolveMove(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		text string
		want string
	}{
		{"san", InitialFEN, "Nf3", "g1f3"},
		{"uci", InitialFEN, "g1f3", "g1f3"},
		{"annotated", InitialFEN, "e4!?", "e2e4"},
		{"zero castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "0-0", "e1g1"},
		{"long castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "O-O-O", "e1c1"},
		{"promotion with equals", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e8=Q+", "e7e8q"},
		{"promotion without equals", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e8R", "e7e8r"},
		{"disambiguated", "4k3/8/8/8/8/8/8/1N3NK1 w - - 0 1", "Nfd2", "f1d2"},
		{"over-disambiguated file", InitialFEN, "Ngf3", "g1f3"},
		{"over-disambiguated square", InitialFEN, "Ng1f3", "g1f3"},
		{"long algebraic piece", InitialFEN, "Ng1-f3", "g1f3"},
		{"long algebraic pawn", InitialFEN, "e2-e4", "e2e4"},
		{"en passant marker", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "exd6e.p.", "e5d6"},
		{"over-disambiguated promotion", "k7/4P3/8/8/8/8/8/4K3 w - - 0 1", "e7e8=N", "e7e8n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			testutil.AssertNoError(t, err)

			m, err := ResolveMove(board, tt.text, GenerateLegalMoves(board))
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, m.UCI(), tt.want)
		})
	}
}

func TestResolveMove_Illegal(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		text string
	}{
		{"empty", InitialFEN, ""},
		{"unreachable square", InitialFEN, "e5"},
		{"ambiguous", "4k3/8/8/8/8/8/8/1N3NK1 w - - 0 1", "Nd2"},
		{"illegal uci", InitialFEN, "e2e5"},
		{"garbage", InitialFEN, "xyz"},
		{"wrong origin file", InitialFEN, "Nhf3"},
		{"ambiguous long form", "4k3/8/8/8/8/8/8/1N3NK1 w - - 0 1", "N1d2"},
		{"promotion letter on piece move", InitialFEN, "Nf3Q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoardFromFEN(tt.fen)
			testutil.AssertNoError(t, err)

			_, err = ResolveMove(board, tt.text, GenerateLegalMoves(board))
			testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)
		})
	}
}
