package engine

import (
	"fmt"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/hashing"
)

// Game is a chess game in progress: the current position, the moves
// played so far and the repetition history needed for game-over rules.
type Game struct {
	board     *chess.Board
	legal     []*chess.Move
	positions *hashing.PositionCounter
	record    *chess.Game
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	return newGame(NewInitialBoard())
}

// NewGameFromFEN starts a game from an arbitrary position.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := newGame(board)
	if fen != InitialFEN {
		g.record.SetTag(chess.SetupTag, "1")
		g.record.SetTag(chess.FENTag, fen)
	}
	return g, nil
}

func newGame(board *chess.Board) *Game {
	g := &Game{
		board:     board,
		positions: hashing.NewPositionCounter(),
		record:    chess.NewGame(),
	}
	g.positions.Add(g.positionKey())
	return g
}

// Board returns a copy of the current position.
func (g *Game) Board() *chess.Board {
	return g.board.Copy()
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	return g.board.ToMove
}

// Record returns the game record holding every move played, with SAN text.
func (g *Game) Record() *chess.Game {
	return g.record
}

// legalMoves returns the cached legal moves, sorted by UCI name.
func (g *Game) legalMoves() []*chess.Move {
	if g.legal == nil {
		g.legal = SortedLegalMoves(g.board)
	}
	return g.legal
}

// LegalMoves returns the UCI names of the legal moves in ascending byte
// order. The order is the same for every call on the same position.
func (g *Game) LegalMoves() []string {
	moves := g.legalMoves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.UCI()
	}
	return names
}

// Play applies the legal move with the given UCI name.
func (g *Game) Play(uci string) error {
	legal := g.legalMoves()
	for _, m := range legal {
		if m.UCI() == uci {
			g.apply(m, legal)
			return nil
		}
	}
	return fmt.Errorf("%q in %s: %w", uci, g.FEN(), errors.ErrIllegalMove)
}

// ParseMove resolves SAN or UCI text against the current position and
// returns the UCI name of the move it denotes.
func (g *Game) ParseMove(text string) (string, error) {
	m, err := ResolveMove(g.board, text, g.legalMoves())
	if err != nil {
		return "", err
	}
	return m.UCI(), nil
}

func (g *Game) apply(m *chess.Move, legal []*chess.Move) {
	played := *m
	played.Prev, played.Next = nil, nil
	played.Text = SAN(g.board, &played, legal)

	// The move came from the legal list, so it cannot fail.
	_ = ApplyMove(g.board, &played)

	g.record.AppendMove(&played)
	g.legal = nil
	g.positions.Add(g.positionKey())
}

// Termination reports why the game is over, or NotOver.
func (g *Game) Termination() Termination {
	noMoves := len(g.legalMoves()) == 0
	inCheck := IsInCheck(g.board, g.board.ToMove)
	switch {
	case noMoves && inCheck:
		return Checkmate
	case HasInsufficientMaterial(g.board):
		return InsufficientMaterial
	case noMoves:
		return Stalemate
	case g.board.HalfmoveClock >= SeventyFiveMoveLimit:
		return SeventyFiveMoves
	case g.positions.Count(g.positionKey()) >= 5:
		return FivefoldRepetition
	default:
		return NotOver
	}
}

// Outcome returns the PGN result and whether the game is over. Only
// automatic endings count; draws that must be claimed do not.
func (g *Game) Outcome() (string, bool) {
	t := g.Termination()
	return resultFor(t, g.board.ToMove), t != NotOver
}

// positionKey identifies a position for repetition counting. An en
// passant square only counts when a capture there is actually legal.
func (g *Game) positionKey() uint64 {
	return hashing.Zobrist(g.board, g.board.EnPassant && hasLegalEnPassant(g.board))
}

// hasLegalEnPassant reports whether the side to move can capture en passant.
func hasLegalEnPassant(board *chess.Board) bool {
	for _, m := range GenerateLegalMoves(board) {
		if m.Class == chess.EnPassantPawnMove {
			return true
		}
	}
	return false
}
