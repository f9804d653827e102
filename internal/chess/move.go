package chess

// Move represents a single chess move: the squares and pieces involved
// plus the recorded text and annotations.
type Move struct {
	// The SAN move text (e.g., "Nf3", "e4", "O-O").
	Text string

	// Class of move (pawn move, piece move, castle, etc.).
	Class MoveClass

	// Source square.
	FromCol  Col
	FromRank Rank

	// Destination square.
	ToCol  Col
	ToRank Rank

	// The piece being moved.
	PieceToMove Piece

	// The piece captured (Empty if no capture).
	CapturedPiece Piece

	// The piece promoted to (Empty if not a promotion).
	PromotedPiece Piece

	// Whether this move gives check or checkmate.
	CheckStatus CheckStatus

	// Numeric Annotation Glyphs such as "$1".
	NAGs []string

	// Comments following this move.
	Comments []string

	// Links to previous and next moves in the game.
	Prev *Move
	Next *Move
}

// NewMove creates a new empty move.
func NewMove() *Move {
	return &Move{
		CapturedPiece: Empty,
		PromotedPiece: Empty,
		CheckStatus:   NoCheck,
	}
}

// From returns the source square.
func (m *Move) From() Square {
	return Square{Col: m.FromCol, Rank: m.FromRank}
}

// To returns the destination square.
func (m *Move) To() Square {
	return Square{Col: m.ToCol, Rank: m.ToRank}
}

// UCI returns the move in long algebraic UCI form, e.g. "e2e4", "e1g1"
// or "e7e8q".
func (m *Move) UCI() string {
	buf := []byte{byte(m.FromCol), byte(m.FromRank), byte(m.ToCol), byte(m.ToRank)}
	if m.Class == PawnMoveWithPromotion {
		buf = append(buf, m.PromotedPiece.Letter()+('a'-'A'))
	}
	return string(buf)
}

// IsCapture returns true if this move is a capture.
func (m *Move) IsCapture() bool {
	return IsOccupied(m.CapturedPiece) || m.Class == EnPassantPawnMove
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// AppendComment adds a comment to this move.
func (m *Move) AppendComment(text string) {
	m.Comments = append(m.Comments, text)
}

// AppendNAG adds a NAG to this move.
func (m *Move) AppendNAG(text string) {
	m.NAGs = append(m.NAGs, text)
}
