package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/errors"
)

// SAN renders move in Standard Algebraic Notation for the position on
// board, including the check or mate suffix. legal must be the legal
// moves of that position; it is used for disambiguation.
func SAN(board *chess.Board, move *chess.Move, legal []*chess.Move) string {
	text := sanBase(move, legal)

	after := board.Copy()
	if err := ApplyMove(after, move); err != nil {
		return text
	}
	if IsInCheck(after, after.ToMove) {
		if HasLegalMoves(after) {
			move.CheckStatus = chess.Check
			return text + "+"
		}
		move.CheckStatus = chess.Checkmate
		return text + "#"
	}
	move.CheckStatus = chess.NoCheck
	return text
}

// sanBase renders the move without a check suffix.
func sanBase(move *chess.Move, legal []*chess.Move) string {
	switch move.Class {
	case chess.KingsideCastle:
		return "O-O"
	case chess.QueensideCastle:
		return "O-O-O"
	}

	var sb strings.Builder
	if move.PieceToMove == chess.Pawn {
		if move.IsCapture() {
			sb.WriteByte(byte(move.FromCol))
			sb.WriteByte('x')
		}
		sb.WriteString(move.To().String())
		if move.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(move.PromotedPiece.Letter())
		}
		return sb.String()
	}

	sb.WriteByte(move.PieceToMove.Letter())
	sb.WriteString(disambiguation(move, legal))
	if move.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(move.To().String())
	return sb.String()
}

// disambiguation returns the source file, rank or square needed to tell
// move apart from other legal moves of the same piece type to the same
// square.
func disambiguation(move *chess.Move, legal []*chess.Move) string {
	ambiguous, sameCol, sameRank := false, false, false
	for _, other := range legal {
		if other.PieceToMove != move.PieceToMove || other.To() != move.To() || other.From() == move.From() {
			continue
		}
		ambiguous = true
		if other.FromCol == move.FromCol {
			sameCol = true
		}
		if other.FromRank == move.FromRank {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameCol:
		return string(byte(move.FromCol))
	case !sameRank:
		return string(byte(move.FromRank))
	default:
		return move.From().String()
	}
}

// normaliseSAN strips annotation and check suffixes and the promotion
// '=' so that "exd8=Q+!" and "exd8Q" compare equal.
func normaliseSAN(text string) string {
	text = strings.TrimRight(text, "+#!?")
	text = strings.ReplaceAll(text, "=", "")
	return strings.ReplaceAll(text, "0", "O")
}

// ResolveMove finds the legal move named by text, which may be SAN or UCI.
func ResolveMove(board *chess.Board, text string, legal []*chess.Move) (*chess.Move, error) {
	want := normaliseSAN(strings.TrimSpace(text))
	if want == "" {
		return nil, fmt.Errorf("empty move text: %w", errors.ErrIllegalMove)
	}
	for _, m := range legal {
		if m.UCI() == text {
			return m, nil
		}
	}
	for _, m := range legal {
		if normaliseSAN(sanBase(m, legal)) == want {
			return m, nil
		}
	}

	// Other writers over-disambiguate ("Ngf3", "Ng1-f3") or mark en
	// passant; accept those when they name exactly one legal move.
	if pattern, ok := parseSAN(want); ok {
		var found *chess.Move
		for _, m := range legal {
			if !pattern.matches(m) {
				continue
			}
			if found != nil {
				return nil, fmt.Errorf("%q is ambiguous in %s: %w", text, BoardToFEN(board), errors.ErrIllegalMove)
			}
			found = m
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%q in %s: %w", text, BoardToFEN(board), errors.ErrIllegalMove)
}

// sanPattern is the part of a SAN move that identifies it among the
// legal moves. A zero fromCol or fromRank matches any origin.
type sanPattern struct {
	piece     chess.Piece
	fromCol   chess.Col
	fromRank  chess.Rank
	to        chess.Square
	promotion chess.Piece
}

// parseSAN reads normalised SAN leniently: capture marks, a '-' between
// the squares, the "e.p." suffix and redundant origin coordinates are
// allowed. Castling is left to the exact comparison.
func parseSAN(text string) (sanPattern, bool) {
	p := sanPattern{piece: chess.Pawn, promotion: chess.Empty}
	text = strings.TrimSuffix(text, "e.p.")
	text = strings.NewReplacer("x", "", ":", "", "-", "").Replace(text)

	if text != "" && text[0] >= 'A' && text[0] <= 'Z' {
		p.piece = chess.PieceFromLetter(text[0])
		if p.piece == chess.Empty {
			return p, false
		}
		text = text[1:]
	}
	if n := len(text); n > 0 && text[n-1] >= 'A' && text[n-1] <= 'Z' {
		p.promotion = chess.PieceFromLetter(text[n-1])
		if p.promotion == chess.Empty || p.piece != chess.Pawn {
			return p, false
		}
		text = text[:n-1]
	}
	if len(text) < 2 {
		return p, false
	}

	col, rank := chess.Col(text[len(text)-2]), chess.Rank(text[len(text)-1])
	if !chess.OnBoard(col, rank) {
		return p, false
	}
	p.to = chess.Square{Col: col, Rank: rank}

	for _, c := range []byte(text[:len(text)-2]) {
		switch {
		case c >= chess.FirstCol && c <= chess.LastCol && p.fromCol == 0:
			p.fromCol = chess.Col(c)
		case c >= chess.FirstRank && c <= chess.LastRank && p.fromRank == 0:
			p.fromRank = chess.Rank(c)
		default:
			return p, false
		}
	}
	return p, true
}

func (p sanPattern) matches(m *chess.Move) bool {
	if m.IsCastle() || m.PieceToMove != p.piece || m.To() != p.to {
		return false
	}
	if p.fromCol != 0 && m.FromCol != p.fromCol {
		return false
	}
	if p.fromRank != 0 && m.FromRank != p.fromRank {
		return false
	}
	promoted := chess.Empty
	if m.IsPromotion() {
		promoted = m.PromotedPiece
	}
	return promoted == p.promotion
}
