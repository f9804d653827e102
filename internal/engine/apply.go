package engine

import (
	"fmt"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/errors"
)

// ApplyMove plays a fully specified move on the board and updates the
// castling rights, en passant square, clocks and side to move. It checks
// only that the mover owns the piece on the source square; legality
// against check is the caller's concern (see GenerateLegalMoves).
func ApplyMove(board *chess.Board, move *chess.Move) error {
	if move == nil {
		return fmt.Errorf("nil move: %w", errors.ErrIllegalMove)
	}
	colour := board.ToMove
	piece := board.Get(move.FromCol, move.FromRank)
	if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
		return fmt.Errorf("no %s piece on %s: %w", colour, move.From(), errors.ErrIllegalMove)
	}

	captured := board.Get(move.ToCol, move.ToRank)

	switch move.Class {
	case chess.KingsideCastle:
		applyCastle(board, colour, move.FromRank, true)
	case chess.QueensideCastle:
		applyCastle(board, colour, move.FromRank, false)
	default:
		board.Set(move.FromCol, move.FromRank, chess.Empty)
		switch move.Class {
		case chess.PawnMoveWithPromotion:
			promoted := move.PromotedPiece
			if !chess.IsOccupied(promoted) {
				promoted = chess.Queen
			}
			board.Set(move.ToCol, move.ToRank, chess.MakeColouredPiece(colour, promoted))
		case chess.EnPassantPawnMove:
			board.Set(move.ToCol, move.FromRank, chess.Empty)
			board.Set(move.ToCol, move.ToRank, piece)
		default:
			board.Set(move.ToCol, move.ToRank, piece)
		}
	}

	if chess.ExtractPiece(piece) == chess.King {
		board.SetKing(colour, move.To())
		clearCastling(board, colour)
	}
	updateCastlingRightsForSquare(board, move.FromCol, move.FromRank)
	updateCastlingRightsForSquare(board, move.ToCol, move.ToRank)

	board.EnPassant = false
	if chess.ExtractPiece(piece) == chess.Pawn {
		if d := int(move.ToRank) - int(move.FromRank); d == 2 || d == -2 {
			board.EnPassant = true
			board.EPCol = move.FromCol
			board.EPRank = chess.Rank(int(move.FromRank) + d/2)
		}
	}

	if chess.ExtractPiece(piece) == chess.Pawn || chess.IsOccupied(captured) {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}
	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
	return nil
}

// applyCastle moves king and rook for a castling move.
func applyCastle(board *chess.Board, colour chess.Colour, rank chess.Rank, kingside bool) {
	kingToCol, rookFromCol, rookToCol := chess.Col('c'), chess.Col('a'), chess.Col('d')
	if kingside {
		kingToCol, rookFromCol, rookToCol = 'g', 'h', 'f'
	}

	king := board.Get('e', rank)
	board.Set('e', rank, chess.Empty)
	board.Set(kingToCol, rank, king)

	rook := board.Get(rookFromCol, rank)
	board.Set(rookFromCol, rank, chess.Empty)
	board.Set(rookToCol, rank, rook)
}

// clearCastling removes both castling rights of colour.
func clearCastling(board *chess.Board, colour chess.Colour) {
	if colour == chess.White {
		board.WKingCastle, board.WQueenCastle = 0, 0
	} else {
		board.BKingCastle, board.BQueenCastle = 0, 0
	}
}

// updateCastlingRightsForSquare drops the right tied to a rook's home
// square once anything moves from or to it.
func updateCastlingRightsForSquare(board *chess.Board, col chess.Col, rank chess.Rank) {
	switch {
	case rank == '1' && col == board.WKingCastle:
		board.WKingCastle = 0
	case rank == '1' && col == board.WQueenCastle:
		board.WQueenCastle = 0
	case rank == '8' && col == board.BKingCastle:
		board.BKingCastle = 0
	case rank == '8' && col == board.BQueenCastle:
		board.BQueenCastle = 0
	}
}
