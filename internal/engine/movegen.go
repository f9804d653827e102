package engine

import (
	"sort"

	"github.com/lgbarn/chessstego-go/internal/chess"
)

// GenerateLegalMoves returns every legal move for the side to move.
func GenerateLegalMoves(board *chess.Board) []*chess.Move {
	colour := board.ToMove
	var legal []*chess.Move
	for _, move := range generatePseudoLegal(board, colour) {
		if tryMove(board, move) {
			legal = append(legal, move)
		}
	}
	return legal
}

// SortedLegalMoves returns the legal moves ordered by their UCI names.
func SortedLegalMoves(board *chess.Board) []*chess.Move {
	moves := GenerateLegalMoves(board)
	sort.Slice(moves, func(i, j int) bool {
		return moves[i].UCI() < moves[j].UCI()
	})
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	for _, move := range generatePseudoLegal(board, board.ToMove) {
		if tryMove(board, move) {
			return true
		}
	}
	return false
}

// tryMove plays move on a copy of the board and reports whether the
// mover's king is safe afterwards.
func tryMove(board *chess.Board, move *chess.Move) bool {
	testBoard := board.Copy()
	colour := testBoard.ToMove
	if err := ApplyMove(testBoard, move); err != nil {
		return false
	}
	return !IsInCheck(testBoard, colour)
}

// generatePseudoLegal lists the moves that obey piece movement rules,
// ignoring whether they leave the king in check. Castling is the
// exception: its path and transit squares are fully checked here.
func generatePseudoLegal(board *chess.Board, colour chess.Colour) []*chess.Move {
	moves := make([]*chess.Move, 0, 48)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) || chess.ExtractColour(piece) != colour {
				continue
			}

			switch pieceType := chess.ExtractPiece(piece); pieceType {
			case chess.Pawn:
				moves = appendPawnMoves(moves, board, col, rank, colour)
			case chess.Knight:
				moves = appendStepMoves(moves, board, col, rank, colour, pieceType, knightOffsets)
			case chess.King:
				moves = appendStepMoves(moves, board, col, rank, colour, pieceType, kingOffsets)
				moves = appendCastles(moves, board, colour)
			case chess.Bishop:
				moves = appendSlidingMoves(moves, board, col, rank, colour, pieceType, diagonalDirs)
			case chess.Rook:
				moves = appendSlidingMoves(moves, board, col, rank, colour, pieceType, straightDirs)
			case chess.Queen:
				moves = appendSlidingMoves(moves, board, col, rank, colour, pieceType, diagonalDirs)
				moves = appendSlidingMoves(moves, board, col, rank, colour, pieceType, straightDirs)
			}
		}
	}
	return moves
}

// newMove builds a move record for the given squares.
func newMove(class chess.MoveClass, piece chess.Piece, fromCol chess.Col, fromRank chess.Rank,
	toCol chess.Col, toRank chess.Rank, captured chess.Piece) *chess.Move {
	m := chess.NewMove()
	m.Class = class
	m.PieceToMove = piece
	m.FromCol, m.FromRank = fromCol, fromRank
	m.ToCol, m.ToRank = toCol, toRank
	if chess.IsOccupied(captured) {
		m.CapturedPiece = chess.ExtractPiece(captured)
	}
	return m
}

// appendPawnMoves adds pushes, captures, en passant and promotions.
func appendPawnMoves(moves []*chess.Move, board *chess.Board, col chess.Col, rank chess.Rank, colour chess.Colour) []*chess.Move {
	dir := chess.ColourOffset(colour)
	startRank, lastRank := chess.Rank('2'), chess.Rank('8')
	if colour == chess.Black {
		startRank, lastRank = '7', '1'
	}

	add := func(toCol chess.Col, toRank chess.Rank, captured chess.Piece) {
		if toRank == lastRank {
			for _, promo := range promotionPieces {
				m := newMove(chess.PawnMoveWithPromotion, chess.Pawn, col, rank, toCol, toRank, captured)
				m.PromotedPiece = promo
				moves = append(moves, m)
			}
			return
		}
		moves = append(moves, newMove(chess.PawnMove, chess.Pawn, col, rank, toCol, toRank, captured))
	}

	oneRank := chess.Rank(int(rank) + dir)
	if board.Get(col, oneRank) == chess.Empty {
		add(col, oneRank, chess.Empty)
		twoRank := chess.Rank(int(rank) + 2*dir)
		if rank == startRank && board.Get(col, twoRank) == chess.Empty {
			add(col, twoRank, chess.Empty)
		}
	}

	for _, dc := range []int{-1, 1} {
		toCol := chess.Col(int(col) + dc)
		target := board.Get(toCol, oneRank)
		if chess.IsOccupied(target) && chess.ExtractColour(target) != colour {
			add(toCol, oneRank, target)
			continue
		}
		if board.EnPassant && toCol == board.EPCol && oneRank == board.EPRank && target == chess.Empty {
			victim := board.Get(toCol, rank)
			if victim == chess.MakeColouredPiece(colour.Opposite(), chess.Pawn) {
				m := newMove(chess.EnPassantPawnMove, chess.Pawn, col, rank, toCol, oneRank, chess.Empty)
				m.CapturedPiece = chess.Pawn
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// appendStepMoves adds single-step moves for knights and kings.
func appendStepMoves(moves []*chess.Move, board *chess.Board, col chess.Col, rank chess.Rank,
	colour chess.Colour, pieceType chess.Piece, offsets [][2]int) []*chess.Move {
	for _, o := range offsets {
		toCol, toRank := offset(col, rank, o[0], o[1])
		target := board.Get(toCol, toRank)
		if target == chess.Empty || (target != chess.Off && chess.ExtractColour(target) != colour) {
			moves = append(moves, newMove(chess.PieceMove, pieceType, col, rank, toCol, toRank, target))
		}
	}
	return moves
}

// appendSlidingMoves adds moves along each direction until blocked.
func appendSlidingMoves(moves []*chess.Move, board *chess.Board, col chess.Col, rank chess.Rank,
	colour chess.Colour, pieceType chess.Piece, dirs [][2]int) []*chess.Move {
	for _, dir := range dirs {
		toCol, toRank := offset(col, rank, dir[0], dir[1])
		for {
			target := board.Get(toCol, toRank)
			if target == chess.Off {
				break
			}
			if target != chess.Empty {
				if chess.ExtractColour(target) != colour {
					moves = append(moves, newMove(chess.PieceMove, pieceType, col, rank, toCol, toRank, target))
				}
				break // Blocked
			}
			moves = append(moves, newMove(chess.PieceMove, pieceType, col, rank, toCol, toRank, target))
			toCol, toRank = offset(toCol, toRank, dir[0], dir[1])
		}
	}
	return moves
}

// appendCastles adds the castling moves still available to colour. The
// squares between king and rook must be empty, and the king may not
// start on, cross or land on an attacked square.
func appendCastles(moves []*chess.Move, board *chess.Board, colour chess.Colour) []*chess.Move {
	rank := chess.Rank('1')
	kingSide, queenSide := board.WKingCastle, board.WQueenCastle
	if colour == chess.Black {
		rank = '8'
		kingSide, queenSide = board.BKingCastle, board.BQueenCastle
	}
	if board.Get('e', rank) != chess.MakeColouredPiece(colour, chess.King) {
		return moves
	}
	enemy := colour.Opposite()
	if kingSide == 0 && queenSide == 0 || isSquareAttacked(board, 'e', rank, enemy) {
		return moves
	}

	rook := chess.MakeColouredPiece(colour, chess.Rook)
	if kingSide != 0 && board.Get('h', rank) == rook &&
		board.Get('f', rank) == chess.Empty && board.Get('g', rank) == chess.Empty &&
		!isSquareAttacked(board, 'f', rank, enemy) && !isSquareAttacked(board, 'g', rank, enemy) {
		moves = append(moves, newMove(chess.KingsideCastle, chess.King, 'e', rank, 'g', rank, chess.Empty))
	}
	if queenSide != 0 && board.Get('a', rank) == rook &&
		board.Get('b', rank) == chess.Empty && board.Get('c', rank) == chess.Empty && board.Get('d', rank) == chess.Empty &&
		!isSquareAttacked(board, 'd', rank, enemy) && !isSquareAttacked(board, 'c', rank, enemy) {
		moves = append(moves, newMove(chess.QueensideCastle, chess.King, 'e', rank, 'c', rank, chess.Empty))
	}
	return moves
}
