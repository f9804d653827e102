package engine

import (
	"github.com/lgbarn/chessstego-go/internal/chess"
)

// Termination is the reason a game ended on the board.
type Termination int

const (
	NotOver Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
)

// String returns the PGN-style description of the termination.
func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case SeventyFiveMoves:
		return "seventy-five moves"
	case FivefoldRepetition:
		return "fivefold repetition"
	default:
		return "not over"
	}
}

// SeventyFiveMoveLimit is the halfmove clock value that ends the game.
const SeventyFiveMoveLimit = 150

// IsCheckmate returns true if the side to move is checkmated.
func IsCheckmate(board *chess.Board) bool {
	return IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// IsStalemate returns true if the side to move has no legal move but is
// not in check.
func IsStalemate(board *chess.Board) bool {
	return !IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// HasInsufficientMaterial returns true if neither side can ever mate:
// no pawns, rooks or queens remain and the minor pieces are either a
// single knight or bishops that all stand on one square colour.
func HasInsufficientMaterial(board *chess.Board) bool {
	var knights, bishops int
	lightBishops, darkBishops := false, false

	for rank := chess.Rank(chess.FirstRank); rank <= chess.Rank(chess.LastRank); rank++ {
		for col := chess.Col(chess.FirstCol); col <= chess.Col(chess.LastCol); col++ {
			piece := board.Get(col, rank)
			if !chess.IsOccupied(piece) {
				continue
			}

			switch chess.ExtractPiece(piece) {
			case chess.King:
			case chess.Knight:
				knights++
			case chess.Bishop:
				bishops++
				if (chess.Square{Col: col, Rank: rank}).IsLight() {
					lightBishops = true
				} else {
					darkBishops = true
				}
			default:
				// Any pawn, rook, or queen means sufficient material
				return false
			}
		}
	}

	if knights > 0 {
		return knights == 1 && bishops == 0
	}
	return !(lightBishops && darkBishops)
}

// resultFor returns the PGN result of a finished game.
func resultFor(t Termination, toMove chess.Colour) string {
	switch t {
	case NotOver:
		return chess.Unfinished
	case Checkmate:
		if toMove == chess.White {
			return chess.BlackWins
		}
		return chess.WhiteWins
	default:
		return chess.Draw
	}
}
