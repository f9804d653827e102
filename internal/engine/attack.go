package engine

import "github.com/lgbarn/chessstego-go/internal/chess"

var (
	knightOffsets   = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs    = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}
)

// offset returns the square (dc, dr) away from col, rank.
func offset(col chess.Col, rank chess.Rank, dc, dr int) (chess.Col, chess.Rank) {
	return chess.Col(int(col) + dc), chess.Rank(int(rank) + dr)
}

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	if king.Col == 0 || king.Rank == 0 {
		var ok bool
		if king, ok = findKing(board, colour); !ok {
			return false
		}
	}
	return isSquareAttacked(board, king.Col, king.Rank, colour.Opposite())
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Square, bool) {
	king := chess.MakeColouredPiece(colour, chess.King)
	for col := chess.Col('a'); col <= 'h'; col++ {
		for rank := chess.Rank('1'); rank <= '8'; rank++ {
			if board.Get(col, rank) == king {
				return chess.Square{Col: col, Rank: rank}, true
			}
		}
	}
	return chess.Square{}, false
}

// isSquareAttacked returns true if the square is attacked by the given colour.
func isSquareAttacked(board *chess.Board, col chess.Col, rank chess.Rank, byColour chess.Colour) bool {
	// Pawns attack from one rank behind their direction of travel.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnRank := chess.Rank(int(rank) - chess.ColourOffset(byColour))
	if board.Get(col-1, pawnRank) == pawn || board.Get(col+1, pawnRank) == pawn {
		return true
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, o := range knightOffsets {
		if c, r := offset(col, rank, o[0], o[1]); board.Get(c, r) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, o := range kingOffsets {
		if c, r := offset(col, rank, o[0], o[1]); board.Get(c, r) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	if slidingAttack(board, col, rank, diagonalDirs, chess.MakeColouredPiece(byColour, chess.Bishop), queen) {
		return true
	}
	return slidingAttack(board, col, rank, straightDirs, chess.MakeColouredPiece(byColour, chess.Rook), queen)
}

// slidingAttack reports whether the first piece met along any of dirs is
// one of the two attackers.
func slidingAttack(board *chess.Board, col chess.Col, rank chess.Rank, dirs [][2]int, a, b chess.Piece) bool {
	for _, dir := range dirs {
		c, r := offset(col, rank, dir[0], dir[1])
		for {
			piece := board.Get(c, r)
			if piece == chess.Empty {
				c, r = offset(c, r, dir[0], dir[1])
				continue
			}
			if piece == a || piece == b {
				return true
			}
			break // Blocked or off the board
		}
	}
	return false
}
