// Package hashing computes Zobrist hashes of chess positions and counts
// how often each position occurs in a game.
package hashing

import (
	"github.com/lgbarn/chessstego-go/internal/chess"
)

// zobristSeed fixes the key tables, so a position hashes the same way in
// every run.
const zobristSeed = 0x9e3779b97f4a7c15

// Zobrist keys, indexed by colour, piece type, file and rank.
var (
	pieceKeys  [2][chess.King + 1][chess.BoardSize][chess.BoardSize]uint64
	sideKey    uint64
	castleKeys [4]uint64
	epKeys     [chess.BoardSize]uint64
)

func init() {
	state := uint64(zobristSeed)
	for colour := range pieceKeys {
		for piece := chess.Pawn; piece <= chess.King; piece++ {
			for col := 0; col < chess.BoardSize; col++ {
				for rank := 0; rank < chess.BoardSize; rank++ {
					pieceKeys[colour][piece][col][rank] = splitmix64(&state)
				}
			}
		}
	}
	sideKey = splitmix64(&state)
	for i := range castleKeys {
		castleKeys[i] = splitmix64(&state)
	}
	for i := range epKeys {
		epKeys[i] = splitmix64(&state)
	}
}

// splitmix64 advances state and returns the next pseudo-random value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Zobrist hashes the parts of a position that decide whether two
// positions repeat: placement, side to move, castling rights and the en
// passant file. The en passant file only counts when epCapturable is set,
// as a capture that cannot be played does not change the position.
// Move counters are not part of the hash.
func Zobrist(board *chess.Board, epCapturable bool) uint64 {
	var hash uint64
	for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
		for rank := chess.Rank(chess.FirstRank); rank <= chess.LastRank; rank++ {
			p := board.Get(col, rank)
			if !chess.IsOccupied(p) {
				continue
			}
			hash ^= pieceKeys[chess.ExtractColour(p)][chess.ExtractPiece(p)][col-chess.FirstCol][rank-chess.FirstRank]
		}
	}

	if board.ToMove == chess.White {
		hash ^= sideKey
	}
	for i, right := range []chess.Col{board.WKingCastle, board.WQueenCastle, board.BKingCastle, board.BQueenCastle} {
		if right != 0 {
			hash ^= castleKeys[i]
		}
	}
	if board.EnPassant && epCapturable {
		hash ^= epKeys[board.EPCol-chess.FirstCol]
	}
	return hash
}

// PositionCounter tracks how many times each hashed position was reached.
type PositionCounter struct {
	counts map[uint64]int
}

// NewPositionCounter creates an empty counter.
func NewPositionCounter() *PositionCounter {
	return &PositionCounter{counts: make(map[uint64]int)}
}

// Add records one occurrence of hash and returns its new count.
func (c *PositionCounter) Add(hash uint64) int {
	c.counts[hash]++
	return c.counts[hash]
}

// Count returns how many times hash was recorded.
func (c *PositionCounter) Count(hash uint64) int {
	return c.counts[hash]
}

// Len returns the number of distinct positions recorded.
func (c *PositionCounter) Len() int {
	return len(c.counts)
}

// Reset clears the counter.
func (c *PositionCounter) Reset() {
	c.counts = make(map[uint64]int)
}
