package fenstego

import (
	"strings"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Grid is an 8x8 board. Row 0 is rank 8; a zero cell is empty, any other
// value is a FEN piece letter.
type Grid [8][8]byte

// isPieceLetter reports whether c is a FEN piece letter.
func isPieceLetter(c byte) bool {
	return strings.IndexByte("KQRBNPkqrbnp", c) >= 0
}

// ParsePlacement expands a FEN piece-placement field. It fails with
// ErrFormat unless there are exactly 8 ranks, each covering exactly 8
// cells, built only from the digits 1-8 and piece letters.
func ParsePlacement(placement string) (Grid, error) {
	var g Grid

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return g, errors.Wrapf(errors.ErrFormat, "placement has %d ranks, want 8", len(ranks))
	}

	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			case isPieceLetter(c):
				if col < 8 {
					g[row][col] = c
				}
				col++
			default:
				return g, errors.Wrapf(errors.ErrFormat, "invalid character %q in rank %d", c, 8-row)
			}
			if col > 8 {
				break
			}
		}
		if col != 8 {
			return g, errors.Wrapf(errors.ErrFormat, "rank %d covers %d cells, want 8", 8-row, col)
		}
	}
	return g, nil
}

// Placement serializes the grid as a FEN piece-placement field, writing
// each run of empty cells as a single digit.
func (g *Grid) Placement() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < 8; col++ {
			c := g[row][col]
			if c == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// At returns the cell at c.
func (g *Grid) At(c Coord) byte {
	return g[c.Row][c.Col]
}

// Put sets the cell at c; zero empties it.
func (g *Grid) Put(c Coord, symbol byte) {
	g[c.Row][c.Col] = symbol
}
