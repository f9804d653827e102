package fenstego

import "fmt"

// BasePlacement is the placement field of the carrier board. Its empty
// squares carry the hidden digits.
const BasePlacement = "6bk/6rb/8/8/8/8/BR6/KB6"

// Fields appended to the placement to make a complete FEN.
const trailingFields = "w - - 1 1"

// Coord addresses a square. Row 0 is rank 8 and column 0 is file a.
type Coord struct {
	Row, Col int
}

// String returns the algebraic name of the square, e.g. "b3".
func (c Coord) String() string {
	return fmt.Sprintf("%c%d", 'a'+c.Col, 8-c.Row)
}

// Squares where a black knight would be misplaced.
var blackKnightForbidden = map[Coord]bool{
	{Row: 5, Col: 1}: true, // b3
	{Row: 6, Col: 2}: true, // c2
}

// Squares where a white knight would be misplaced.
var whiteKnightForbidden = map[Coord]bool{
	{Row: 1, Col: 5}: true, // f7
	{Row: 2, Col: 6}: true, // g6
}

// FreeSquareCount is the number of empty squares in BasePlacement.
const FreeSquareCount = 56

// HeaderSquares is how many leading free squares hold the message length.
const HeaderSquares = 2

var (
	baseGrid    Grid
	freeSquares []Coord
)

func init() {
	g, err := ParsePlacement(BasePlacement)
	if err != nil {
		panic("fenstego: invalid base placement: " + err.Error())
	}
	baseGrid = g
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if g[row][col] == 0 {
				freeSquares = append(freeSquares, Coord{Row: row, Col: col})
			}
		}
	}
}

// FreeSquares returns the empty squares of the base board in row-major order.
func FreeSquares() []Coord {
	out := make([]Coord, len(freeSquares))
	copy(out, freeSquares)
	return out
}

// BaseOf returns the digit base a free square carries: 9 on the back
// ranks where pawns cannot stand, 10 on a square closed to one colour's
// knight, and 11 elsewhere.
func BaseOf(c Coord) int {
	switch {
	case c.Row == 0 || c.Row == 7:
		return 9
	case blackKnightForbidden[c] || whiteKnightForbidden[c]:
		return 10
	default:
		return 11
	}
}

// basesOf returns BaseOf for every square in coords.
func basesOf(coords []Coord) []int {
	bases := make([]int, len(coords))
	for i, c := range coords {
		bases[i] = BaseOf(c)
	}
	return bases
}
