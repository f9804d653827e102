package fenstego

import (
	"testing"

	"github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/testutil"
)

func TestFreeSquares(t *testing.T) {
	squares := FreeSquares()
	testutil.AssertEqual(t, len(squares), FreeSquareCount)
	testutil.AssertEqual(t, squares[0], Coord{Row: 0, Col: 0})
	testutil.AssertEqual(t, squares[1], Coord{Row: 0, Col: 1})
	testutil.AssertEqual(t, squares[len(squares)-1], Coord{Row: 7, Col: 7})
}

func TestBaseOf(t *testing.T) {
	tests := []struct {
		square Coord
		want   int
	}{
		{Coord{0, 0}, 9},
		{Coord{7, 7}, 9},
		{Coord{3, 4}, 11},
		{Coord{5, 1}, 10},
		{Coord{6, 2}, 10},
		{Coord{1, 5}, 10},
		{Coord{2, 6}, 10},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, BaseOf(tt.square), tt.want, "BaseOf(%s)", tt.square)
	}
}

func TestBaseCounts(t *testing.T) {
	counts := map[int]int{}
	for _, sq := range freeSquares[HeaderSquares:] {
		counts[BaseOf(sq)]++
	}
	testutil.AssertEqual(t, counts, map[int]int{9: 10, 10: 4, 11: 40})
}

func TestTableFor(t *testing.T) {
	tests := []struct {
		square Coord
		want   Table
	}{
		{Coord{0, 2}, Restricted},
		{Coord{4, 4}, Full},
		{Coord{5, 1}, FullMinusBlackKnight},
		{Coord{6, 2}, FullMinusBlackKnight},
		{Coord{1, 5}, FullMinusWhiteKnight},
		{Coord{2, 6}, FullMinusWhiteKnight},
	}

	for _, tt := range tests {
		got := TableFor(tt.square)
		testutil.AssertEqual(t, got, tt.want, "TableFor(%s)", tt.square)
		testutil.AssertEqual(t, got.Base(), BaseOf(tt.square))
	}
}

func TestTables_Bijection(t *testing.T) {
	tables := []Table{Restricted, Full, FullMinusBlackKnight, FullMinusWhiteKnight}

	for _, table := range tables {
		t.Run(table.String(), func(t *testing.T) {
			seen := map[byte]bool{}
			for d := 0; d < table.Base(); d++ {
				s, err := table.Symbol(d)
				testutil.AssertNoError(t, err)
				if seen[s] {
					t.Errorf("symbol %q mapped twice", s)
				}
				seen[s] = true

				back, err := table.Digit(s)
				testutil.AssertNoError(t, err)
				testutil.AssertEqual(t, back, d)
			}

			empty, _ := table.Symbol(0)
			testutil.AssertEqual(t, empty, byte(0))

			_, err := table.Symbol(table.Base())
			testutil.AssertErrorIs(t, err, errors.ErrCapacity)
			_, err = table.Digit('K')
			testutil.AssertErrorIs(t, err, errors.ErrIntegrity)
		})
	}
}

func TestTables_KnightExclusions(t *testing.T) {
	_, err := FullMinusBlackKnight.Digit('n')
	testutil.AssertErrorIs(t, err, errors.ErrIntegrity)
	_, err = FullMinusWhiteKnight.Digit('N')
	testutil.AssertErrorIs(t, err, errors.ErrIntegrity)
	_, err = Restricted.Digit('p')
	testutil.AssertErrorIs(t, err, errors.ErrIntegrity)
}

func TestCoordString(t *testing.T) {
	testutil.AssertEqual(t, Coord{Row: 5, Col: 1}.String(), "b3")
	testutil.AssertEqual(t, Coord{Row: 0, Col: 7}.String(), "h8")
}
