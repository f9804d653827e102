package fenstego

import (
	"fmt"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Table identifies one of the fixed digit to piece bijections. Digit 0
// always means an empty square.
type Table int

// Piece mapping tables.
const (
	// Restricted has no pawns, for the back ranks.
	Restricted Table = iota
	// Full has every piece but the kings.
	Full
	// FullMinusBlackKnight is Full without "n".
	FullMinusBlackKnight
	// FullMinusWhiteKnight is Full without "N".
	FullMinusWhiteKnight
)

var (
	restrictedSymbols    = []byte{0, 'Q', 'q', 'R', 'r', 'B', 'b', 'N', 'n'}
	fullSymbols          = []byte{0, 'Q', 'q', 'R', 'r', 'B', 'b', 'N', 'n', 'P', 'p'}
	noBlackKnightSymbols = []byte{0, 'Q', 'q', 'R', 'r', 'B', 'b', 'N', 'P', 'p'}
	noWhiteKnightSymbols = []byte{0, 'Q', 'q', 'R', 'r', 'B', 'b', 'n', 'P', 'p'}
)

// inverse[t][symbol] is digit+1, so 0 marks a symbol the table lacks.
var inverse [4][256]int

func init() {
	for _, t := range []Table{Restricted, Full, FullMinusBlackKnight, FullMinusWhiteKnight} {
		for d, s := range t.symbols() {
			inverse[t][s] = d + 1
		}
	}
}

func (t Table) symbols() []byte {
	switch t {
	case Restricted:
		return restrictedSymbols
	case Full:
		return fullSymbols
	case FullMinusBlackKnight:
		return noBlackKnightSymbols
	case FullMinusWhiteKnight:
		return noWhiteKnightSymbols
	default:
		panic(fmt.Sprintf("fenstego: unknown table %d", int(t)))
	}
}

// String returns the table name.
func (t Table) String() string {
	switch t {
	case Restricted:
		return "restricted"
	case Full:
		return "full"
	case FullMinusBlackKnight:
		return "full-minus-black-knight"
	case FullMinusWhiteKnight:
		return "full-minus-white-knight"
	default:
		return fmt.Sprintf("Table(%d)", int(t))
	}
}

// Base returns the number of digits the table maps.
func (t Table) Base() int {
	return len(t.symbols())
}

// Symbol returns the piece letter for digit, or 0 for an empty square.
func (t Table) Symbol(digit int) (byte, error) {
	syms := t.symbols()
	if digit < 0 || digit >= len(syms) {
		return 0, errors.Wrapf(errors.ErrCapacity, "digit %d has no %s symbol", digit, t)
	}
	return syms[digit], nil
}

// Digit returns the digit for symbol, where 0 is an empty square.
func (t Table) Digit(symbol byte) (int, error) {
	d := inverse[t][symbol]
	if d == 0 {
		return 0, errors.Wrapf(errors.ErrIntegrity, "symbol %q not in %s table", symbol, t)
	}
	return d - 1, nil
}

// TableFor selects the mapping table for a free square.
func TableFor(c Coord) Table {
	switch BaseOf(c) {
	case 9:
		return Restricted
	case 10:
		if blackKnightForbidden[c] {
			return FullMinusBlackKnight
		}
		return FullMinusWhiteKnight
	default:
		return Full
	}
}
