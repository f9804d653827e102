package fenstego

import (
	"math/big"
	"strings"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Alphabet is the closed set of characters a FEN message may use. A
// character's digit value is its index in this string.
const Alphabet = `abcdefghijklmnopqrstuvwxyz \`

// Radix is the base in which a message is read as an integer.
const Radix = len(Alphabet)

var msgRadix = big.NewInt(int64(Radix))

// MessageToInt reads msg as a base-28 numeral, first character most
// significant. It fails with ErrAlphabet on the first character that is
// not in Alphabet.
func MessageToInt(msg string) (*big.Int, error) {
	n := new(big.Int)
	for i := 0; i < len(msg); i++ {
		d := strings.IndexByte(Alphabet, msg[i])
		if d < 0 {
			return nil, errors.Wrapf(errors.ErrAlphabet, "character %q at offset %d", msg[i], i)
		}
		n.Mul(n, msgRadix)
		n.Add(n, big.NewInt(int64(d)))
	}
	return n, nil
}

// IntToMessage writes n as exactly length base-28 digits, left-padded with
// the zero symbol 'a'. It fails with ErrIntegrity when n needs more than
// length digits.
func IntToMessage(n *big.Int, length int) (string, error) {
	if n.Sign() < 0 {
		return "", errors.Wrapf(errors.ErrIntegrity, "negative message value %s", n)
	}

	out := make([]byte, length)
	rem := new(big.Int).Set(n)
	d := new(big.Int)
	for i := length - 1; i >= 0; i-- {
		rem.QuoRem(rem, msgRadix, d)
		out[i] = Alphabet[d.Int64()]
	}
	if rem.Sign() != 0 {
		return "", errors.Wrapf(errors.ErrIntegrity,
			"message value %s does not fit in %d characters", n, length)
	}
	return string(out), nil
}
