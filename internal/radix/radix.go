// Package radix converts between non-negative integers and digit vectors
// in a mixed-radix numeral system, where every position has its own base.
//
// Digits are ordered most significant first: the place value of digit i is
// the product of all bases after i.
package radix

import (
	"math/big"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Capacity returns the product of bases, the number of distinct values a
// digit vector over them can represent.
func Capacity(bases []int) *big.Int {
	c := big.NewInt(1)
	for _, b := range bases {
		c.Mul(c, big.NewInt(int64(b)))
	}
	return c
}

// placeValues returns the place value of every position.
func placeValues(bases []int) []*big.Int {
	places := make([]*big.Int, len(bases))
	p := big.NewInt(1)
	for i := len(bases) - 1; i >= 0; i-- {
		places[i] = new(big.Int).Set(p)
		p.Mul(p, big.NewInt(int64(bases[i])))
	}
	return places
}

// Encode writes n as one digit per base. It fails with ErrCapacity when n
// is negative or n >= Capacity(bases).
func Encode(n *big.Int, bases []int) ([]int, error) {
	if n.Sign() < 0 {
		return nil, errors.Wrapf(errors.ErrCapacity, "negative value %s", n)
	}
	if limit := Capacity(bases); n.Cmp(limit) >= 0 {
		return nil, errors.Wrapf(errors.ErrCapacity, "value %s needs capacity above %s", n, limit)
	}

	digits := make([]int, len(bases))
	rem := new(big.Int).Set(n)
	q := new(big.Int)
	for i, place := range placeValues(bases) {
		q.QuoRem(rem, place, rem)
		if !q.IsInt64() || q.Int64() >= int64(bases[i]) {
			return nil, errors.Wrapf(errors.ErrCapacity,
				"digit %d would be %s, base is %d", i, q, bases[i])
		}
		digits[i] = int(q.Int64())
	}
	return digits, nil
}

// Decode is the inverse of Encode. It fails with ErrIntegrity when the
// slices differ in length or a digit lies outside [0, base).
func Decode(digits, bases []int) (*big.Int, error) {
	if len(digits) != len(bases) {
		return nil, errors.Wrapf(errors.ErrIntegrity,
			"%d digits for %d bases", len(digits), len(bases))
	}

	n := new(big.Int)
	for i, d := range digits {
		if d < 0 || d >= bases[i] {
			return nil, errors.Wrapf(errors.ErrIntegrity,
				"digit %d is %d, base is %d", i, d, bases[i])
		}
		n.Mul(n, big.NewInt(int64(bases[i])))
		n.Add(n, big.NewInt(int64(d)))
	}
	return n, nil
}
