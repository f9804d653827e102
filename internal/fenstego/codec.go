// Package fenstego hides a short message in the empty squares of a fixed
// chess position and reads it back.
//
// Each of the 56 empty squares of BasePlacement carries one digit of a
// mixed-radix numeral, rendered as a piece letter. The first two squares
// hold the message length and the remaining 54 hold the message read as
// a base-28 integer.
package fenstego

import (
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/radix"
)

// MaxMessageLength is the longest message the body squares can hold:
// 28^38 is below their capacity and 28^39 is not.
const MaxMessageLength = 38

// Codec converts between messages and FEN strings.
type Codec struct {
	log zerolog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for debug tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Codec) {
		c.log = log
	}
}

// New creates a Codec.
func New(opts ...Option) *Codec {
	c := &Codec{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Encode hides message in a FEN string using a silent Codec.
func Encode(message string) (string, error) {
	return defaultCodec.Encode(message)
}

// Decode recovers the message hidden in fen using a silent Codec.
func Decode(fen string) (string, error) {
	return defaultCodec.Decode(fen)
}

// layout returns the free squares split into header and body, checking
// the square count.
func layout() (header, body []Coord, err error) {
	if len(freeSquares) != FreeSquareCount {
		return nil, nil, errors.Wrapf(errors.ErrIntegrity,
			"base board has %d free squares, want %d", len(freeSquares), FreeSquareCount)
	}
	return freeSquares[:HeaderSquares], freeSquares[HeaderSquares:], nil
}

// Encode hides message in a FEN string. The message may only use
// Alphabet characters (ErrAlphabet) and be at most MaxMessageLength long
// (ErrCapacity).
func (c *Codec) Encode(message string) (string, error) {
	n, err := MessageToInt(message)
	if err != nil {
		return "", err
	}
	if len(message) > MaxMessageLength {
		return "", errors.Wrapf(errors.ErrCapacity,
			"message has %d characters, limit is %d", len(message), MaxMessageLength)
	}

	header, body, err := layout()
	if err != nil {
		return "", err
	}

	lengthDigits, err := radix.Encode(big.NewInt(int64(len(message))), basesOf(header))
	if err != nil {
		return "", errors.Wrap(err, "encoding length header")
	}
	bodyDigits, err := radix.Encode(n, basesOf(body))
	if err != nil {
		return "", errors.Wrap(err, "encoding message body")
	}
	c.log.Debug().
		Int("length", len(message)).
		Ints("header", lengthDigits).
		Str("value", n.String()).
		Msg("fen encode digits")

	g := baseGrid
	digits := append(lengthDigits, bodyDigits...)
	for i, sq := range freeSquares {
		symbol, err := TableFor(sq).Symbol(digits[i])
		if err != nil {
			return "", &errors.SquareError{Err: err, Square: sq.String()}
		}
		g.Put(sq, symbol)
	}

	return g.Placement() + " " + trailingFields, nil
}

// Decode recovers the message hidden in fen. It fails with ErrFormat on
// a malformed FEN and ErrIntegrity when the board does not carry a
// consistent message.
func (c *Codec) Decode(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return "", errors.Wrapf(errors.ErrFormat, "FEN has %d fields, want 6", len(fields))
	}
	g, err := ParsePlacement(fields[0])
	if err != nil {
		return "", err
	}

	header, body, err := layout()
	if err != nil {
		return "", err
	}

	digits := make([]int, len(freeSquares))
	for i, sq := range freeSquares {
		symbol := g.At(sq)
		d, err := TableFor(sq).Digit(symbol)
		if err != nil {
			return "", &errors.SquareError{Err: err, Square: sq.String(), Symbol: symbol}
		}
		digits[i] = d
	}

	length, err := radix.Decode(digits[:len(header)], basesOf(header))
	if err != nil {
		return "", errors.Wrap(err, "decoding length header")
	}
	n, err := radix.Decode(digits[len(header):], basesOf(body))
	if err != nil {
		return "", errors.Wrap(err, "decoding message body")
	}
	c.log.Debug().
		Int64("length", length.Int64()).
		Str("value", n.String()).
		Msg("fen decode digits")

	return IntToMessage(n, int(length.Int64()))
}
