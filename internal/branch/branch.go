// Package branch hides a bitstream in the choice of moves of a legal chess
// game and reads it back.
//
// At every ply the legal moves are listed in a fixed order. With n of them
// the encoder consumes floor(log2 n) bits and plays the move at that
// value modulo n. A stream always starts with a 32-bit header giving the
// number of payload bits that follow, so the decoder knows where the
// payload ends and ignores any padding after it.
package branch

import (
	"math"
	"math/bits"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/bitstream"
	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/errors"
)

// HeaderBits is the width of the payload length header.
const HeaderBits = 32

// ResignationTermination is the Termination tag value of a game the
// encoder stopped before it ended on the board.
const ResignationTermination = "resignation"

// Game is the rules engine the codec drives. LegalMoves must return the
// same order for the same position on every call, since the encoder and
// the decoder both index into it.
type Game interface {
	// LegalMoves lists the legal moves of the current position.
	LegalMoves() []string
	// Play applies one of the moves returned by LegalMoves.
	Play(move string) error
	// ParseMove resolves recorded move text to a LegalMoves entry.
	ParseMove(text string) (string, error)
	// Outcome returns the result and whether the game is over.
	Outcome() (result string, over bool)
	// ToMove returns the side to move.
	ToMove() chess.Colour
}

// Outcome describes how an encoded game ends.
type Outcome struct {
	Result      string   // PGN result
	Termination string   // ResignationTermination, or "" when the game ended on the board
	Moves       []string // moves played, as returned by LegalMoves
}

// Width returns the number of bits a position with n legal moves carries.
func Width(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// Frame prefixes payload with its HeaderBits-wide length.
func Frame(payload bitstream.Bits) (bitstream.Bits, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, errors.Wrapf(errors.ErrCapacity,
			"payload of %d bits does not fit a %d-bit header", len(payload), HeaderBits)
	}
	return bitstream.Concat(bitstream.FromUint(uint64(len(payload)), HeaderBits), payload), nil
}

// Codec converts between bitstreams and move sequences.
type Codec struct {
	log zerolog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for per-ply tracing.
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

// Encode plays stream into g using a silent Codec.
func Encode(g Game, stream bitstream.Bits) (Outcome, error) {
	return defaultCodec.Encode(g, stream)
}

// Decode recovers the payload from moves using a silent Codec.
func Decode(g Game, moves []string) (bitstream.Bits, error) {
	return defaultCodec.Decode(g, moves)
}

// Encode plays moves in g until stream is consumed. The final chunk is
// zero-padded when fewer bits remain than the position carries. It fails
// with ErrGameExhausted if the game ends first.
//
// When the game is still going after the last move, the side to move is
// recorded as having resigned.
func (c *Codec) Encode(g Game, stream bitstream.Bits) (Outcome, error) {
	var out Outcome
	for pos := 0; pos < len(stream); {
		if _, over := g.Outcome(); over {
			return out, &errors.PlyError{
				Err: errors.Wrapf(errors.ErrGameExhausted, "%d of %d bits unused", len(stream)-pos, len(stream)),
				Ply: len(out.Moves) + 1,
			}
		}

		legal := g.LegalMoves()
		if len(legal) == 0 {
			return out, &errors.PlyError{Err: errors.ErrGameExhausted, Ply: len(out.Moves) + 1}
		}
		index := 0
		width := Width(len(legal))
		if width > 0 {
			chunk := make(bitstream.Bits, width)
			pos += copy(chunk, stream[pos:])
			index = int(chunk.Uint() % uint64(len(legal)))
		}

		move := legal[index]
		c.log.Debug().
			Int("ply", len(out.Moves)+1).
			Int("moves", len(legal)).
			Int("width", width).
			Int("index", index).
			Str("move", move).
			Msg("branch encode")
		if err := g.Play(move); err != nil {
			return out, &errors.PlyError{Err: err, Ply: len(out.Moves) + 1, Move: move}
		}
		out.Moves = append(out.Moves, move)
	}

	if result, over := g.Outcome(); over {
		out.Result = result
		return out, nil
	}
	out.Result = chess.BlackWins
	if g.ToMove() == chess.Black {
		out.Result = chess.WhiteWins
	}
	out.Termination = ResignationTermination
	return out, nil
}

// Decode replays moves in g and returns the payload bits they carry,
// without the header or any padding. It stops as soon as the declared
// payload is complete, so trailing moves are not checked. It fails with
// ErrIntegrity when a move cannot be resolved, when a move's index could
// not have been produced by Encode, or when the moves run out before the
// header or the payload is complete.
func (c *Codec) Decode(g Game, moves []string) (bitstream.Bits, error) {
	var (
		stream     bitstream.Bits
		declared   uint64
		haveHeader bool
	)

	for i, text := range moves {
		ply := i + 1
		legal := g.LegalMoves()
		move, err := g.ParseMove(text)
		if err != nil {
			return nil, &errors.PlyError{Err: errors.Wrap(errors.ErrIntegrity, err.Error()), Ply: ply, Move: text}
		}
		index := indexOf(legal, move)
		if index < 0 {
			return nil, &errors.PlyError{
				Err:  errors.Wrap(errors.ErrIntegrity, "move is not in the legal move list"),
				Ply:  ply,
				Move: text,
			}
		}

		width := Width(len(legal))
		if width > 0 {
			if !bitstream.Fits(uint64(index), width) {
				return nil, &errors.PlyError{
					Err:  errors.Wrapf(errors.ErrIntegrity, "move index %d exceeds %d-bit branch", index, width),
					Ply:  ply,
					Move: text,
				}
			}
			stream = append(stream, bitstream.FromUint(uint64(index), width)...)
		}
		c.log.Debug().
			Int("ply", ply).
			Int("moves", len(legal)).
			Int("width", width).
			Int("index", index).
			Str("move", move).
			Msg("branch decode")

		if err := g.Play(move); err != nil {
			return nil, &errors.PlyError{Err: errors.Wrap(errors.ErrIntegrity, err.Error()), Ply: ply, Move: text}
		}

		if !haveHeader && len(stream) >= HeaderBits {
			declared = stream[:HeaderBits].Uint()
			haveHeader = true
		}
		if haveHeader && uint64(len(stream)) >= HeaderBits+declared {
			break
		}
	}

	if !haveHeader {
		return nil, errors.Wrapf(errors.ErrIntegrity,
			"recovered %d bits, fewer than the %d-bit header", len(stream), HeaderBits)
	}
	if uint64(len(stream)) < HeaderBits+declared {
		return nil, errors.Wrapf(errors.ErrIntegrity,
			"header declares %d payload bits, moves carry %d", declared, len(stream)-HeaderBits)
	}

	payload := make(bitstream.Bits, declared)
	copy(payload, stream[HeaderBits:])
	return payload, nil
}

func indexOf(moves []string, move string) int {
	for i, m := range moves {
		if m == move {
			return i
		}
	}
	return -1
}
