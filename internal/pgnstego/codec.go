// Package pgnstego hides a text message in the moves of a chess game and
// reads it back from the game's PGN.
//
// The message is compressed, framed with a 32-bit length header and played
// out move by move from the initial position by the branch codec.
package pgnstego

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/bitstream"
	"github.com/lgbarn/chessstego-go/internal/branch"
	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/compress"
	"github.com/lgbarn/chessstego-go/internal/config"
	"github.com/lgbarn/chessstego-go/internal/engine"
	"github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/output"
	"github.com/lgbarn/chessstego-go/internal/parser"
)

// Codec converts between messages and PGN games.
type Codec struct {
	compressor compress.Compressor
	detect     bool
	cfg        *config.Config
	log        zerolog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithCompressor sets the payload compressor. Both sides must agree on it
// unless the decoder uses WithAutoDetect.
func WithCompressor(c compress.Compressor) Option {
	return func(codec *Codec) {
		codec.compressor = c
	}
}

// WithAutoDetect makes Decode pick the decompressor from the payload's
// magic bytes instead of the configured compressor.
func WithAutoDetect() Option {
	return func(codec *Codec) {
		codec.detect = true
	}
}

// WithConfig sets the PGN layout used by Encode.
func WithConfig(cfg *config.Config) Option {
	return func(codec *Codec) {
		codec.cfg = cfg
	}
}

// WithLogger sets the logger for debug tracing, passed on to the branch
// codec and the PGN parser.
func WithLogger(log zerolog.Logger) Option {
	return func(codec *Codec) {
		codec.log = log
	}
}

// New creates a Codec using zlib and the default PGN layout.
func New(opts ...Option) *Codec {
	c := &Codec{
		compressor: compress.Default(),
		cfg:        config.NewConfig(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Encode hides message in a PGN game using a silent zlib Codec.
func Encode(message string) (string, error) {
	return defaultCodec.Encode(message)
}

// Decode recovers the message hidden in a PGN game using a silent zlib Codec.
func Decode(pgn string) (string, error) {
	return defaultCodec.Decode(pgn)
}

// Encode hides message in a game and returns it as PGN text.
func (c *Codec) Encode(message string) (string, error) {
	game, err := c.EncodeGame(message)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := output.NewPGNWriter(&buf, c.cfg)
	if err := w.WriteGame(game); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// EncodeGame hides message in a game record. The record carries the
// game's Result tag and, when the encoder stopped before the game ended,
// a Termination tag. It fails with ErrGameExhausted when the game ends on
// the board before the message is fully encoded.
func (c *Codec) EncodeGame(message string) (*chess.Game, error) {
	data, err := c.compressor.Compress([]byte(message))
	if err != nil {
		return nil, fmt.Errorf("compressing message: %w", err)
	}
	stream, err := branch.Frame(bitstream.FromBytes(data))
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Str("compressor", c.compressor.Name()).
		Int("message_bytes", len(message)).
		Int("payload_bytes", len(data)).
		Int("stream_bits", len(stream)).
		Msg("pgn encode")

	g := engine.NewGame()
	outcome, err := branch.New(branch.WithLogger(c.log)).Encode(g, stream)
	if err != nil {
		return nil, err
	}

	game := g.Record()
	game.SetTag(chess.ResultTag, outcome.Result)
	if outcome.Termination != "" {
		game.SetTag(chess.TerminationTag, outcome.Termination)
	}
	return game, nil
}

// Decode recovers the message hidden in the first game of pgn. It fails
// with ErrFormat when pgn holds no parsable game and with ErrIntegrity
// when the game does not carry a consistent payload.
func (c *Codec) Decode(pgn string) (string, error) {
	return c.DecodeReader(strings.NewReader(pgn))
}

// DecodeReader is Decode reading the PGN from r.
func (c *Codec) DecodeReader(r io.Reader) (string, error) {
	game, err := parser.ReadGame(r, parser.WithLogger(c.log))
	if err != nil {
		if errors.Is(err, errors.ErrFormat) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", errors.ErrFormat, err)
	}
	return c.DecodeGame(game)
}

// DecodeGame recovers the message hidden in the main line of game. The
// game is replayed from the initial position.
func (c *Codec) DecodeGame(game *chess.Game) (string, error) {
	payload, err := branch.New(branch.WithLogger(c.log)).Decode(engine.NewGame(), game.MoveTexts())
	if err != nil {
		return "", err
	}

	data := payload.Bytes()
	decompressor := c.compressor
	if c.detect {
		decompressor = compress.Detect(data)
	}
	plain, err := decompressor.Decompress(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s payload: %w", errors.ErrIntegrity, decompressor.Name(), err)
	}
	if !utf8.Valid(plain) {
		return "", errors.Wrap(errors.ErrIntegrity, "decompressed payload is not valid UTF-8")
	}
	c.log.Debug().
		Str("compressor", decompressor.Name()).
		Int("payload_bytes", len(data)).
		Int("message_bytes", len(plain)).
		Msg("pgn decode")
	return string(plain), nil
}
