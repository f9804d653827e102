package output

import (
	"bufio"
	"io"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/config"
)

// GameWriter is the interface for writing games to output.
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(game *chess.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error
}

// PGNWriter writes games in PGN format through a buffer.
type PGNWriter struct {
	w   *bufio.Writer
	out *config.OutputConfig
}

// NewPGNWriter creates a new PGN writer using the layout in cfg.Output.
// A nil cfg selects the default layout.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	out := config.NewOutputConfig()
	if cfg != nil && cfg.Output != nil {
		out = cfg.Output
	}
	return &PGNWriter{
		w:   bufio.NewWriter(w),
		out: out,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(game *chess.Game) error {
	return writeGame(pw.w, game, pw.out)
}

// Flush writes any buffered data to the underlying writer.
func (pw *PGNWriter) Flush() error {
	return pw.w.Flush()
}
