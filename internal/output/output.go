// Package output writes games as PGN text.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/config"
	"github.com/lgbarn/chessstego-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
// The first write error is kept and every later write is skipped.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.NewLine()
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace writes without adding a leading space.
func (o *OutputWriter) WriteNoSpace(s string) {
	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first error met while writing.
func (o *OutputWriter) Err() error {
	return o.err
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// OutputGame writes a game to cfg.OutputFile using cfg.Output settings.
func OutputGame(game *chess.Game, cfg *config.Config) error {
	return writeGame(cfg.OutputFile, game, cfg.Output)
}

func writeGame(w io.Writer, game *chess.Game, out *config.OutputConfig) error {
	if out == nil {
		out = config.NewOutputConfig()
	}

	if out.TagFormat != config.NoTags {
		if err := writeTags(w, game, out.TagFormat); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	if err := writeMoves(w, game, out); err != nil {
		return err
	}

	// Blank line between games
	_, err := io.WriteString(w, "\n")
	return err
}

// writeTags writes the seven tag roster, with placeholders for missing
// values, followed by the remaining tags.
func writeTags(w io.Writer, game *chess.Game, form config.TagOutputForm) error {
	for _, tag := range chess.SevenTagRoster {
		value := game.GetTag(tag)
		if value == "" {
			value = chess.DefaultTagValue(tag)
		}
		if err := writeTag(w, tag, value); err != nil {
			return err
		}
	}

	for _, tag := range extraTags(game, form) {
		if err := writeTag(w, tag, game.GetTag(tag)); err != nil {
			return err
		}
	}
	return nil
}

// extraTags lists the non-roster tags to write. Termination, SetUp and
// FEN come first because a reader needs them to replay the game; the
// rest follow in name order when every tag is wanted.
func extraTags(game *chess.Game, form config.TagOutputForm) []string {
	var tags []string
	for _, tag := range []string{chess.TerminationTag, chess.SetupTag, chess.FENTag} {
		if game.HasTag(tag) {
			tags = append(tags, tag)
		}
	}
	if form != config.AllTags {
		return tags
	}

	var rest []string
	for tag := range game.Tags {
		switch {
		case chess.IsSevenTagRosterTag(tag):
		case tag == chess.TerminationTag, tag == chess.SetupTag, tag == chess.FENTag:
		default:
			rest = append(rest, tag)
		}
	}
	sort.Strings(rest)
	return append(tags, rest...)
}

func writeTag(w io.Writer, tag, value string) error {
	_, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	return err
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoves writes the numbered movetext followed by the result.
func writeMoves(w io.Writer, game *chess.Game, out *config.OutputConfig) error {
	ow := NewOutputWriter(w, int(out.MaxLineLength))

	moveNum, isWhite := startingMove(game)

	for _, comment := range game.PrefixComment {
		writeComment(ow, comment)
	}

	for move := game.Moves; move != nil; move = move.Next {
		if out.KeepMoveNumbers {
			if isWhite {
				ow.Write(fmt.Sprintf("%d.", moveNum))
			} else if move.Prev == nil {
				// Black to move at start
				ow.Write(fmt.Sprintf("%d...", moveNum))
			}
		}

		ow.Write(move.Text)
		for _, nag := range move.NAGs {
			ow.Write(nag)
		}
		for _, comment := range move.Comments {
			writeComment(ow, comment)
		}

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}

	if out.KeepResults {
		ow.Write(gameResult(game))
	}

	ow.NewLine()
	return ow.Err()
}

// startingMove returns the move number and side of the first move, taken
// from the FEN tag when the game does not start from the initial position.
func startingMove(game *chess.Game) (uint, bool) {
	if fen := game.GetTag(chess.FENTag); fen != "" {
		if board, err := engine.NewBoardFromFEN(fen); err == nil {
			return board.MoveNumber, board.ToMove == chess.White
		}
	}
	return 1, true
}

func writeComment(ow *OutputWriter, text string) {
	if text == "" {
		return
	}
	ow.Write("{" + text + "}")
}

// gameResult returns the result of a game, checking terminating result first.
func gameResult(game *chess.Game) string {
	if game.TerminatingResult != "" {
		return game.TerminatingResult
	}
	if result := game.Result(); result != "" {
		return result
	}
	return chess.Unfinished
}
