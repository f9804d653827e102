package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/config"
	"github.com/lgbarn/chessstego-go/internal/engine"
	"github.com/lgbarn/chessstego-go/internal/parser"
	"github.com/lgbarn/chessstego-go/internal/testutil"
)

// playGame plays UCI moves from the initial position and returns the record.
func playGame(t *testing.T, moves ...string) *chess.Game {
	t.Helper()
	g := engine.NewGame()
	for _, m := range moves {
		testutil.AssertNoError(t, g.Play(m), "playing %s", m)
	}
	return g.Record()
}

func writePGN(t *testing.T, game *chess.Game, cfg *config.Config) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewPGNWriter(&buf, cfg)
	testutil.AssertNoError(t, w.WriteGame(game))
	testutil.AssertNoError(t, w.Flush())
	return buf.String()
}

const rosterPlaceholders = `[Event "?"]
[Site "?"]
[Date "????.??.??"]
[Round "?"]
[White "?"]
[Black "?"]
`

// TestPGNWriter_WriteGame verifies PGN writer outputs correct format
func TestPGNWriter_WriteGame(t *testing.T) {
	game := playGame(t, "f2f3", "e7e5", "g2g4", "d8h4")
	game.SetTag(chess.ResultTag, chess.BlackWins)

	want := rosterPlaceholders + `[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1

`
	testutil.AssertEqual(t, writePGN(t, game, nil), want)
}

func TestPGNWriter_Termination(t *testing.T) {
	game := playGame(t, "e2e4")
	game.SetTag(chess.ResultTag, chess.WhiteWins)
	game.SetTag(chess.TerminationTag, "resignation")

	want := rosterPlaceholders + `[Result "1-0"]
[Termination "resignation"]

1. e4 1-0

`
	testutil.AssertEqual(t, writePGN(t, game, config.NewConfig()), want)
}

func TestPGNWriter_TagFormats(t *testing.T) {
	game := playGame(t, "e2e4")
	game.SetTag(chess.TerminationTag, "resignation")
	game.SetTag("ECO", "B00")
	game.SetTag("Annotator", "nobody")

	tests := []struct {
		name    string
		form    config.TagOutputForm
		want    []string
		notWant []string
	}{
		{
			name: "all tags",
			form: config.AllTags,
			want: []string{"[Result \"*\"]\n[Termination \"resignation\"]\n[Annotator \"nobody\"]\n[ECO \"B00\"]\n"},
		},
		{
			name:    "seven tag roster",
			form:    config.SevenTagRoster,
			want:    []string{"[Termination \"resignation\"]\n\n1. e4 *"},
			notWant: []string{"ECO", "Annotator"},
		},
		{
			name:    "no tags",
			form:    config.NoTags,
			want:    []string{"1. e4 *\n\n"},
			notWant: []string{"[", "Termination"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfigBuilder().WithTagFormat(tt.form).Build()
			got := writePGN(t, game, cfg)
			for _, s := range tt.want {
				testutil.AssertContains(t, got, s)
			}
			for _, s := range tt.notWant {
				testutil.AssertTrue(t, !strings.Contains(got, s), "%q should not contain %q", got, s)
			}
		})
	}
}

func TestPGNWriter_EscapesTagValues(t *testing.T) {
	game := chess.NewGame()
	game.SetTag(chess.WhiteTag, `Fischer "Bobby" \ R`)

	got := writePGN(t, game, nil)
	testutil.AssertContains(t, got, `[White "Fischer \"Bobby\" \\ R"]`)
}

func TestPGNWriter_BlackToMoveFromFEN(t *testing.T) {
	g, err := engine.NewGameFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 5")
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, g.Play("e7e5"))
	testutil.AssertNoError(t, g.Play("g1f3"))

	cfg := config.NewConfigBuilder().WithTagFormat(config.NoTags).Build()
	testutil.AssertEqual(t, writePGN(t, g.Record(), cfg), "5... e5 6. Nf3 *\n\n")

	cfg = config.NewConfig()
	got := writePGN(t, g.Record(), cfg)
	testutil.AssertContains(t, got, "[SetUp \"1\"]\n[FEN \"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 5\"]\n")
}

func TestPGNWriter_Options(t *testing.T) {
	game := playGame(t, "e2e4", "e7e5")
	game.SetTag(chess.ResultTag, chess.Draw)

	cfg := config.NewConfigBuilder().WithTagFormat(config.NoTags).Build()
	cfg.Output.KeepMoveNumbers = false
	testutil.AssertEqual(t, writePGN(t, game, cfg), "e4 e5 1/2-1/2\n\n")

	cfg.Output.KeepResults = false
	testutil.AssertEqual(t, writePGN(t, game, cfg), "e4 e5\n\n")
}

func TestPGNWriter_CommentsAndNAGs(t *testing.T) {
	game := playGame(t, "e2e4", "e7e5")
	game.AppendPrefixComment("opening")
	game.Moves.AppendNAG("$1")
	game.Moves.AppendComment("best by test")

	cfg := config.NewConfigBuilder().WithTagFormat(config.NoTags).Build()
	testutil.AssertEqual(t, writePGN(t, game, cfg), "{opening} 1. e4 $1 {best by test} e5 *\n\n")
}

func TestOutputWriter_Wrapping(t *testing.T) {
	moves := []string{
		"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5a4", "g8f6",
		"e1g1", "f8e7", "f1e1", "b7b5", "a4b3", "d7d6", "c2c3", "e8g8",
	}
	game := playGame(t, moves...)

	cfg := config.NewConfigBuilder().
		WithTagFormat(config.NoTags).
		WithMaxLineLength(config.MinLineLength).
		Build()
	got := writePGN(t, game, cfg)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	testutil.AssertTrue(t, len(lines) > 1, "expected wrapped output, got %q", got)
	for _, line := range lines {
		testutil.AssertTrue(t, len(line) <= config.MinLineLength, "line %q is too long", line)
		testutil.AssertTrue(t, !strings.HasPrefix(line, " ") && !strings.HasSuffix(line, " "),
			"line %q has stray spaces", line)
	}

	want := "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 5. O-O Be7 6. Re1 b5 7. Bb3 d6 8. c3 O-O *"
	testutil.AssertEqual(t, strings.Join(lines, " "), want)
}

func TestPGNWriter_RoundTripThroughParser(t *testing.T) {
	game := playGame(t, "e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6", "b1c3", "a7a6")
	game.SetTag(chess.ResultTag, chess.BlackWins)
	game.SetTag(chess.TerminationTag, "resignation")

	text := writePGN(t, game, nil)

	parsed, err := parser.ReadGame(strings.NewReader(text))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, parsed.MoveTexts(), game.MoveTexts())
	testutil.AssertEqual(t, parsed.Result(), chess.BlackWins)
	testutil.AssertEqual(t, parsed.Termination(), "resignation")
	testutil.AssertEqual(t, parsed.TerminatingResult, chess.BlackWins)
	testutil.AssertEqual(t, parsed.GetTag(chess.DateTag), "????.??.??")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestOutputGame_WriteError(t *testing.T) {
	game := playGame(t, "e2e4")
	cfg := config.NewConfig()
	cfg.SetOutput(failingWriter{})

	err := OutputGame(game, cfg)
	testutil.AssertTrue(t, err != nil, "expected write error")
	testutil.AssertContains(t, err.Error(), "disk full")
}

func TestOutputGame_WritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfigBuilder().WithOutput(&buf).WithTagFormat(config.NoTags).Build()

	testutil.AssertNoError(t, OutputGame(playGame(t, "d2d4"), cfg))
	testutil.AssertEqual(t, buf.String(), "1. d4 *\n\n")
}

func TestEscapeTagValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`a"b`, `a\"b`},
		{`a\b`, `a\\b`},
		{"", ""},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, escapeTagValue(tt.in), tt.want)
	}
}
