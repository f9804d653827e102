package branch

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/bitstream"
	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/engine"
	"github.com/lgbarn/chessstego-go/internal/errors"
	"github.com/lgbarn/chessstego-go/internal/testutil"
)

var _ Game = (*engine.Game)(nil)

// mockGame offers branching(ply) moves named "000", "001", ... at every
// ply and ends after maxPlies moves when maxPlies is set.
type mockGame struct {
	branching func(ply int) int
	maxPlies  int
	result    string
	played    []string
}

func constant(n int) func(int) int {
	return func(int) int { return n }
}

func newMock(branching func(int) int, maxPlies int) *mockGame {
	return &mockGame{branching: branching, maxPlies: maxPlies, result: chess.Draw}
}

func (m *mockGame) over() bool {
	return m.maxPlies > 0 && len(m.played) >= m.maxPlies
}

func (m *mockGame) LegalMoves() []string {
	if m.over() {
		return nil
	}
	moves := make([]string, m.branching(len(m.played)))
	for i := range moves {
		moves[i] = fmt.Sprintf("%03d", i)
	}
	return moves
}

func (m *mockGame) ParseMove(text string) (string, error) {
	for _, legal := range m.LegalMoves() {
		if legal == text {
			return text, nil
		}
	}
	return "", fmt.Errorf("%q: %w", text, errors.ErrIllegalMove)
}

func (m *mockGame) Play(move string) error {
	if _, err := m.ParseMove(move); err != nil {
		return err
	}
	m.played = append(m.played, move)
	return nil
}

func (m *mockGame) Outcome() (string, bool) {
	if m.over() {
		return m.result, true
	}
	return chess.Unfinished, false
}

func (m *mockGame) ToMove() chess.Colour {
	if len(m.played)%2 == 0 {
		return chess.White
	}
	return chess.Black
}

func mustParse(t *testing.T, s string) bitstream.Bits {
	t.Helper()
	b, err := bitstream.Parse(s)
	testutil.AssertNoError(t, err)
	return b
}

func TestWidth(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3},
		{20, 4}, {32, 5}, {33, 5}, {218, 7},
	}

	for _, tt := range tests {
		if got := Width(tt.n); got != tt.want {
			t.Errorf("Width(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFrame(t *testing.T) {
	framed, err := Frame(mustParse(t, "101"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, framed.String(), "00000000000000000000000000000011"+"101")

	empty, err := Frame(nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(empty), HeaderBits)
	testutil.AssertEqual(t, empty.Uint(), uint64(0))
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name        string
		game        *mockGame
		stream      string
		moves       []string
		result      string
		termination string
	}{
		{
			name:        "two bits per ply",
			game:        newMock(constant(4), 0),
			stream:      "0110",
			moves:       []string{"001", "002"},
			result:      chess.BlackWins,
			termination: ResignationTermination,
		},
		{
			name:        "last move resigns for white",
			game:        newMock(constant(2), 0),
			stream:      "1",
			moves:       []string{"001"},
			result:      chess.WhiteWins,
			termination: ResignationTermination,
		},
		{
			name:        "final chunk zero padded",
			game:        newMock(constant(8), 0),
			stream:      "1",
			moves:       []string{"004"},
			result:      chess.WhiteWins,
			termination: ResignationTermination,
		},
		{
			name:        "non power of two branching",
			game:        newMock(constant(6), 0),
			stream:      "11",
			moves:       []string{"003"},
			result:      chess.WhiteWins,
			termination: ResignationTermination,
		},
		{
			name: "forced moves consume nothing",
			game: newMock(func(ply int) int {
				if ply%2 == 0 {
					return 1
				}
				return 4
			}, 0),
			stream:      "1111",
			moves:       []string{"000", "003", "000", "003"},
			result:      chess.BlackWins,
			termination: ResignationTermination,
		},
		{
			name:        "empty stream plays nothing",
			game:        newMock(constant(4), 0),
			stream:      "",
			moves:       nil,
			result:      chess.BlackWins,
			termination: ResignationTermination,
		},
		{
			name:   "game ends as the stream does",
			game:   newMock(constant(2), 2),
			stream: "10",
			moves:  []string{"001", "000"},
			result: chess.Draw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Encode(tt.game, mustParse(t, tt.stream))
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, out.Moves, tt.moves)
			testutil.AssertEqual(t, out.Result, tt.result)
			testutil.AssertEqual(t, out.Termination, tt.termination)
			testutil.AssertEqual(t, tt.game.played, tt.moves)
		})
	}
}

func TestEncode_GameExhausted(t *testing.T) {
	tests := []struct {
		name string
		game *mockGame
	}{
		{"game over", newMock(constant(2), 2)},
		{"no moves without game over", newMock(func(ply int) int {
			if ply >= 1 {
				return 0
			}
			return 2
		}, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.game, mustParse(t, "111"))
			testutil.AssertErrorIs(t, err, errors.ErrGameExhausted)

			var plyErr *errors.PlyError
			testutil.AssertTrue(t, errors.As(err, &plyErr), "want *PlyError, got %T", err)
		})
	}
}

func varied(ply int) int {
	return 1 + (ply*7+3)%23
}

func TestRoundTrip_Mock(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		payload := make(bitstream.Bits, rng.Intn(200))
		for i := range payload {
			payload[i] = uint8(rng.Intn(2))
		}
		stream, err := Frame(payload)
		testutil.AssertNoError(t, err)

		out, err := Encode(newMock(varied, 0), stream)
		testutil.AssertNoError(t, err)

		got, err := Decode(newMock(varied, 0), out.Moves)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got, payload, "trial %d", trial)
	}
}

func TestRoundTrip_Engine(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	payload := make(bitstream.Bits, 300)
	for i := range payload {
		payload[i] = uint8(rng.Intn(2))
	}
	stream, err := Frame(payload)
	testutil.AssertNoError(t, err)

	out, err := Encode(engine.NewGame(), stream)
	if errors.Is(err, errors.ErrGameExhausted) {
		t.Skip("random game ended before the payload was placed")
	}
	testutil.AssertNoError(t, err)

	got, err := Decode(engine.NewGame(), out.Moves)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, payload)
}

func TestDecode_IgnoresPaddingAndTrailingMoves(t *testing.T) {
	stream, err := Frame(mustParse(t, "1"))
	testutil.AssertNoError(t, err)

	// 33 bits over 4-bit branches leaves three padding bits in the last move.
	out, err := Encode(newMock(constant(16), 0), stream)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(out.Moves), 9)
	testutil.AssertEqual(t, out.Moves[8], "008", "last chunk is 1 followed by padding")

	moves := append(out.Moves, "not a move")
	got, err := Decode(newMock(constant(16), 0), moves)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.String(), "1")
}

func TestDecode_Integrity(t *testing.T) {
	framed, err := Frame(mustParse(t, "101101"))
	testutil.AssertNoError(t, err)
	out, err := Encode(newMock(constant(4), 0), framed)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(out.Moves), 19)

	tests := []struct {
		name  string
		game  *mockGame
		moves []string
		ply   int
	}{
		{"header incomplete", newMock(constant(4), 0), out.Moves[:10], 0},
		{"payload truncated", newMock(constant(4), 0), out.Moves[:18], 0},
		{"no moves", newMock(constant(4), 0), nil, 0},
		{"unknown move", newMock(constant(4), 0), []string{"001", "zzz"}, 2},
		{"index beyond branch width", newMock(constant(5), 0), []string{"004"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.game, tt.moves)
			testutil.AssertErrorIs(t, err, errors.ErrIntegrity)

			if tt.ply > 0 {
				var plyErr *errors.PlyError
				testutil.AssertTrue(t, errors.As(err, &plyErr), "want *PlyError, got %T", err)
				testutil.AssertEqual(t, plyErr.Ply, tt.ply)
			}
		})
	}
}

func TestDecode_LargestHeader(t *testing.T) {
	// Sixteen two-bit indices of 3 set every header bit.
	moves := make([]string, HeaderBits/2)
	for i := range moves {
		moves[i] = "003"
	}

	_, err := Decode(newMock(constant(4), 0), moves)
	testutil.AssertErrorIs(t, err, errors.ErrIntegrity)
	testutil.AssertContains(t, err.Error(), "header declares 4294967295 payload bits, moves carry 0")
}

func TestCodec_Logger(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	stream, err := Frame(nil)
	testutil.AssertNoError(t, err)
	out, err := c.Encode(newMock(constant(16), 0), stream)
	testutil.AssertNoError(t, err)
	_, err = c.Decode(newMock(constant(16), 0), out.Moves)
	testutil.AssertNoError(t, err)

	testutil.AssertContains(t, buf.String(), "branch encode")
	testutil.AssertContains(t, buf.String(), "branch decode")
}
