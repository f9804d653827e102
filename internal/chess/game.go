package chess

// Game represents a complete chess game with tags and moves.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// Any comment prefixing the game, between the tags and the moves.
	PrefixComment []string

	// The move list of the game.
	Moves *Move

	// Result token found at the end of the movetext, if any.
	TerminatingResult string

	// Line numbers of the start and end of the game in the input.
	StartLine uint
	EndLine   uint
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{
		Tags: make(map[string]string),
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value.
func (g *Game) SetTag(name, value string) {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// Result returns the game result.
func (g *Game) Result() string {
	return g.GetTag(ResultTag)
}

// Termination returns the termination reason, if recorded.
func (g *Game) Termination() string {
	return g.GetTag(TerminationTag)
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	count := 0
	for move := g.Moves; move != nil; move = move.Next {
		count++
	}
	return count
}

// LastMove returns the last move in the game, or nil if no moves.
func (g *Game) LastMove() *Move {
	if g.Moves == nil {
		return nil
	}
	move := g.Moves
	for move.Next != nil {
		move = move.Next
	}
	return move
}

// AppendMove adds a move to the end of the game.
func (g *Game) AppendMove(m *Move) {
	if g.Moves == nil {
		g.Moves = m
		return
	}
	last := g.LastMove()
	last.Next = m
	m.Prev = last
}

// MoveTexts returns the recorded text of every main-line move in order.
func (g *Game) MoveTexts() []string {
	var texts []string
	for move := g.Moves; move != nil; move = move.Next {
		texts = append(texts, move.Text)
	}
	return texts
}

// AppendPrefixComment adds a prefix comment to the game.
func (g *Game) AppendPrefixComment(text string) {
	g.PrefixComment = append(g.PrefixComment, text)
}
