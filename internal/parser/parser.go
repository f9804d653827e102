package parser

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/chess"
	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Parser parses PGN input into Game structures. Only the main line is
// kept: variations are skipped and moves are left as recorded text for
// the engine to resolve.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	log          zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives warnings about recoverable
// problems in the input.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// NewParser creates a new parser for the given reader.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	p.lexer = NewLexer(r, p.log)
	return p
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() error {
	token, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.currentToken = token
	return nil
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*chess.Game, error) {
	if p.currentToken == nil {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}

	if err := p.skipToNextGame(); err != nil {
		return nil, err
	}
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	game := chess.NewGame()
	game.StartLine = uint(p.currentToken.Line)

	if err := p.parseOptTagList(game); err != nil {
		return nil, err
	}
	if err := p.parseMoveList(game); err != nil {
		return nil, err
	}
	if err := p.parseResult(game); err != nil {
		return nil, err
	}
	game.EndLine = uint(p.lexer.LineNumber())

	return game, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() error {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult:
			return nil
		default:
			if err := p.nextToken(); err != nil {
				return err
			}
		}
	}
}

// parseOptTagList parses zero or more tags and the comments after them.
func (p *Parser) parseOptTagList(game *chess.Game) error {
	for p.currentToken.Type == TagToken {
		name := p.currentToken.Text
		if err := p.nextToken(); err != nil {
			return err
		}
		if p.currentToken.Type != StringToken {
			return &errors.ParseError{
				Err:      errors.ErrParseFailure,
				Line:     p.currentToken.Line,
				Column:   p.currentToken.Column,
				Expected: "value for tag " + name,
				Got:      p.currentToken.Type.String(),
			}
		}
		game.SetTag(name, p.currentToken.Text)
		if err := p.nextToken(); err != nil {
			return err
		}
	}

	for p.currentToken.Type == CommentToken {
		game.AppendPrefixComment(p.currentToken.Text)
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

// parseMoveList parses the main line up to the result or the next game,
// attaching check symbols, NAGs and comments to the move they follow.
func (p *Parser) parseMoveList(game *chess.Game) error {
	var last *chess.Move

	for {
		switch p.currentToken.Type {
		case MoveNumber:
		case MoveToken:
			last = chess.NewMove()
			last.Text = p.currentToken.Text
			game.AppendMove(last)
		case CheckSymbol:
			if last != nil {
				last.Text += p.currentToken.Text
			}
		case NAGToken:
			if last != nil {
				last.AppendNAG(p.currentToken.Text)
			}
		case CommentToken:
			if last != nil {
				last.AppendComment(p.currentToken.Text)
			} else {
				game.AppendPrefixComment(p.currentToken.Text)
			}
		case RAVStart:
			if err := p.skipVariation(); err != nil {
				return err
			}
		case RAVEnd:
			p.log.Warn().Int("line", p.currentToken.Line).Msg("too many ')'")
		default:
			return nil
		}

		if err := p.nextToken(); err != nil {
			return err
		}
	}
}

// skipVariation skips a parenthesised variation, including nested ones.
// On return the current token is the closing ')'.
func (p *Parser) skipVariation() error {
	start := p.currentToken
	depth := 1
	for depth > 0 {
		if err := p.nextToken(); err != nil {
			return err
		}
		switch p.currentToken.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
		case EOFToken:
			return &errors.ParseError{
				Err:      errors.ErrParseFailure,
				Line:     start.Line,
				Column:   start.Column,
				Expected: "')' to close variation",
				Got:      "end of input",
			}
		}
	}
	return nil
}

// parseResult parses an optional game result. A result in the movetext
// fills the Result tag when the tags leave it open.
func (p *Parser) parseResult(game *chess.Game) error {
	if p.currentToken.Type != TerminatingResult {
		return nil
	}

	result := p.currentToken.Text
	game.TerminatingResult = result
	if tag := game.GetTag(chess.ResultTag); tag == "" || tag == "?" {
		game.SetTag(chess.ResultTag, result)
	}
	return p.nextToken()
}

// ParseAllGames parses all games from the input.
func (p *Parser) ParseAllGames() ([]*chess.Game, error) {
	var games []*chess.Game

	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		games = append(games, game)
	}

	return games, nil
}

// ReadGame parses the first game of r. It fails with ErrFormat when the
// input holds no game.
func ReadGame(r io.Reader, opts ...Option) (*chess.Game, error) {
	game, err := NewParser(r, opts...).ParseGame()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, errors.Wrap(errors.ErrFormat, "no PGN game found")
	}
	return game, nil
}
