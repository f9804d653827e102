package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Lexer tokenizes PGN input.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
	log     zerolog.Logger
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = Whitespace
	}

	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment

	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['+'] = CheckSymbol
	chTab['#'] = CheckSymbol
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['\\'] = Escape
	chTab['*'] = Star
	chTab['-'] = Dash

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	chTab['_'] = Alpha

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	for c := byte('a'); c <= 'h'; c++ {
		moveChars[c] = true
	}
	for c := byte('1'); c <= '8'; c++ {
		moveChars[c] = true
	}

	// Piece letters, upper case for SAN and lower case for UCI promotions
	for _, c := range []byte{'K', 'Q', 'R', 'N', 'B', 'k', 'q', 'r', 'n', 'b'} {
		moveChars[c] = true
	}

	// Capture, promotion and castling
	for _, c := range []byte{'x', '=', 'O', 'o', '0', '-'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader. Recoverable
// problems in the input are reported to log.
func NewLexer(r io.Reader, log zerolog.Logger) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		log:    log,
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// skipWhile advances past characters of the given class.
func (l *Lexer) skipWhile(class TokenType) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == class {
		l.advance()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		if l.pos >= len(l.line) {
			if !l.readLine() {
				return &Token{Type: EOFToken, Line: l.lineNum}, nil
			}
			// Escape lines start with '%'.
			if strings.HasPrefix(l.line, "%") {
				l.pos = len(l.line)
				continue
			}
		}

		line, column := l.lineNum, l.pos+1
		token, err := l.getNextSymbol()
		if err != nil {
			return nil, err
		}
		if token.Type != NoToken {
			token.Line, token.Column = line, column
			return token, nil
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() (*Token, error) {
	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		l.skipWhile(Whitespace)
		return &Token{Type: NoToken}, nil

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}, nil

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.warn("unmatched comment end")
		return &Token{Type: NoToken}, nil

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}, nil

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}, nil

	case Annotate:
		l.skipWhile(Annotate)
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[symbolStart:l.pos])}, nil

	case CheckSymbol:
		l.skipWhile(CheckSymbol)
		return &Token{Type: CheckSymbol, Text: l.line[symbolStart:l.pos]}, nil

	case Dot:
		l.skipWhile(Dot)
		return &Token{Type: NoToken}, nil

	case RAVStart:
		return &Token{Type: RAVStart}, nil

	case RAVEnd:
		return &Token{Type: RAVEnd}, nil

	case Percent, Escape:
		l.pos = len(l.line)
		return &Token{Type: NoToken}, nil

	case Alpha:
		return l.gatherMove(symbolStart), nil

	case Digit:
		return l.gatherNumeric(ch, symbolStart), nil

	case Star:
		return &Token{Type: TerminatingResult, Text: "*"}, nil

	case Dash:
		// "--" is a null move, which cannot carry a branch and is skipped.
		l.skipWhile(Dash)
		l.warn("null move ignored")
		return &Token{Type: NoToken}, nil

	default:
		l.warn("unknown character %q", ch)
		l.skipWhile(ErrorToken)
		return &Token{Type: NoToken}, nil
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() (*Token, error) {
	l.skipWhile(Whitespace)

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	if l.pos == start {
		return nil, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Line:     l.lineNum,
			Column:   l.pos + 1,
			Expected: "tag name",
		}
	}
	return &Token{Type: TagToken, Text: l.line[start:l.pos]}, nil
}

// gatherString gathers a quoted string.
func (l *Lexer) gatherString() (*Token, error) {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		switch {
		case escaped:
			sb.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return &Token{Type: StringToken, Text: sb.String()}, nil
		default:
			sb.WriteByte(ch)
		}
	}

	return nil, &errors.ParseError{
		Err:      errors.ErrParseFailure,
		Line:     l.lineNum,
		Column:   l.pos + 1,
		Expected: "closing quote",
	}
}

// gatherComment gathers a comment block, which may span lines.
func (l *Lexer) gatherComment() (*Token, error) {
	startLine := l.lineNum
	var sb strings.Builder

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String())}, nil
			}
			sb.WriteByte(ch)
		}
		if !l.readLine() {
			break
		}
	}

	return nil, &errors.ParseError{
		Err:      errors.ErrParseFailure,
		Line:     startLine,
		Expected: "end of comment",
		Got:      "end of input",
	}
}

// gatherMove gathers move text starting with a letter.
func (l *Lexer) gatherMove(symbolStart int) *Token {
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}

	text := l.line[symbolStart:l.pos]
	if strings.HasSuffix(text, "e") && strings.HasPrefix(l.line[l.pos:], ".p.") {
		// En passant marker, either "exd6e.p." or a separate "e.p.".
		text = text[:len(text)-1]
		l.pos += len(".p.")
		if text == "" {
			return &Token{Type: NoToken}
		}
	}
	if !moveSeemsValid(text) {
		l.warn("unknown move text %q", text)
		// Skip the rest of the word so its tail is not lexed as a move.
		for l.pos < len(l.line) && chTab[l.currentChar()] == Alpha {
			l.advance()
		}
		return &Token{Type: NoToken}
	}
	return &Token{Type: MoveToken, Text: normaliseCastling(text)}
}

// gatherNumeric handles tokens starting with a digit: results, castling
// with zeros and move numbers.
func (l *Lexer) gatherNumeric(initialDigit byte, symbolStart int) *Token {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1"}
		}
		if strings.HasPrefix(remaining, "-0") {
			return l.gatherMove(symbolStart)
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0"}
		}
		if strings.HasPrefix(remaining, "/2-1/2") {
			l.pos += 6
			return &Token{Type: TerminatingResult, Text: "1/2-1/2"}
		}
	}

	start := l.pos - 1
	for l.pos < len(l.line) && unicode.IsDigit(rune(l.currentChar())) {
		l.advance()
	}
	moveNum, err := strconv.ParseUint(l.line[start:l.pos], 10, 32)
	if err != nil {
		l.warn("bad move number %q", l.line[start:l.pos])
	}
	l.skipWhile(Dot)
	return &Token{Type: MoveNumber, MoveNum: uint(moveNum)}
}

// warn reports a recoverable problem at the current line.
func (l *Lexer) warn(format string, args ...interface{}) {
	l.log.Warn().Int("line", l.lineNum).Msgf(format, args...)
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// normaliseCastling rewrites zero and lower case castling as O-O / O-O-O.
func normaliseCastling(text string) string {
	switch text {
	case "0-0", "o-o":
		return "O-O"
	case "0-0-0", "o-o-o":
		return "O-O-O"
	default:
		return text
	}
}

// moveSeemsValid does a basic check if the move text looks valid.
func moveSeemsValid(text string) bool {
	switch normaliseCastling(text) {
	case "O-O", "O-O-O":
		return true
	}
	if len(text) < 2 {
		return false
	}

	// Must contain at least one file (a-h) and one rank (1-8)
	hasFile := false
	hasRank := false
	for _, c := range text {
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}
	return hasFile && hasRank
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}
