package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/defsub/internal/config"
	"github.com/funvibe/defsub/internal/token"
)

// ErrUnterminated is returned for a string or block comment that runs off
// the end of its line or of the input.
var ErrUnterminated = errors.New("unterminated literal")

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	lineStart    bool // only blanks seen since the last newline
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, lineStart: true}
	l.readChar()
	return l
}

// Tokenize returns every token of input, ending with EOF. The error wraps
// ErrUnterminated if any ILLEGAL token was produced; the tokens are complete
// either way.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var (
		tokens []token.Token
		errs   []error
	)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.ILLEGAL {
			errs = append(errs, fmt.Errorf("line %d: %w", tok.Line, ErrUnterminated))
		}
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, errors.Join(errs...)
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) NextToken() token.Token {
	line, col, start := l.line, l.column, l.position

	if l.atEOF() {
		return token.Token{Type: token.EOF, Line: line, Column: col}
	}

	var tok token.Token
	switch {
	case l.ch == '\n':
		l.readChar()
		l.lineStart = true
		return l.emit(token.NEWLINE, start, line, col)
	case isBlank(l.ch):
		for isBlank(l.ch) && !l.atEOF() {
			l.readChar()
		}
		return l.emit(token.SPACE, start, line, col)
	case l.ch == '#' && l.lineStart && l.directiveAhead():
		l.readChar() // #
		for isBlank(l.ch) {
			l.readChar()
		}
		for i := 0; i < len(config.DirectiveName); i++ {
			l.readChar()
		}
		tok = l.emit(token.DEFINE, start, line, col)
	case l.ch == '"':
		tok = l.readString(start, line, col)
	case l.ch == '/' && l.peekChar() == '/':
		for l.ch != '\n' && !l.atEOF() {
			l.readChar()
		}
		tok = l.emit(token.COMMENT, start, line, col)
	case l.ch == '/' && l.peekChar() == '*':
		tok = l.readBlockComment(start, line, col)
	case token.IsLetter(l.ch):
		for token.IsLetter(l.ch) || token.IsDigit(l.ch) {
			l.readChar()
		}
		tok = l.emit(token.IDENT, start, line, col)
	case token.IsDigit(l.ch):
		for token.IsLetter(l.ch) || token.IsDigit(l.ch) {
			l.readChar()
		}
		tok = l.emit(token.INT, start, line, col)
	default:
		l.readChar()
		tok = l.emit(token.TEXT, start, line, col)
	}

	l.lineStart = false
	return tok
}

func (l *Lexer) emit(t token.TokenType, start, line, col int) token.Token {
	lexeme := l.input[start:l.position]
	if l.atEOF() {
		lexeme = l.input[start:]
	}
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

// directiveAhead reports whether the '#' under examination starts
// "#define", allowing blanks between the two.
func (l *Lexer) directiveAhead() bool {
	rest := strings.TrimLeft(l.input[l.readPosition:], " \t\r")
	if !strings.HasPrefix(rest, config.DirectiveName) {
		return false
	}
	after := rest[len(config.DirectiveName):]
	if after == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(after)
	return !token.IsLetter(r) && !token.IsDigit(r)
}

func (l *Lexer) readString(start, line, col int) token.Token {
	var sb strings.Builder
	for {
		l.readChar()
		if l.atEOF() || l.ch == '\n' {
			return l.emit(token.ILLEGAL, start, line, col)
		}
		if l.ch == '"' {
			l.readChar()
			tok := l.emit(token.STRING, start, line, col)
			tok.Literal = sb.String()
			return tok
		}
		if l.ch == '\\' {
			switch l.peekChar() {
			case '"':
				l.readChar()
				sb.WriteRune('"')
				continue
			case '\\':
				l.readChar()
				sb.WriteRune('\\')
				continue
			case 'n':
				l.readChar()
				sb.WriteRune('\n')
				continue
			case 't':
				l.readChar()
				sb.WriteRune('\t')
				continue
			}
		}
		sb.WriteRune(l.ch)
	}
}

func (l *Lexer) readBlockComment(start, line, col int) token.Token {
	l.readChar() // /
	l.readChar() // *
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return l.emit(token.COMMENT, start, line, col)
		}
		l.readChar()
	}
	return l.emit(token.ILLEGAL, start, line, col)
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func isBlank(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}
