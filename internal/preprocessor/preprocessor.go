// Package preprocessor executes #define directives against a symbol table
// and copies everything else to the output, replacing defined identifiers
// with their resolved values.
package preprocessor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/funvibe/defsub/internal/diagnostics"
	"github.com/funvibe/defsub/internal/lexer"
	"github.com/funvibe/defsub/internal/symbols"
	"github.com/funvibe/defsub/internal/token"
)

var (
	// ErrMalformedDirective is wrapped by every rejected #define.
	ErrMalformedDirective = errors.New("malformed #define")
	// ErrInvalidValue is returned by ParseValue.
	ErrInvalidValue = errors.New("invalid value")
)

type Preprocessor struct {
	table    *symbols.Table
	reporter diagnostics.Reporter
	out      io.Writer

	tokens []token.Token
	pos    int

	malformed    int
	unterminated int
}

func New(table *symbols.Table, reporter diagnostics.Reporter, out io.Writer) *Preprocessor {
	if reporter == nil {
		reporter = diagnostics.Discard
	}
	return &Preprocessor{table: table, reporter: reporter, out: out}
}

// Run processes tokens up to EOF. Bad directives and unterminated literals
// are reported as they are found and summarized in the returned error; a
// write failure stops processing at once.
func (p *Preprocessor) Run(tokens []token.Token) error {
	p.tokens = tokens
	p.pos = 0

	for {
		tok := p.cur()
		if tok.Type == token.EOF {
			break
		}

		if tok.Type == token.DEFINE {
			if err := p.directive(); err != nil {
				return err
			}
			continue
		}

		var err error
		switch tok.Type {
		case token.IDENT:
			var found bool
			found, err = p.table.Substitute(p.out, tok.Lexeme)
			if err == nil && !found {
				err = p.write(tok.Lexeme)
			}
		case token.ILLEGAL:
			p.unterminated++
			p.reporter.Error(tok.Line, fmt.Errorf("%w starting %q", lexer.ErrUnterminated, clip(tok.Lexeme)))
			err = p.write(tok.Lexeme)
		default:
			err = p.write(tok.Lexeme)
		}
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		p.pos++
	}

	var errs []error
	if p.malformed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d directive(s) skipped", ErrMalformedDirective, p.malformed))
	}
	if p.unterminated > 0 {
		errs = append(errs, fmt.Errorf("%w: %d found", lexer.ErrUnterminated, p.unterminated))
	}
	return errors.Join(errs...)
}

// directive handles "#define NAME VALUE" through to the end of its line.
// The line break itself is left for Run to copy.
func (p *Preprocessor) directive() error {
	line := p.cur().Line
	if err := p.drop(); err != nil {
		return err
	}
	if err := p.skipBlank(false); err != nil {
		return err
	}

	name := p.cur()
	if name.Type != token.IDENT {
		return p.reject(line, "expected an identifier after #define")
	}
	if err := p.drop(); err != nil {
		return err
	}
	if err := p.skipBlank(false); err != nil {
		return err
	}

	value, reason := p.value()
	if value == nil {
		return p.reject(line, reason)
	}
	if err := p.skipBlank(true); err != nil {
		return err
	}
	if t := p.cur().Type; t != token.NEWLINE && t != token.EOF {
		return p.reject(line, fmt.Sprintf("unexpected %q after the value of %s", p.cur().Lexeme, name.Lexeme))
	}

	p.table.Define(name.Lexeme, value, line)
	return nil
}

// value consumes one directive value. On failure it returns nil and the
// reason, leaving the offending token in place.
func (p *Preprocessor) value() (symbols.Value, string) {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		return p.intValue(tok.Lexeme)
	case token.TEXT:
		if tok.Lexeme == "-" && p.peek().Type == token.INT {
			p.pos++
			return p.intValue("-" + p.cur().Lexeme)
		}
	case token.STRING:
		p.pos++
		return symbols.StrValue{V: tok.Literal}, ""
	case token.IDENT:
		p.pos++
		return symbols.AliasValue{Target: tok.Lexeme}, ""
	case token.ILLEGAL:
		return nil, "unterminated string value"
	}
	return nil, "expected an integer, a string or an identifier as the value"
}

// ParseValue reads text the way a #define value is read: an integer, a
// quoted string or an identifier. Empty text is the empty string.
func ParseValue(text string) (symbols.Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return symbols.StrValue{}, nil
	}
	tokens, _ := lexer.Tokenize(text)
	p := &Preprocessor{tokens: tokens}
	v, reason := p.value()
	if v == nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidValue, text, reason)
	}
	if p.cur().Type != token.EOF {
		return nil, fmt.Errorf("%w %q: unexpected %q", ErrInvalidValue, text, p.cur().Lexeme)
	}
	return v, nil
}

func (p *Preprocessor) intValue(text string) (symbols.Value, string) {
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return nil, fmt.Sprintf("invalid integer %q", text)
	}
	p.pos++
	return symbols.IntValue{V: n}, ""
}

func (p *Preprocessor) reject(line int, reason string) error {
	p.malformed++
	p.reporter.Error(line, fmt.Errorf("%w: %s", ErrMalformedDirective, reason))
	for t := p.cur().Type; t != token.NEWLINE && t != token.EOF; t = p.cur().Type {
		if err := p.drop(); err != nil {
			return err
		}
	}
	return nil
}

// skipBlank drops SPACE tokens, and COMMENT tokens too if comments is set.
func (p *Preprocessor) skipBlank(comments bool) error {
	for {
		t := p.cur().Type
		if t != token.SPACE && !(comments && t == token.COMMENT) {
			return nil
		}
		if err := p.drop(); err != nil {
			return err
		}
	}
}

// drop consumes a directive token without copying it. Line breaks inside
// it (block comments) are still written so output lines match input lines.
func (p *Preprocessor) drop() error {
	n := strings.Count(p.cur().Lexeme, "\n")
	p.pos++
	if n == 0 {
		return nil
	}
	if err := p.write(strings.Repeat("\n", n)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (p *Preprocessor) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Type: token.EOF}
}

func (p *Preprocessor) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return token.Token{Type: token.EOF}
}

func (p *Preprocessor) write(s string) error {
	_, err := io.WriteString(p.out, s)
	return err
}

func clip(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
