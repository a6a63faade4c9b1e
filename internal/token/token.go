package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	DEFINE  TokenType = "DEFINE"  // #define at the start of a line
	IDENT   TokenType = "IDENT"   // WIDTH, max_len
	INT     TokenType = "INT"     // 42, 0x1F
	STRING  TokenType = "STRING"  // "text"
	COMMENT TokenType = "COMMENT" // // line or /* block */
	SPACE   TokenType = "SPACE"   // blanks, tabs, carriage returns
	NEWLINE TokenType = "NEWLINE"
	TEXT    TokenType = "TEXT" // any other single character
)

type Token struct {
	Type    TokenType
	Lexeme  string // exact source text
	Literal string // decoded value (STRING contents without quotes)
	Line    int
	Column  int
}

func IsLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// IsIdentifier reports whether s is a complete identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if IsLetter(ch) {
			continue
		}
		if i > 0 && IsDigit(ch) {
			continue
		}
		return false
	}
	return true
}
