package formula

import (
	"strings"
	"unicode"
)

// RawValue is the identifier that stands for the parameter's own logged value.
const RawValue = "x"

// Tokenize splits a formula into tokens. Whitespace is dropped, operators and
// parentheses are emitted as single-character tokens, and every run between
// them becomes one identifier or number token.
func Tokenize(formula string) []Token {
	var (
		tokens []Token
		buf    strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, classify(buf.String()))
			buf.Reset()
		}
	}

	for _, r := range strings.TrimSpace(formula) {
		switch {
		case unicode.IsSpace(r):
			continue
		case r < unicode.MaxASCII && isOperatorByte(byte(r)):
			flush()
			tokens = append(tokens, Token{Kind: OperatorKind, Text: string(r)})
		case r == '(':
			flush()
			tokens = append(tokens, Token{Kind: LeftParen, Text: "("})
		case r == ')':
			flush()
			tokens = append(tokens, Token{Kind: RightParen, Text: ")"})
		default:
			buf.WriteRune(r)
		}
	}
	flush()

	return tokens
}
