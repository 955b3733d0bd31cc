package formula

import (
	"fmt"
	"strconv"
)

// Kind is the lexical category of a Token.
type Kind int

const (
	Identifier Kind = iota
	Number
	OperatorKind
	LeftParen
	RightParen
)

var kindNames = [...]string{
	Identifier:   "IDENTIFIER",
	Number:       "NUMBER",
	OperatorKind: "OPERATOR",
	LeftParen:    "LPAREN",
	RightParen:   "RPAREN",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one atomic unit of a formula. Text is exactly what was scanned.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return t.Text
}

// Operator returns the operator this token denotes. Calling it on anything
// but an operator token is a programming error and panics.
func (t Token) Operator() Operator {
	if t.Kind != OperatorKind {
		panic(invalidToken(t.Text))
	}
	op, ok := lookupOperator(t.Text)
	if !ok {
		panic(invalidToken(t.Text))
	}
	return op
}

// IsReferenceCandidate reports whether the token may name another parameter:
// an identifier other than the raw logged value `x`.
func (t Token) IsReferenceCandidate() bool {
	return t.Kind == Identifier && t.Text != RawValue
}

// classify builds a token for a flushed buffer.
func classify(text string) Token {
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return Token{Kind: Number, Text: text}
	}
	return Token{Kind: Identifier, Text: text}
}

// Texts returns the literal text of each token, in order.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
