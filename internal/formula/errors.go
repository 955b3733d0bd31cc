package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExpression is returned when parentheses do not balance.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrInvalidToken marks a precedence or associativity query against a
	// token that is not an operator. It is only ever raised through panic.
	ErrInvalidToken = errors.New("invalid token")
)

// SyntaxError reports where in the token stream a formula broke.
type SyntaxError struct {
	Formula string
	Pos     int // token index
	Msg     string
}

func (e *SyntaxError) Error() string {
	if e.Formula == "" {
		return fmt.Sprintf("%s at token %d: %s", ErrMalformedExpression, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s %q at token %d: %s", ErrMalformedExpression, e.Formula, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedExpression
}

func invalidToken(text string) error {
	return fmt.Errorf("%w: %q is not an operator", ErrInvalidToken, text)
}
