package formula

import (
	"errors"
	"strings"
)

// RPNSeparator joins postfix tokens in the logcfg `scalingrpn` field.
const RPNSeparator = ","

// Expression is a compiled formula: its infix tokens plus the references
// they make. The postfix form is derived on demand.
type Expression struct {
	Text       string
	Tokens     []Token
	References References
}

// Compile tokenizes text and extracts its references.
func Compile(text string) *Expression {
	tokens := Tokenize(text)
	return &Expression{
		Text:       text,
		Tokens:     tokens,
		References: ExtractReferences(tokens),
	}
}

// Postfix recomputes the postfix token sequence.
func (e *Expression) Postfix() ([]Token, error) {
	out, err := ToPostfix(e.Tokens)
	if err != nil {
		var syn *SyntaxError
		if errors.As(err, &syn) {
			syn.Formula = e.Text
		}
		return nil, err
	}
	return out, nil
}

// RPN returns the postfix sequence as a comma-joined literal token list.
func (e *Expression) RPN() (string, error) {
	out, err := e.Postfix()
	if err != nil {
		return "", err
	}
	return strings.Join(Texts(out), RPNSeparator), nil
}

// Validate reports whether the formula converts to postfix.
func (e *Expression) Validate() error {
	_, err := e.Postfix()
	return err
}
