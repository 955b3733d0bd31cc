package formula

// ToPostfix converts an infix token sequence to postfix order using the
// shunting-yard algorithm. Parentheses never appear in the result.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens)/2)

	for i, t := range tokens {
		switch t.Kind {
		case OperatorKind:
			op := t.Operator()
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != OperatorKind || !op.yieldsTo(top.Operator()) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)

		case LeftParen:
			stack = append(stack, t)

		case RightParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == LeftParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, &SyntaxError{Pos: i, Msg: "unexpected ')'"}
			}

		default:
			output = append(output, t)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == LeftParen {
			return nil, &SyntaxError{Pos: len(tokens), Msg: "unclosed '('"}
		}
		output = append(output, top)
	}

	return output, nil
}
