package formula

// Operator is one of the six supported binary operators. The set is closed.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// Associativity of an operator.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// lookupOperator maps a single-character symbol to its Operator.
func lookupOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	case "%":
		return OpMod, true
	case "^":
		return OpPow, true
	}
	return 0, false
}

func isOperatorByte(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '^':
		return true
	}
	return false
}

// Symbol returns the operator's source character.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	}
	panic(invalidToken("Operator(?)"))
}

// Precedence returns the binding strength; higher binds tighter.
func (o Operator) Precedence() int {
	switch o {
	case OpAdd, OpSub:
		return 0
	case OpMul, OpDiv, OpMod:
		return 5
	case OpPow:
		return 10
	}
	panic(invalidToken("Operator(?)"))
}

// Associativity returns how operators of equal precedence group.
func (o Operator) Associativity() Associativity {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return LeftAssoc
	case OpPow:
		return RightAssoc
	}
	panic(invalidToken("Operator(?)"))
}

// yieldsTo reports whether o, arriving while top sits on the operator stack,
// forces top out to the output first.
func (o Operator) yieldsTo(top Operator) bool {
	if o.Associativity() == LeftAssoc {
		return o.Precedence() <= top.Precedence()
	}
	return o.Precedence() < top.Precedence()
}
