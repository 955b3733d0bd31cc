package param

import (
	"strings"

	"github.com/vk/genlogcfg/internal/formula"
)

// Kind discriminates parameters by the first character of their id.
type Kind int

const (
	Other Kind = iota
	Regular
	Extended
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Extended:
		return "extended"
	default:
		return "other"
	}
}

// rank is the position of the kind in table order.
func (k Kind) rank() int {
	switch k {
	case Regular:
		return 0
	case Extended:
		return 1
	default:
		return 2
	}
}

// KindOf classifies a parameter id.
func KindOf(id string) Kind {
	if id == "" {
		return Other
	}
	switch id[0] {
	case 'P':
		return Regular
	case 'E':
		return Extended
	default:
		return Other
	}
}

// Parameter is one value to log. It starts bare (id and unit only) and is
// filled in from the definitions catalog.
type Parameter struct {
	ID    string
	Units string
	Name  string

	// Address is the hardware address, empty when the catalog has none.
	Address  string
	DataBits uint32

	// Hidden is true for parameters that are only logged because another
	// parameter depends on them.
	Hidden  bool
	IsFloat bool

	Expression *formula.Expression
}

// New returns a bare, hidden parameter.
func New(id, units string) *Parameter {
	return &Parameter{ID: id, Units: units, Hidden: true}
}

// Key returns the parameter's identity.
func (p *Parameter) Key() Key {
	return NewKey(p.ID, p.Units)
}

// Kind returns the parameter's kind.
func (p *Parameter) Kind() Kind {
	return KindOf(p.ID)
}

// Resolved reports whether the parameter has been populated from a catalog.
func (p *Parameter) Resolved() bool {
	return p.Expression != nil
}

// CSVFieldName is the column name the logger writes for this parameter.
func (p *Parameter) CSVFieldName() string {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	return strings.ReplaceAll(name+" ("+p.Units+")", " ", "_")
}
