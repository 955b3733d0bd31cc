package formula

import "regexp"

// unitRefRegex matches a unit-qualified reference such as `[P8:rpm]`.
var unitRefRegex = regexp.MustCompile(`\[([A-Za-z0-9_]+):([A-Za-z0-9]+)\]`)

// References maps a referenced parameter id to its unit. A nil unit means the
// formula did not say which unit it wants.
type References map[string]*string

// Unit returns the unit recorded for id and whether one was given.
func (r References) Unit(id string) (string, bool) {
	u, ok := r[id]
	if !ok || u == nil {
		return "", false
	}
	return *u, true
}

// Set records id with the given unit, replacing any earlier entry.
func (r References) Set(id, unit string) {
	r[id] = &unit
}

// ExtractReferences collects the parameters a token stream refers to. Numbers,
// operators, parentheses and the raw value `x` are not references. When an id
// appears more than once, the last occurrence decides its unit.
func ExtractReferences(tokens []Token) References {
	refs := make(References)
	for _, t := range tokens {
		if !t.IsReferenceCandidate() {
			continue
		}
		if m := unitRefRegex.FindStringSubmatch(t.Text); m != nil {
			refs.Set(m[1], m[2])
			continue
		}
		refs[t.Text] = nil
	}
	return refs
}
