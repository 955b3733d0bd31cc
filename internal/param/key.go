package param

import (
	"fmt"
	"regexp"
	"strings"
)

// keyRegex validates the id part of a key.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Key is the identity of a parameter: the same id logged in two units is two
// parameters.
type Key struct {
	ID   string
	Unit string
}

// NewKey builds a key without validation.
func NewKey(id, unit string) Key {
	return Key{ID: id, Unit: unit}
}

// String returns the canonical `id:unit` form.
func (k Key) String() string {
	return k.ID + ":" + k.Unit
}

// Kind is the kind of the key's parameter.
func (k Key) Kind() Kind {
	return KindOf(k.ID)
}

// Less orders keys the way the parameter table iterates them: regular
// parameters first, then extended ones, then lexicographically.
func (k Key) Less(other Key) bool {
	if rk, ro := k.Kind().rank(), other.Kind().rank(); rk != ro {
		return rk < ro
	}
	return k.String() < other.String()
}

// ParseKey parses the canonical `id:unit` form. The unit is everything after
// the last colon and may itself be empty.
func ParseKey(raw string) (Key, error) {
	if raw == "" {
		return Key{}, fmt.Errorf("parameter key cannot be empty")
	}
	i := strings.LastIndexByte(raw, ':')
	if i < 0 {
		return Key{}, fmt.Errorf("parameter key %q has no unit separator", raw)
	}
	id := raw[:i]
	if !keyRegex.MatchString(id) {
		return Key{}, fmt.Errorf("invalid parameter id in key %q", raw)
	}
	return Key{ID: id, Unit: raw[i+1:]}, nil
}
