// Package formula compiles the scaling formulas found in logger definitions
// (for example `x*0.25`, `([P8:rpm]*x)/2`) into postfix token streams.
//
// A formula is tokenized in a single pass: the six arithmetic operators and
// the two parentheses act as buffer boundaries, everything else accumulates
// into identifier or number tokens. References to other parameters are
// collected from the identifier tokens, and the infix sequence is converted
// to postfix with the shunting-yard algorithm. Nothing is ever evaluated.
package formula
