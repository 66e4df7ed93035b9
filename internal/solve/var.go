package solve

import (
	"math/big"

	"github.com/gitrdm/symterm/pkg/term"
)

// Sign refines an integer-kind variable's permitted sign, mirroring
// spec.md §4.5's integer{info} refinements (any/pos/neg/non_neg).
type Sign uint8

const (
	SignAny Sign = iota
	SignPositive
	SignNegative
	SignNonNegative
)

// Var is one solver variable of sort Term. Variables are never mutated in
// place once part of a union-find class other than through the Solver's
// narrowing methods, which keep every field monotone (domains only shrink).
type Var struct {
	id     int
	name   string
	parent *Var // union-find parent; nil at a root

	kinds KindSet

	literal *term.Term // non-nil once forced equal to a ground term

	intLo, intHi *big.Int // inclusive bounds, nil = unbounded
	sign         Sign

	structured bool      // true once this var has been treated as list/tuple-shaped
	carrier    *listNode // valid when structured

	touched bool // true once any assertion actually constrained this var,
	// distinguishing it from a declared-but-never-constrained parameter
	// (spec.md §4.6's "any" sentinel).

	// assignment made by the search for a leaf (non-structured,
	// non-literal) variable; distinct from literal so union-find merges
	// that happen mid-search can be undone cleanly by the search.
	assigned *term.Term
}

// ID returns the variable's unique, session-local identifier.
func (v *Var) ID() int { return v.id }

// Name returns the symbolic name this variable was created for, if any.
func (v *Var) Name() string { return v.name }

// find returns the representative root of v's union-find class, compressing
// the path as it walks.
func find(v *Var) *Var {
	if v.parent == nil {
		return v
	}
	root := find(v.parent)
	v.parent = root
	return root
}
