// Package solve implements the constraint store and model search that
// stand in for the off-the-shelf SMT solver spec.md treats as an external
// black box (see SPEC_FULL.md §9, "solver substitution"). It knows nothing
// about the wire protocol or opcodes; it only understands Term-sort
// variables, equality, kind/range refinements, list structure, and
// arbitrary verifier closures.
package solve

import "github.com/gitrdm/symterm/pkg/term"

// KindSet is a bitmask over the five Term variants, used to track which
// kinds a not-yet-resolved variable could still take.
type KindSet uint8

const (
	KindInt KindSet = 1 << iota
	KindReal
	KindList
	KindTuple
	KindAtom
)

// KindAll permits every Term variant; it is the starting domain for every
// freshly created variable.
const KindAll = KindInt | KindReal | KindList | KindTuple | KindAtom

// KindOf returns the singleton KindSet bit for a concrete term.Kind.
func KindOf(k term.Kind) KindSet {
	switch k {
	case term.Int:
		return KindInt
	case term.Real:
		return KindReal
	case term.List:
		return KindList
	case term.Tuple:
		return KindTuple
	case term.Atom:
		return KindAtom
	default:
		return 0
	}
}

// Has reports whether bit is included in the set.
func (s KindSet) Has(bit KindSet) bool { return s&bit != 0 }

// Single reports whether exactly one bit is set, returning it.
func (s KindSet) Single() (KindSet, bool) {
	if s != 0 && s&(s-1) == 0 {
		return s, true
	}
	return 0, false
}

// Empty reports whether no kind remains possible — a contradiction.
func (s KindSet) Empty() bool { return s == 0 }

// Kinds expands the set into its constituent term.Kind values.
func (s KindSet) Kinds() []term.Kind {
	var out []term.Kind
	if s.Has(KindInt) {
		out = append(out, term.Int)
	}
	if s.Has(KindReal) {
		out = append(out, term.Real)
	}
	if s.Has(KindList) {
		out = append(out, term.List)
	}
	if s.Has(KindTuple) {
		out = append(out, term.Tuple)
	}
	if s.Has(KindAtom) {
		out = append(out, term.Atom)
	}
	return out
}
