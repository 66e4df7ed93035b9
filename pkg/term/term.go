// Package term defines the algebraic value theory the symterm backend
// reasons about: Term, List, and Atom, as declared once at session startup
// in the original design this module reimplements (see DESIGN.md).
//
// A Term is the single inhabited sort of the source language's value
// universe. It is a tagged sum of five variants: int, real, lst, tpl, and
// atm. Lists and tuples share the same cons-list carrier (Terms) and are
// distinguished only by their outer Term tag; Atoms are themselves cons-lists
// of small non-negative integers (character codes).
package term

import (
	"fmt"
	"math/big"
)

// Kind discriminates the variant of a concrete Term.
type Kind uint8

const (
	Int Kind = iota
	Real
	List
	Tuple
	Atom
)

// String renders a Kind's name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Real:
		return "real"
	case List:
		return "lst"
	case Tuple:
		return "tpl"
	case Atom:
		return "atm"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Term is a fully concrete, resolved value in the source language's value
// domain. Exactly one of the payload fields is meaningful, selected by Kind.
type Term struct {
	Kind Kind

	IntVal  *big.Int // valid when Kind == Int
	RealVal Rational // valid when Kind == Real

	ListVal *Cons // valid when Kind == List or Kind == Tuple (the carrier is shared)

	AtomVal *AtomCons // valid when Kind == Atom
}

// NewInt wraps a mathematical integer as a Term.
func NewInt(i *big.Int) *Term {
	return &Term{Kind: Int, IntVal: new(big.Int).Set(i)}
}

// NewIntFromInt64 is a convenience constructor for small integer literals.
func NewIntFromInt64(i int64) *Term {
	return NewInt(big.NewInt(i))
}

// NewReal wraps an exact rational as a Term.
func NewReal(r Rational) *Term {
	return &Term{Kind: Real, RealVal: r}
}

// NewList wraps a cons-list carrier as a List-kind Term.
func NewList(l *Cons) *Term {
	if l == nil {
		l = Nil()
	}
	return &Term{Kind: List, ListVal: l}
}

// NewTuple wraps a cons-list carrier as a Tuple-kind Term. Tuples and lists
// share the same List carrier; only the outer tag differs.
func NewTuple(l *Cons) *Term {
	if l == nil {
		l = Nil()
	}
	return &Term{Kind: Tuple, ListVal: l}
}

// NewAtom wraps an Atom (a code sequence) as an Atom-kind Term.
func NewAtom(a *AtomCons) *Term {
	if a == nil {
		a = ANil()
	}
	return &Term{Kind: Atom, AtomVal: a}
}

// Equal reports whether two concrete terms are structurally identical.
// This is the "strict equality" (=:=, =/=) relation of spec.md §4.3.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Int:
		return t.IntVal.Cmp(other.IntVal) == 0
	case Real:
		return t.RealVal.Equal(other.RealVal)
	case List, Tuple:
		return t.ListVal.Equal(other.ListVal)
	case Atom:
		return t.AtomVal.Equal(other.AtomVal)
	default:
		return false
	}
}

// String renders a human-readable form for diagnostics and logging.
func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Int:
		return t.IntVal.String()
	case Real:
		return t.RealVal.String()
	case List:
		return "[" + t.ListVal.String() + "]"
	case Tuple:
		return "{" + t.ListVal.String() + "}"
	case Atom:
		return t.AtomVal.String()
	default:
		return "?"
	}
}

// IsBooleanAtom reports whether t is exactly the canonical true/false atom.
func (t *Term) IsBooleanAtom() bool {
	return t != nil && t.Kind == Atom && (t.AtomVal.Equal(TrueCodes) || t.AtomVal.Equal(FalseCodes))
}
