package term

import "strings"

// AtomCons is an Atom's own cons-list carrier: a chain of small
// non-negative integer character codes, nil-terminated exactly like List.
// Keeping Atom's carrier distinct from Cons (rather than reusing it with an
// Int-kind Term per code) avoids boxing every character code as a full Term.
type AtomCons struct {
	Nil  bool
	Code int
	Tail *AtomCons
}

// ANil constructs the empty atom ('').
func ANil() *AtomCons { return &AtomCons{Nil: true} }

// ACons prepends a character code onto tail.
func ACons(code int, tail *AtomCons) *AtomCons {
	if tail == nil {
		tail = ANil()
	}
	return &AtomCons{Code: code, Tail: tail}
}

// AtomFromString builds an atom carrier from its textual name, one code per
// rune, in order.
func AtomFromString(s string) *AtomCons {
	runes := []rune(s)
	c := ANil()
	for i := len(runes) - 1; i >= 0; i-- {
		c = ACons(int(runes[i]), c)
	}
	return c
}

// String renders the atom's textual name by decoding each code as a rune.
func (a *AtomCons) String() string {
	var sb strings.Builder
	cur := a
	for cur != nil && !cur.Nil {
		sb.WriteRune(rune(cur.Code))
		cur = cur.Tail
	}
	return sb.String()
}

// Equal reports whether two atom carriers hold the same code sequence.
func (a *AtomCons) Equal(other *AtomCons) bool {
	x, y := a, other
	for {
		if x == nil || y == nil {
			return x == y
		}
		if x.Nil != y.Nil {
			return false
		}
		if x.Nil {
			return true
		}
		if x.Code != y.Code {
			return false
		}
		x, y = x.Tail, y.Tail
	}
}

// Canonical atoms cached once, mirroring the session-level atom_true/
// atom_false/atom_infinity constants of spec.md §3.3.
var (
	TrueCodes     = AtomFromString("true")
	FalseCodes    = AtomFromString("false")
	InfinityCodes = AtomFromString("infinity")
)

// TermTrue and TermFalse are the canonical boolean atom Terms, constructed
// once and reused wherever an encoder needs a boolean literal.
var (
	TermTrue  = NewAtom(TrueCodes)
	TermFalse = NewAtom(FalseCodes)
)

// BoolTerm maps a Go bool onto the canonical true/false atom Term.
func BoolTerm(b bool) *Term {
	if b {
		return TermTrue
	}
	return TermFalse
}
