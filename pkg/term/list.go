package term

import "strings"

// Cons is the shared cons-list carrier for both List- and Tuple-kind Terms,
// mirroring the source theory's single List sort: nil, or cons(head, tail).
// A nil Cons pointer is never used as "empty" on its own; use Nil() so
// IsNil() has a value to inspect even at the head of an otherwise-empty
// chain.
type Cons struct {
	Nil  bool
	Head *Term
	Tail *Cons
}

// Nil constructs the empty list/tuple carrier.
func Nil() *Cons { return &Cons{Nil: true} }

// NewCons prepends head onto tail.
func NewCons(head *Term, tail *Cons) *Cons {
	if tail == nil {
		tail = Nil()
	}
	return &Cons{Head: head, Tail: tail}
}

// FromSlice builds a proper-list carrier from a slice of elements, in order.
func FromSlice(elems []*Term) *Cons {
	c := Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		c = NewCons(elems[i], c)
	}
	return c
}

// ToSlice flattens a proper-list carrier into a slice. ok is false if the
// chain is not nil-terminated (an improper list), which cannot arise from
// this theory's constructors but is checked defensively.
func (c *Cons) ToSlice() (elems []*Term, ok bool) {
	cur := c
	for {
		if cur == nil {
			return elems, false
		}
		if cur.Nil {
			return elems, true
		}
		elems = append(elems, cur.Head)
		cur = cur.Tail
	}
}

// Len returns the number of cons cells up to the first nil terminator (or
// up to a nil pointer, for an improper chain; ToSlice reports that case).
func (c *Cons) Len() int {
	n := 0
	cur := c
	for cur != nil && !cur.Nil {
		n++
		cur = cur.Tail
	}
	return n
}

// Equal reports whether two carriers hold structurally identical elements
// in the same order and length.
func (c *Cons) Equal(other *Cons) bool {
	a, b := c, other
	for {
		if a == nil || b == nil {
			return a == b
		}
		if a.Nil != b.Nil {
			return false
		}
		if a.Nil {
			return true
		}
		if !a.Head.Equal(b.Head) {
			return false
		}
		a, b = a.Tail, b.Tail
	}
}

// String renders comma-separated elements, e.g. "1,2,3" (callers wrap with
// the appropriate [ ] or { } delimiters for List/Tuple).
func (c *Cons) String() string {
	var sb strings.Builder
	cur := c
	first := true
	for cur != nil && !cur.Nil {
		if !first {
			sb.WriteString(",")
		}
		sb.WriteString(cur.Head.String())
		first = false
		cur = cur.Tail
	}
	return sb.String()
}
