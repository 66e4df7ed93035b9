package solve

import "fmt"

// listNode is one position in a list/tuple carrier's cons chain. Structural
// commands (Nel, El, hd, tl, Ts, Bkt, Bkl, the bounded list binder, …) touch
// a chain of these instead of a single opaque length, so that partial
// structure asserted from different commands composes deterministically
// without a generic backtracking search over lengths (see SPEC_FULL.md §9).
type listNode struct {
	s *Solver

	resolved bool // true once this position is known to be nil or cons
	isNil    bool // valid only when resolved

	head *Var      // element variable, created lazily
	tail *listNode // next position, created lazily
}

func newListNode(s *Solver) *listNode {
	return &listNode{s: s}
}

// Head returns this position's element variable, creating it on first use.
func (n *listNode) Head() *Var {
	if n.head == nil {
		n.head = n.s.NewVar("")
	}
	return n.head
}

// Tail returns the next position in the chain, creating it on first use.
func (n *listNode) Tail() *listNode {
	if n.tail == nil {
		n.tail = newListNode(n.s)
	}
	return n.tail
}

// MarkNil asserts that this position terminates the chain. If this position
// was already forced to be a cons cell, it eagerly marks the solver UNSAT
// instead (not a protocol/internal error); nothing is returned.
func (n *listNode) MarkNil() {
	if n.resolved && !n.isNil {
		n.s.markEagerUnsat(fmt.Sprintf("list position already forced to cons, cannot also be nil"))
		return
	}
	n.resolved = true
	n.isNil = true
}

// MarkCons asserts that this position holds an element and continues,
// creating its head/tail if needed.
func (n *listNode) MarkCons() {
	if n.resolved && n.isNil {
		n.s.markEagerUnsat(fmt.Sprintf("list position already forced to nil, cannot also be cons"))
		return
	}
	n.resolved = true
	n.isNil = false
	n.Head()
	n.Tail()
}

// ExactLen walks the chain marking exactly n cons cells followed by nil,
// returning the n element variables in order. Used by Ts, Bkt, Bkl.
func (n *listNode) ExactLen(count int) []*Var {
	cur := n
	elems := make([]*Var, 0, count)
	for i := 0; i < count; i++ {
		cur.MarkCons()
		elems = append(elems, cur.head)
		cur = cur.tail
	}
	cur.MarkNil()
	return elems
}
