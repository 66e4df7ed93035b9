package solve

import (
	"github.com/gitrdm/symterm/pkg/term"
)

// Model resolves solver variables into concrete Terms. It is built once a
// search has pinned down every decision variable, and is also used
// mid-search (via the assertions' verifier closures) against a tentative,
// partially-pinned state — any variable not yet decided resolves to a
// deterministic default, which is always a legal witness because nothing
// else in the store constrains an untouched variable by definition.
type Model struct {
	s     *Solver
	cache map[*Var]*term.Term
}

func newModel(s *Solver) *Model {
	return &Model{s: s, cache: make(map[*Var]*term.Term)}
}

// Resolve returns the concrete Term value v currently stands for, applying
// defaults for anything the search left undetermined.
func (m *Model) Resolve(v *Var) *term.Term {
	root := find(v)
	if t, ok := m.cache[root]; ok {
		return t
	}
	// Guard against accidental recursion through a self-referential
	// structure by seeding the cache with a placeholder before recursing.
	placeholder := &term.Term{}
	m.cache[root] = placeholder
	t := m.resolveRoot(root)
	*placeholder = *t
	m.cache[root] = t
	return t
}

func (m *Model) resolveRoot(root *Var) *term.Term {
	if root.literal != nil {
		return root.literal
	}
	if root.assigned != nil {
		return root.assigned
	}
	if root.structured {
		return m.resolveStructured(root)
	}
	return defaultForKinds(root.kinds)
}

func (m *Model) resolveStructured(root *Var) *term.Term {
	kind := term.List
	if k, ok := root.kinds.Single(); ok && k == KindTuple {
		kind = term.Tuple
	}
	cons := m.resolveListNode(root.carrier)
	if kind == term.Tuple {
		return term.NewTuple(cons)
	}
	return term.NewList(cons)
}

func (m *Model) resolveListNode(n *listNode) *term.Cons {
	if n == nil {
		return term.Nil()
	}
	if n.resolved && n.isNil {
		return term.Nil()
	}
	if n.resolved && !n.isNil {
		head := m.Resolve(n.head)
		tail := m.resolveListNode(n.tail)
		return term.NewCons(head, tail)
	}
	// Never forced either way: any length at or beyond what's already
	// forced is a valid witness, so terminate here.
	return term.Nil()
}

// IsTouched reports whether v was ever the target of an Assert* call, a
// Carrier/structural use, MarkTouched, or a Unify — as opposed to a
// parameter declared and never otherwise constrained, which the Solution
// Extractor reports with the "any" sentinel (spec.md §4.6).
func (m *Model) IsTouched(v *Var) bool { return find(v).touched }

// defaultForKinds produces a representative concrete value for a variable
// that was created but never meaningfully constrained. The choice is
// arbitrary but must be a member of the allowed kind set.
func defaultForKinds(ks KindSet) *term.Term {
	switch {
	case ks.Has(KindInt):
		return term.NewIntFromInt64(0)
	case ks.Has(KindReal):
		return term.NewReal(term.RationalFromInt64(0, 1))
	case ks.Has(KindAtom):
		return term.NewAtom(term.ANil())
	case ks.Has(KindList):
		return term.NewList(term.Nil())
	case ks.Has(KindTuple):
		return term.NewTuple(term.Nil())
	default:
		// Contradictory domain; search should have already rejected this
		// branch. Return something well-formed rather than panic.
		return term.NewIntFromInt64(0)
	}
}
