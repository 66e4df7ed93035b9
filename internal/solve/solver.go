package solve

import (
	"fmt"
	"math/big"

	"github.com/gitrdm/symterm/pkg/term"
)

// Config holds the session-wide constants spec.md §3.3 requires: the
// bounded-encoding cap (MaxLen), how wide a window the search should try
// for an otherwise-unbounded integer decision variable, and the search's
// candidate budget.
type Config struct {
	MaxLen       int
	IntWindow    int64 // half-width of the default integer candidate window
	SearchBudget int   // max number of full-assignment attempts before reporting unknown
}

// DefaultConfig mirrors spec.md §3.3's default MaxLen of 100.
func DefaultConfig() Config {
	return Config{MaxLen: 100, IntWindow: 8, SearchBudget: 200000}
}

type lengthDecisionSpec struct {
	describe string
	target   *Var // the list/tuple variable whose carrier may be extended
	nVar     *Var // the variable bound to its length
}

type makeTupleDecisionSpec struct {
	describe string
	x        *Var // element repeated
	nVar     *Var // repeat count
	y        *Var // result tuple
}

type assertion struct {
	describe string
	verify   func(m *Model) (bool, error)
}

// Solver is the constraint store for one session: every Var it creates,
// every assertion registered against them, and the handful of
// bounded-operation decision points that need explicit search support
// (length/tuple_size/make_tuple with a free result variable).
type Solver struct {
	cfg Config

	vars   []*Var
	nextID int

	assertions []assertion

	lengthDecisions    []lengthDecisionSpec
	makeTupleDecisions []makeTupleDecisionSpec

	eagerUnsat  bool
	eagerReason string
}

// NewSolver creates an empty constraint store.
func NewSolver(cfg Config) *Solver {
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = 100
	}
	if cfg.IntWindow <= 0 {
		cfg.IntWindow = 8
	}
	if cfg.SearchBudget <= 0 {
		cfg.SearchBudget = 200000
	}
	return &Solver{cfg: cfg}
}

// MaxLen returns the session's bounded-recursion cap.
func (s *Solver) MaxLen() int { return s.cfg.MaxLen }

// NewVar allocates a fresh, fully unconstrained Term-sort variable. name is
// the symbolic name it was created for, if any (used only for diagnostics).
func (s *Solver) NewVar(name string) *Var {
	s.nextID++
	v := &Var{id: s.nextID, name: name, kinds: KindAll}
	s.vars = append(s.vars, v)
	return v
}

func (s *Solver) markEagerUnsat(reason string) {
	if !s.eagerUnsat {
		s.eagerUnsat = true
		s.eagerReason = reason
	}
}

// Unify asserts that a and b denote the same Term, merging their union-find
// classes and reconciling every accumulated fact about each.
func (s *Solver) Unify(a, b *Var) {
	ra, rb := find(a), find(b)
	if ra == rb {
		return
	}
	// Merge rb into ra.
	rb.parent = ra

	ra.touched = true
	ra.kinds &= rb.kinds
	if ra.kinds.Empty() {
		s.markEagerUnsat(fmt.Sprintf("no kind left in common for %s and %s", ra.name, rb.name))
	}

	switch {
	case ra.literal != nil && rb.literal != nil:
		if !ra.literal.Equal(rb.literal) {
			s.markEagerUnsat("conflicting literal bindings unified together")
		}
	case rb.literal != nil:
		ra.literal = rb.literal
	}

	ra.intLo = tighterLo(ra.intLo, rb.intLo)
	ra.intHi = tighterHi(ra.intHi, rb.intHi)
	if ra.intLo != nil && ra.intHi != nil && ra.intLo.Cmp(ra.intHi) > 0 {
		s.markEagerUnsat("integer bounds became empty after unification")
	}

	if combined, ok := combineSign(ra.sign, rb.sign); ok {
		ra.sign = combined
	} else {
		s.markEagerUnsat("conflicting sign refinements unified together")
	}

	if rb.structured && !ra.structured {
		ra.structured = true
		ra.carrier = rb.carrier
	} else if rb.structured && ra.structured && ra.carrier != rb.carrier {
		s.unifyCarriers(ra.carrier, rb.carrier)
	}

	if ra.assigned == nil {
		ra.assigned = rb.assigned
	}
}

func (s *Solver) unifyCarriers(a, b *listNode) {
	if a == nil || b == nil {
		return
	}
	switch {
	case a.resolved && b.resolved:
		if a.isNil != b.isNil {
			s.markEagerUnsat("unified lists disagree on nil/cons shape")
			return
		}
		if !a.isNil {
			s.Unify(a.Head(), b.Head())
			s.unifyCarriers(a.Tail(), b.Tail())
		}
	case a.resolved && !b.resolved:
		if a.isNil {
			b.MarkNil()
		} else {
			b.MarkCons()
			s.Unify(a.Head(), b.Head())
			s.unifyCarriers(a.Tail(), b.Tail())
		}
	case b.resolved && !a.resolved:
		s.unifyCarriers(b, a)
	default:
		// Both still entirely open: nothing to reconcile yet. They will
		// each default-terminate independently, which is consistent
		// (nil is always a legal witness for an untouched tail).
	}
}

func tighterLo(a, b *big.Int) *big.Int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Cmp(b) >= 0:
		return a
	default:
		return b
	}
}

func tighterHi(a, b *big.Int) *big.Int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Cmp(b) <= 0:
		return a
	default:
		return b
	}
}

func combineSign(a, b Sign) (Sign, bool) {
	if a == SignAny {
		return b, true
	}
	if b == SignAny {
		return a, true
	}
	if a == b {
		return a, true
	}
	// Positive implies non-negative; the stricter of the two survives.
	if (a == SignPositive && b == SignNonNegative) || (b == SignPositive && a == SignNonNegative) {
		return SignPositive, true
	}
	return 0, false
}

// AssertKind narrows (or, if negate, excludes) the set of Term kinds v may
// take.
func (s *Solver) AssertKind(v *Var, mask KindSet, negate bool) {
	root := find(v)
	root.touched = true
	if negate {
		root.kinds &^= mask
	} else {
		root.kinds &= mask
	}
	if root.literal != nil && !root.kinds.Has(KindOf(root.literal.Kind)) {
		s.markEagerUnsat("kind assertion excludes an already-bound literal")
	}
	if root.kinds.Empty() {
		s.markEagerUnsat(fmt.Sprintf("no kind left possible for variable %q", root.name))
	}
}

// AssertLiteral forces v to equal a ground, fully concrete term.
func (s *Solver) AssertLiteral(v *Var, lit *term.Term) {
	root := find(v)
	root.touched = true
	if root.literal != nil {
		if !root.literal.Equal(lit) {
			s.markEagerUnsat("conflicting literal assertions on the same variable")
		}
		return
	}
	if !root.kinds.Has(KindOf(lit.Kind)) {
		s.markEagerUnsat("literal assertion contradicts the variable's kind domain")
		return
	}
	root.literal = lit
	root.kinds = KindOf(lit.Kind)
}

// AssertIntRange narrows v's admissible integer range to [lo, hi] (either
// bound may be nil for unbounded).
func (s *Solver) AssertIntRange(v *Var, lo, hi *big.Int) {
	root := find(v)
	root.touched = true
	root.intLo = tighterLo(root.intLo, lo)
	root.intHi = tighterHi(root.intHi, hi)
	if root.intLo != nil && root.intHi != nil && root.intLo.Cmp(root.intHi) > 0 {
		s.markEagerUnsat("integer range assertion is empty")
	}
	s.Assert("integer range", func(m *Model) (bool, error) {
		t := m.Resolve(v)
		if t.Kind != term.Int {
			return true, nil
		}
		return (lo == nil || t.IntVal.Cmp(lo) >= 0) && (hi == nil || t.IntVal.Cmp(hi) <= 0), nil
	})
}

// AssertSign narrows v's admissible integer sign.
func (s *Solver) AssertSign(v *Var, sign Sign) {
	root := find(v)
	root.touched = true
	if combined, ok := combineSign(root.sign, sign); ok {
		root.sign = combined
	} else {
		s.markEagerUnsat("sign assertion conflicts with an earlier one")
	}
}

// Carrier returns v's list/tuple structural carrier, creating it (and
// marking v structured) on first use.
func (s *Solver) Carrier(v *Var) *listNode {
	root := find(v)
	root.touched = true
	root.structured = true
	if root.carrier == nil {
		root.carrier = newListNode(s)
	}
	return root.carrier
}

// Assert registers a ground-truth verifier closure: a candidate model is
// only accepted once every registered closure accepts it. describe exists
// purely for diagnostics.
func (s *Solver) Assert(describe string, verify func(m *Model) (bool, error)) {
	s.assertions = append(s.assertions, assertion{describe: describe, verify: verify})
}

// RegisterLengthDecision records that nVar's value, if left free by
// everything else, should be searched for by extending target's carrier to
// matching lengths (spec.md §4.4, length/tuple_size).
func (s *Solver) RegisterLengthDecision(describe string, target, nVar *Var) {
	s.Carrier(target)
	s.lengthDecisions = append(s.lengthDecisions, lengthDecisionSpec{describe: describe, target: target, nVar: nVar})
	s.Assert(describe, func(m *Model) (bool, error) {
		t, n := m.Resolve(target), m.Resolve(nVar)
		if (t.Kind != term.List && t.Kind != term.Tuple) || n.Kind != term.Int {
			return false, nil
		}
		l := big.NewInt(int64(t.ListVal.Len()))
		if l.Cmp(big.NewInt(int64(s.cfg.MaxLen))) > 0 {
			return n.IntVal.Cmp(l) >= 0, nil
		}
		return n.IntVal.Cmp(l) == 0, nil
	})
}

// RegisterMakeTupleDecision records a make_tuple(x, n, y) bounded
// encoding's decision point (spec.md §4.4).
func (s *Solver) RegisterMakeTupleDecision(describe string, x, nVar, y *Var) {
	s.makeTupleDecisions = append(s.makeTupleDecisions, makeTupleDecisionSpec{describe: describe, x: x, nVar: nVar, y: y})
	s.Assert(describe, func(m *Model) (bool, error) {
		n := m.Resolve(nVar)
		if n.Kind != term.Int || n.IntVal.Sign() < 0 {
			return false, nil
		}
		if n.IntVal.Cmp(big.NewInt(int64(s.cfg.MaxLen))) > 0 {
			return true, nil
		}
		want := make([]*term.Term, n.IntVal.Int64())
		for i := range want {
			want[i] = m.Resolve(x)
		}
		return m.Resolve(y).Equal(term.NewTuple(term.FromSlice(want))), nil
	})
}

// varForCarrier wraps an existing listNode as its own Term-sort variable,
// sharing the chain rather than copying it. Used to turn "the rest of a
// list past position i" into a first-class Var, as tl(x, y) requires.
func (s *Solver) varForCarrier(n *listNode, kind KindSet) *Var {
	s.nextID++
	v := &Var{id: s.nextID, kinds: kind, structured: true, carrier: n}
	s.vars = append(s.vars, v)
	return v
}

// CarrierAsKind wraps v's own structural carrier as a fresh variable of a
// different kind, sharing the same underlying cons chain rather than
// copying it. Used by list_to_tuple/tuple_to_list, where the source and
// result share every element and every future length decision despite
// having different outer kinds.
func (s *Solver) CarrierAsKind(v *Var, kind KindSet) *Var {
	carrier := s.Carrier(v)
	return s.varForCarrier(carrier, kind)
}

// BindExactLength forces v to be of the given kind with an inner list of
// exactly n cons cells terminated by nil, returning the n freshly created
// element variables in order. Used by Ts, Bkt, Bkl, and the Type-Spec
// Binder's tuple{elems} case.
func (s *Solver) BindExactLength(v *Var, kind KindSet, n int) []*Var {
	s.AssertKind(v, kind, false)
	node := s.Carrier(v)
	return node.ExactLen(n)
}

// BindExactList forces v to be of the given kind with an inner list whose
// elements are exactly elems, in order. Used when the interchange payload
// supplies the elements directly (a concrete List/Tuple term, or Bkt/Bkl).
func (s *Solver) BindExactList(v *Var, kind KindSet, elems []*Var) {
	cells := s.BindExactLength(v, kind, len(elems))
	for i, e := range elems {
		s.Unify(cells[i], e)
	}
}

// ElementAt forces v to be of the given kind with at least index cons
// cells (index is 1-based, matching the source language's tuple element
// BIF), without constraining the total length, and returns the variable
// bound to the index-th element. Used by elm/i.
func (s *Solver) ElementAt(v *Var, kind KindSet, index int) *Var {
	s.AssertKind(v, kind, false)
	node := s.Carrier(v)
	for i := 1; i < index; i++ {
		node.MarkCons()
		node = node.Tail()
	}
	node.MarkCons()
	return node.Head()
}

// MarkTouched records that v was used as an operand or result somewhere,
// even by an encoder that only registers a verifier closure rather than
// calling one of the eager Assert* methods. The Solution Extractor reports
// "any" only for a variable nothing ever marked touched (spec.md §4.6).
func (s *Solver) MarkTouched(v *Var) { find(v).touched = true }

// PeekElementAt is ElementAt's non-committal counterpart: it ensures v's
// index-th (1-based) element variable exists and narrows v to kind, but
// does not mark any position as a cons cell. Used to pre-create element
// variables for a bounded-but-not-yet-length-decided list/tuple, so the
// search's generic decision pass can assign them values independently of
// whatever length a separate length decision eventually settles on.
func (s *Solver) PeekElementAt(v *Var, kind KindSet, index int) *Var {
	s.AssertKind(v, kind, false)
	node := s.Carrier(v)
	for i := 1; i < index; i++ {
		node = node.Tail()
	}
	return node.Head()
}

// HeadTail forces v to be a non-empty list and returns its head element
// variable and a variable for its tail-as-a-list (sharing the same
// underlying chain, not a copy), for hd/tl and Nel.
func (s *Solver) HeadTail(v *Var) (head, tail *Var) {
	s.AssertKind(v, KindList, false)
	node := s.Carrier(v)
	node.MarkCons()
	return node.Head(), s.varForCarrier(node.Tail(), KindList)
}
