package solve

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/gitrdm/symterm/pkg/term"
)

// Status is the three-way satisfiability verdict spec.md §7 requires:
// sat (a model was found), unsat (search was exhausted with no witness),
// or unknown (the search's bounded budget or a timeout was hit first).
type Status int

const (
	Unsat Status = iota
	Sat
	Unknown
)

func (st Status) String() string {
	switch st {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	default:
		return "?"
	}
}

type decisionOption struct {
	describe string
	apply    func() (undo func())
}

type decisionPoint struct {
	describe string
	options  []decisionOption
}

// Solve searches for a model satisfying every assertion registered so far.
// ctx and timeout bound the search (spec.md §5): on either expiring before a
// model or exhaustive failure is found, the verdict is Unknown, which the
// driver is expected to treat as equivalent to UNSAT (spec.md §7).
func (s *Solver) Solve(ctx context.Context, timeout time.Duration) (*Model, Status, error) {
	if s.eagerUnsat {
		return nil, Unsat, nil
	}

	cctx := ctx
	cancel := func() {}
	if timeout > 0 {
		cctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	decisions := s.buildDecisions()

	attempts := 0
	timedOut := false
	budgetExceeded := false

	var search func(idx int) (bool, error)
	search = func(idx int) (bool, error) {
		select {
		case <-cctx.Done():
			timedOut = true
			return false, nil
		default:
		}
		if idx == len(decisions) {
			attempts++
			if attempts > s.cfg.SearchBudget {
				budgetExceeded = true
				return false, nil
			}
			m := newModel(s)
			for _, a := range s.assertions {
				ok, err := a.verify(m)
				if err != nil {
					return false, fmt.Errorf("assertion %q: %w", a.describe, err)
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}
		for _, opt := range decisions[idx].options {
			undo := opt.apply()
			ok, err := search(idx + 1)
			if err != nil {
				undo()
				return false, err
			}
			if ok {
				return true, nil
			}
			undo()
			select {
			case <-cctx.Done():
				timedOut = true
				return false, nil
			default:
			}
		}
		return false, nil
	}

	ok, err := search(0)
	if err != nil {
		return nil, Unsat, err
	}
	if ok {
		return newModel(s), Sat, nil
	}
	if timedOut || budgetExceeded {
		return nil, Unknown, nil
	}
	return nil, Unsat, nil
}

func (s *Solver) buildDecisions() []decisionPoint {
	reserved := map[*Var]bool{}
	for _, ld := range s.lengthDecisions {
		reserved[find(ld.nVar)] = true
	}
	for _, md := range s.makeTupleDecisions {
		reserved[find(md.nVar)] = true
	}

	var decisions []decisionPoint
	seen := map[*Var]bool{}
	for _, v := range s.vars {
		root := find(v)
		if seen[root] {
			continue
		}
		seen[root] = true
		if root.literal != nil || root.structured || reserved[root] {
			continue
		}
		cands := genericCandidates(root, s.cfg)
		if len(cands) == 0 {
			continue
		}
		opts := make([]decisionOption, len(cands))
		for i, c := range cands {
			c := c
			opts[i] = decisionOption{
				describe: fmt.Sprintf("%s=%s", root.name, c.String()),
				apply: func() func() {
					root.assigned = c
					return func() { root.assigned = nil }
				},
			}
		}
		decisions = append(decisions, decisionPoint{describe: "var:" + root.name, options: opts})
	}

	for _, ld := range s.lengthDecisions {
		ld := ld
		target := find(ld.target)
		nVar := find(ld.nVar)
		alreadyForced := forcedPrefixLen(target.carrier)
		var opts []decisionOption
		for i := alreadyForced; i <= s.cfg.MaxLen+1; i++ {
			i := i
			opts = append(opts, decisionOption{
				describe: fmt.Sprintf("%s len=%d", ld.describe, i),
				apply: func() func() {
					ok, undo := extendTo(target.carrier, i)
					if !ok {
						return func() {}
					}
					nVar.assigned = term.NewIntFromInt64(int64(i))
					return func() {
						undo()
						nVar.assigned = nil
					}
				},
			})
		}
		decisions = append(decisions, decisionPoint{describe: ld.describe, options: opts})
	}

	for _, md := range s.makeTupleDecisions {
		md := md
		x := find(md.x)
		nVar := find(md.nVar)
		y := find(md.y)
		var opts []decisionOption
		for i := 0; i <= s.cfg.MaxLen; i++ {
			i := i
			opts = append(opts, decisionOption{
				describe: fmt.Sprintf("%s count=%d", md.describe, i),
				apply: func() func() {
					m := newModel(s)
					xv := m.Resolve(x)
					elems := make([]*term.Term, i)
					for j := range elems {
						elems[j] = xv
					}
					nVar.assigned = term.NewIntFromInt64(int64(i))
					y.assigned = term.NewTuple(term.FromSlice(elems))
					return func() {
						nVar.assigned = nil
						y.assigned = nil
					}
				},
			})
		}
		opts = append(opts, decisionOption{
			describe: md.describe + " count>MaxLen",
			apply: func() func() {
				nVar.assigned = term.NewIntFromInt64(int64(s.cfg.MaxLen + 1))
				return func() { nVar.assigned = nil }
			},
		})
		decisions = append(decisions, decisionPoint{describe: md.describe, options: opts})
	}

	return decisions
}

func forcedPrefixLen(n *listNode) int {
	count := 0
	cur := n
	for cur != nil && cur.resolved && !cur.isNil {
		count++
		cur = cur.tail
	}
	return count
}

// extendTo grows a carrier's forced-cons prefix to exactly want cells
// followed by nil. It refuses (ok=false) if the carrier is already
// permanently forced to a different, incompatible length.
func extendTo(n *listNode, want int) (ok bool, undo func()) {
	cur := n
	count := 0
	var touched []*listNode
	for cur.resolved && !cur.isNil {
		count++
		cur = cur.tail
	}
	if cur.resolved && cur.isNil {
		if want != count {
			return false, func() {}
		}
		return true, func() {}
	}
	if want < count {
		return false, func() {}
	}
	for count < want {
		cur.MarkCons()
		touched = append(touched, cur)
		cur = cur.tail
		count++
	}
	cur.MarkNil()
	touched = append(touched, cur)
	return true, func() {
		for _, t := range touched {
			t.resolved = false
			t.isNil = false
		}
	}
}

// genericCandidates produces a small, representative set of concrete Terms
// for a leaf decision variable, respecting whatever kind/range/sign
// refinements were accumulated for it.
func genericCandidates(root *Var, cfg Config) []*term.Term {
	var out []*term.Term
	for _, k := range root.kinds.Kinds() {
		switch k {
		case term.Int:
			out = append(out, intCandidates(root, cfg.IntWindow)...)
		case term.Real:
			out = append(out, realCandidates(root)...)
		case term.Atom:
			out = append(out, term.TermTrue, term.TermFalse, term.NewAtom(term.ANil()))
		case term.List:
			out = append(out, term.NewList(term.Nil()))
		case term.Tuple:
			out = append(out, term.NewTuple(term.Nil()))
		}
	}
	return out
}

func intCandidates(root *Var, window int64) []*term.Term {
	lo, hi := root.intLo, root.intHi
	var raw []*big.Int

	if lo != nil && hi != nil {
		diff := new(big.Int).Sub(hi, lo)
		if diff.Cmp(big.NewInt(500)) <= 0 {
			cur := new(big.Int).Set(lo)
			for cur.Cmp(hi) <= 0 {
				raw = append(raw, new(big.Int).Set(cur))
				cur.Add(cur, big.NewInt(1))
			}
		}
	}
	if raw == nil {
		center := big.NewInt(0)
		if lo != nil {
			center = lo
		} else if hi != nil {
			center = hi
		}
		seenVals := map[string]bool{}
		for d := int64(0); d <= window; d++ {
			for _, sign := range []int64{1, -1} {
				if d == 0 && sign < 0 {
					continue
				}
				v := new(big.Int).Add(center, big.NewInt(d*sign))
				if lo != nil && v.Cmp(lo) < 0 {
					continue
				}
				if hi != nil && v.Cmp(hi) > 0 {
					continue
				}
				key := v.String()
				if seenVals[key] {
					continue
				}
				seenVals[key] = true
				raw = append(raw, v)
			}
		}
	}

	var out []*term.Term
	for _, v := range raw {
		switch root.sign {
		case SignPositive:
			if v.Sign() <= 0 {
				continue
			}
		case SignNegative:
			if v.Sign() >= 0 {
				continue
			}
		case SignNonNegative:
			if v.Sign() < 0 {
				continue
			}
		}
		out = append(out, term.NewInt(v))
	}
	return out
}

func realCandidates(root *Var) []*term.Term {
	raw := []term.Rational{
		term.RationalFromInt64(0, 1),
		term.RationalFromInt64(1, 1),
		term.RationalFromInt64(-1, 1),
		term.RationalFromInt64(1, 2),
		term.RationalFromInt64(-1, 2),
		term.RationalFromInt64(2, 1),
		term.RationalFromInt64(-2, 1),
	}
	var out []*term.Term
	for _, r := range raw {
		switch root.sign {
		case SignPositive:
			if !r.IsPositive() {
				continue
			}
		case SignNegative:
			if !r.IsNegative() {
				continue
			}
		case SignNonNegative:
			if r.IsNegative() {
				continue
			}
		}
		out = append(out, term.NewReal(r))
	}
	return out
}
