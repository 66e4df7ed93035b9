package symterm

import (
	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// asBool reads t as a boolean atom.
func asBool(t *term.Term) (bool, bool) {
	if !t.IsBooleanAtom() {
		return false, false
	}
	return t.AtomVal.Equal(term.TrueCodes), true
}

// encodeOr asserts or(a, b, y): the strict (both-operands-evaluated)
// boolean disjunction.
func encodeOr(cmd wire.CommandJSON, sess *Session) error {
	return encodeLogicBinary(cmd, sess, "or", func(a, b bool) bool { return a || b })
}

// encodeAnd asserts and(a, b, y).
func encodeAnd(cmd wire.CommandJSON, sess *Session) error {
	return encodeLogicBinary(cmd, sess, "and", func(a, b bool) bool { return a && b })
}

// encodeXor asserts xor(a, b, y).
func encodeXor(cmd wire.CommandJSON, sess *Session) error {
	return encodeLogicBinary(cmd, sess, "xor", func(a, b bool) bool { return a != b })
}

// encodeOrElse asserts orelse(a, b, y): Erlang's short-circuiting or. Unlike
// "or", b is consulted only when a is false (_json_bif_orelse_to_z3,
// z3_utils.py:736-746): its three disjuncts are (t1=T,t3=T), (t1=F,t2=T,
// t3=T), (t1=F,t2=F,t3=F) — b is entirely unconstrained, not even required
// to be an atom, whenever a is true.
func encodeOrElse(cmd wire.CommandJSON, sess *Session) error {
	a, b, err := shortCircuitOperands(cmd, sess)
	if err != nil {
		return err
	}
	return assertBoolResult(sess, "orelse", cmd.A[2], false, func(m *solve.Model) (bool, error) {
		av, aok := asBool(m.Resolve(a))
		if !aok {
			return false, nil
		}
		if av {
			return true, nil
		}
		bv, bok := asBool(m.Resolve(b))
		if !bok {
			return false, nil
		}
		return bv, nil
	})
}

// encodeAndAlso asserts andalso(a, b, y): Erlang's short-circuiting and. b
// is consulted only when a is true (_json_bif_andalso_to_z3,
// z3_utils.py:749-759): its three disjuncts are (t1=T,t2=F,t3=F),
// (t1=T,t2=T,t3=T), (t1=F,t3=F) — b is entirely unconstrained whenever a is
// false.
func encodeAndAlso(cmd wire.CommandJSON, sess *Session) error {
	a, b, err := shortCircuitOperands(cmd, sess)
	if err != nil {
		return err
	}
	return assertBoolResult(sess, "andalso", cmd.A[2], false, func(m *solve.Model) (bool, error) {
		av, aok := asBool(m.Resolve(a))
		if !aok {
			return false, nil
		}
		if !av {
			return false, nil
		}
		bv, bok := asBool(m.Resolve(b))
		if !bok {
			return false, nil
		}
		return bv, nil
	})
}

// shortCircuitOperands resolves andalso/orelse's two operands without
// asserting b's kind: unlike the shared encodeLogicBinary, the short-circuit
// forms never require the unconsulted operand to be boolean (spec.md §4.3).
func shortCircuitOperands(cmd wire.CommandJSON, sess *Session) (a, b *solve.Var, err error) {
	if err := arity(cmd, 3); err != nil {
		return nil, nil, err
	}
	a, err = argVar(cmd, sess, 0)
	if err != nil {
		return nil, nil, err
	}
	b, err = argVar(cmd, sess, 1)
	if err != nil {
		return nil, nil, err
	}
	sess.solver.AssertKind(a, solve.KindAtom, false)
	touch(sess, a, b)
	return a, b, nil
}

func encodeLogicBinary(cmd wire.CommandJSON, sess *Session, describe string, op func(a, b bool) bool) error {
	if err := arity(cmd, 3); err != nil {
		return err
	}
	a, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	b, err := argVar(cmd, sess, 1)
	if err != nil {
		return err
	}
	sess.solver.AssertKind(a, solve.KindAtom, false)
	sess.solver.AssertKind(b, solve.KindAtom, false)
	touch(sess, a, b)
	// The logical connectives are BIF commands, not guards, and have no
	// entry in the original's reverse dispatch table; resolveEncoder never
	// routes a reversed command here, so there's no flag to read.
	return assertBoolResult(sess, describe, cmd.A[2], false, func(m *solve.Model) (bool, error) {
		av, ok1 := asBool(m.Resolve(a))
		bv, ok2 := asBool(m.Resolve(b))
		if !ok1 || !ok2 {
			return false, nil
		}
		return op(av, bv), nil
	})
}

// encodeNot asserts not(x, y): y = !x, defined only when x is boolean.
func encodeNot(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	sess.solver.AssertKind(x, solve.KindAtom, false)
	touch(sess, x)
	return assertBoolResult(sess, "not", cmd.A[1], false, func(m *solve.Model) (bool, error) {
		xv, ok := asBool(m.Resolve(x))
		if !ok {
			return false, nil
		}
		return !xv, nil
	})
}
