package symterm

import (
	"math/big"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// numOf reads t as a number, reporting whether it's real-kind (as opposed
// to int-kind) and whether it was a number at all.
func numOf(t *term.Term) (r term.Rational, isReal bool, ok bool) {
	switch t.Kind {
	case term.Int:
		return term.RationalFromInt(t.IntVal), false, true
	case term.Real:
		return t.RealVal, true, true
	default:
		return term.Rational{}, false, false
	}
}

func numResult(r term.Rational, isReal bool) *term.Term {
	if isReal {
		return term.NewReal(r)
	}
	return term.NewInt(r.Num)
}

// encodeAdd asserts +(a, b, y).
func encodeAdd(cmd wire.CommandJSON, sess *Session) error {
	return encodeArith(cmd, sess, "+", func(a, b term.Rational) term.Rational { return a.Add(b) })
}

// encodeSub asserts -(a, b, y).
func encodeSub(cmd wire.CommandJSON, sess *Session) error {
	return encodeArith(cmd, sess, "-", func(a, b term.Rational) term.Rational { return a.Sub(b) })
}

// encodeMul asserts *(a, b, y).
func encodeMul(cmd wire.CommandJSON, sess *Session) error {
	return encodeArith(cmd, sess, "*", func(a, b term.Rational) term.Rational { return a.Mul(b) })
}

func encodeArith(cmd wire.CommandJSON, sess *Session, describe string, op func(a, b term.Rational) term.Rational) error {
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
	touch(sess, a, b)
	return assertValueResult(sess, describe, cmd.A[2], func(m *solve.Model) (*term.Term, bool, error) {
		ar, aReal, ok1 := numOf(m.Resolve(a))
		br, bReal, ok2 := numOf(m.Resolve(b))
		if !ok1 || !ok2 {
			return nil, false, nil
		}
		return numResult(op(ar, br), aReal || bReal), true, nil
	})
}

// encodeFDiv asserts /(a, b, y): float division, always producing a real
// result even when both operands are integers.
func encodeFDiv(cmd wire.CommandJSON, sess *Session) error {
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
	touch(sess, a, b)
	return assertValueResult(sess, "/", cmd.A[2], func(m *solve.Model) (*term.Term, bool, error) {
		ar, _, ok1 := numOf(m.Resolve(a))
		br, _, ok2 := numOf(m.Resolve(b))
		if !ok1 || !ok2 || br.IsZero() {
			return nil, false, nil
		}
		return term.NewReal(ar.Div(br)), true, nil
	})
}

// encodeIntDiv asserts div(a, b, y): truncating integer division, defined
// only when both operands are integers and b is non-zero.
func encodeIntDiv(cmd wire.CommandJSON, sess *Session) error {
	return encodeIntArith(cmd, sess, "div", func(a, b *big.Int) (*big.Int, bool) {
		if b.Sign() == 0 {
			return nil, false
		}
		return new(big.Int).Quo(a, b), true
	})
}

// encodeRem asserts rem(a, b, y): integer remainder with the sign of a,
// defined only when both operands are integers and b is non-zero.
func encodeRem(cmd wire.CommandJSON, sess *Session) error {
	return encodeIntArith(cmd, sess, "rem", func(a, b *big.Int) (*big.Int, bool) {
		if b.Sign() == 0 {
			return nil, false
		}
		return new(big.Int).Rem(a, b), true
	})
}

func encodeIntArith(cmd wire.CommandJSON, sess *Session, describe string, op func(a, b *big.Int) (*big.Int, bool)) error {
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
	sess.solver.AssertKind(a, solve.KindInt, false)
	sess.solver.AssertKind(b, solve.KindInt, false)
	touch(sess, a, b)
	return assertValueResult(sess, describe, cmd.A[2], func(m *solve.Model) (*term.Term, bool, error) {
		av, bv := m.Resolve(a), m.Resolve(b)
		if av.Kind != term.Int || bv.Kind != term.Int {
			return nil, false, nil
		}
		res, ok := op(av.IntVal, bv.IntVal)
		if !ok {
			return nil, false, nil
		}
		return term.NewInt(res), true, nil
	})
}

// encodeAbs asserts abs(x, y): y = |x|, preserving int vs real kind.
func encodeAbs(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	return assertValueResult(sess, "abs", cmd.A[1], func(m *solve.Model) (*term.Term, bool, error) {
		r, isReal, ok := numOf(m.Resolve(x))
		if !ok {
			return nil, false, nil
		}
		if r.IsNegative() {
			r = r.Neg()
		}
		return numResult(r, isReal), true, nil
	})
}
