package symterm

import (
	"math/big"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encodeFloat asserts flt(x, y): y = float(x), coercing an integer operand
// to its exact real-kind equivalent.
func encodeFloat(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	return assertValueResult(sess, "flt", cmd.A[1], func(m *solve.Model) (*term.Term, bool, error) {
		r, _, ok := numOf(m.Resolve(x))
		if !ok {
			return nil, false, nil
		}
		return term.NewReal(r), true, nil
	})
}

// encodeTrunc asserts trc(x, y): y = the integer part of x, truncated
// toward zero.
func encodeTrunc(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	return assertValueResult(sess, "trc", cmd.A[1], func(m *solve.Model) (*term.Term, bool, error) {
		r, _, ok := numOf(m.Resolve(x))
		if !ok {
			return nil, false, nil
		}
		q := new(big.Int).Quo(r.Num, r.Den)
		return term.NewInt(q), true, nil
	})
}

// encodeRound asserts rnd(x, y): y = x rounded to the nearest integer,
// ties rounding away from zero.
func encodeRound(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	return assertValueResult(sess, "rnd", cmd.A[1], func(m *solve.Model) (*term.Term, bool, error) {
		r, _, ok := numOf(m.Resolve(x))
		if !ok {
			return nil, false, nil
		}
		return term.NewInt(roundRational(r)), true, nil
	})
}

func roundRational(r term.Rational) *big.Int {
	num := new(big.Int).Set(r.Num)
	den := r.Den
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Mul(new(big.Int).Abs(rem), big.NewInt(2))
	if twice.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}
