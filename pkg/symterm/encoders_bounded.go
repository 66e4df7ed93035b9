package symterm

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encodeLength asserts len(x, y): y is the length of the list x. x's
// length is otherwise unbounded, so this registers one of the bounded
// search's length decisions rather than an eager assertion.
func encodeLength(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	y, err := argVar(cmd, sess, 1)
	if err != nil {
		return err
	}
	touch(sess, x, y)
	sess.solver.AssertKind(x, solve.KindList, false)
	sess.solver.AssertKind(y, solve.KindInt, false)
	sess.solver.AssertSign(y, solve.SignNonNegative)
	sess.solver.RegisterLengthDecision("len", x, y)
	return nil
}

// encodeTupleSize asserts tpls(x, y): y is the arity of the tuple x.
func encodeTupleSize(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	y, err := argVar(cmd, sess, 1)
	if err != nil {
		return err
	}
	touch(sess, x, y)
	sess.solver.AssertKind(x, solve.KindTuple, false)
	sess.solver.AssertKind(y, solve.KindInt, false)
	sess.solver.AssertSign(y, solve.SignNonNegative)
	sess.solver.RegisterLengthDecision("tpls", x, y)
	return nil
}

// encodeMakeTuple asserts mtpl(x, n, y): y is a tuple of arity n whose
// every element equals x. n may itself be an unconstrained variable, so
// this is the other bounded decision point (spec.md §4.4).
func encodeMakeTuple(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 3); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	n, err := argVar(cmd, sess, 1)
	if err != nil {
		return err
	}
	y, err := argVar(cmd, sess, 2)
	if err != nil {
		return err
	}
	touch(sess, x, n, y)
	sess.solver.AssertKind(n, solve.KindInt, false)
	sess.solver.AssertSign(n, solve.SignNonNegative)
	sess.solver.AssertKind(y, solve.KindTuple, false)
	sess.solver.RegisterMakeTupleDecision("mtpl", x, n, y)
	return nil
}

// encodeBreakTuple asserts Bkt(x, e1, ..., en): x is a tuple of exactly
// arity n whose elements are e1..en, in order (spec.md §4.4's bounded
// structural decomposition).
func encodeBreakTuple(cmd wire.CommandJSON, sess *Session) error {
	return encodeBreak(cmd, sess, solve.KindTuple)
}

// encodeBreakList asserts Bkl(x, e1, ..., en): x is a list of exactly
// length n whose elements are e1..en, in order.
func encodeBreakList(cmd wire.CommandJSON, sess *Session) error {
	return encodeBreak(cmd, sess, solve.KindList)
}

func encodeBreak(cmd wire.CommandJSON, sess *Session, kind solve.KindSet) error {
	if len(cmd.A) < 1 {
		return fmt.Errorf("%w: %s expects at least a subject argument", ErrProtocol, cmd.C)
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	elems := make([]*solve.Var, len(cmd.A)-1)
	var result *multierror.Error
	for i := 1; i < len(cmd.A); i++ {
		ev, err := sess.codec.EncodeToVar(cmd.A[i])
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		elems[i-1] = ev
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	touch(sess, x)
	touch(sess, elems...)
	sess.solver.BindExactList(x, kind, elems)
	return nil
}
