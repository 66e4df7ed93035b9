package symterm

import (
	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encodeEq asserts Eq(a, b): a and b denote the same term. This is eager
// union-find merging, not a verifier closure, so equality propagates
// immediately into every other fact already known about either side.
// Reversed Eq dispatches to encodeNeq instead (reverseDispatchTable).
func encodeEq(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
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
	sess.solver.Unify(a, b)
	return nil
}

// encodeNeq asserts Neq(a, b): a and b denote different terms. Reversed Neq
// dispatches to encodeEq instead (reverseDispatchTable).
func encodeNeq(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
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
	return assertDisequal(sess, a, b)
}

func assertDisequal(sess *Session, a, b *solve.Var) error {
	sess.solver.Assert("disequal", func(m *solve.Model) (bool, error) {
		return !m.Resolve(a).Equal(m.Resolve(b)), nil
	})
	return nil
}

// encodeT asserts T(x): x is the canonical true atom. Reversed T dispatches
// to encodeF instead (reverseDispatchTable).
func encodeT(cmd wire.CommandJSON, sess *Session) error {
	return encodeBoolLiteral(cmd, sess, true)
}

// encodeF asserts F(x): x is the canonical false atom. Reversed F
// dispatches to encodeT instead (reverseDispatchTable).
func encodeF(cmd wire.CommandJSON, sess *Session) error {
	return encodeBoolLiteral(cmd, sess, false)
}

func encodeBoolLiteral(cmd wire.CommandJSON, sess *Session, want bool) error {
	if err := arity(cmd, 1); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.AssertLiteral(x, term.BoolTerm(want))
	return nil
}
