package symterm

import (
	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encodeIsAtom asserts isa(x, y): y = is_atom(x).
func encodeIsAtom(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "isa", func(t *term.Term) bool { return t.Kind == term.Atom })
}

// encodeIsBoolean asserts isb(x, y): y = is_boolean(x).
func encodeIsBoolean(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "isb", func(t *term.Term) bool { return t.IsBooleanAtom() })
}

// encodeIsFloat asserts isf(x, y): y = is_float(x).
func encodeIsFloat(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "isf", func(t *term.Term) bool { return t.Kind == term.Real })
}

// encodeIsInteger asserts isi(x, y): y = is_integer(x).
func encodeIsInteger(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "isi", func(t *term.Term) bool { return t.Kind == term.Int })
}

// encodeIsList asserts isl(x, y): y = is_list(x) (true for both nil and
// cons lists).
func encodeIsList(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "isl", func(t *term.Term) bool { return t.Kind == term.List })
}

// encodeIsNumber asserts isn(x, y): y = is_number(x) (integer or float).
func encodeIsNumber(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "isn", func(t *term.Term) bool {
		return t.Kind == term.Int || t.Kind == term.Real
	})
}

// encodeIsTuple asserts ist(x, y): y = is_tuple(x).
func encodeIsTuple(cmd wire.CommandJSON, sess *Session) error {
	return encodePredicate(cmd, sess, "ist", func(t *term.Term) bool { return t.Kind == term.Tuple })
}

func encodePredicate(cmd wire.CommandJSON, sess *Session, describe string, pred func(t *term.Term) bool) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	// The isX predicates are BIF commands with no entry in the original's
	// reverse dispatch table; resolveEncoder never routes a reversed
	// command here, so there's no flag to read.
	return assertBoolResult(sess, describe, cmd.A[1], false, func(m *solve.Model) (bool, error) {
		return pred(m.Resolve(x)), nil
	})
}
