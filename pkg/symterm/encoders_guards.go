package symterm

import (
	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encodeNel asserts Nel(x): x is a non-empty list.
func encodeNel(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 1); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.HeadTail(x)
	return nil
}

// encodeEl asserts El(x): x is the empty list.
func encodeEl(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 1); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.AssertKind(x, solve.KindList, false)
	sess.solver.Carrier(x).MarkNil()
	return nil
}

// encodeNl asserts Nl(x): x is not a list at all (so also not the empty
// list).
func encodeNl(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 1); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.AssertKind(x, solve.KindList, true)
	return nil
}

// encodeNt asserts Nt(x, _): x is not a tuple. The second argument, which
// the reversed form (Ts) reads as an arity, is accepted and ignored; a
// one-argument Nt(x) is accepted as well.
func encodeNt(cmd wire.CommandJSON, sess *Session) error {
	if len(cmd.A) != 2 {
		if err := arity(cmd, 1); err != nil {
			return err
		}
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.AssertKind(x, solve.KindTuple, true)
	return nil
}

// encodeTs asserts Ts(x, n): x is a tuple of exactly arity n.
func encodeTs(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	n, err := DecodeLiteralInt(cmd.A[1])
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.BindExactLength(x, solve.KindTuple, n)
	return nil
}

// encodeNelReversed asserts the reverse of Nel(x): x is not a non-empty
// list, i.e. x is either not a list at all, or the empty list. This is the
// original's _json_rev_cmd_nel_to_z3: Not(is_lst(x) And is_cons(lval(x))),
// which is a genuine logical negation of Nel's own conjunction (unlike El's
// and Nl's reversals, which substitute a different handler entirely).
func encodeNelReversed(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 1); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.Assert("reversed Nel", func(m *solve.Model) (bool, error) {
		rx := m.Resolve(x)
		return !(rx.Kind == term.List && rx.ListVal.Len() > 0), nil
	})
	return nil
}

// encodeTsReversed asserts the reverse of Ts(x, n): x is not a tuple of
// exactly arity n. This is the original's _json_rev_cmd_ts_to_z3: the
// logical negation of Ts's own conjunction.
func encodeTsReversed(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	n, err := DecodeLiteralInt(cmd.A[1])
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.Assert("reversed Ts", func(m *solve.Model) (bool, error) {
		rx := m.Resolve(x)
		return !(rx.Kind == term.Tuple && rx.ListVal.Len() == n), nil
	})
	return nil
}

// encodeNts asserts Nts(x, n): x is a tuple, but not of arity n. Unlike Ts,
// the arity is only excluded rather than pinned, so it still needs the
// bounded search's length-decision machinery to find a witness arity.
func encodeNts(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	x, err := argVar(cmd, sess, 0)
	if err != nil {
		return err
	}
	n, err := DecodeLiteralInt(cmd.A[1])
	if err != nil {
		return err
	}
	touch(sess, x)
	sess.solver.AssertKind(x, solve.KindTuple, false)
	lenVar := sess.env.Fresh("tpls-arity")
	sess.solver.RegisterLengthDecision("Nts arity", x, lenVar)
	touch(sess, lenVar)
	sess.solver.Assert("Nts arity excludes n", func(m *solve.Model) (bool, error) {
		return !m.Resolve(lenVar).Equal(term.NewIntFromInt64(int64(n))), nil
	})
	return nil
}
