package symterm

import (
	"fmt"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encodeHd asserts hd(x, y): y is the head of the non-empty list x.
func encodeHd(cmd wire.CommandJSON, sess *Session) error {
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
	head, _ := sess.solver.HeadTail(x)
	sess.solver.Unify(y, head)
	return nil
}

// encodeTl asserts tl(x, y): y is the tail-as-a-list of the non-empty list
// x (sharing x's chain past its first element, not copying it).
func encodeTl(cmd wire.CommandJSON, sess *Session) error {
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
	_, tail := sess.solver.HeadTail(x)
	sess.solver.Unify(y, tail)
	return nil
}

// encodeElm asserts elm(i, x, y): y is the i-th (1-based) element of the
// tuple x. i is a bare-literal index, not a Term (spec.md §4.4, §8
// scenario 5: elm comes first so the index never risks being mistaken for
// a Term argument).
func encodeElm(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 3); err != nil {
		return err
	}
	i, err := DecodeLiteralInt(cmd.A[0])
	if err != nil {
		return err
	}
	if i < 1 {
		return fmt.Errorf("%w: elm index must be 1-based and positive, got %d", ErrProtocol, i)
	}
	x, err := argVar(cmd, sess, 1)
	if err != nil {
		return err
	}
	y, err := argVar(cmd, sess, 2)
	if err != nil {
		return err
	}
	touch(sess, x, y)
	elem := sess.solver.ElementAt(x, solve.KindTuple, i)
	sess.solver.Unify(y, elem)
	return nil
}

// encodeListToTuple asserts ltt(x, y): y is the tuple holding x's elements,
// in order. x and y share the same underlying structural carrier: forcing
// either one's length or elements forces the other's identically.
func encodeListToTuple(cmd wire.CommandJSON, sess *Session) error {
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
	shared := sess.solver.CarrierAsKind(x, solve.KindTuple)
	sess.solver.Unify(y, shared)
	return nil
}

// encodeTupleToList asserts ttl(x, y): y is the list holding x's elements,
// in order. See encodeListToTuple.
func encodeTupleToList(cmd wire.CommandJSON, sess *Session) error {
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
	shared := sess.solver.CarrierAsKind(x, solve.KindList)
	sess.solver.Unify(y, shared)
	return nil
}
