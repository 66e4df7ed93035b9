package solve

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/symterm/pkg/term"
)

func newTestSolver() (*Solver, *Environment) {
	s := NewSolver(DefaultConfig())
	return s, NewEnvironment(s)
}

func TestAssertLiteralAndSolveSat(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertLiteral(x, term.NewIntFromInt64(42))

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.True(t, model.Resolve(x).Equal(term.NewIntFromInt64(42)))
}

func TestAssertLiteralConflictIsUnsat(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertLiteral(x, term.NewIntFromInt64(1))
	s.AssertLiteral(x, term.NewIntFromInt64(2))

	_, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Unsat, status)
}

func TestUnifyMergesLiteralsAndKinds(t *testing.T) {
	s, env := newTestSolver()
	x, y := env.Lookup("X"), env.Lookup("Y")
	s.AssertLiteral(x, term.NewIntFromInt64(7))
	s.Unify(x, y)

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.True(t, model.Resolve(y).Equal(term.NewIntFromInt64(7)))
}

func TestUnifyConflictingLiteralsIsUnsat(t *testing.T) {
	s, env := newTestSolver()
	x, y := env.Lookup("X"), env.Lookup("Y")
	s.AssertLiteral(x, term.NewIntFromInt64(1))
	s.AssertLiteral(y, term.NewIntFromInt64(2))
	s.Unify(x, y)

	_, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Unsat, status)
}

func TestAssertKindNarrowsDomain(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertKind(x, KindInt, false)

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.Equal(t, term.Int, model.Resolve(x).Kind)
}

func TestAssertKindNegateExcludes(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertKind(x, KindInt, true)

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.NotEqual(t, term.Int, model.Resolve(x).Kind)
}

func TestAssertIntRangeFindsWitnessWithinBounds(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertKind(x, KindInt, false)
	s.AssertIntRange(x, big.NewInt(10), big.NewInt(12))

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	v := model.Resolve(x).IntVal
	require.True(t, v.Cmp(big.NewInt(10)) >= 0 && v.Cmp(big.NewInt(12)) <= 0)
}

func TestAssertIntRangeEmptyIsUnsat(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertIntRange(x, big.NewInt(10), big.NewInt(5))

	_, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Unsat, status)
}

func TestAssertSignExcludesNonMatchingCandidates(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertKind(x, KindInt, false)
	s.AssertSign(x, SignNegative)

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.True(t, model.Resolve(x).IntVal.Sign() < 0)
}

func TestConflictingSignsIsUnsat(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertSign(x, SignPositive)
	s.AssertSign(x, SignNegative)

	_, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Unsat, status)
}

func TestBindExactLengthAndElementAt(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	elems := s.BindExactLength(x, KindList, 2)
	s.AssertLiteral(elems[0], term.NewIntFromInt64(1))
	s.AssertLiteral(elems[1], term.NewIntFromInt64(2))

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	want := term.NewList(term.FromSlice([]*term.Term{term.NewIntFromInt64(1), term.NewIntFromInt64(2)}))
	require.True(t, model.Resolve(x).Equal(want))
}

func TestHeadTailOnEmptyAssertedListIsUnsat(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	node := s.Carrier(x)
	node.MarkNil()
	s.AssertKind(x, KindList, false)
	_, _ = s.HeadTail(x) // forces cons on an already-nil position

	_, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Unsat, status)
}

func TestRegisterLengthDecisionSearchesLengths(t *testing.T) {
	s, env := newTestSolver()
	x, n := env.Lookup("X"), env.Lookup("N")
	s.AssertKind(x, KindList, false)
	s.AssertKind(n, KindInt, false)
	s.RegisterLengthDecision("len", x, n)
	s.Assert("length is 3", func(m *Model) (bool, error) {
		return m.Resolve(n).IntVal.Cmp(big.NewInt(3)) == 0, nil
	})

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.Equal(t, 3, model.Resolve(x).ListVal.Len())
}

func TestMarkTouchedAndIsTouched(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.MarkTouched(x)

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.True(t, model.IsTouched(x))
}

func TestUntouchedVariableIsNotTouched(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.False(t, model.IsTouched(x))
}

func TestCarrierAsKindSharesStructure(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	elems := s.BindExactLength(x, KindList, 1)
	s.AssertLiteral(elems[0], term.NewIntFromInt64(9))

	y := s.CarrierAsKind(x, KindTuple)
	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	require.Equal(t, term.Tuple, model.Resolve(y).Kind)
	elemsOut, ok := model.Resolve(y).ListVal.ToSlice()
	require.True(t, ok)
	require.Len(t, elemsOut, 1)
	require.True(t, elemsOut[0].Equal(term.NewIntFromInt64(9)))
}

func TestPeekElementAtDoesNotForceLength(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertKind(x, KindList, false)
	elem := s.PeekElementAt(x, KindList, 3)
	s.AssertLiteral(elem, term.NewIntFromInt64(5))

	model, status, err := s.Solve(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	// Nothing forced the list to actually have 3 elements, so the default
	// witness is the empty list.
	require.Equal(t, 0, model.Resolve(x).ListVal.Len())
}

func TestSolveRespectsTimeout(t *testing.T) {
	s, env := newTestSolver()
	x := env.Lookup("X")
	s.AssertKind(x, KindInt, false)
	s.AssertIntRange(x, big.NewInt(0), big.NewInt(1))
	// A verifier that can never be satisfied forces the search to exhaust
	// every candidate before giving up; a near-zero timeout should instead
	// surface as Unknown rather than blocking.
	s.Assert("never", func(m *Model) (bool, error) { return false, nil })

	_, status, err := s.Solve(context.Background(), time.Nanosecond)
	require.NoError(t, err)
	require.True(t, status == Unknown || status == Unsat)
}
