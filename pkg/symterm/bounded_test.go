package symterm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
)

func TestEncodeLengthBindsListLength(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"L"}]}`,
		`{"c":"len","a":[{"s":"L"},{"t":"Int","v":2}]}`,
	)
	l := model.Resolve(sess.env.Lookup("L"))
	require.Equal(t, term.List, l.Kind)
	require.Equal(t, 2, l.ListVal.Len())
}

func TestEncodeTupleSizeBindsArity(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"T"}]}`,
		`{"c":"tpls","a":[{"s":"T"},{"t":"Int","v":3}]}`,
	)
	tup := model.Resolve(sess.env.Lookup("T"))
	require.Equal(t, term.Tuple, tup.Kind)
	require.Equal(t, 3, tup.ListVal.Len())
}

func TestEncodeMakeTupleRepeatsElement(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"T"}]}`,
		`{"c":"mtpl","a":[{"t":"Int","v":7},{"t":"Int","v":3},{"s":"T"}]}`,
	)
	tup := model.Resolve(sess.env.Lookup("T"))
	elems, ok := tup.ListVal.ToSlice()
	require.True(t, ok)
	require.Len(t, elems, 3)
	for _, e := range elems {
		require.True(t, e.Equal(term.NewIntFromInt64(7)))
	}
}

func TestEncodeBreakTupleDecomposesElements(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"T"},{"s":"E1"},{"s":"E2"}]}`,
		`{"c":"Bkt","a":[{"s":"T"},{"s":"E1"},{"s":"E2"}]}`,
		`{"c":"Eq","a":[{"s":"E1"},{"t":"Int","v":1}]}`,
		`{"c":"Eq","a":[{"s":"E2"},{"t":"Int","v":2}]}`,
	)
	tup := model.Resolve(sess.env.Lookup("T"))
	require.Equal(t, term.Tuple, tup.Kind)
	elems, ok := tup.ListVal.ToSlice()
	require.True(t, ok)
	require.Len(t, elems, 2)
	require.True(t, elems[0].Equal(term.NewIntFromInt64(1)))
	require.True(t, elems[1].Equal(term.NewIntFromInt64(2)))
}

func TestEncodeBreakListDecomposesElements(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"L"},{"s":"E1"}]}`,
		`{"c":"Bkl","a":[{"s":"L"},{"s":"E1"}]}`,
		`{"c":"Eq","a":[{"s":"E1"},{"t":"Int","v":9}]}`,
	)
	l := model.Resolve(sess.env.Lookup("L"))
	require.Equal(t, term.List, l.Kind)
	elems, ok := l.ListVal.ToSlice()
	require.True(t, ok)
	require.Len(t, elems, 1)
	require.True(t, elems[0].Equal(term.NewIntFromInt64(9)))
}

func TestEncodeLengthRejectsNonListKind(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"len","a":[{"t":"Int","v":1},{"s":"Y"}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}
