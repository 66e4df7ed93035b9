package symterm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

func TestBindTypeSpecAny(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	v := sess.env.Lookup("X")
	require.NoError(t, BindTypeSpec(sess, v, wire.TypeSigJSON{T: "any"}))
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Sat, status)
}

func TestBindTypeSpecLiteral(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	v := sess.env.Lookup("X")
	require.NoError(t, BindTypeSpec(sess, v, wire.TypeSigJSON{T: "literal", I: []byte(`{"t":"Int","v":5}`)}))
	model, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Sat, status)
	require.True(t, model.Resolve(v).Equal(term.NewIntFromInt64(5)))
}

func TestBindTypeSpecByteBounds(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"byte"}}]}`,
		`{"c":"Neq","a":[{"s":"X"},{"t":"Int","v":256}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Sat, status)

	sess2 := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess2,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"byte"}}]}`,
		`{"c":"Eq","a":[{"s":"X"},{"t":"Int","v":-1}]}`,
	)
	_, status2, err := sess2.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status2)
}

func TestBindTypeSpecFloatRejectsInt(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"float"}}]}`,
		`{"c":"Eq","a":[{"s":"X"},{"t":"Int","v":3}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}

func TestBindTypeSpecNumberAcceptsBothIntAndReal(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"number"}}]}`,
		`{"c":"Eq","a":[{"s":"X"},{"t":"Real","v":1.5}]}`,
	)
	x := model.Resolve(sess.env.Lookup("X"))
	require.Equal(t, term.Real, x.Kind)
}

func TestBindTypeSpecTimeoutAcceptsNonNegIntOrInfinity(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"timeout"}}]}`,
		`{"c":"Eq","a":[{"s":"X"},{"t":"Atom","v":[105,110,102,105,110,105,116,121]}]}`,
	)
	x := model.Resolve(sess.env.Lookup("X"))
	require.Equal(t, term.Atom, x.Kind)
	require.True(t, x.AtomVal.Equal(term.InfinityCodes))
}

func TestBindTypeSpecStringIsListOfChars(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"nestring"}}]}`,
		`{"c":"hd","a":[{"s":"X"},{"t":"Int","v":104}]}`,
	)
	x := model.Resolve(sess.env.Lookup("X"))
	require.Equal(t, term.List, x.Kind)
	elems, ok := x.ListVal.ToSlice()
	require.True(t, ok)
	require.True(t, elems[0].Equal(term.NewIntFromInt64(104)))
}

func TestBindTypeSpecTupleAggregatesElementErrors(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	v := sess.env.Lookup("T")
	err := BindTypeSpec(sess, v, wire.TypeSigJSON{
		T: "tuple",
		A: []wire.TypeSigJSON{
			{T: "bogus-kind-one"},
			{T: "bogus-kind-two"},
		},
	})
	require.Error(t, err)
	require.Equal(t, "protocol", Kind(err))
	require.ErrorContains(t, err, "bogus-kind-one")
	require.ErrorContains(t, err, "bogus-kind-two")
}

func TestBindTypeSpecUnionAcceptsEitherAlternative(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"union","a":[{"t":"atom"},{"t":"integer"}]}}]}`,
		`{"c":"Eq","a":[{"s":"X"},{"t":"Int","v":4}]}`,
	)
	x := model.Resolve(sess.env.Lookup("X"))
	require.Equal(t, term.Int, x.Kind)
}

func TestBindTypeSpecUnionRejectsNeitherAlternative(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"X"}]}`,
		`{"c":"Psp","a":[{"s":"X"},{"v":{"t":"union","a":[{"t":"atom"},{"t":"integer"}]}}]}`,
		`{"c":"Eq","a":[{"s":"X"},{"t":"Real","v":1.5}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}

func TestBindTypeSpecUnknownKindIsProtocolError(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	v := sess.env.Lookup("X")
	err := BindTypeSpec(sess, v, wire.TypeSigJSON{T: "not-a-real-kind"})
	require.Error(t, err)
	require.Equal(t, "protocol", Kind(err))
}
