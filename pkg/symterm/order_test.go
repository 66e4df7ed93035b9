package symterm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
)

// TestCompareHoldsNumericCrossesIntReal exercises the original's Int-Int,
// Float-Float, Int-Float, and Float-Int disjuncts.
func TestCompareHoldsNumericCrossesIntReal(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"<","a":[{"t":"Int","v":3},{"t":"Real","v":3.5},{"s":"Y"}]}`,
	)
	model, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Sat, status)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(true)))
}

// TestCompareHoldsCrossKindBand checks the number-below-everything and
// atom-below-tuple/list bands via the opts_asc/opts_desc tables.
func TestCompareHoldsCrossKindBand(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"<","a":[{"t":"Int","v":1},{"t":"Atom","v":[111,107]},{"s":"Y"}]}`,
	)
	model, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Sat, status)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(true)))
}

// TestCompareGapAtomAtomIsUnsatisfiable reproduces spec.md §9's documented
// total-order gap: the original's Or(*es) has no Atom-Atom disjunct, so
// _term_comparison collapses to a literal False for this pair regardless
// of the result variable. Per spec.md §9 this test only checks that the
// branch is unreachable (UNSAT), never a specific true/false outcome.
func TestCompareGapAtomAtomIsUnsatisfiable(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"<","a":[{"t":"Atom","v":[111,107]},{"t":"Atom","v":[107,111]},{"s":"Y"}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}

// TestCompareGapTupleTupleIsUnsatisfiable covers the Tuple-Tuple gap, which
// the original leaves unencoded regardless of arity.
func TestCompareGapTupleTupleIsUnsatisfiable(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"<","a":[{"t":"Tuple","v":[]},{"t":"Tuple","v":[]},{"s":"Y"}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}

// TestCompareGapListListIsUnsatisfiable covers the List-List gap.
func TestCompareGapListListIsUnsatisfiable(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":">=","a":[{"t":"List","v":[]},{"t":"List","v":[]},{"s":"Y"}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}
