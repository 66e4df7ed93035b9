package symterm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
)

func TestEncodeIsAtomTrueOnAtomFalseOnInt(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"isa","a":[{"t":"Atom","v":[111,107]},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(true)))

	sess2 := NewSession(solve.DefaultConfig(), nil)
	model2 := solveSat(t, sess2,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"isa","a":[{"t":"Int","v":1},{"s":"Y"}]}`,
	)
	require.True(t, model2.Resolve(sess2.env.Lookup("Y")).Equal(term.BoolTerm(false)))
}

func TestEncodeIsBooleanOnlyTrueAndFalseAtoms(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"isb","a":[{"t":"Atom","v":[111,107]},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(false)))
}

func TestEncodeIsNumberTrueForIntAndReal(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"isn","a":[{"t":"Real","v":1.0},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(true)))

	sess2 := NewSession(solve.DefaultConfig(), nil)
	model2 := solveSat(t, sess2,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"isn","a":[{"t":"Int","v":1},{"s":"Y"}]}`,
	)
	require.True(t, model2.Resolve(sess2.env.Lookup("Y")).Equal(term.BoolTerm(true)))
}

func TestEncodeAndTruthTable(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"and","a":[{"t":"Atom","v":[116,114,117,101]},{"t":"Atom","v":[102,97,108,115,101]},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(false)))
}

func TestEncodeXorTruthTable(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"xor","a":[{"t":"Atom","v":[116,114,117,101]},{"t":"Atom","v":[102,97,108,115,101]},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(true)))
}

func TestEncodeNotNegatesBoolean(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"not","a":[{"t":"Atom","v":[116,114,117,101]},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(false)))
}

// TestEncodeAndAlsoLeavesSecondOperandUnconstrainedOnShortCircuit is the
// case the strict 4-combination encoding got wrong: andalso's first operand
// is false, so the second operand is never consulted and need not even be
// an atom. A 2-tuple in that slot must still be SAT.
func TestEncodeAndAlsoLeavesSecondOperandUnconstrainedOnShortCircuit(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"anda","a":[{"t":"Atom","v":[102,97,108,115,101]},{"t":"Tuple","v":[{"t":"Int","v":1},{"t":"Int","v":2}]},{"t":"Atom","v":[102,97,108,115,101]}]}`,
	)
	require.NotNil(t, model)
}

// TestEncodeOrElseLeavesSecondOperandUnconstrainedOnShortCircuit is orelse's
// mirror image: the first operand is true, so the second is never consulted.
func TestEncodeOrElseLeavesSecondOperandUnconstrainedOnShortCircuit(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"ore","a":[{"t":"Atom","v":[116,114,117,101]},{"t":"Tuple","v":[{"t":"Int","v":1},{"t":"Int","v":2}]},{"t":"Atom","v":[116,114,117,101]}]}`,
	)
	require.NotNil(t, model)
}

// TestEncodeAndAlsoStillConsultsSecondOperandWhenFirstIsTrue guards against
// over-correcting: when the first operand is true, andalso must still
// require the second operand to be boolean, so a non-atom there is UNSAT.
func TestEncodeAndAlsoStillConsultsSecondOperandWhenFirstIsTrue(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"anda","a":[{"t":"Atom","v":[116,114,117,101]},{"t":"Tuple","v":[{"t":"Int","v":1},{"t":"Int","v":2}]},{"t":"Atom","v":[116,114,117,101]}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}

// TestEncodeAndAlsoTruthTableWhenBothConsulted confirms the consulted-both
// case still matches and's truth table.
func TestEncodeAndAlsoTruthTableWhenBothConsulted(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	model := solveSat(t, sess,
		`{"c":"Pms","a":[{"s":"Y"}]}`,
		`{"c":"anda","a":[{"t":"Atom","v":[116,114,117,101]},{"t":"Atom","v":[116,114,117,101]},{"s":"Y"}]}`,
	)
	require.True(t, model.Resolve(sess.env.Lookup("Y")).Equal(term.BoolTerm(true)))
}

// TestEncodeOrElseStillConsultsSecondOperandWhenFirstIsFalse mirrors the
// andalso guard above for orelse.
func TestEncodeOrElseStillConsultsSecondOperandWhenFirstIsFalse(t *testing.T) {
	sess := NewSession(solve.DefaultConfig(), nil)
	handleAll(t, sess,
		`{"c":"ore","a":[{"t":"Atom","v":[102,97,108,115,101]},{"t":"Tuple","v":[{"t":"Int","v":1},{"t":"Int","v":2}]},{"t":"Atom","v":[116,114,117,101]}]}`,
	)
	_, status, err := sess.solver.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, solve.Unsat, status)
}
