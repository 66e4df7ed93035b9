package term

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRationalNormalizesToLowestTerms(t *testing.T) {
	r := NewRational(big.NewInt(6), big.NewInt(-8))
	require.Equal(t, "-3", r.Num.String())
	require.Equal(t, "4", r.Den.String())
}

func TestRationalArithmetic(t *testing.T) {
	half := RationalFromInt64(1, 2)
	third := RationalFromInt64(1, 3)

	require.True(t, half.Add(third).Equal(RationalFromInt64(5, 6)))
	require.True(t, half.Sub(third).Equal(RationalFromInt64(1, 6)))
	require.True(t, half.Mul(third).Equal(RationalFromInt64(1, 6)))
	require.True(t, half.Div(third).Equal(RationalFromInt64(3, 2)))
	require.True(t, half.Neg().Equal(RationalFromInt64(-1, 2)))
}

func TestRationalDivByZeroPanics(t *testing.T) {
	require.Panics(t, func() {
		RationalFromInt64(1, 1).Div(RationalFromInt64(0, 1))
	})
}

func TestRationalCmpAndSign(t *testing.T) {
	require.Equal(t, -1, RationalFromInt64(1, 3).Cmp(RationalFromInt64(1, 2)))
	require.Equal(t, 1, RationalFromInt64(2, 3).Cmp(RationalFromInt64(1, 2)))
	require.Equal(t, 0, RationalFromInt64(2, 4).Cmp(RationalFromInt64(1, 2)))
	require.True(t, RationalFromInt64(0, 1).IsZero())
	require.True(t, RationalFromInt64(1, 1).IsPositive())
	require.True(t, RationalFromInt64(-1, 1).IsNegative())
}

func TestRationalString(t *testing.T) {
	require.Equal(t, "3", RationalFromInt64(3, 1).String())
	require.Equal(t, "1/3", RationalFromInt64(1, 3).String())
}

func TestRationalDecimalRoundsHalfUp(t *testing.T) {
	require.Equal(t, "0.33", RationalFromInt64(1, 3).Decimal(2))
	require.Equal(t, "0.67", RationalFromInt64(2, 3).Decimal(2))
	require.Equal(t, "-0.67", RationalFromInt64(-2, 3).Decimal(2))
	require.Equal(t, "1", RationalFromInt64(1, 1).Decimal(0))
}
