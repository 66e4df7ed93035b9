package solve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/symterm/pkg/term"
)

func TestKindSetHasAndEmpty(t *testing.T) {
	s := KindInt | KindReal
	require.True(t, s.Has(KindInt))
	require.False(t, s.Has(KindAtom))
	require.False(t, s.Empty())
	require.True(t, KindSet(0).Empty())
}

func TestKindSetSingle(t *testing.T) {
	_, ok := (KindInt | KindReal).Single()
	require.False(t, ok)

	k, ok := KindTuple.Single()
	require.True(t, ok)
	require.Equal(t, KindTuple, k)
}

func TestKindOfRoundTrips(t *testing.T) {
	cases := map[term.Kind]KindSet{
		term.Int:   KindInt,
		term.Real:  KindReal,
		term.List:  KindList,
		term.Tuple: KindTuple,
		term.Atom:  KindAtom,
	}
	for k, want := range cases {
		require.Equal(t, want, KindOf(k))
	}
}

func TestKindSetKindsExpandsAllBits(t *testing.T) {
	require.ElementsMatch(t, []term.Kind{term.Int, term.Real, term.List, term.Tuple, term.Atom}, KindAll.Kinds())
}
