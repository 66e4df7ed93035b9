package solve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvironmentLookupIsStableAndLazy(t *testing.T) {
	s := NewSolver(DefaultConfig())
	env := NewEnvironment(s)

	a := env.Lookup("X")
	b := env.Lookup("X")
	require.Same(t, a, b)

	c := env.Lookup("Y")
	require.NotSame(t, a, c)
}

func TestEnvironmentFreshNeverCollidesWithNamed(t *testing.T) {
	s := NewSolver(DefaultConfig())
	env := NewEnvironment(s)

	f1 := env.Fresh("scratch")
	f2 := env.Fresh("scratch")
	require.NotSame(t, f1, f2)
}

func TestEnvironmentParamsPreservesDeclarationOrderAndDedups(t *testing.T) {
	s := NewSolver(DefaultConfig())
	env := NewEnvironment(s)

	env.AddParam("B")
	env.AddParam("A")
	env.AddParam("B")

	require.Equal(t, []string{"B", "A"}, env.Params())
}
