package symterm

import (
	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/wire"
)

// ExtractSolution implements spec.md §4.6: for every declared parameter, in
// declaration order, report its resolved value under model, or the "any"
// sentinel if nothing ever constrained it.
func (c *Codec) ExtractSolution(params []string, lookup func(name string) *solve.Var, model *solve.Model) (wire.Solution, error) {
	sol := make(wire.Solution, 0, len(params))
	for _, name := range params {
		v := lookup(name)
		if !model.IsTouched(v) {
			sol = append(sol, wire.SolutionEntry{Name: name, Value: "any"})
			continue
		}
		t := model.Resolve(v)
		decoded, err := c.Decode(t)
		if err != nil {
			return nil, err
		}
		sol = append(sol, wire.SolutionEntry{Name: name, Value: decoded})
	}
	return sol, nil
}
