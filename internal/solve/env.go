package solve

import "fmt"

// Environment maps the driver's symbolic names onto solver variables and
// tracks which of those names are declared parameters, in declaration
// order (spec.md §3.2). It is created alongside a Solver and shares its
// lifetime.
type Environment struct {
	solver  *Solver
	vars    map[string]*Var
	params  []string
	counter int
}

// NewEnvironment creates an empty environment bound to solver.
func NewEnvironment(solver *Solver) *Environment {
	return &Environment{solver: solver, vars: make(map[string]*Var)}
}

// Lookup resolves a symbolic name to its variable, creating a fresh one on
// first mention (spec.md §3.2: "variables are created lazily on first
// mention of a symbolic name").
func (e *Environment) Lookup(name string) *Var {
	if v, ok := e.vars[name]; ok {
		return v
	}
	v := e.solver.NewVar(name)
	e.vars[name] = v
	return v
}

// Fresh allocates an anonymous variable not tied to any symbolic name, for
// encoders that need scratch variables (e.g. aliased-term memoization).
func (e *Environment) Fresh(hint string) *Var {
	e.counter++
	return e.solver.NewVar(fmt.Sprintf("%s#%d", hint, e.counter))
}

// AddParam appends name to the ordered parameter list. A name already
// present is not duplicated (Pms may, in principle, be asked to redeclare).
func (e *Environment) AddParam(name string) {
	for _, p := range e.params {
		if p == name {
			return
		}
	}
	e.params = append(e.params, name)
}

// Params returns the parameter names in declaration order.
func (e *Environment) Params() []string {
	out := make([]string, len(e.params))
	copy(out, e.params)
	return out
}
