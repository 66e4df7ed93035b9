package symterm

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/wire"
)

// Session composes the Environment, Solver, and Codec into the stateful unit
// one client connection owns (spec.md §3.3/§5): it accumulates commands
// until asked to Solve, and can be Reset back to a blank slate without
// tearing down the underlying connection.
type Session struct {
	cfg    solve.Config
	solver *solve.Solver
	env    *solve.Environment
	codec  *Codec
	log    hclog.Logger

	// poisoned is set once a command fails with a protocol or internal
	// error. spec.md §7: the session's accumulated state after such a
	// failure is no longer trustworthy, so every subsequent command is
	// rejected until Reset.
	poisoned     bool
	poisonReason string
}

// NewSession creates a Session with a fresh Environment/Solver/Codec under
// cfg. log is used only for diagnostics (stderr), never the protocol
// itself.
func NewSession(cfg solve.Config, log hclog.Logger) *Session {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	solver := solve.NewSolver(cfg)
	env := solve.NewEnvironment(solver)
	return &Session{
		cfg:    cfg,
		solver: solver,
		env:    env,
		codec:  NewCodec(env, solver),
		log:    log,
	}
}

// Reset discards all accumulated variables, assertions, and parameters,
// replacing them with a blank session under the same configuration
// (spec.md §5, the "reset" operation).
func (s *Session) Reset() {
	fresh := NewSession(s.cfg, s.log)
	*s = *fresh
}

// Handle processes one inbound command (spec.md §4.2's Command Dispatcher
// entrypoint), routing it to the opcode's encoder and poisoning the session
// on any protocol or internal failure.
func (s *Session) Handle(cmd wire.CommandJSON) error {
	if s.poisoned {
		return fmt.Errorf("%w: session is poisoned (%s); reset required", ErrProtocol, s.poisonReason)
	}
	enc, err := resolveEncoder(cmd)
	if err != nil {
		s.poisoned = true
		s.poisonReason = err.Error()
		return err
	}
	if err := enc(cmd, s); err != nil {
		if Kind(err) != "solver" {
			s.poisoned = true
			s.poisonReason = err.Error()
		}
		return err
	}
	return nil
}

// Solve runs the solver substitution's search (spec.md §4/§5) and renders
// the outcome as a wire Response: a witness model's solution, or an
// unsat/unknown status.
func (s *Session) Solve(ctx context.Context, timeout time.Duration) (wire.Response, error) {
	if s.poisoned {
		return wire.Response{}, fmt.Errorf("%w: session is poisoned (%s); reset required", ErrProtocol, s.poisonReason)
	}
	model, status, err := s.solver.Solve(ctx, timeout)
	if err != nil {
		s.poisoned = true
		s.poisonReason = err.Error()
		return wire.Response{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	switch status {
	case solve.Sat:
		sol, err := s.codec.ExtractSolution(s.env.Params(), s.env.Lookup, model)
		if err != nil {
			return wire.Response{}, err
		}
		return wire.Satisfiable(sol), nil
	case solve.Unknown:
		return wire.Unsatisfiable("unknown"), nil
	default:
		return wire.Unsatisfiable("unsat"), nil
	}
}
