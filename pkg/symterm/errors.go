package symterm

import "errors"

// Sentinel errors for the three kinds spec.md §7 defines, so callers can
// errors.Is/errors.As against a stable kind regardless of the wrapped
// detail message.
var (
	// ErrProtocol marks a malformed command, unknown opcode, arity
	// mismatch, or unknown type-spec tag. The session is poisoned until
	// Reset.
	ErrProtocol = errors.New("symterm: protocol error")

	// ErrSolver marks a solver-side unknown/timeout/resource exhaustion.
	// Not fatal to the session.
	ErrSolver = errors.New("symterm: solver error")

	// ErrInternal marks a programming-error invariant violation (decoding
	// an undefined model slot, indexing past a bounded-operation cap).
	// The session must terminate.
	ErrInternal = errors.New("symterm: internal error")
)

// Kind returns the SPEC_FULL.md §6.2 wire "kind" string for a sentinel
// error, defaulting to "internal" for anything unrecognized.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrProtocol):
		return "protocol"
	case errors.Is(err, ErrSolver):
		return "solver"
	default:
		return "internal"
	}
}
