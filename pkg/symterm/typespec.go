package symterm

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/hashicorp/go-multierror"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// BindTypeSpec implements the Type-Spec Binder (spec.md §4.5): it narrows v
// to exactly the domain ts describes, recursing into list/tuple/union
// element sigs as needed. Unbounded element sigs (list/nelist/string/
// nestring without an explicit count) are bound up to the session's
// MaxLen, the same bounded-encoding discipline the length/tuple_size BIFs
// use (spec.md §4.4).
func BindTypeSpec(sess *Session, v *solve.Var, ts wire.TypeSigJSON) error {
	switch ts.T {
	case "any":
		sess.solver.MarkTouched(v)
		return nil

	case "literal":
		var lit wire.TermJSON
		if err := json.Unmarshal(ts.I, &lit); err != nil {
			return fmt.Errorf("%w: literal type-spec info: %v", ErrProtocol, err)
		}
		litVar, err := sess.codec.EncodeToVar(lit)
		if err != nil {
			return err
		}
		sess.solver.Unify(v, litVar)
		return nil

	case "atom":
		sess.solver.AssertKind(v, solve.KindAtom, false)
		return nil

	case "boolean":
		sess.solver.AssertKind(v, solve.KindAtom, false)
		sess.solver.Assert("boolean type-spec", func(m *solve.Model) (bool, error) {
			return m.Resolve(v).IsBooleanAtom(), nil
		})
		return nil

	case "byte":
		sess.solver.AssertKind(v, solve.KindInt, false)
		sess.solver.AssertIntRange(v, big.NewInt(0), big.NewInt(255))
		return nil

	case "char":
		sess.solver.AssertKind(v, solve.KindInt, false)
		sess.solver.AssertIntRange(v, big.NewInt(0), big.NewInt(0x10FFFF))
		return nil

	case "float":
		sess.solver.AssertKind(v, solve.KindReal, false)
		return nil

	case "integer":
		sess.solver.AssertKind(v, solve.KindInt, false)
		if len(ts.I) > 0 {
			var sign string
			if err := json.Unmarshal(ts.I, &sign); err == nil && sign != "" {
				s, err := parseSign(sign)
				if err != nil {
					return err
				}
				sess.solver.AssertSign(v, s)
			}
		}
		return nil

	case "number":
		sess.solver.AssertKind(v, solve.KindInt|solve.KindReal, false)
		return nil

	case "range":
		if len(ts.A) != 2 {
			return fmt.Errorf("%w: range type-spec needs two bound sub-sigs, got %d", ErrProtocol, len(ts.A))
		}
		var bounds [2]*big.Int
		for i, sub := range ts.A {
			var lit wire.TermJSON
			if err := json.Unmarshal(sub.I, &lit); err != nil || lit.T == nil || *lit.T != "Int" {
				return fmt.Errorf("%w: range type-spec bound %d is not an Int term", ErrProtocol, i+1)
			}
			b, ok := new(big.Int).SetString(string(lit.V), 10)
			if !ok {
				return fmt.Errorf("%w: invalid range bound %s", ErrProtocol, lit.V)
			}
			bounds[i] = b
		}
		sess.solver.AssertKind(v, solve.KindInt, false)
		sess.solver.AssertIntRange(v, bounds[0], bounds[1])
		return nil

	case "timeout":
		sess.solver.AssertKind(v, solve.KindInt|solve.KindAtom, false)
		sess.solver.Assert("timeout type-spec", func(m *solve.Model) (bool, error) {
			t := m.Resolve(v)
			if t.Kind == term.Int {
				return t.IntVal.Sign() >= 0, nil
			}
			return t.AtomVal.Equal(term.InfinityCodes), nil
		})
		return nil

	case "list", "nelist":
		return bindListTypeSpec(sess, v, ts, ts.T == "nelist")

	case "string", "nestring":
		return bindStringTypeSpec(sess, v, ts.T == "nestring")

	case "tuple":
		return bindTupleTypeSpec(sess, v, ts)

	case "union":
		return bindUnionTypeSpec(sess, v, ts)

	default:
		return fmt.Errorf("%w: unknown type-spec kind %q", ErrProtocol, ts.T)
	}
}

func parseSign(s string) (solve.Sign, error) {
	switch s {
	case "any", "":
		return solve.SignAny, nil
	case "pos":
		return solve.SignPositive, nil
	case "neg":
		return solve.SignNegative, nil
	case "non_neg":
		return solve.SignNonNegative, nil
	default:
		return 0, fmt.Errorf("%w: unknown integer sign refinement %q", ErrProtocol, s)
	}
}

// bindListTypeSpec binds v to a list whose elements each satisfy ts.A[0]
// (or "any" when no element sig is given). Since the length is otherwise
// unbounded, it is driven by the session's length-decision search rather
// than forced up front; nelist additionally requires at least one element.
func bindListTypeSpec(sess *Session, v *solve.Var, ts wire.TypeSigJSON, nonEmpty bool) error {
	sess.solver.AssertKind(v, solve.KindList, false)
	lenVar := sess.env.Fresh("list-typespec-len")
	sess.solver.AssertKind(lenVar, solve.KindInt, false)
	sess.solver.AssertSign(lenVar, solve.SignNonNegative)
	sess.solver.RegisterLengthDecision("list type-spec", v, lenVar)
	sess.solver.MarkTouched(lenVar)
	if nonEmpty {
		sess.solver.Assert("nelist non-empty", func(m *solve.Model) (bool, error) {
			return m.Resolve(lenVar).IntVal.Sign() > 0, nil
		})
	}
	if len(ts.A) == 0 {
		return nil
	}
	elemSig := ts.A[0]
	max := sess.cfg.MaxLen
	for i := 1; i <= max; i++ {
		// PeekElementAt only creates the element variable; it does not
		// force the list to actually be that long. A chosen length short
		// of i simply never resolves this position in the final model.
		elem := sess.solver.PeekElementAt(v, solve.KindList, i)
		if err := BindTypeSpec(sess, elem, elemSig); err != nil {
			return err
		}
	}
	return nil
}

// bindStringTypeSpec binds v to a list of char-range integers (a string is
// a list of character codes in this theory).
func bindStringTypeSpec(sess *Session, v *solve.Var, nonEmpty bool) error {
	return bindListTypeSpec(sess, v, wire.TypeSigJSON{T: "list", A: []wire.TypeSigJSON{{T: "char"}}}, nonEmpty)
}

// bindTupleTypeSpec binds v to a tuple whose elements satisfy ts.A in
// order; the arity is exactly len(ts.A) since tuple type-specs are always
// fixed-arity (spec.md §4.5).
func bindTupleTypeSpec(sess *Session, v *solve.Var, ts wire.TypeSigJSON) error {
	elems := sess.solver.BindExactLength(v, solve.KindTuple, len(ts.A))
	var result *multierror.Error
	for i, sub := range ts.A {
		if err := BindTypeSpec(sess, elems[i], sub); err != nil {
			result = multierror.Append(result, fmt.Errorf("element %d: %w", i, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return nil
}

// bindUnionTypeSpec binds v to satisfy at least one of ts.A's alternatives.
// Each alternative is checked, via a disjunctive verifier, against v's
// resolved value in the candidate model: the union as a whole succeeds if
// any single alternative accepts that value.
func bindUnionTypeSpec(sess *Session, v *solve.Var, ts wire.TypeSigJSON) error {
	if len(ts.A) == 0 {
		return fmt.Errorf("%w: union type-spec with no alternatives", ErrProtocol)
	}
	// Unions are realized by asserting nothing eagerly against v itself
	// (every alternative stays possible) and instead requiring, at verify
	// time, that the model's concrete value for v would satisfy at least
	// one alternative — checked by re-running a throwaway sub-session's
	// binder against a copy of the fully resolved value.
	alts := ts.A
	sess.solver.Assert("union type-spec", func(m *solve.Model) (bool, error) {
		val := m.Resolve(v)
		for _, alt := range alts {
			ok, err := satisfiesTypeSpec(sess, val, alt)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	})
	return nil
}

// satisfiesTypeSpec checks whether an already-concrete value matches a
// type-spec, by binding it against a disposable solver and asking whether
// that solver is immediately unsatisfiable.
func satisfiesTypeSpec(parent *Session, val *term.Term, ts wire.TypeSigJSON) (bool, error) {
	scratch := NewSession(parent.cfg, parent.log)
	v := scratch.env.Fresh("union-probe")
	scratch.solver.AssertLiteral(v, val)
	if err := BindTypeSpec(scratch, v, ts); err != nil {
		if Kind(err) == "protocol" {
			return false, err
		}
		return false, nil
	}
	_, status, err := scratch.solver.Solve(context.Background(), 0)
	if err != nil {
		return false, err
	}
	return status == solve.Sat, nil
}
