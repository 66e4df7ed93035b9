package symterm

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// Codec implements spec.md §4.1: converting interchange-format terms
// (symbolic, concrete, or aliased) to theory variables, and concrete theory
// terms back to interchange JSON.
type Codec struct {
	env        *solve.Environment
	solver     *solve.Solver
	aliasCache map[string]*solve.Var
}

// NewCodec builds a Codec over env/solver. A Codec's alias memoization
// lives for the lifetime of the session (spec.md §4.1's cyclic/shared term
// graph guarantee spans the whole command stream, not just one command).
func NewCodec(env *solve.Environment, solver *solve.Solver) *Codec {
	return &Codec{env: env, solver: solver, aliasCache: make(map[string]*solve.Var)}
}

// EncodeToVar resolves an interchange term object to a solver variable.
func (c *Codec) EncodeToVar(t wire.TermJSON) (*solve.Var, error) {
	return c.encode(t, nil)
}

func (c *Codec) encode(t wire.TermJSON, dict map[string]json.RawMessage) (*solve.Var, error) {
	shape, err := t.Classify()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	merged := dict
	if t.D != nil {
		merged = make(map[string]json.RawMessage, len(dict)+len(t.D))
		for k, v := range dict {
			merged[k] = v
		}
		for k, v := range t.D {
			merged[k] = v
		}
	}

	switch shape {
	case wire.ShapeSymbolic:
		return c.env.Lookup(*t.S), nil

	case wire.ShapeAliased:
		name := *t.L
		if v, ok := c.aliasCache[name]; ok {
			return v, nil
		}
		payloadRaw, ok := merged[name]
		if !ok {
			return nil, fmt.Errorf("%w: alias %q has no entry in its dictionary", ErrProtocol, name)
		}
		v := c.env.Fresh("alias:" + name)
		c.aliasCache[name] = v
		var payload wire.TermJSON
		if err := json.Unmarshal(payloadRaw, &payload); err != nil {
			return nil, fmt.Errorf("%w: decoding aliased payload for %q: %v", ErrProtocol, name, err)
		}
		payloadVar, err := c.encode(payload, merged)
		if err != nil {
			return nil, err
		}
		c.solver.Unify(v, payloadVar)
		return v, nil

	case wire.ShapeConcrete:
		return c.encodeConcrete(*t.T, t.V, merged)

	default: // ShapeBareLiteral
		return nil, fmt.Errorf("%w: bare literal used where a full term was expected", ErrProtocol)
	}
}

func (c *Codec) encodeConcrete(kind string, payload json.RawMessage, dict map[string]json.RawMessage) (*solve.Var, error) {
	switch kind {
	case "Int":
		n, err := decodeBigIntLiteral(payload)
		if err != nil {
			return nil, err
		}
		v := c.env.Fresh("int")
		c.solver.AssertLiteral(v, term.NewInt(n))
		return v, nil

	case "Real":
		r, err := decodeRationalLiteral(payload)
		if err != nil {
			return nil, err
		}
		v := c.env.Fresh("real")
		c.solver.AssertLiteral(v, term.NewReal(r))
		return v, nil

	case "Atom":
		codes, err := decodeIntSlice(payload)
		if err != nil {
			return nil, err
		}
		v := c.env.Fresh("atom")
		c.solver.AssertLiteral(v, term.NewAtom(codesToAtomCons(codes)))
		return v, nil

	case "List", "Tuple":
		var items []wire.TermJSON
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("%w: decoding %s payload: %v", ErrProtocol, kind, err)
		}
		elemVars := make([]*solve.Var, len(items))
		for i, it := range items {
			ev, err := c.encode(it, dict)
			if err != nil {
				return nil, err
			}
			elemVars[i] = ev
		}
		v := c.env.Fresh(strings.ToLower(kind))
		mask := solve.KindList
		if kind == "Tuple" {
			mask = solve.KindTuple
		}
		c.solver.BindExactList(v, mask, elemVars)
		return v, nil

	default:
		return nil, fmt.Errorf("%w: unknown concrete term kind %q", ErrProtocol, kind)
	}
}

// DecodeLiteralInt reads a bare-literal term argument ({"v": N}, with no
// s/t/l key) as a plain Go int. Several opcodes carry a literal count or
// index this way rather than a full Term (spec.md §8 scenarios 4 and 5).
func DecodeLiteralInt(t wire.TermJSON) (int, error) {
	if t.V == nil {
		return 0, fmt.Errorf("%w: expected a literal integer argument", ErrProtocol)
	}
	n, err := decodeBigIntLiteral(t.V)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: literal integer argument out of range: %s", ErrProtocol, n.String())
	}
	return int(n.Int64()), nil
}

func decodeBigIntLiteral(raw json.RawMessage) (*big.Int, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return nil, fmt.Errorf("%w: invalid integer literal: %v", ErrProtocol, err)
	}
	n, ok := new(big.Int).SetString(num.String(), 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid integer literal %q", ErrProtocol, num.String())
	}
	return n, nil
}

func decodeRationalLiteral(raw json.RawMessage) (term.Rational, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return term.Rational{}, fmt.Errorf("%w: invalid real literal: %v", ErrProtocol, err)
	}
	r, err := parseDecimalRational(num.String())
	if err != nil {
		return term.Rational{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return r, nil
}

func parseDecimalRational(s string) (term.Rational, error) {
	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return term.Rational{}, fmt.Errorf("invalid exponent in %q", s)
		}
		exp = e
	}

	neg := strings.HasPrefix(mantissa, "-")
	if neg {
		mantissa = mantissa[1:]
	}

	var num, den *big.Int
	if dot := strings.IndexByte(mantissa, '.'); dot >= 0 {
		intPart := mantissa[:dot]
		fracPart := mantissa[dot+1:]
		combined := intPart + fracPart
		if combined == "" {
			combined = "0"
		}
		n, ok := new(big.Int).SetString(combined, 10)
		if !ok {
			return term.Rational{}, fmt.Errorf("invalid decimal literal %q", s)
		}
		num = n
		den = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
	} else {
		n, ok := new(big.Int).SetString(mantissa, 10)
		if !ok {
			return term.Rational{}, fmt.Errorf("invalid decimal literal %q", s)
		}
		num = n
		den = big.NewInt(1)
	}
	if neg {
		num = new(big.Int).Neg(num)
	}

	r := term.NewRational(num, den)
	if exp > 0 {
		r = r.Mul(term.RationalFromInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)))
	} else if exp < 0 {
		r = r.Div(term.RationalFromInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-exp)), nil)))
	}
	return r, nil
}

func decodeIntSlice(raw json.RawMessage) ([]int, error) {
	var nums []json.Number
	if err := json.Unmarshal(raw, &nums); err != nil {
		return nil, fmt.Errorf("%w: invalid atom code list: %v", ErrProtocol, err)
	}
	out := make([]int, len(nums))
	for i, n := range nums {
		v, err := strconv.Atoi(n.String())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid atom character code %q", ErrProtocol, n.String())
		}
		out[i] = v
	}
	return out, nil
}

func codesToAtomCons(codes []int) *term.AtomCons {
	a := term.ANil()
	for i := len(codes) - 1; i >= 0; i-- {
		a = term.ACons(codes[i], a)
	}
	return a
}

func atomToCodes(a *term.AtomCons) []int {
	var out []int
	cur := a
	for cur != nil && !cur.Nil {
		out = append(out, cur.Code)
		cur = cur.Tail
	}
	return out
}

// Decode renders a fully concrete theory Term back into interchange JSON
// (spec.md §4.1's output form), used by the Solution Extractor.
func (c *Codec) Decode(t *term.Term) (wire.TermJSON, error) {
	switch t.Kind {
	case term.Int:
		return wire.TermJSON{T: strPtr("Int"), V: json.RawMessage(t.IntVal.String())}, nil

	case term.Real:
		// Reals are modeled exactly but reported as decimal approximations
		// (spec.md §9, "unsound real-to-float mapping").
		dec := t.RealVal.Decimal(10)
		return wire.TermJSON{T: strPtr("Real"), V: json.RawMessage(dec)}, nil

	case term.List, term.Tuple:
		elems, ok := t.ListVal.ToSlice()
		if !ok {
			return wire.TermJSON{}, fmt.Errorf("%w: improper list encountered while decoding a model", ErrInternal)
		}
		items := make([]wire.TermJSON, len(elems))
		for i, e := range elems {
			it, err := c.Decode(e)
			if err != nil {
				return wire.TermJSON{}, err
			}
			items[i] = it
		}
		b, err := json.Marshal(items)
		if err != nil {
			return wire.TermJSON{}, fmt.Errorf("%w: marshaling decoded list: %v", ErrInternal, err)
		}
		kindStr := "List"
		if t.Kind == term.Tuple {
			kindStr = "Tuple"
		}
		return wire.TermJSON{T: strPtr(kindStr), V: b}, nil

	case term.Atom:
		codes := atomToCodes(t.AtomVal)
		b, err := json.Marshal(codes)
		if err != nil {
			return wire.TermJSON{}, fmt.Errorf("%w: marshaling decoded atom: %v", ErrInternal, err)
		}
		return wire.TermJSON{T: strPtr("Atom"), V: b}, nil

	default:
		return wire.TermJSON{}, fmt.Errorf("%w: unknown term kind %v while decoding a model", ErrInternal, t.Kind)
	}
}

func strPtr(s string) *string { return &s }
