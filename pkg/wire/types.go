// Package wire defines the interchange JSON shapes spec.md §6 specifies:
// command objects, term objects (symbolic/concrete/aliased), type-spec
// objects, and the session meta-protocol envelope (SPEC_FULL.md §6.2). It
// holds no solving logic — only the shapes and their JSON (de)serialization.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TermJSON is one inbound term object, in any of the three interchange
// shapes spec.md §4.1/§6 defines:
//
//	symbolic: {"s": "name"}
//	concrete: {"t": "Int"|"Real"|"List"|"Tuple"|"Atom", "v": payload, "d": {...}}
//	aliased:  {"l": "name", "d": {...}}
//	bare literal: {"v": payload}  — a plain literal used for non-Term
//	              command arguments such as a tuple arity or element index
//	              (spec.md §8 scenarios 4 and 5).
type TermJSON struct {
	S *string                   `json:"s,omitempty"`
	T *string                   `json:"t,omitempty"`
	V json.RawMessage           `json:"v,omitempty"`
	L *string                   `json:"l,omitempty"`
	D map[string]json.RawMessage `json:"d,omitempty"`
}

// Shape classifies which of the interchange forms a TermJSON is in.
type Shape int

const (
	ShapeSymbolic Shape = iota
	ShapeConcrete
	ShapeAliased
	ShapeBareLiteral
)

// Classify determines t's interchange shape, or returns an error if it
// matches none (a protocol error per spec.md §7).
func (t TermJSON) Classify() (Shape, error) {
	switch {
	case t.S != nil:
		return ShapeSymbolic, nil
	case t.L != nil:
		return ShapeAliased, nil
	case t.T != nil:
		return ShapeConcrete, nil
	case t.V != nil:
		return ShapeBareLiteral, nil
	default:
		return 0, fmt.Errorf("wire: term object matches no known shape: %s", mustJSON(t))
	}
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "<unmarshalable>"
	}
	return string(b)
}

// CommandJSON is one inbound command: {"c": opcode, "a": [args...], "r"?: true}.
type CommandJSON struct {
	C string     `json:"c"`
	A []TermJSON `json:"a"`
	R bool       `json:"r,omitempty"`
}

// TypeSigJSON is one inbound type-spec object per spec.md §4.5:
// {"t": kind, "i"?: info, "a"?: [subsigs]}. info and the subsig list's shape
// both vary by kind, so they are kept as raw JSON and interpreted by the
// Type-Spec Binder for the specific kind at hand.
type TypeSigJSON struct {
	T string          `json:"t"`
	I json.RawMessage `json:"i,omitempty"`
	A []TypeSigJSON   `json:"a,omitempty"`
}

// SolutionEntry is one parameter's resolved value in a Solution, or the
// sentinel string "any" (spec.md §4.6) if nothing ever constrained it.
type SolutionEntry struct {
	Name  string
	Value interface{}
}

// Solution is the outbound mapping from parameter name to its decoded
// value, spec.md §4.6/§6. It is a slice rather than a Go map because
// spec.md §6/§9 requires the solution object's JSON key order to match the
// Pms declaration order, and encoding/json always marshals map keys in
// sorted order regardless of insertion order. MarshalJSON below writes the
// entries out in slice order instead.
type Solution []SolutionEntry

// MarshalJSON writes s as a JSON object with keys in declaration order,
// rather than the alphabetical order encoding/json would impose on a map.
func (s Solution) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, fmt.Errorf("wire: marshaling solution key %q: %w", e.Name, err)
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("wire: marshaling solution value for %q: %w", e.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value recorded for name and whether it was present.
func (s Solution) Get(name string) (interface{}, bool) {
	for _, e := range s {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}
