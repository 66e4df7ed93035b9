package wire

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Request is one line of the session meta-protocol (SPEC_FULL.md §6.2):
//
//	{"op": "cmd",   "cmd": {c, a, r?}}
//	{"op": "solve"}
//	{"op": "reset"}
//
// Op is decoded first from the raw line; Cmd is only populated for "cmd".
type Request struct {
	Op  string       `json:"op" mapstructure:"op"`
	Cmd *CommandJSON `json:"cmd,omitempty" mapstructure:"cmd"`
}

// DecodeRequest decodes one protocol line. The envelope goes through an
// interface{}-typed intermediate and github.com/go-viper/mapstructure/v2
// (weakly typed) rather than a direct json.Unmarshal into Request; the cmd
// payload is then decoded with encoding/json. Unknown fields are ignored
// and missing fields are left zero-valued (a line without "op" decodes
// with an empty Op); invalid JSON, or a field value that cannot be converted
// to its Go type, is a decode error.
func DecodeRequest(line []byte) (Request, error) {
	var generic map[string]interface{}
	if err := json.Unmarshal(line, &generic); err != nil {
		return Request{}, fmt.Errorf("wire: invalid JSON line: %w", err)
	}

	var req Request
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Request{}, fmt.Errorf("wire: building request decoder: %w", err)
	}
	if err := dec.Decode(generic); err != nil {
		return Request{}, fmt.Errorf("wire: decoding request envelope: %w", err)
	}

	if cmdRaw, ok := generic["cmd"]; ok && req.Op == "cmd" {
		b, err := json.Marshal(cmdRaw)
		if err != nil {
			return Request{}, fmt.Errorf("wire: re-marshaling cmd payload: %w", err)
		}
		var cmd CommandJSON
		if err := json.Unmarshal(b, &cmd); err != nil {
			return Request{}, fmt.Errorf("wire: decoding cmd payload: %w", err)
		}
		req.Cmd = &cmd
	}

	return req, nil
}

// Response is one line of protocol output. Exactly one of the result
// groups below is populated, selected by which fields are non-zero.
type Response struct {
	OK    *bool    `json:"ok,omitempty"`
	Error string   `json:"error,omitempty"`
	Kind  string   `json:"kind,omitempty"`
	Sat   *bool    `json:"sat,omitempty"`
	Solution Solution `json:"solution,omitempty"`
	Status   string   `json:"status,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

// Accepted builds the {"ok": true} response for an accepted command or
// reset.
func Accepted() Response { return Response{OK: boolPtr(true)} }

// ErrorResponse builds the {"ok": false, "error": ..., "kind": ...}
// response for a protocol/solver/internal error (SPEC_FULL.md §6.2).
func ErrorResponse(kind, message string) Response {
	return Response{OK: boolPtr(false), Error: message, Kind: kind}
}

// Satisfiable builds the {"sat": true, "solution": ...} response.
func Satisfiable(solution Solution) Response {
	return Response{Sat: boolPtr(true), Solution: solution}
}

// Unsatisfiable builds the {"sat": false, "status": "unsat"|"unknown"}
// response.
func Unsatisfiable(status string) Response {
	return Response{Sat: boolPtr(false), Status: status}
}
