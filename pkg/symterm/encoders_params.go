package symterm

import (
	"encoding/json"
	"fmt"

	"github.com/gitrdm/symterm/pkg/wire"
)

// encodePms asserts Pms(x1, x2, ...): declares each xi's symbolic name as a
// solve parameter, in declaration order (spec.md §3.2/§4.6/§8 scenario 6).
// The original's _json_cmd_define_params_to_z3 takes *args, so one Pms
// command may declare any number of parameters at once; every xi must be a
// symbolic term, and declaring an alias or concrete value as a parameter is
// a protocol error.
func encodePms(cmd wire.CommandJSON, sess *Session) error {
	if len(cmd.A) == 0 {
		return fmt.Errorf("%w: Pms requires at least one argument", ErrProtocol)
	}
	for _, arg := range cmd.A {
		shape, err := arg.Classify()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProtocol, err)
		}
		if shape != wire.ShapeSymbolic {
			return fmt.Errorf("%w: Pms requires a symbolic term", ErrProtocol)
		}
		name := *arg.S
		sess.env.AddParam(name)
		sess.env.Lookup(name)
	}
	return nil
}

// encodePsp asserts Psp(x, typespec): binds the Type-Spec Binder's domain
// for x (spec.md §4.5). x must be symbolic; typespec travels as a
// bare-literal argument carrying the type-spec object's raw JSON.
func encodePsp(cmd wire.CommandJSON, sess *Session) error {
	if err := arity(cmd, 2); err != nil {
		return err
	}
	shape, err := cmd.A[0].Classify()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if shape != wire.ShapeSymbolic {
		return fmt.Errorf("%w: Psp requires a symbolic term", ErrProtocol)
	}
	v := sess.env.Lookup(*cmd.A[0].S)

	if cmd.A[1].V == nil {
		return fmt.Errorf("%w: Psp's second argument must carry a type-spec object", ErrProtocol)
	}
	var ts wire.TypeSigJSON
	if err := json.Unmarshal(cmd.A[1].V, &ts); err != nil {
		return fmt.Errorf("%w: decoding type-spec object: %v", ErrProtocol, err)
	}
	touch(sess, v)
	return BindTypeSpec(sess, v, ts)
}
