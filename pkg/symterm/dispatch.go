package symterm

import (
	"fmt"

	"github.com/gitrdm/symterm/internal/solve"
	"github.com/gitrdm/symterm/pkg/term"
	"github.com/gitrdm/symterm/pkg/wire"
)

// encoder is the shape every Constraint Encoder satisfies: given a command's
// raw arguments and the session they act against, assert whatever the
// opcode means against the session's solver. Encoders never decide
// satisfiability themselves; they register facts (eager narrowings and/or
// verifier closures) for the eventual search to check.
type encoder func(cmd wire.CommandJSON, sess *Session) error

// dispatchTable is the Command Dispatcher's forward opcode table (spec.md
// §4.2), grounded 1:1 on the original's json_command_to_z3 "opts" dict.
var dispatchTable = map[string]encoder{
	"Eq":  encodeEq,
	"Neq": encodeNeq,
	"T":   encodeT,
	"F":   encodeF,

	"Nel": encodeNel,
	"El":  encodeEl,
	"Nl":  encodeNl,
	"Nt":  encodeNt,
	"Ts":  encodeTs,
	"Nts": encodeNts,

	"=:=": encodeStrictEq,
	"=/=": encodeStrictNeq,

	"+":   encodeAdd,
	"-":   encodeSub,
	"*":   encodeMul,
	"/":   encodeFDiv,
	"div": encodeIntDiv,
	"rem": encodeRem,
	"abs": encodeAbs,

	"or":   encodeOr,
	"and":  encodeAnd,
	"ore":  encodeOrElse,
	"anda": encodeAndAlso,
	"not":  encodeNot,
	"xor":  encodeXor,

	"<":  encodeLt,
	">":  encodeGt,
	">=": encodeGe,
	"=<": encodeLe,

	"hd":  encodeHd,
	"tl":  encodeTl,
	"elm": encodeElm,
	"ltt": encodeListToTuple,
	"ttl": encodeTupleToList,

	"flt": encodeFloat,
	"rnd": encodeRound,
	"trc": encodeTrunc,

	"isa": encodeIsAtom,
	"isb": encodeIsBoolean,
	"isf": encodeIsFloat,
	"isi": encodeIsInteger,
	"isl": encodeIsList,
	"isn": encodeIsNumber,
	"ist": encodeIsTuple,

	"len":  encodeLength,
	"tpls": encodeTupleSize,
	"mtpl": encodeMakeTuple,

	"Bkt": encodeBreakTuple,
	"Bkl": encodeBreakList,

	"Pms": encodePms,
	"Psp": encodePsp,
}

// reverseDispatchTable is the Command Dispatcher's reverse opcode table,
// grounded 1:1 on the original's "opts_rev" dict. Reversal is a curated
// substitution of handlers, not a uniform "negate the predicate": most
// entries are genuine logical negations (Eq<->Neq, T<->F, Nel's own
// conjunction, Ts's own conjunction), but El, Nl, Nt, and Nts reverse to a
// specific different handler rather than their own negation — El and Nl
// both reverse to forcing a non-empty list (not merely "not empty" or "is a
// list"), and Nt and Nts both reverse to Ts itself (forcing the exact
// arity), not to "is some tuple" or "is a tuple of any other arity". Only
// the opcodes present here ever carry cmd.R; every other opcode's reverse
// flag is a protocol error, exactly as the original has no fallback entry
// for them and would fail to dispatch.
var reverseDispatchTable = map[string]encoder{
	"Eq":  encodeNeq,
	"Neq": encodeEq,
	"T":   encodeF,
	"F":   encodeT,

	"Nel": encodeNelReversed,
	"El":  encodeNel,
	"Nl":  encodeNel,
	"Ts":  encodeTsReversed,
	"Nt":  encodeTs,
	"Nts": encodeTs,
}

// resolveEncoder looks cmd.C up in the forward or reverse dispatch table
// depending on cmd.R, per spec.md §4.2's Command Dispatcher.
func resolveEncoder(cmd wire.CommandJSON) (encoder, error) {
	table := dispatchTable
	if cmd.R {
		table = reverseDispatchTable
	}
	enc, ok := table[cmd.C]
	if !ok {
		if cmd.R {
			return nil, fmt.Errorf("%w: opcode %q does not support the reverse flag", ErrProtocol, cmd.C)
		}
		return nil, fmt.Errorf("%w: unknown opcode %q", ErrProtocol, cmd.C)
	}
	return enc, nil
}

// arity returns a protocol error unless cmd carries exactly n arguments.
func arity(cmd wire.CommandJSON, n int) error {
	if len(cmd.A) != n {
		return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrProtocol, cmd.C, n, len(cmd.A))
	}
	return nil
}

// argVar encodes cmd's i-th argument to a solver variable.
func argVar(cmd wire.CommandJSON, sess *Session, i int) (*solve.Var, error) {
	return sess.codec.EncodeToVar(cmd.A[i])
}

// touch marks every given variable as having been constrained by something,
// so the Solution Extractor never reports it as an unconstrained parameter.
func touch(sess *Session, vars ...*solve.Var) {
	for _, v := range vars {
		sess.solver.MarkTouched(v)
	}
}

// assertBoolResult is the shared shape behind every BIF whose last argument
// is a boolean result variable computed from the rest (the predicate BIFs,
// the logical connectives, strict (in)equality): resolve the predicate
// lazily against a candidate model, and require the result variable to
// equal the canonical true/false atom accordingly. negate flips the whole
// predicate (used to share one implementation between =:= and =/=); none of
// these opcodes carry cmd.R themselves (see reverseDispatchTable).
// Ordering comparisons use encodeCompare directly instead, since they need
// to reproduce spec.md §9's total-order gap rather than always being able
// to pick a satisfying result value.
func assertBoolResult(sess *Session, describe string, resultArg wire.TermJSON, negate bool, predicate func(m *solve.Model) (bool, error)) error {
	y, err := sess.codec.EncodeToVar(resultArg)
	if err != nil {
		return err
	}
	sess.solver.AssertKind(y, solve.KindAtom, false)
	touch(sess, y)
	sess.solver.Assert(describe, func(m *solve.Model) (bool, error) {
		want, err := predicate(m)
		if err != nil {
			return false, err
		}
		if negate {
			want = !want
		}
		return m.Resolve(y).Equal(term.BoolTerm(want)), nil
	})
	return nil
}

// assertValueResult is assertBoolResult's counterpart for BIFs whose result
// is an arbitrary Term (the arithmetic BIFs): compute produces the result's
// value given a candidate model, or ok=false if the operation is undefined
// for that candidate (e.g. division by zero), which simply rejects the
// candidate rather than signaling a protocol/internal error.
func assertValueResult(sess *Session, describe string, resultArg wire.TermJSON, compute func(m *solve.Model) (val *term.Term, ok bool, err error)) error {
	y, err := sess.codec.EncodeToVar(resultArg)
	if err != nil {
		return err
	}
	touch(sess, y)
	sess.solver.Assert(describe, func(m *solve.Model) (bool, error) {
		val, ok, err := compute(m)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		return m.Resolve(y).Equal(val), nil
	})
	return nil
}
