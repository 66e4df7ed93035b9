package symterm

import "github.com/gitrdm/symterm/pkg/term"

// ascWant and descWant are the original's opts_asc/opts_desc dicts: for a
// cross-kind-band pair ordered ascending (the lower-banded operand first)
// or descending (the lower-banded operand second), whether each comparison
// operator holds.
var ascWant = map[string]bool{"<": true, "=<": true, ">": false, ">=": false}
var descWant = map[string]bool{"<": false, "=<": false, ">": true, ">=": true}

func isNumericTerm(t *term.Term) bool {
	return t.Kind == term.Int || t.Kind == term.Real
}

// numCompare compares two numeric Terms (Int/Real, freely mixed), returning
// <0, 0, or >0.
func numCompare(a, b *term.Term) int {
	return numericRational(a).Cmp(numericRational(b))
}

func numericRational(t *term.Term) term.Rational {
	if t.Kind == term.Real {
		return t.RealVal
	}
	return term.RationalFromInt(t.IntVal)
}

// compH is the original's _comp_h: a plain numeric comparison against op.
func compH(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "=<":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// compareHolds decides whether op(x, y) holds, grounded 1:1 on the
// original's _term_comparison (z3_utils.py): numbers compare numerically
// across Int/Real; a number always orders below any atom/tuple/list; an
// atom always orders below any tuple/list; a tuple always orders below any
// list. The second return value is false exactly when no disjunct of the
// original's Or(*es) applies — same-kind pairs of atoms, tuples (of any
// arity), or lists. The original's comment marks this explicitly ("Missing
// (Atom - Atom) & (Tuple - Tuple) & (List - List)"): for those pairs,
// Or(*es) collapses to a literal False regardless of the result variable,
// so the whole comparison command is unconditionally unsatisfiable rather
// than merely "unordered". spec.md §9 requires reproducing this gap as-is,
// not approximating it with a guessed total order.
func compareHolds(op string, x, y *term.Term) (holds bool, ok bool) {
	switch {
	case isNumericTerm(x) && isNumericTerm(y):
		return compH(op, numCompare(x, y)), true
	case isNumericTerm(x) && !isNumericTerm(y):
		return ascWant[op], true
	case !isNumericTerm(x) && isNumericTerm(y):
		return descWant[op], true
	case x.Kind == term.Atom && (y.Kind == term.Tuple || y.Kind == term.List):
		return ascWant[op], true
	case (x.Kind == term.Tuple || x.Kind == term.List) && y.Kind == term.Atom:
		return descWant[op], true
	case x.Kind == term.Tuple && y.Kind == term.List:
		return ascWant[op], true
	case x.Kind == term.List && y.Kind == term.Tuple:
		return descWant[op], true
	default:
		return false, false
	}
}
