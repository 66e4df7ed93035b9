package term

import (
	"fmt"
	"math/big"
)

// Rational is an exact rational number with arbitrary-precision numerator
// and denominator, normalized to lowest terms with a positive denominator.
//
// This generalizes the machine-int rational used elsewhere in the style this
// package follows: spec.md's real(r) must hold values of unbounded
// magnitude and precision (mirroring an SMT RealSort), which a 64-bit
// int/int pair cannot guarantee without silent overflow.
type Rational struct {
	Num *big.Int // numerator
	Den *big.Int // denominator, always > 0 after normalization
}

// NewRational builds num/den in normalized form. Panics if den is zero, the
// same contract as an ordinary division by zero.
func NewRational(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		panic("term: rational division by zero")
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return Rational{Num: big.NewInt(0), Den: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), new(big.Int).Abs(d))
	n.Quo(n, g)
	d.Quo(d, g)
	return Rational{Num: n, Den: d}
}

// RationalFromInt lifts an integer into Rational, denominator 1.
func RationalFromInt(i *big.Int) Rational {
	return Rational{Num: new(big.Int).Set(i), Den: big.NewInt(1)}
}

// RationalFromInt64 is a convenience constructor for small literals.
func RationalFromInt64(n, d int64) Rational {
	return NewRational(big.NewInt(n), big.NewInt(d))
}

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	num := new(big.Int).Add(new(big.Int).Mul(r.Num, other.Den), new(big.Int).Mul(other.Num, r.Den))
	den := new(big.Int).Mul(r.Den, other.Den)
	return NewRational(num, den)
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	num := new(big.Int).Sub(new(big.Int).Mul(r.Num, other.Den), new(big.Int).Mul(other.Num, r.Den))
	den := new(big.Int).Mul(r.Den, other.Den)
	return NewRational(num, den)
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	num := new(big.Int).Mul(r.Num, other.Num)
	den := new(big.Int).Mul(r.Den, other.Den)
	return NewRational(num, den)
}

// Div returns r / other. Panics if other is zero.
func (r Rational) Div(other Rational) Rational {
	if other.Num.Sign() == 0 {
		panic("term: rational division by zero")
	}
	num := new(big.Int).Mul(r.Num, other.Den)
	den := new(big.Int).Mul(r.Den, other.Num)
	return NewRational(num, den)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{Num: new(big.Int).Neg(r.Num), Den: new(big.Int).Set(r.Den)}
}

// IsZero reports whether r is zero.
func (r Rational) IsZero() bool { return r.Num.Sign() == 0 }

// IsPositive reports whether r > 0.
func (r Rational) IsPositive() bool { return r.Num.Sign() > 0 }

// IsNegative reports whether r < 0.
func (r Rational) IsNegative() bool { return r.Num.Sign() < 0 }

// Cmp compares r and other, returning -1, 0, or +1.
func (r Rational) Cmp(other Rational) int {
	lhs := new(big.Int).Mul(r.Num, other.Den)
	rhs := new(big.Int).Mul(other.Num, r.Den)
	return lhs.Cmp(rhs)
}

// Equal reports whether r and other denote the same rational value.
// Both sides are kept normalized, so structural equality suffices.
func (r Rational) Equal(other Rational) bool {
	return r.Num.Cmp(other.Num) == 0 && r.Den.Cmp(other.Den) == 0
}

// String renders "num" when the denominator is 1, else "num/den".
func (r Rational) String() string {
	if r.Den.Cmp(big.NewInt(1)) == 0 {
		return r.Num.String()
	}
	return fmt.Sprintf("%s/%s", r.Num.String(), r.Den.String())
}

// Decimal renders a fixed-precision decimal approximation of r, the way a
// decoded solution surfaces real(r) to the driver (spec.md §4.1: "Real
// numbers are rendered as decimal approximations" since JSON has no exact
// rational literal).
func (r Rational) Decimal(precision int) string {
	if precision < 0 {
		precision = 0
	}
	neg := r.Num.Sign() < 0
	num := new(big.Int).Abs(r.Num)
	den := r.Den

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	scaled := new(big.Int).Mul(num, scale)
	q, rem := new(big.Int).QuoRem(scaled, den, new(big.Int))
	// round half up
	twice := new(big.Int).Mul(rem, big.NewInt(2))
	if twice.Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	qs := q.String()
	if precision == 0 {
		if neg && q.Sign() != 0 {
			return "-" + qs
		}
		return qs
	}
	for len(qs) <= precision {
		qs = "0" + qs
	}
	intPart := qs[:len(qs)-precision]
	fracPart := qs[len(qs)-precision:]
	out := intPart + "." + fracPart
	if neg && q.Sign() != 0 {
		out = "-" + out
	}
	return out
}
