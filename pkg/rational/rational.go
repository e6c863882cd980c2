// Copyright Warp Core Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package rational implements exact-rational compile-time arithmetic
// matching the input language's own numeric-literal evaluation semantics.
// Every Literal maintains the invariant that its denominator is strictly
// positive; the only way to violate that is to construct one with a zero
// denominator, which New reports as a corerr.DivisionByZero rather than
// allow.
package rational

import (
	"math/big"

	"github.com/ftupas/warp/pkg/corerr"
)

// Literal is an exact rational number, numerator over denominator, with
// denominator always strictly positive.
type Literal struct {
	Num *big.Int
	Den *big.Int
}

// New constructs a normalised Literal. A zero denominator is a
// corerr.DivisionByZero; a negative denominator is folded into the
// numerator's sign so the stored denominator is always positive.
func New(num, den *big.Int) (*Literal, error) {
	if den.Sign() == 0 {
		return nil, corerr.New(corerr.DivisionByZero, "rational literal with zero denominator")
	}

	n := new(big.Int).Set(num)
	d := new(big.Int).Set(den)

	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}

	return &Literal{Num: n, Den: d}, nil
}

// FromInt64 constructs the integer n/1.
func FromInt64(n int64) *Literal {
	return &Literal{Num: big.NewInt(n), Den: big.NewInt(1)}
}

// FromBigInt constructs the integer n/1.
func FromBigInt(n *big.Int) *Literal {
	return &Literal{Num: new(big.Int).Set(n), Den: big.NewInt(1)}
}

func must(l *Literal, err error) *Literal {
	if err != nil {
		panic("warp-core: unreachable: " + err.Error())
	}

	return l
}

// String renders "num/den", or bare "num" when the denominator is 1.
func (l *Literal) String() string {
	if l.Den.Cmp(big.NewInt(1)) == 0 {
		return l.Num.String()
	}

	return l.Num.String() + "/" + l.Den.String()
}

// Negate returns -l.
func (l *Literal) Negate() *Literal {
	return &Literal{Num: new(big.Int).Neg(l.Num), Den: new(big.Int).Set(l.Den)}
}

// Add uses a lazy common denominator: equal denominators add numerators
// directly; if one denominator evenly divides the other, only the smaller
// side is scaled; otherwise the two are cross-multiplied.
func (l *Literal) Add(o *Literal) *Literal {
	if l.Den.Cmp(o.Den) == 0 {
		return must(New(new(big.Int).Add(l.Num, o.Num), l.Den))
	}

	if mod := new(big.Int).Mod(l.Den, o.Den); mod.Sign() == 0 {
		factor := new(big.Int).Div(l.Den, o.Den)
		scaled := new(big.Int).Mul(o.Num, factor)

		return must(New(new(big.Int).Add(l.Num, scaled), l.Den))
	}

	if mod := new(big.Int).Mod(o.Den, l.Den); mod.Sign() == 0 {
		factor := new(big.Int).Div(o.Den, l.Den)
		scaled := new(big.Int).Mul(l.Num, factor)

		return must(New(new(big.Int).Add(scaled, o.Num), o.Den))
	}

	num := new(big.Int).Add(new(big.Int).Mul(l.Num, o.Den), new(big.Int).Mul(o.Num, l.Den))
	den := new(big.Int).Mul(l.Den, o.Den)

	return must(New(num, den))
}

// Subtract is Add with o's numerator negated.
func (l *Literal) Subtract(o *Literal) *Literal {
	return l.Add(o.Negate())
}

// Multiply is naive component-wise multiplication.
func (l *Literal) Multiply(o *Literal) *Literal {
	return must(New(new(big.Int).Mul(l.Num, o.Num), new(big.Int).Mul(l.Den, o.Den)))
}

// DivideBy is naive component-wise division; dividing by a rational whose
// numerator is zero propagates DivisionByZero via the resulting
// denominator.
func (l *Literal) DivideBy(o *Literal) (*Literal, error) {
	return New(new(big.Int).Mul(l.Num, o.Den), new(big.Int).Mul(l.Den, o.Num))
}

// Mod computes the rational modulo (n1*d2 mod n2*d1, d1*d2). Go's
// big.Int.Mod is Euclidean, so the numerator is non-negative for any
// non-zero modulus n2*d1, whatever its sign; the denominator d1*d2 is
// positive given the class invariant.
//
// TODO: sign semantics for negative operands are not yet reconciled against
// the input language's own modulo operator.
func (l *Literal) Mod(o *Literal) (*Literal, error) {
	modulus := new(big.Int).Mul(o.Num, l.Den)
	if modulus.Sign() == 0 {
		return nil, corerr.New(corerr.DivisionByZero, "rational modulo by a rational with zero numerator")
	}

	dividend := new(big.Int).Mul(l.Num, o.Den)
	num := new(big.Int).Mod(dividend, modulus)
	den := new(big.Int).Mul(l.Den, o.Den)

	return New(num, den)
}

// ToInteger returns the quotient iff division is exact, or (nil, false)
// otherwise.
func (l *Literal) ToInteger() (*big.Int, bool) {
	q, r := new(big.Int).QuoRem(l.Num, l.Den, new(big.Int))
	if r.Sign() != 0 {
		return nil, false
	}

	return q, true
}

// Exp raises l to the power of other, which must itself be an integer.
func (l *Literal) Exp(other *Literal) (*Literal, error) {
	k, ok := other.ToInteger()
	if !ok {
		return nil, corerr.New(corerr.TranspileFailed, "rational exponent %s is not an integer", other)
	}

	switch {
	case k.Sign() == 0:
		return FromInt64(1), nil
	case k.Sign() > 0:
		if l.Num.Sign() == 0 {
			return New(big.NewInt(0), big.NewInt(1))
		}

		return New(new(big.Int).Exp(l.Num, k, nil), new(big.Int).Exp(l.Den, k, nil))
	default:
		negk := new(big.Int).Neg(k)

		switch l.Num.Sign() {
		case 0:
			return nil, corerr.New(corerr.DivisionByZero, "rational exponentiation of zero to a negative power")
		case 1:
			return New(new(big.Int).Exp(l.Den, negk, nil), new(big.Int).Exp(l.Num, negk, nil))
		default:
			absNum := new(big.Int).Abs(l.Num)
			num := new(big.Int).Exp(l.Den, negk, nil)
			den := new(big.Int).Exp(absNum, negk, nil)

			if negk.Bit(0) == 1 {
				num.Neg(num)
			}

			return New(num, den)
		}
	}
}

// EqualValueOf compares l and o by cross-multiplication; valid because both
// denominators are strictly positive.
func (l *Literal) EqualValueOf(o *Literal) bool {
	lhs := new(big.Int).Mul(l.Num, o.Den)
	rhs := new(big.Int).Mul(o.Num, l.Den)

	return lhs.Cmp(rhs) == 0
}

// GreaterThan compares l and o by cross-multiplication; valid for the same
// reason as EqualValueOf.
func (l *Literal) GreaterThan(o *Literal) bool {
	lhs := new(big.Int).Mul(l.Num, o.Den)
	rhs := new(big.Int).Mul(o.Num, l.Den)

	return lhs.Cmp(rhs) > 0
}
