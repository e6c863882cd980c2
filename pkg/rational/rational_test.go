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

package rational

import (
	"math/big"
	"testing"

	"github.com/ftupas/warp/pkg/corerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalisesNegativeDenominator(t *testing.T) {
	l, err := New(big.NewInt(3), big.NewInt(-4))
	require.NoError(t, err)
	assert.Equal(t, "-3/4", l.String())
	assert.True(t, l.Den.Sign() > 0)
}

func TestNewZeroDenominatorIsDivisionByZero(t *testing.T) {
	_, err := New(big.NewInt(1), big.NewInt(0))
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.DivisionByZero))
}

func TestAddEqualDenominators(t *testing.T) {
	a, b := FromInt64(1), FromInt64(2)
	sum := a.Add(b)
	assert.Equal(t, "3", sum.String())
}

func TestAddOneDenominatorDividesOther(t *testing.T) {
	a := must(New(big.NewInt(1), big.NewInt(2)))
	b := must(New(big.NewInt(1), big.NewInt(4)))
	sum := a.Add(b)
	assert.True(t, sum.EqualValueOf(must(New(big.NewInt(3), big.NewInt(4)))))
}

func TestAddCrossMultiply(t *testing.T) {
	a := must(New(big.NewInt(1), big.NewInt(3)))
	b := must(New(big.NewInt(1), big.NewInt(5)))
	sum := a.Add(b)
	assert.True(t, sum.EqualValueOf(must(New(big.NewInt(8), big.NewInt(15)))))
}

func TestMultiplyThenDivideRoundTrips(t *testing.T) {
	for _, pair := range [][2]*Literal{
		{FromInt64(3), FromInt64(4)},
		{must(New(big.NewInt(-5), big.NewInt(7))), FromInt64(2)},
		{must(New(big.NewInt(22), big.NewInt(7))), must(New(big.NewInt(-3), big.NewInt(11)))},
	} {
		a, b := pair[0], pair[1]
		product := a.Multiply(b)
		back, err := product.DivideBy(b)
		require.NoError(t, err)
		assert.True(t, back.EqualValueOf(a), "%s * %s / %s should equal %s", a, b, b, a)
	}
}

func TestAddNegationIsZero(t *testing.T) {
	for _, a := range []*Literal{FromInt64(7), must(New(big.NewInt(-5), big.NewInt(3)))} {
		zero := a.Add(a.Negate())
		assert.True(t, zero.EqualValueOf(FromInt64(0)))
	}
}

func TestDivideByZeroNumerator(t *testing.T) {
	a := FromInt64(5)
	zero := FromInt64(0)
	_, err := a.DivideBy(zero)
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.DivisionByZero))
}

func TestExpZeroExponentAlwaysOne(t *testing.T) {
	for _, base := range []*Literal{FromInt64(0), FromInt64(5), must(New(big.NewInt(-3), big.NewInt(2)))} {
		r, err := base.Exp(FromInt64(0))
		require.NoError(t, err)
		assert.True(t, r.EqualValueOf(FromInt64(1)))
	}
}

func TestExpPositiveInteger(t *testing.T) {
	base := must(New(big.NewInt(2), big.NewInt(3)))
	r, err := base.Exp(FromInt64(3))
	require.NoError(t, err)
	assert.True(t, r.EqualValueOf(must(New(big.NewInt(8), big.NewInt(27)))))
}

func TestExpNegativeIntegerPositiveNumerator(t *testing.T) {
	base := must(New(big.NewInt(2), big.NewInt(3)))
	r, err := base.Exp(FromInt64(-2))
	require.NoError(t, err)
	assert.True(t, r.EqualValueOf(must(New(big.NewInt(9), big.NewInt(4)))))
}

func TestExpNegativeIntegerNegativeNumeratorOddPreservesSign(t *testing.T) {
	base := must(New(big.NewInt(-2), big.NewInt(3)))
	r, err := base.Exp(FromInt64(-3))
	require.NoError(t, err)
	// (-2/3)^-3 = (3/-2)^3 = -27/8
	assert.True(t, r.EqualValueOf(must(New(big.NewInt(-27), big.NewInt(8)))))
}

func TestExpNegativeIntegerNegativeNumeratorEvenIsPositive(t *testing.T) {
	base := must(New(big.NewInt(-2), big.NewInt(3)))
	r, err := base.Exp(FromInt64(-2))
	require.NoError(t, err)
	assert.True(t, r.EqualValueOf(must(New(big.NewInt(9), big.NewInt(4)))))
}

func TestExpZeroBaseNegativeExponentIsDivisionByZero(t *testing.T) {
	_, err := FromInt64(0).Exp(FromInt64(-1))
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.DivisionByZero))
}

func TestExpRequiresIntegerExponent(t *testing.T) {
	nonInteger := must(New(big.NewInt(1), big.NewInt(2)))
	_, err := FromInt64(2).Exp(nonInteger)
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.TranspileFailed))
}

func TestToIntegerExactness(t *testing.T) {
	q, ok := FromInt64(10).ToInteger()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(10), q)

	_, ok = must(New(big.NewInt(1), big.NewInt(3))).ToInteger()
	assert.False(t, ok)
}

func TestGreaterThan(t *testing.T) {
	assert.True(t, FromInt64(3).GreaterThan(FromInt64(2)))
	assert.False(t, FromInt64(2).GreaterThan(FromInt64(3)))
	assert.False(t, FromInt64(2).GreaterThan(FromInt64(2)))
}

func TestParseScientificNotation(t *testing.T) {
	l, err := Parse("1.5e2")
	require.NoError(t, err)
	q, ok := l.ToInteger()
	require.True(t, ok)
	assert.Equal(t, big.NewInt(150), q)
}

func TestParseHex(t *testing.T) {
	l, err := Parse("0x2a")
	require.NoError(t, err)
	assert.True(t, l.EqualValueOf(FromInt64(42)))
}

func TestParseDigitSeparators(t *testing.T) {
	l, err := Parse("1_000")
	require.NoError(t, err)
	assert.True(t, l.EqualValueOf(FromInt64(1000)))
}

func TestParseDecimal(t *testing.T) {
	l, err := Parse("3.1400")
	require.NoError(t, err)
	assert.True(t, l.EqualValueOf(must(New(big.NewInt(314), big.NewInt(100)))))
}

func TestParseBareDot(t *testing.T) {
	l, err := Parse(".")
	require.NoError(t, err)
	assert.True(t, l.EqualValueOf(FromInt64(0)))
}

func TestParseRoundTripsThroughString(t *testing.T) {
	for _, s := range []string{"1.5e2", "0x2a", "1_000", "3.14", "42"} {
		a, err := Parse(s)
		require.NoError(t, err)

		b, err := Parse(a.String())
		require.NoError(t, err)

		assert.True(t, a.EqualValueOf(b), "round trip of %q through String() changed value", s)
	}
}

func TestConstructionWithZeroDenominatorFails(t *testing.T) {
	_, err := New(big.NewInt(1), big.NewInt(0))
	require.Error(t, err)
}
