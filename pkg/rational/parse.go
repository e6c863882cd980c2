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
	"strings"

	"github.com/ftupas/warp/pkg/corerr"
)

// Parse implements the compile-time numeric literal grammar: digit
// separators are stripped first; a "num/den" fraction (the form String
// renders) is split on its first '/' and each side parsed on its own; then
// a hex prefix, scientific notation, or a decimal point are checked for in
// that order, falling back to a plain decimal integer.
func Parse(s string) (*Literal, error) {
	s = strings.ReplaceAll(s, "_", "")

	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		num, err := Parse(s[:idx])
		if err != nil {
			return nil, err
		}

		den, err := Parse(s[idx+1:])
		if err != nil {
			return nil, err
		}

		return num.DivideBy(den)
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, corerr.New(corerr.TranspileFailed, "invalid hex literal %q", s)
		}

		return FromBigInt(n), nil
	}

	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		return parseScientific(s[:idx], s[idx+1:])
	}

	return parseDecimalOrInteger(s)
}

func parseScientific(coefficientStr, exponentStr string) (*Literal, error) {
	coefficient, err := parseDecimalOrInteger(coefficientStr)
	if err != nil {
		return nil, err
	}

	exponent, ok := new(big.Int).SetString(exponentStr, 10)
	if !ok {
		return nil, corerr.New(corerr.TranspileFailed, "invalid exponent %q", exponentStr)
	}

	if exponent.Sign() >= 0 {
		factor := new(big.Int).Exp(big.NewInt(10), exponent, nil)
		return New(new(big.Int).Mul(coefficient.Num, factor), coefficient.Den)
	}

	factor := new(big.Int).Exp(big.NewInt(10), new(big.Int).Neg(exponent), nil)

	return New(coefficient.Num, new(big.Int).Mul(coefficient.Den, factor))
}

func parseDecimalOrInteger(s string) (*Literal, error) {
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart := strings.TrimLeft(s[:idx], "0")
		decimalPart := strings.TrimRight(s[idx+1:], "0")

		if intPart == "" && decimalPart == "" {
			return FromInt64(0), nil
		}

		combined := intPart + decimalPart
		if combined == "" {
			combined = "0"
		}

		num, ok := new(big.Int).SetString(combined, 10)
		if !ok {
			return nil, corerr.New(corerr.TranspileFailed, "invalid decimal literal %q", s)
		}

		den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(decimalPart))), nil)

		return New(num, den)
	}

	if s == "" {
		return FromInt64(0), nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, corerr.New(corerr.TranspileFailed, "invalid integer literal %q", s)
	}

	return FromBigInt(n), nil
}
