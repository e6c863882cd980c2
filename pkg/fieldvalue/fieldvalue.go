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

// Package fieldvalue bridges a folded compile-time rational literal (pkg
// rational) to the target language's own numeric representations: a
// single-limb felt (one prime field element) or a two-limb Uint256
// (low/high felt pair). It reuses gnark-crypto's bls12-377 scalar field
// element as the concrete single-limb representation.
package fieldvalue

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/ftupas/warp/pkg/corerr"
	"github.com/ftupas/warp/pkg/rational"
	"github.com/ftupas/warp/pkg/typesys"
)

// limbBits is the width of one Uint256 limb.
const limbBits = 128

// Value is a folded literal's concrete numeric representation: exactly one
// of Felt (single-limb) or {Low, High} (two-limb Uint256) is meaningful,
// selected by IsUint256.
type Value struct {
	IsUint256 bool
	Felt      fr.Element
	Low       fr.Element
	High      fr.Element
}

// FromRational folds an exact rational literal that resolves to an integer
// into the target representation implied by bitWidth, splitting into
// low/high 128-bit limbs whenever bitWidth exceeds typesys.FeltBitWidth.
func FromRational(r *rational.Literal, bitWidth uint) (Value, error) {
	n, ok := r.ToInteger()
	if !ok {
		return Value{}, corerr.New(corerr.TranspileFailed,
			"cannot fold non-integer rational %s into a field value", r)
	}

	if bitWidth <= typesys.FeltBitWidth {
		var elem fr.Element
		elem.SetBigInt(n)

		return Value{Felt: elem}, nil
	}

	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), limbBits), big.NewInt(1))
	low := new(big.Int).And(n, mask)
	high := new(big.Int).Rsh(n, limbBits)

	var lowElem, highElem fr.Element

	lowElem.SetBigInt(low)
	highElem.SetBigInt(high)

	return Value{IsUint256: true, Low: lowElem, High: highElem}, nil
}

// String renders the value the way it would appear spliced into generated
// Cairo-like source: a bare felt literal, or a `Uint256(low, high)`
// constructor call for the two-limb case.
func (v Value) String() string {
	if !v.IsUint256 {
		var b big.Int
		v.Felt.BigInt(&b)

		return b.String()
	}

	var lowB, highB big.Int
	v.Low.BigInt(&lowB)
	v.High.BigInt(&highB)

	return "Uint256(" + lowB.String() + ", " + highB.String() + ")"
}
