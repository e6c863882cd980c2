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

package typesys

import (
	"github.com/ftupas/warp/pkg/corerr"
)

// FeltBitWidth is the boundary at which an Int stops fitting in a single
// felt limb and must be represented as a two-limb Uint256.
const FeltBitWidth = 251

// Cairo translates a structural Type to its target-language type string.
// It is total over the closed Type sum: the default case below is reached
// only by a variant this function does not know about, which
// corerr.UnhandledType exists precisely to report.
func Cairo(t Type) (string, error) {
	switch v := t.(type) {
	case Int:
		if v.NBits <= FeltBitWidth {
			return "felt", nil
		}

		return "Uint256", nil
	case Bool, Address, String:
		return "felt", nil
	case Bytes:
		return "felt*", nil
	case Array:
		elem, err := Cairo(v.Element)
		if err != nil {
			return "", err
		}

		return elem + "*", nil
	case Mapping:
		// Diagnostics only: every read and write of a Mapping goes through
		// a generated helper, so this string is never emitted as a
		// declared variable type.
		value, err := Cairo(v.Value)
		if err != nil {
			return "", err
		}

		return v.Key.String() + " => " + value, nil
	case Function:
		return "felt*", nil
	case Pointer:
		return Cairo(v.Pointee)
	case Builtin:
		return CanonicalMangle(v.Name), nil
	case BuiltinStruct:
		return CanonicalMangle(v.Name), nil
	case UserDefined:
		return CanonicalMangle(v.Name), nil
	default:
		return "", corerr.New(corerr.UnhandledType, "typesys.Cairo: unhandled type variant %T", t)
	}
}

// IsFelt reports whether t translates to a single-limb felt, as opposed to
// the two-limb Uint256 representation.
func IsFelt(t Type) (bool, error) {
	s, err := Cairo(t)
	if err != nil {
		return false, err
	}

	return s == "felt", nil
}
