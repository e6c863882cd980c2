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

import "strings"

// CanonicalMangle deterministically rewrites any punctuation illegal in a
// target-language identifier into underscores. It is shared by the type
// translator (UserDefined/Builtin/BuiltinStruct names) and the mapper
// framework's `__warp_<prefix>_<counter>` generator, since both need the
// same "make this name target-legal" rule.
//
// This is a pure total function of its input string; collision-freedom
// across distinct front-end names is asserted by callers but not proved
// here.
func CanonicalMangle(name string) string {
	if name == "" {
		return "_"
	}

	var b strings.Builder
	b.Grow(len(name))

	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}

			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return b.String()
}
