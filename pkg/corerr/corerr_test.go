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

package corerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormatsMessageWithoutNodeContext(t *testing.T) {
	err := New(DivisionByZero, "rational %d/%d is undefined", 1, 0)
	assert.Equal(t, "DivisionByZero: rational 1/0 is undefined", err.Error())
}

func TestOnNodeIncludesNodeDescription(t *testing.T) {
	err := OnNode(AssertionFailure, 42, "Identifier(balance)", "state variable has no storage allocation entry")
	assert.Equal(t, "AssertionFailure: state variable has no storage allocation entry (node #42: Identifier(balance))", err.Error())
	assert.Equal(t, int64(42), err.NodeID)
}

func TestIsMatchesKindAndRejectsOtherErrors(t *testing.T) {
	err := New(NotSupportedYet, "bare mapping reference")

	assert.True(t, Is(err, NotSupportedYet))
	assert.False(t, Is(err, WillNotSupport))
	assert.False(t, Is(errors.New("plain error"), NotSupportedYet))
}

func TestKindStringCoversEveryKind(t *testing.T) {
	kinds := []Kind{UnhandledType, NotSupportedYet, WillNotSupport, TranspileFailed, AssertionFailure, DivisionByZero}
	seen := make(map[string]bool, len(kinds))

	for _, k := range kinds {
		s := k.String()
		assert.NotEqual(t, "", s)
		assert.False(t, seen[s], "kind string %q is not unique", s)
		seen[s] = true
	}
}
