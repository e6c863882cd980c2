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

package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftupas/warp/pkg/ast"
)

func newAssignmentTree(ctx *ast.Context) int64 {
	lhs := ctx.NewIdentifier("x", ast.NoID)
	rhs := ctx.NewLiteral("1")
	assign := ctx.NewAssignment("=", lhs.Id(), rhs.Id())

	ctx.Register(assign, ast.NoID)
	ctx.Register(lhs, assign.Id())
	ctx.Register(rhs, assign.Id())

	return assign.Id()
}

func TestCommonVisitRecursesIntoEveryChild(t *testing.T) {
	ctx := ast.NewContext()
	assign := newAssignmentTree(ctx)
	visited := map[int64]bool{}

	table := &VisitorTable{
		OnIdentifier: func(_ *ast.Context, id int64, _ *ast.Identifier) error {
			visited[id] = true
			return nil
		},
		OnLiteral: func(_ *ast.Context, id int64, _ *ast.Literal) error {
			visited[id] = true
			return nil
		},
	}

	require.NoError(t, Dispatch(ctx, assign, table))
	assert.Len(t, visited, 2)
}

func TestDispatchSkipsUnregisteredNode(t *testing.T) {
	ctx := ast.NewContext()
	lit := ctx.NewLiteral("1")
	ctx.Register(lit, ast.NoID)

	called := false
	table := &VisitorTable{
		OnLiteral: func(_ *ast.Context, _ int64, _ *ast.Literal) error {
			called = true
			return nil
		},
	}

	require.NoError(t, Dispatch(ctx, 9999, table))
	assert.False(t, called)
}

func TestNameGeneratorIsDeterministicAndInstanceLocal(t *testing.T) {
	g1 := NewNameGenerator()
	assert.Equal(t, "__warp_td_0", g1.Next("td"))
	assert.Equal(t, "__warp_td_1", g1.Next("td"))

	g2 := NewNameGenerator()
	assert.Equal(t, "__warp_td_0", g2.Next("td"), "a fresh generator must not see another instance's counters")
}
