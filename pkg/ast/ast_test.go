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

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentifier(ctx *Context, parent int64, name string) *Identifier {
	id := &Identifier{base: base{id: ctx.ReserveId()}, Name: name, ReferencedDeclarationID: NoID}
	ctx.Register(id, parent)

	return id
}

func newLiteral(ctx *Context, parent int64, value string) *Literal {
	lit := &Literal{base: base{id: ctx.ReserveId()}, Value: value}
	ctx.Register(lit, parent)

	return lit
}

func TestRegisterAndLookup(t *testing.T) {
	ctx := NewContext()
	assign := &Assignment{base: base{id: ctx.ReserveId()}, Operator: "="}
	ctx.Register(assign, NoID)

	lhs := newIdentifier(ctx, assign.Id(), "x")
	rhs := newLiteral(ctx, assign.Id(), "5")
	assign.LeftHandSideID = lhs.Id()
	assign.RightHandSideID = rhs.Id()

	got, ok := ctx.Get(assign.Id())
	require.True(t, ok)
	assert.Equal(t, KindAssignment, got.Kind())
	assert.ElementsMatch(t, []int64{lhs.Id(), rhs.Id()}, assign.Children())
}

func TestReplaceNodePreservesParentReference(t *testing.T) {
	ctx := NewContext()
	assign := &Assignment{base: base{id: ctx.ReserveId()}, Operator: "="}
	ctx.Register(assign, NoID)

	lhs := newIdentifier(ctx, assign.Id(), "x")
	rhs := newLiteral(ctx, assign.Id(), "5")
	assign.LeftHandSideID = lhs.Id()
	assign.RightHandSideID = rhs.Id()

	call := &FunctionCall{base: base{id: ctx.ReserveId()}, CalleeID: NoID}
	ctx.Register(call, NoID)
	call.ArgumentIDs = []int64{rhs.Id()}
	ctx.parentOf[rhs.Id()] = call.Id()

	require.NoError(t, ctx.ReplaceNode(lhs.Id(), call.Id(), assign.Id()))
	assert.Equal(t, call.Id(), assign.LeftHandSideID)

	_, stillThere := ctx.Get(lhs.Id())
	assert.False(t, stillThere, "replaced node must be dropped from the context")

	parentID, ok := ctx.ParentId(call.Id())
	require.True(t, ok)
	assert.Equal(t, assign.Id(), parentID)
}

func TestReplaceNodeMissingParentIsAssertionFailure(t *testing.T) {
	ctx := NewContext()
	orphan := newLiteral(ctx, NoID, "1")
	delete(ctx.parentOf, orphan.Id())

	repl := newLiteral(ctx, NoID, "2")

	err := ctx.ReplaceNode(orphan.Id(), repl.Id())
	require.Error(t, err)
}

func TestClosestAncestor(t *testing.T) {
	ctx := NewContext()
	contract := &ContractDefinition{base: base{id: ctx.ReserveId()}, Name: "C"}
	ctx.Register(contract, NoID)

	block := &Block{base: base{id: ctx.ReserveId()}}
	ctx.Register(block, contract.Id())
	contract.FunctionBodyIDs = append(contract.FunctionBodyIDs, block.Id())

	lit := newLiteral(ctx, block.Id(), "1")
	block.StatementIDs = []int64{lit.Id()}

	found, ok := ctx.ClosestAncestor(lit.Id(), KindContractDefinition)
	require.True(t, ok)
	assert.Equal(t, contract.Id(), found)

	_, ok = ctx.ClosestAncestor(lit.Id(), KindMapping)
	assert.False(t, ok)
}

func TestCloneProducesFreshIds(t *testing.T) {
	ctx := NewContext()
	idx := &IndexAccess{base: base{id: ctx.ReserveId()}}
	ctx.Register(idx, NoID)

	base := newIdentifier(ctx, idx.Id(), "m")
	index := newLiteral(ctx, idx.Id(), "1")
	idx.BaseID = base.Id()
	idx.IndexID = index.Id()

	cloneID := ctx.Clone(idx.Id())
	assert.NotEqual(t, idx.Id(), cloneID)

	cloned, ok := ctx.Get(cloneID)
	require.True(t, ok)
	clonedIdx, ok := cloned.(*IndexAccess)
	require.True(t, ok)

	assert.NotEqual(t, idx.BaseID, clonedIdx.BaseID)
	assert.NotEqual(t, idx.IndexID, clonedIdx.IndexID)

	clonedBase, ok := ctx.Get(clonedIdx.BaseID)
	require.True(t, ok)
	assert.Equal(t, "m", clonedBase.(*Identifier).Name)
}

func TestStorageAllocationTable(t *testing.T) {
	ctx := NewContext()
	decl := &VariableDeclaration{base: base{id: ctx.ReserveId()}, Name: "balance", StateVariable: true}
	ctx.Register(decl, NoID)
	ctx.SetAllocation(decl.Id(), 7)

	slot, ok := ctx.Allocation(decl.Id())
	require.True(t, ok)
	assert.EqualValues(t, 7, slot)

	_, ok = ctx.Allocation(999)
	assert.False(t, ok)
}
