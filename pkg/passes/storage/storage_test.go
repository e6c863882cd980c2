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

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/codegen"
	"github.com/ftupas/warp/pkg/corerr"
)

// scalarStateVarFixture builds: contract C { uint128 balance; } and a
// free-standing `balance = 1;` assignment statement inside it.
func scalarStateVarFixture(t *testing.T) (ctx *ast.Context, contractID, assignID, declID int64) {
	t.Helper()

	ctx = ast.NewContext()

	typeName := ctx.NewElementaryTypeName("uint128")
	ctx.Register(typeName, ast.NoID)

	decl := ctx.NewVariableDeclaration("balance", ast.MutabilityMutable, ast.LocationDefault)
	decl.StateVariable = true
	decl.TypeNameID = typeName.Id()
	ctx.Register(decl, ast.NoID)
	ctx.SetAllocation(decl.Id(), 3)

	lhs := ctx.NewIdentifier("balance", decl.Id())
	rhs := ctx.NewLiteral("1")
	assign := ctx.NewAssignment("=", lhs.Id(), rhs.Id())

	contract := ctx.NewContractDefinition("C")
	contract.StateVarIDs = []int64{decl.Id()}
	contract.FunctionBodyIDs = []int64{assign.Id()}
	ctx.Register(contract, ast.NoID)

	ctx.Register(decl, contract.Id())
	ctx.Register(assign, contract.Id())
	ctx.Register(lhs, assign.Id())
	ctx.Register(rhs, assign.Id())

	return ctx, contract.Id(), assign.Id(), decl.Id()
}

func TestVisitAssignmentRewritesStateVariableWrite(t *testing.T) {
	ctx, _, assignID, declID := scalarStateVarFixture(t)
	reg := codegen.NewRegistry(ctx)

	require.NoError(t, Run(ctx, assignID, reg))

	node, ok := ctx.Get(assignID)
	require.False(t, ok, "the original Assignment id must be dropped from the context")
	_ = node

	parentID, hasParent := ctx.ParentId(assignID)
	assert.False(t, hasParent)

	contractID, ok := ctx.ClosestAncestor(declID, ast.KindContractDefinition)
	require.True(t, ok)

	contractNode, _ := ctx.Get(contractID)
	contract := contractNode.(*ast.ContractDefinition)

	replaced, ok := ctx.Get(contract.FunctionBodyIDs[0])
	require.True(t, ok)

	call, isCall := replaced.(*ast.FunctionCall)
	require.True(t, isCall)

	callee, _ := ctx.Get(call.CalleeID)
	assert.Equal(t, "storageWrite_felt", callee.(*ast.Identifier).Name)
	assert.Contains(t, reg.Emit(), "func storageWrite_felt")
	_ = parentID
}

func TestVisitAssignmentSynthesizesSlotLiteralWithHexForm(t *testing.T) {
	ctx, _, assignID, declID := scalarStateVarFixture(t)
	reg := codegen.NewRegistry(ctx)

	require.NoError(t, Run(ctx, assignID, reg))

	contractID, ok := ctx.ClosestAncestor(declID, ast.KindContractDefinition)
	require.True(t, ok)

	contractNode, _ := ctx.Get(contractID)
	contract := contractNode.(*ast.ContractDefinition)

	replaced, ok := ctx.Get(contract.FunctionBodyIDs[0])
	require.True(t, ok)
	call := replaced.(*ast.FunctionCall)

	slotNode, ok := ctx.Get(call.ArgumentIDs[0])
	require.True(t, ok)
	slotLit := slotNode.(*ast.Literal)

	assert.Equal(t, "int_const 3", slotLit.Value)
	assert.Equal(t, "0x3", slotLit.HexValue)
}

func TestVisitIdentifierRewritesStateVariableRead(t *testing.T) {
	ctx := ast.NewContext()

	typeName := ctx.NewElementaryTypeName("uint128")
	ctx.Register(typeName, ast.NoID)

	decl := ctx.NewVariableDeclaration("total", ast.MutabilityMutable, ast.LocationDefault)
	decl.StateVariable = true
	decl.TypeNameID = typeName.Id()
	ctx.Register(decl, ast.NoID)
	ctx.SetAllocation(decl.Id(), 7)

	ident := ctx.NewIdentifier("total", decl.Id())
	rhsHolder := ctx.NewExpressionStatement(ident.Id())
	ctx.Register(rhsHolder, ast.NoID)
	ctx.Register(ident, rhsHolder.Id())

	reg := codegen.NewRegistry(ctx)
	require.NoError(t, Run(ctx, rhsHolder.Id(), reg))

	stmtNode, _ := ctx.Get(rhsHolder.Id())
	stmt := stmtNode.(*ast.ExpressionStatement)

	replaced, ok := ctx.Get(stmt.ExpressionID)
	require.True(t, ok)
	call := replaced.(*ast.FunctionCall)

	callee, _ := ctx.Get(call.CalleeID)
	assert.Equal(t, "storageRead_felt", callee.(*ast.Identifier).Name)
}

func TestVisitAssignmentMissingAllocationIsAssertionFailure(t *testing.T) {
	// A state variable with no storage-allocator entry at all, simulating
	// a storage-allocator bug upstream of this pass.
	ctx := ast.NewContext()
	typeName := ctx.NewElementaryTypeName("uint256")
	ctx.Register(typeName, ast.NoID)

	decl := ctx.NewVariableDeclaration("balance", ast.MutabilityMutable, ast.LocationDefault)
	decl.StateVariable = true
	decl.TypeNameID = typeName.Id()
	ctx.Register(decl, ast.NoID)

	lhs := ctx.NewIdentifier("balance", decl.Id())
	rhs := ctx.NewLiteral("1")
	assign := ctx.NewAssignment("=", lhs.Id(), rhs.Id())

	contract := ctx.NewContractDefinition("C")
	ctx.Register(contract, ast.NoID)
	ctx.Register(assign, contract.Id())
	ctx.Register(lhs, assign.Id())
	ctx.Register(rhs, assign.Id())

	reg := codegen.NewRegistry(ctx)
	err := Run(ctx, assign.Id(), reg)
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.AssertionFailure))
}

func TestVisitIndexAccessRewritesMappingRead(t *testing.T) {
	ctx := ast.NewContext()

	keyType := ctx.NewElementaryTypeName("address")
	ctx.Register(keyType, ast.NoID)
	valueType := ctx.NewElementaryTypeName("uint256")
	ctx.Register(valueType, ast.NoID)
	mappingType := ctx.NewMapping(keyType.Id(), valueType.Id())
	ctx.Register(mappingType, ast.NoID)

	decl := ctx.NewVariableDeclaration("balances", ast.MutabilityMutable, ast.LocationStorage)
	decl.StateVariable = true
	decl.TypeNameID = mappingType.Id()
	ctx.Register(decl, ast.NoID)
	ctx.SetAllocation(decl.Id(), 2)

	base := ctx.NewIdentifier("balances", decl.Id())
	index := ctx.NewIdentifier("who", ast.NoID)
	access := ctx.NewIndexAccess(base.Id(), index.Id())

	holder := ctx.NewExpressionStatement(access.Id())
	ctx.Register(holder, ast.NoID)
	ctx.Register(access, holder.Id())
	ctx.Register(base, access.Id())
	ctx.Register(index, access.Id())

	reg := codegen.NewRegistry(ctx)
	require.NoError(t, Run(ctx, holder.Id(), reg))

	stmtNode, _ := ctx.Get(holder.Id())
	stmt := stmtNode.(*ast.ExpressionStatement)

	replaced, ok := ctx.Get(stmt.ExpressionID)
	require.True(t, ok)
	call := replaced.(*ast.FunctionCall)

	callee, _ := ctx.Get(call.CalleeID)
	assert.Equal(t, "readMapping_felt_Uint256", callee.(*ast.Identifier).Name)
}

func TestRunIsIdempotentOnAnAlreadyRewrittenTree(t *testing.T) {
	ctx, contractID, _, _ := scalarStateVarFixture(t)
	reg := codegen.NewRegistry(ctx)

	require.NoError(t, Run(ctx, contractID, reg))

	contractNode, ok := ctx.Get(contractID)
	require.True(t, ok)
	contract := contractNode.(*ast.ContractDefinition)
	callIDAfterFirstRun := contract.FunctionBodyIDs[0]

	emitAfterFirstRun := reg.Emit()
	namesAfterFirstRun := reg.Names()

	require.NoError(t, Run(ctx, contractID, reg), "running the pass again on its own output must not error")

	contractNode, ok = ctx.Get(contractID)
	require.True(t, ok)
	contract = contractNode.(*ast.ContractDefinition)

	assert.Equal(t, callIDAfterFirstRun, contract.FunctionBodyIDs[0],
		"a second run must not touch the already-rewritten call expression")
	assert.Equal(t, namesAfterFirstRun, reg.Names(), "a second run must not register any further helper")
	assert.Equal(t, emitAfterFirstRun, reg.Emit(), "a second run must not change the emitted preamble")
}

func TestVisitIndexAccessUndefinedIndexIsWillNotSupport(t *testing.T) {
	ctx := ast.NewContext()

	base := ctx.NewIdentifier("arr", ast.NoID)
	ctx.Register(base, ast.NoID)
	access := ctx.NewIndexAccess(base.Id(), ast.NoID)
	ctx.Register(access, ast.NoID)
	ctx.Register(base, access.Id())

	reg := codegen.NewRegistry(ctx)
	err := Run(ctx, access.Id(), reg)
	require.Error(t, err)
	assert.True(t, corerr.Is(err, corerr.WillNotSupport))
}
