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

// Package storage is the storage-access pass: every read or write of a
// state variable, and every Mapping-typed index access, is rewritten to a
// call into the utility-function registry.
package storage

import (
	"fmt"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/codegen"
	"github.com/ftupas/warp/pkg/corerr"
	"github.com/ftupas/warp/pkg/mapper"
	"github.com/ftupas/warp/pkg/typesys"
)

// NewPass builds the visitor table for this pass, bound to reg. The table
// closes over itself so that a rewritten node's replacement can be
// re-dispatched through the same table.
func NewPass(reg *codegen.Registry) *mapper.VisitorTable {
	table := &mapper.VisitorTable{}

	table.OnAssignment = func(ctx *ast.Context, id int64, n *ast.Assignment) error {
		return visitAssignment(ctx, id, n, reg, table)
	}
	table.OnIdentifier = func(ctx *ast.Context, id int64, n *ast.Identifier) error {
		return visitIdentifier(ctx, id, n, reg, table)
	}
	table.OnIndexAccess = func(ctx *ast.Context, id int64, n *ast.IndexAccess) error {
		return visitIndexAccess(ctx, id, n, reg, table)
	}

	return table
}

// Run applies the pass to the subtree rooted at rootID.
func Run(ctx *ast.Context, rootID int64, reg *codegen.Registry) error {
	return mapper.Dispatch(ctx, rootID, NewPass(reg))
}

func visitAssignment(ctx *ast.Context, id int64, n *ast.Assignment, reg *codegen.Registry, table *mapper.VisitorTable) error {
	lhsNode, ok := ctx.Get(n.LeftHandSideID)
	if !ok {
		return corerr.OnNode(corerr.AssertionFailure, id, n.Describe(), "storage: assignment has no left-hand side")
	}

	if ident, isIdent := lhsNode.(*ast.Identifier); isIdent && isStateVar(ctx, ident) {
		decl, ok := ident.VReferencedDeclaration(ctx)
		if !ok {
			return corerr.OnNode(corerr.AssertionFailure, id, n.Describe(), "storage: state variable identifier has no resolvable declaration")
		}

		return rewriteStateWrite(ctx, id, n, decl, reg, table)
	}

	if idx, isIdx := lhsNode.(*ast.IndexAccess); isIdx {
		mt, declID, isMappingPtr, err := baseMappingInfo(ctx, idx.BaseID)
		if err != nil {
			return err
		}

		if !isMappingPtr {
			return corerr.OnNode(corerr.NotSupportedYet, id, n.Describe(), "storage: assignment to an unsupported indexed location")
		}

		if idx.IndexID == ast.NoID {
			return corerr.OnNode(corerr.AssertionFailure, id, n.Describe(), "storage: mapping write target has no index expression")
		}

		slot, ok := ctx.Allocation(declID)
		if !ok {
			return corerr.New(corerr.AssertionFailure, "storage: mapping variable %d has no storage allocation entry", declID)
		}

		slotLitID := synthSlotLiteral(ctx, slot)

		callID, err := reg.WriteMapping(slotLitID, idx.IndexID, n.RightHandSideID, mt)
		if err != nil {
			return err
		}

		if err := ctx.ReplaceNode(id, callID); err != nil {
			return err
		}

		return mapper.Dispatch(ctx, callID, table)
	}

	// Ordinary assignment: neither side is a state-variable write,
	// recurse as the mapper default would.
	return mapper.CommonVisit(ctx, id, table)
}

// rewriteStateWrite replaces node with storageWrite(decl, literal(slot),
// RHS) and recurses only into the right-hand side: the left-hand side is
// fully consumed by the rewrite and has no surviving subtree to visit.
func rewriteStateWrite(ctx *ast.Context, id int64, n *ast.Assignment, decl *ast.VariableDeclaration, reg *codegen.Registry, table *mapper.VisitorTable) error {
	if _, ok := ctx.ClosestAncestor(id, ast.KindContractDefinition); !ok {
		return corerr.OnNode(corerr.AssertionFailure, id, n.Describe(), "storage: state variable write outside any contract")
	}

	slot, ok := ctx.Allocation(decl.Id())
	if !ok {
		return corerr.OnNode(corerr.AssertionFailure, decl.Id(), decl.Describe(), "storage: state variable has no storage allocation entry")
	}

	cairoType, err := declCairoType(ctx, decl)
	if err != nil {
		return err
	}

	slotLitID := synthSlotLiteral(ctx, slot)

	callID, err := reg.StorageWrite(decl.Id(), slotLitID, n.RightHandSideID, cairoType)
	if err != nil {
		return err
	}

	rhsID := n.RightHandSideID

	if err := ctx.ReplaceNode(id, callID); err != nil {
		return err
	}

	return mapper.Dispatch(ctx, rhsID, table)
}

// visitIdentifier rewrites a state-variable read. Writes never reach here:
// visitAssignment consumes a state-variable left-hand side before
// recursion, so any identifier this handler sees is a read.
func visitIdentifier(ctx *ast.Context, id int64, n *ast.Identifier, reg *codegen.Registry, _ *mapper.VisitorTable) error {
	if !isStateVar(ctx, n) {
		return nil
	}

	decl, ok := n.VReferencedDeclaration(ctx)
	if !ok {
		return corerr.OnNode(corerr.AssertionFailure, id, n.Describe(), "storage: state variable identifier has no resolvable declaration")
	}

	typ, err := typesys.Resolve(ctx, decl.TypeNameID)
	if err != nil {
		return err
	}

	if _, isMapping := typ.(typesys.Mapping); isMapping {
		if decl.InitialValueID == ast.NoID {
			return corerr.OnNode(corerr.NotSupportedYet, id, n.Describe(),
				"storage: bare reference to a mapping variable with no initialiser expression")
		}

		clone := ctx.Clone(decl.InitialValueID)

		return ctx.ReplaceNode(id, clone)
	}

	cairoType, err := typesys.Cairo(typ)
	if err != nil {
		return err
	}

	slot, ok := ctx.Allocation(decl.Id())
	if !ok {
		return corerr.OnNode(corerr.AssertionFailure, decl.Id(), decl.Describe(), "storage: state variable has no storage allocation entry")
	}

	typeNameClone := ctx.Clone(decl.TypeNameID)
	slotLitID := synthSlotLiteral(ctx, slot)

	callID, err := reg.StorageRead(slotLitID, typeNameClone, cairoType)
	if err != nil {
		return err
	}

	return ctx.ReplaceNode(id, callID)
}

func visitIndexAccess(ctx *ast.Context, id int64, n *ast.IndexAccess, reg *codegen.Registry, table *mapper.VisitorTable) error {
	if n.IndexID == ast.NoID {
		return corerr.OnNode(corerr.WillNotSupport, id, n.Describe(), "storage: index access with no index expression")
	}

	mt, declID, isMappingPtr, err := baseMappingInfo(ctx, n.BaseID)
	if err != nil {
		return err
	}

	if !isMappingPtr {
		return corerr.OnNode(corerr.NotSupportedYet, id, n.Describe(), "storage: index access into an unsupported base type")
	}

	slot, ok := ctx.Allocation(declID)
	if !ok {
		return corerr.New(corerr.AssertionFailure, "storage: mapping variable %d has no storage allocation entry", declID)
	}

	slotLitID := synthSlotLiteral(ctx, slot)

	callID, err := reg.ReadMapping(slotLitID, n.IndexID, mt)
	if err != nil {
		return err
	}

	if err := ctx.ReplaceNode(id, callID); err != nil {
		return err
	}

	return mapper.Dispatch(ctx, callID, table)
}

func isStateVar(ctx *ast.Context, ident *ast.Identifier) bool {
	decl, ok := ident.VReferencedDeclaration(ctx)
	return ok && decl.StateVariable
}

// baseMappingInfo resolves an expression id that is expected to be a
// storage-located mapping: a reference to a declaration with Location ==
// LocationStorage whose declared type resolves to Mapping. The compact
// type-name AST here (ElementaryTypeName, Mapping) carries no separate
// pointer-type spelling, so the declaration's own Location field is what
// distinguishes a storage-backed mapping reference from an ordinary one.
func baseMappingInfo(ctx *ast.Context, baseID int64) (typesys.Mapping, int64, bool, error) {
	node, ok := ctx.Get(baseID)
	if !ok {
		return typesys.Mapping{}, ast.NoID, false,
			corerr.New(corerr.AssertionFailure, "storage: index access base %d is not registered", baseID)
	}

	ident, ok := node.(*ast.Identifier)
	if !ok {
		return typesys.Mapping{}, ast.NoID, false, nil
	}

	decl, ok := ident.VReferencedDeclaration(ctx)
	if !ok || decl.Location != ast.LocationStorage {
		return typesys.Mapping{}, ast.NoID, false, nil
	}

	typ, err := typesys.Resolve(ctx, decl.TypeNameID)
	if err != nil {
		return typesys.Mapping{}, ast.NoID, false, err
	}

	mt, isMapping := typ.(typesys.Mapping)
	if !isMapping {
		return typesys.Mapping{}, ast.NoID, false, nil
	}

	return mt, decl.Id(), true, nil
}

func declCairoType(ctx *ast.Context, decl *ast.VariableDeclaration) (string, error) {
	typ, err := typesys.Resolve(ctx, decl.TypeNameID)
	if err != nil {
		return "", err
	}

	return typesys.Cairo(typ)
}

// synthSlotLiteral synthesises a literal node for a storage slot, textually
// formed as `int_const <slot>` with a hex form alongside it.
func synthSlotLiteral(ctx *ast.Context, slot uint64) int64 {
	lit := ctx.NewLiteral(fmt.Sprintf("int_const %d", slot))
	lit.HexValue = fmt.Sprintf("0x%x", slot)
	ctx.Register(lit, ast.NoID)

	return lit.Id()
}
