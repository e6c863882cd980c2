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

// Package mapper is the uniform visitor/mapper contract every pass is
// built on: dispatch to the most specific handler for a node's kind,
// falling back to a default recursion into every child. The table is a
// runtime handler map rather than a compile-time generic dispatch since
// this core's node kinds form an open-ended closed sum driven by front-end
// tags.
package mapper

import (
	"github.com/ftupas/warp/pkg/ast"
)

// VisitorTable holds one optional handler per node kind a pass cares
// about. A nil entry means "use the default recursion" (CommonVisit);
// passes that must special-case only a couple of kinds (e.g. the
// storage-access pass cares only about Assignment, Identifier and
// IndexAccess) leave every other field nil.
//
// Each handler receives the node's id alongside its typed pointer, so it
// can call Dispatch or ReplaceNode on the id without a second lookup.
type VisitorTable struct {
	OnAssignment                   func(ctx *ast.Context, id int64, n *ast.Assignment) error
	OnIdentifier                   func(ctx *ast.Context, id int64, n *ast.Identifier) error
	OnLiteral                      func(ctx *ast.Context, id int64, n *ast.Literal) error
	OnIndexAccess                  func(ctx *ast.Context, id int64, n *ast.IndexAccess) error
	OnFunctionCall                 func(ctx *ast.Context, id int64, n *ast.FunctionCall) error
	OnTupleExpression              func(ctx *ast.Context, id int64, n *ast.TupleExpression) error
	OnVariableDeclaration          func(ctx *ast.Context, id int64, n *ast.VariableDeclaration) error
	OnVariableDeclarationStatement func(ctx *ast.Context, id int64, n *ast.VariableDeclarationStatement) error
	OnExpressionStatement          func(ctx *ast.Context, id int64, n *ast.ExpressionStatement) error
	OnBlock                        func(ctx *ast.Context, id int64, n *ast.Block) error
	OnUncheckedBlock               func(ctx *ast.Context, id int64, n *ast.UncheckedBlock) error
	OnMapping                      func(ctx *ast.Context, id int64, n *ast.Mapping) error
	OnElementaryTypeName           func(ctx *ast.Context, id int64, n *ast.ElementaryTypeName) error
	OnContractDefinition           func(ctx *ast.Context, id int64, n *ast.ContractDefinition) error
}

// Dispatch visits a single node: the most specific handler in table runs if
// present, otherwise CommonVisit recurses into every child. A node id that
// is no longer registered (already consumed by an earlier replacement in
// this same walk) is silently skipped rather than treated as an error,
// mirroring how a replaced LHS is simply absent from the tree the rest of
// the walk sees.
func Dispatch(ctx *ast.Context, id int64, table *VisitorTable) error {
	node, ok := ctx.Get(id)
	if !ok {
		return nil
	}

	switch n := node.(type) {
	case *ast.Assignment:
		if table.OnAssignment != nil {
			return table.OnAssignment(ctx, id, n)
		}
	case *ast.Identifier:
		if table.OnIdentifier != nil {
			return table.OnIdentifier(ctx, id, n)
		}
	case *ast.Literal:
		if table.OnLiteral != nil {
			return table.OnLiteral(ctx, id, n)
		}
	case *ast.IndexAccess:
		if table.OnIndexAccess != nil {
			return table.OnIndexAccess(ctx, id, n)
		}
	case *ast.FunctionCall:
		if table.OnFunctionCall != nil {
			return table.OnFunctionCall(ctx, id, n)
		}
	case *ast.TupleExpression:
		if table.OnTupleExpression != nil {
			return table.OnTupleExpression(ctx, id, n)
		}
	case *ast.VariableDeclaration:
		if table.OnVariableDeclaration != nil {
			return table.OnVariableDeclaration(ctx, id, n)
		}
	case *ast.VariableDeclarationStatement:
		if table.OnVariableDeclarationStatement != nil {
			return table.OnVariableDeclarationStatement(ctx, id, n)
		}
	case *ast.ExpressionStatement:
		if table.OnExpressionStatement != nil {
			return table.OnExpressionStatement(ctx, id, n)
		}
	case *ast.Block:
		if table.OnBlock != nil {
			return table.OnBlock(ctx, id, n)
		}
	case *ast.UncheckedBlock:
		if table.OnUncheckedBlock != nil {
			return table.OnUncheckedBlock(ctx, id, n)
		}
	case *ast.Mapping:
		if table.OnMapping != nil {
			return table.OnMapping(ctx, id, n)
		}
	case *ast.ElementaryTypeName:
		if table.OnElementaryTypeName != nil {
			return table.OnElementaryTypeName(ctx, id, n)
		}
	case *ast.ContractDefinition:
		if table.OnContractDefinition != nil {
			return table.OnContractDefinition(ctx, id, n)
		}
	}

	return CommonVisit(ctx, id, table)
}

// CommonVisit is the mapper's default handler: it recurses into every
// child of id in order, re-fetching each child's registration on every
// step since an earlier sibling's handler may have replaced or removed
// nodes elsewhere in the tree.
func CommonVisit(ctx *ast.Context, id int64, table *VisitorTable) error {
	node, ok := ctx.Get(id)
	if !ok {
		return nil
	}

	for _, childID := range node.Children() {
		if err := Dispatch(ctx, childID, table); err != nil {
			return err
		}
	}

	return nil
}
