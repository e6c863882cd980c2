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

// Typed child accessors. Each returns (nil, false) for an absent optional
// child rather than a node keyed on NoID.

// VLeftHandSide resolves an Assignment's left-hand side.
func (n *Assignment) VLeftHandSide(ctx *Context) (Node, bool) { return ctx.Get(n.LeftHandSideID) }

// VRightHandSide resolves an Assignment's right-hand side.
func (n *Assignment) VRightHandSide(ctx *Context) (Node, bool) { return ctx.Get(n.RightHandSideID) }

// VReferencedDeclaration resolves the declaration an Identifier names.
func (n *Identifier) VReferencedDeclaration(ctx *Context) (*VariableDeclaration, bool) {
	node, ok := ctx.Get(n.ReferencedDeclarationID)
	if !ok {
		return nil, false
	}

	decl, ok := node.(*VariableDeclaration)

	return decl, ok
}

// VBaseExpression resolves an IndexAccess's base expression.
func (n *IndexAccess) VBaseExpression(ctx *Context) (Node, bool) { return ctx.Get(n.BaseID) }

// VIndexExpression resolves an IndexAccess's index expression. ok is false
// both when the index is syntactically absent (NoID) and when it is absent
// in the node-registry sense; callers that must distinguish "absent" from
// "present but unregistered" should compare n.IndexID to NoID directly.
func (n *IndexAccess) VIndexExpression(ctx *Context) (Node, bool) { return ctx.Get(n.IndexID) }

// VInitialValue resolves a VariableDeclaration's own initialiser, present
// only for single-name declarations.
func (n *VariableDeclaration) VInitialValue(ctx *Context) (Node, bool) {
	return ctx.Get(n.InitialValueID)
}

// VTypeName resolves a VariableDeclaration's declared-type subtree.
func (n *VariableDeclaration) VTypeName(ctx *Context) (Node, bool) { return ctx.Get(n.TypeNameID) }

// VInitialValue resolves a VariableDeclarationStatement's shared
// initialiser, present for multi-name declarations and for any
// single-name declaration whose VariableDeclaration entry defers to it.
func (n *VariableDeclarationStatement) VInitialValue(ctx *Context) (Node, bool) {
	return ctx.Get(n.InitialValueID)
}

// Declarations resolves every non-nil declaration slot, in order.
func (n *VariableDeclarationStatement) Declarations(ctx *Context) []*VariableDeclaration {
	decls := make([]*VariableDeclaration, 0, len(n.DeclarationIDs))

	for _, id := range n.DeclarationIDs {
		if id == NoID {
			continue
		}

		if node, ok := ctx.Get(id); ok {
			if decl, ok := node.(*VariableDeclaration); ok {
				decls = append(decls, decl)
			}
		}
	}

	return decls
}

// VExpression resolves an ExpressionStatement's wrapped expression.
func (n *ExpressionStatement) VExpression(ctx *Context) (Node, bool) { return ctx.Get(n.ExpressionID) }
