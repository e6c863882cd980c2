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

// Package declsplit is the declaration-splitter pass: it canonicalises
// every multi-name VariableDeclarationStatement within a Block or
// UncheckedBlock into a sequence of single-name statements (and, where
// necessary, bare ExpressionStatements), visiting nested blocks before
// rewriting the block that contains them.
package declsplit

import (
	"fmt"
	"strings"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/corerr"
	"github.com/ftupas/warp/pkg/mapper"
)

// Run applies the pass to the subtree rooted at rootID. A single
// NameGenerator is shared across every block the pass touches so that
// `__warp_td_<n>` temporaries are unique across the whole compilation, not
// just within one block.
func Run(ctx *ast.Context, rootID int64) error {
	gen := mapper.NewNameGenerator()
	return splitNode(ctx, rootID, gen)
}

func splitNode(ctx *ast.Context, id int64, gen *mapper.NameGenerator) error {
	node, ok := ctx.Get(id)
	if !ok {
		return nil
	}

	for _, childID := range node.Children() {
		if err := splitNode(ctx, childID, gen); err != nil {
			return err
		}
	}

	switch n := node.(type) {
	case *ast.Block:
		out, err := splitStatementSequence(ctx, n.StatementIDs, gen)
		if err != nil {
			return err
		}

		n.ReplaceStatements(out)
	case *ast.UncheckedBlock:
		out, err := splitStatementSequence(ctx, n.StatementIDs, gen)
		if err != nil {
			return err
		}

		n.ReplaceStatements(out)
	}

	return nil
}

func splitStatementSequence(ctx *ast.Context, ids []int64, gen *mapper.NameGenerator) ([]int64, error) {
	out := make([]int64, 0, len(ids))

	for _, sid := range ids {
		node, ok := ctx.Get(sid)
		if !ok {
			out = append(out, sid)
			continue
		}

		stmt, isDecl := node.(*ast.VariableDeclarationStatement)
		if !isDecl || len(stmt.DeclarationIDs) <= 1 {
			out = append(out, sid)
			continue
		}

		expanded, err := splitDeclarationStatement(ctx, stmt, gen)
		if err != nil {
			return nil, err
		}

		out = append(out, expanded...)
	}

	return out, nil
}

func splitDeclarationStatement(ctx *ast.Context, stmt *ast.VariableDeclarationStatement, gen *mapper.NameGenerator) ([]int64, error) {
	if stmt.InitialValueID == ast.NoID {
		return nil, corerr.OnNode(corerr.TranspileFailed, stmt.Id(), stmt.Describe(),
			"declsplit: multi-name declaration statement has no initialiser")
	}

	initNode, ok := ctx.Get(stmt.InitialValueID)
	if !ok {
		return nil, corerr.New(corerr.AssertionFailure, "declsplit: initialiser %d is not registered", stmt.InitialValueID)
	}

	switch init := initNode.(type) {
	case *ast.FunctionCall:
		return splitTupleCall(ctx, stmt, init, gen)
	case *ast.TupleExpression:
		return splitTupleExpression(ctx, stmt, init)
	default:
		return nil, corerr.OnNode(corerr.TranspileFailed, stmt.Id(), stmt.Describe(),
			"declsplit: multi-name declaration with an unsupported initialiser kind")
	}
}

// splitTupleCall handles "(a, b) = f();" where f's return type is a Tuple.
// The call executes exactly once; slots whose declared type already
// matches the call's per-slot return type are left in place, and slots
// that disagree get a synthetic `__warp_td_<n>` temporary with a follow-up
// statement binding the original declaration to it.
func splitTupleCall(ctx *ast.Context, stmt *ast.VariableDeclarationStatement, call *ast.FunctionCall, gen *mapper.NameGenerator) ([]int64, error) {
	wantTypes, err := parseTupleTypeString(call.TypeString())
	if err != nil {
		return nil, corerr.OnNode(corerr.TranspileFailed, stmt.Id(), stmt.Describe(), "declsplit: %v", err)
	}

	if len(wantTypes) != len(stmt.DeclarationIDs) {
		return nil, corerr.OnNode(corerr.TranspileFailed, stmt.Id(), stmt.Describe(),
			"declsplit: call returns %d values but statement has %d declaration slots", len(wantTypes), len(stmt.DeclarationIDs))
	}

	newDeclIDs := append([]int64(nil), stmt.DeclarationIDs...)

	var followUps []int64

	for i, want := range wantTypes {
		originalDeclID := stmt.DeclarationIDs[i]

		if originalDeclID != ast.NoID {
			decl, err := mustDecl(ctx, originalDeclID)
			if err != nil {
				return nil, err
			}

			have, err := typeNameText(ctx, decl.TypeNameID)
			if err != nil {
				return nil, err
			}

			if have == want {
				continue
			}
		}

		tempID := synthTempDeclaration(ctx, want, gen)
		newDeclIDs[i] = tempID

		if originalDeclID != ast.NoID {
			followUps = append(followUps, synthFollowUp(ctx, originalDeclID, tempID))
		}
	}

	stmt.DeclarationIDs = newDeclIDs
	ctx.SetContextRecursive(stmt.Id())

	return append([]int64{stmt.Id()}, followUps...), nil
}

// splitTupleExpression handles "(a, b) = (x, y);" — per-slot independent
// destructuring, with equal arity between the tuple and the declaration
// list guaranteed by the front end.
func splitTupleExpression(ctx *ast.Context, stmt *ast.VariableDeclarationStatement, tuple *ast.TupleExpression) ([]int64, error) {
	if len(tuple.ComponentIDs) != len(stmt.DeclarationIDs) {
		return nil, corerr.OnNode(corerr.TranspileFailed, stmt.Id(), stmt.Describe(),
			"declsplit: tuple has %d components but statement has %d declaration slots", len(tuple.ComponentIDs), len(stmt.DeclarationIDs))
	}

	out := make([]int64, 0, len(tuple.ComponentIDs))
	reusedOriginal := false
	declIDs := stmt.DeclarationIDs

	for i, rID := range tuple.ComponentIDs {
		lID := declIDs[i]

		switch {
		case lID == ast.NoID && rID == ast.NoID:
			continue
		case lID == ast.NoID:
			es := ctx.NewExpressionStatement(rID)
			ctx.Register(es, ast.NoID)
			ctx.SetContextRecursive(es.Id())
			out = append(out, es.Id())
		case !reusedOriginal:
			// The first emitted declaration statement reuses stmt itself
			// so its Documentation/Raw annotations carry over unchanged.
			stmt.DeclarationIDs = []int64{lID}
			stmt.InitialValueID = rID
			ctx.SetContextRecursive(stmt.Id())
			out = append(out, stmt.Id())
			reusedOriginal = true
		default:
			ns := ctx.NewVariableDeclarationStatement([]int64{lID}, rID)
			ctx.Register(ns, ast.NoID)
			ctx.SetContextRecursive(ns.Id())
			out = append(out, ns.Id())
		}
	}

	return out, nil
}

func synthTempDeclaration(ctx *ast.Context, typeName string, gen *mapper.NameGenerator) int64 {
	name := gen.Next("td")

	typeNameNode := ctx.NewElementaryTypeName(typeName)
	ctx.Register(typeNameNode, ast.NoID)

	decl := ctx.NewVariableDeclaration(name, ast.MutabilityConstant, ast.LocationDefault)
	decl.TypeNameID = typeNameNode.Id()
	ctx.Register(decl, ast.NoID)
	ctx.SetContextRecursive(decl.Id())

	return decl.Id()
}

func synthFollowUp(ctx *ast.Context, originalDeclID, tempID int64) int64 {
	tempNode := ctx.MustGet(tempID)
	temp := tempNode.(*ast.VariableDeclaration)

	ident := ctx.NewIdentifier(temp.Name, tempID)
	ctx.Register(ident, ast.NoID)

	followUp := ctx.NewVariableDeclarationStatement([]int64{originalDeclID}, ident.Id())
	ctx.Register(followUp, ast.NoID)
	ctx.SetContextRecursive(followUp.Id())

	return followUp.Id()
}

func mustDecl(ctx *ast.Context, id int64) (*ast.VariableDeclaration, error) {
	node, ok := ctx.Get(id)
	if !ok {
		return nil, corerr.New(corerr.AssertionFailure, "declsplit: declaration %d is not registered", id)
	}

	decl, ok := node.(*ast.VariableDeclaration)
	if !ok {
		return nil, corerr.OnNode(corerr.AssertionFailure, id, node.Describe(), "declsplit: expected a VariableDeclaration")
	}

	return decl, nil
}

func typeNameText(ctx *ast.Context, typeNameID int64) (string, error) {
	node, ok := ctx.Get(typeNameID)
	if !ok {
		return "", corerr.New(corerr.AssertionFailure, "declsplit: type-name %d is not registered", typeNameID)
	}

	switch n := node.(type) {
	case *ast.ElementaryTypeName:
		return n.Name, nil
	case *ast.Mapping:
		key, err := typeNameText(ctx, n.KeyTypeID)
		if err != nil {
			return "", err
		}

		value, err := typeNameText(ctx, n.ValueTypeID)
		if err != nil {
			return "", err
		}

		return "mapping(" + key + "=>" + value + ")", nil
	default:
		return "", corerr.OnNode(corerr.UnhandledType, typeNameID, node.Describe(), "declsplit: unsupported type-name kind")
	}
}

// parseTupleTypeString splits a FunctionCall's TypeString of the form
// "(T0,T1,...)" into its per-slot type spellings. This core's front end is
// assumed to stash a tuple-returning call's full return type as this flat,
// comma-joined form; none of the elementary type spellings this core
// resolves contain a top-level comma, so a naive split is exact.
func parseTupleTypeString(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("expected a tuple type string of the form \"(T0,T1,...)\", got %q", s)
	}

	inner := s[1 : len(s)-1]
	if inner == "" {
		return nil, nil
	}

	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts, nil
}
