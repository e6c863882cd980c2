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

// Package pipeline drives the fixed pass sequence: declaration-splitter,
// then storage-access, then the dead-helper pruner, with a cheap invariant
// check between each consecutive pair. The driver is total — it aborts on
// the first error any stage returns, surfacing that error's Kind
// unchanged.
package pipeline

import (
	log "github.com/sirupsen/logrus"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/codegen"
	"github.com/ftupas/warp/pkg/corerr"
	"github.com/ftupas/warp/pkg/passes/declsplit"
	"github.com/ftupas/warp/pkg/passes/prune"
	"github.com/ftupas/warp/pkg/passes/storage"
	"github.com/ftupas/warp/pkg/typesys"
)

// Options configures one Run. The zero value is a valid, fully usable
// configuration: every knob is an explicit value here, never read from an
// environment variable or other ambient state.
type Options struct {
	// Logger receives a line per pass boundary and per invariant check. A
	// nil Logger falls back to logrus's standard logger.
	Logger *log.Logger
}

// Run applies the fixed pass sequence to the subtree rooted at rootID,
// using reg as the shared utility-function registry.
func Run(ctx *ast.Context, rootID int64, reg *codegen.Registry, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	logger.WithField("pass", "declsplit").Info("pipeline: running pass")

	if err := declsplit.Run(ctx, rootID); err != nil {
		logger.WithError(err).Error("pipeline: declsplit failed")
		return err
	}

	logger.Debug("pipeline: checking declaration-splitter invariant")

	if err := checkDeclSplitInvariant(ctx, rootID); err != nil {
		logger.WithError(err).Error("pipeline: declaration-splitter invariant violated")
		return err
	}

	logger.WithField("pass", "storage-access").Info("pipeline: running pass")

	if err := storage.Run(ctx, rootID, reg); err != nil {
		logger.WithError(err).Error("pipeline: storage-access failed")
		return err
	}

	logger.Debug("pipeline: checking storage-access invariant")

	if err := checkStorageAccessInvariant(ctx, rootID); err != nil {
		logger.WithError(err).Error("pipeline: storage-access invariant violated")
		return err
	}

	logger.WithField("pass", "prune").Info("pipeline: running pass")

	if err := prune.Run(ctx, rootID, reg); err != nil {
		logger.WithError(err).Error("pipeline: dead-helper prune failed")
		return err
	}

	return nil
}

// checkDeclSplitInvariant asserts the post-declsplit property: no
// VariableDeclarationStatement reachable from rootID binds more than one
// name, except the atomic tuple-returning-call case, which keeps its
// FunctionCall initialiser untouched.
func checkDeclSplitInvariant(ctx *ast.Context, rootID int64) error {
	var violation error

	walk(ctx, rootID, func(n ast.Node) {
		if violation != nil {
			return
		}

		stmt, ok := n.(*ast.VariableDeclarationStatement)
		if !ok || len(stmt.DeclarationIDs) <= 1 {
			return
		}

		if initNode, ok := ctx.Get(stmt.InitialValueID); ok {
			if _, isCall := initNode.(*ast.FunctionCall); isCall {
				return
			}
		}

		violation = corerr.OnNode(corerr.AssertionFailure, stmt.Id(), stmt.Describe(),
			"pipeline: declaration-splitter invariant violated: multi-name declaration survives with a non-call initialiser")
	})

	return violation
}

// checkStorageAccessInvariant asserts the post-storage-access property: no
// surviving Identifier references a state variable, and no surviving
// IndexAccess has a storage-located Mapping base.
func checkStorageAccessInvariant(ctx *ast.Context, rootID int64) error {
	var violation error

	walk(ctx, rootID, func(n ast.Node) {
		if violation != nil {
			return
		}

		switch node := n.(type) {
		case *ast.Identifier:
			decl, ok := node.VReferencedDeclaration(ctx)
			if ok && decl.StateVariable {
				violation = corerr.OnNode(corerr.AssertionFailure, node.Id(), node.Describe(),
					"pipeline: storage-access invariant violated: identifier still references a state variable")
			}
		case *ast.IndexAccess:
			if isUnrewrittenMappingAccess(ctx, node) {
				violation = corerr.OnNode(corerr.AssertionFailure, node.Id(), node.Describe(),
					"pipeline: storage-access invariant violated: index access over a storage mapping survives un-rewritten")
			}
		}
	})

	return violation
}

func isUnrewrittenMappingAccess(ctx *ast.Context, idx *ast.IndexAccess) bool {
	baseNode, ok := ctx.Get(idx.BaseID)
	if !ok {
		return false
	}

	ident, ok := baseNode.(*ast.Identifier)
	if !ok {
		return false
	}

	decl, ok := ident.VReferencedDeclaration(ctx)
	if !ok || decl.Location != ast.LocationStorage {
		return false
	}

	typ, err := typesys.Resolve(ctx, decl.TypeNameID)
	if err != nil {
		return false
	}

	_, isMapping := typ.(typesys.Mapping)

	return isMapping
}

// walk visits id and every descendant reachable through Children(), in
// pre-order, skipping ids no longer registered (already consumed by an
// earlier pass's replacement).
func walk(ctx *ast.Context, id int64, visit func(ast.Node)) {
	node, ok := ctx.Get(id)
	if !ok {
		return
	}

	visit(node)

	for _, childID := range node.Children() {
		walk(ctx, childID, visit)
	}
}
