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

// Package prune drops registered utility-function helpers with no
// surviving call site. After the storage-access pass has rewritten every
// state-variable access into a call against the utility-function
// registry, a helper that an earlier pass registered speculatively (the
// registry is keyed by Cairo type, not by which slots ended up surviving
// the declaration-splitter's rewrite) can end up with no surviving call
// site at all. This pass computes which registered helper names are still
// reachable from the lowered tree and drops the rest before Emit().
package prune

import (
	"strings"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/codegen"
	"github.com/ftupas/warp/pkg/mapper"
)

// Run walks the subtree rooted at rootID, computes the set of registered
// helper names still reachable from it, and prunes reg down to that set.
func Run(ctx *ast.Context, rootID int64, reg *codegen.Registry) error {
	reachable, err := Reachable(ctx, rootID, reg)
	if err != nil {
		return err
	}

	reg.Prune(reachable)

	return nil
}

// Reachable returns the set of reg's registered helper names reachable from
// rootID: every name directly called from a surviving FunctionCall, plus
// the transitive closure of names referenced textually from within an
// already-reachable helper's own rendered body (a helper body is plain
// target-language source, not an AST subtree this pass can walk, so a
// helper-calls-helper edge is detected by substring search over the
// canonical rendered text rather than by a second dispatch pass).
func Reachable(ctx *ast.Context, rootID int64, reg *codegen.Registry) (map[string]bool, error) {
	all := reg.Names()

	known := make(map[string]bool, len(all))
	for _, name := range all {
		known[name] = true
	}

	direct, err := directCalls(ctx, rootID, known)
	if err != nil {
		return nil, err
	}

	bodies := reg.Bodies()

	return closure(direct, all, bodies), nil
}

// directCalls collects every name in known that a FunctionCall node under
// rootID calls by a plain Identifier callee.
func directCalls(ctx *ast.Context, rootID int64, known map[string]bool) (map[string]bool, error) {
	found := make(map[string]bool)

	table := &mapper.VisitorTable{}
	table.OnFunctionCall = func(ctx *ast.Context, id int64, n *ast.FunctionCall) error {
		if calleeNode, ok := ctx.Get(n.CalleeID); ok {
			if ident, isIdent := calleeNode.(*ast.Identifier); isIdent && known[ident.Name] {
				found[ident.Name] = true
			}
		}

		return mapper.CommonVisit(ctx, id, table)
	}

	if err := mapper.Dispatch(ctx, rootID, table); err != nil {
		return nil, err
	}

	return found, nil
}

// closure grows seed by repeatedly scanning every already-reached name's
// rendered body for occurrences of every not-yet-reached known name, until
// a pass finds nothing new.
func closure(seed map[string]bool, all []string, bodies map[string]string) map[string]bool {
	reached := make(map[string]bool, len(seed))
	for name := range seed {
		reached[name] = true
	}

	for grew := true; grew; {
		grew = false

		for name := range reached {
			for _, candidate := range all {
				if reached[candidate] {
					continue
				}

				if strings.Contains(bodies[name], candidate) {
					reached[candidate] = true
					grew = true
				}
			}
		}
	}

	return reached
}
