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

package typesys

import (
	"strconv"
	"strings"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/corerr"
)

// Resolve walks a type-name subtree (an ElementaryTypeName or Mapping node,
// the only two type-name kinds this core's AST carries) and produces the
// structural Type it denotes. This is the bridge between the front-end's
// AST type-name spelling and the Type sum the translator in translate.go
// operates on.
func Resolve(ctx *ast.Context, typeNameID int64) (Type, error) {
	node, ok := ctx.Get(typeNameID)
	if !ok {
		return nil, corerr.New(corerr.AssertionFailure, "typesys.Resolve: type-name node %d is not registered", typeNameID)
	}

	switch n := node.(type) {
	case *ast.ElementaryTypeName:
		return resolveElementary(n.Name)
	case *ast.Mapping:
		key, err := Resolve(ctx, n.KeyTypeID)
		if err != nil {
			return nil, err
		}

		value, err := Resolve(ctx, n.ValueTypeID)
		if err != nil {
			return nil, err
		}

		return Mapping{Key: key, Value: value}, nil
	default:
		return nil, corerr.OnNode(corerr.UnhandledType, typeNameID, node.Describe(),
			"typesys.Resolve: node kind %s is not a type-name", node.Kind())
	}
}

// resolveElementary parses the handful of elementary spellings this core's
// front-end is known to produce: `uintN`/`intN`, `bool`, `address`,
// `string`, `bytes` (dynamic) and `bytesN` (fixed-width, folded into Bytes
// since the target representation is identical).
func resolveElementary(name string) (Type, error) {
	switch {
	case name == "bool":
		return Bool{}, nil
	case name == "address":
		return Address{}, nil
	case name == "string":
		return String{}, nil
	case name == "bytes" || strings.HasPrefix(name, "bytes"):
		return Bytes{}, nil
	case strings.HasPrefix(name, "uint"):
		return parseIntWidth(name, "uint", false)
	case strings.HasPrefix(name, "int"):
		return parseIntWidth(name, "int", true)
	default:
		return nil, corerr.New(corerr.UnhandledType, "typesys.resolveElementary: unrecognised elementary type name %q", name)
	}
}

func parseIntWidth(name, prefix string, signed bool) (Type, error) {
	suffix := strings.TrimPrefix(name, prefix)
	if suffix == "" {
		return Int{NBits: 256, Signed: signed}, nil
	}

	bits, err := strconv.ParseUint(suffix, 10, 16)
	if err != nil {
		return nil, corerr.New(corerr.UnhandledType, "typesys.resolveElementary: bad integer width in %q", name)
	}

	return Int{NBits: uint(bits), Signed: signed}, nil
}
