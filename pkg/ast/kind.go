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

// Kind is the closed set of node tags the front-end may produce. Adding a
// new kind means adding a concrete type implementing Node, a branch in
// mapper.Dispatch's per-kind switch, and a branch in the type translator
// if the new kind carries its own type-node variant.
type Kind int

const (
	KindAssignment Kind = iota
	KindIdentifier
	KindLiteral
	KindIndexAccess
	KindFunctionCall
	KindTupleExpression
	KindVariableDeclaration
	KindVariableDeclarationStatement
	KindExpressionStatement
	KindBlock
	KindUncheckedBlock
	KindMapping
	KindElementaryTypeName
	KindContractDefinition
)

// String gives each kind a stable printed name for log and error text.
func (k Kind) String() string {
	switch k {
	case KindAssignment:
		return "Assignment"
	case KindIdentifier:
		return "Identifier"
	case KindLiteral:
		return "Literal"
	case KindIndexAccess:
		return "IndexAccess"
	case KindFunctionCall:
		return "FunctionCall"
	case KindTupleExpression:
		return "TupleExpression"
	case KindVariableDeclaration:
		return "VariableDeclaration"
	case KindVariableDeclarationStatement:
		return "VariableDeclarationStatement"
	case KindExpressionStatement:
		return "ExpressionStatement"
	case KindBlock:
		return "Block"
	case KindUncheckedBlock:
		return "UncheckedBlock"
	case KindMapping:
		return "Mapping"
	case KindElementaryTypeName:
		return "ElementaryTypeName"
	case KindContractDefinition:
		return "ContractDefinition"
	default:
		return "UnknownKind"
	}
}
