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

// This file collects the constructors passes use to synthesise new nodes
// (slot literals, storage-accessor call expressions, split declaration
// statements, ...). Every constructor reserves its own id from ctx but
// leaves registration to the caller, since only the caller knows which
// parent the new node belongs under.

// NewAssignment constructs an unregistered Assignment node.
func (c *Context) NewAssignment(operator string, lhs, rhs int64) *Assignment {
	return &Assignment{
		base:            base{id: c.ReserveId()},
		Operator:        operator,
		LeftHandSideID:  lhs,
		RightHandSideID: rhs,
	}
}

// NewIdentifier constructs an unregistered Identifier node.
func (c *Context) NewIdentifier(name string, referencedDeclarationID int64) *Identifier {
	return &Identifier{
		base:                    base{id: c.ReserveId()},
		Name:                    name,
		ReferencedDeclarationID: referencedDeclarationID,
	}
}

// NewLiteral constructs an unregistered Literal node.
func (c *Context) NewLiteral(value string) *Literal {
	return &Literal{base: base{id: c.ReserveId()}, Value: value}
}

// NewIndexAccess constructs an unregistered IndexAccess node.
func (c *Context) NewIndexAccess(baseID, indexID int64) *IndexAccess {
	return &IndexAccess{base: base{id: c.ReserveId()}, BaseID: baseID, IndexID: indexID}
}

// NewFunctionCall constructs an unregistered FunctionCall node.
func (c *Context) NewFunctionCall(calleeID int64, argumentIDs []int64) *FunctionCall {
	return &FunctionCall{base: base{id: c.ReserveId()}, CalleeID: calleeID, ArgumentIDs: argumentIDs}
}

// NewTupleExpression constructs an unregistered TupleExpression node.
func (c *Context) NewTupleExpression(componentIDs []int64) *TupleExpression {
	return &TupleExpression{base: base{id: c.ReserveId()}, ComponentIDs: componentIDs}
}

// NewVariableDeclaration constructs an unregistered VariableDeclaration
// node.
func (c *Context) NewVariableDeclaration(name string, mutability Mutability, location StorageLocation) *VariableDeclaration {
	return &VariableDeclaration{
		base:           base{id: c.ReserveId()},
		Name:           name,
		Mutability:     mutability,
		Location:       location,
		TypeNameID:     NoID,
		InitialValueID: NoID,
	}
}

// NewVariableDeclarationStatement constructs an unregistered
// VariableDeclarationStatement node.
func (c *Context) NewVariableDeclarationStatement(declarationIDs []int64, initialValueID int64) *VariableDeclarationStatement {
	return &VariableDeclarationStatement{
		base:           base{id: c.ReserveId()},
		DeclarationIDs: declarationIDs,
		InitialValueID: initialValueID,
	}
}

// NewExpressionStatement constructs an unregistered ExpressionStatement
// node.
func (c *Context) NewExpressionStatement(expressionID int64) *ExpressionStatement {
	return &ExpressionStatement{base: base{id: c.ReserveId()}, ExpressionID: expressionID}
}

// NewBlock constructs an unregistered Block node.
func (c *Context) NewBlock(statementIDs []int64) *Block {
	return &Block{base: base{id: c.ReserveId()}, StatementIDs: statementIDs}
}

// NewElementaryTypeName constructs an unregistered ElementaryTypeName node.
func (c *Context) NewElementaryTypeName(name string) *ElementaryTypeName {
	return &ElementaryTypeName{base: base{id: c.ReserveId()}, Name: name}
}

// NewUncheckedBlock constructs an unregistered UncheckedBlock node.
func (c *Context) NewUncheckedBlock(statementIDs []int64) *UncheckedBlock {
	return &UncheckedBlock{base: base{id: c.ReserveId()}, StatementIDs: statementIDs}
}

// NewMapping constructs an unregistered Mapping type-name node.
func (c *Context) NewMapping(keyTypeID, valueTypeID int64) *Mapping {
	return &Mapping{base: base{id: c.ReserveId()}, KeyTypeID: keyTypeID, ValueTypeID: valueTypeID}
}

// NewContractDefinition constructs an unregistered ContractDefinition node.
func (c *Context) NewContractDefinition(name string) *ContractDefinition {
	return &ContractDefinition{base: base{id: c.ReserveId()}, Name: name}
}
