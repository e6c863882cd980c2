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

// NoID marks an absent optional child reference. Id fields hold NoID (never
// a sentinel pointer) so callers can compare directly; typed accessors
// report such a child as (nil, false).
const NoID int64 = -1

// Node is the common contract every AST node variant satisfies. Kind-
// specific child access happens through each concrete type's own typed
// accessor methods (e.g. (*Assignment).VLeftHandSide); Children exists only
// for the mapper's generic default-recursion fallback.
type Node interface {
	// Id returns this node's identity, unique and monotonic within its
	// context.
	Id() int64
	// Kind returns the closed-set tag for this node.
	Kind() Kind
	// SourceSpan returns the front-end-supplied source span string.
	SourceSpan() string
	// TypeString returns the front-end-assigned type string, or "" if this
	// node carries none (e.g. a Block).
	TypeString() string
	// SetTypeString overwrites the type string, used when a pass
	// synthesises a node and must assign its type itself.
	SetTypeString(string)
	// Children returns the ordered list of this node's child ids, skipping
	// absent optional children. Used by commonVisit for default recursion.
	Children() []int64
	// Describe renders a short human-readable summary for diagnostics.
	Describe() string
	// replaceChild rewrites any field equal to oldID to newID, reporting
	// whether it held oldID at all. Used exclusively by Context.ReplaceNode
	// to patch a parent's reference during substitution.
	replaceChild(oldID, newID int64) bool

	setId(int64)
}

// base is embedded by every concrete node type and supplies the fields and
// methods common to all of them.
type base struct {
	id         int64
	span       string
	typeString string
}

func (b *base) Id() int64                { return b.id }
func (b *base) setId(id int64)           { b.id = id }
func (b *base) SourceSpan() string       { return b.span }
func (b *base) TypeString() string       { return b.typeString }
func (b *base) SetTypeString(t string)   { b.typeString = t }

func appendIfSet(ids []int64, id int64) []int64 {
	if id == NoID {
		return ids
	}

	return append(ids, id)
}

// Assignment is `lhs = rhs` (or a compound-assignment operator, which this
// core treats identically since operator desugaring is the front-end's
// job).
type Assignment struct {
	base

	Operator         string
	LeftHandSideID   int64
	RightHandSideID  int64
}

func (n *Assignment) Kind() Kind { return KindAssignment }

func (n *Assignment) Children() []int64 {
	return appendIfSet(appendIfSet(nil, n.LeftHandSideID), n.RightHandSideID)
}

func (n *Assignment) Describe() string {
	return "Assignment(" + n.Operator + ")"
}

func (n *Assignment) replaceChild(oldID, newID int64) bool {
	found := false
	if n.LeftHandSideID == oldID {
		n.LeftHandSideID = newID
		found = true
	}

	if n.RightHandSideID == oldID {
		n.RightHandSideID = newID
		found = true
	}

	return found
}

// Identifier references a declaration by id; ReferencedDeclarationID is
// NoID for identifiers the front-end could not resolve (never produced for
// well-typed input, but defensively handled).
type Identifier struct {
	base

	Name                    string
	ReferencedDeclarationID int64
}

func (n *Identifier) Kind() Kind          { return KindIdentifier }
func (n *Identifier) Children() []int64   { return nil }
func (n *Identifier) Describe() string    { return "Identifier(" + n.Name + ")" }
func (n *Identifier) replaceChild(int64, int64) bool { return false }

// Literal is any compile-time constant token (number, string, bool, hex).
type Literal struct {
	base

	// Value is the literal's exact textual form as the front-end produced
	// it, e.g. "1_000", "0x2a", "1.5e2".
	Value string
	// Subdenomination mirrors the input language's optional literal suffix
	// (e.g. "wei", "ether"); empty when absent. Out of scope for folding,
	// carried only so a pass can detect and reject it explicitly.
	Subdenomination string
	// HexValue is the literal's hex form, e.g. "0x2a" alongside Value
	// "42". Empty when a literal carries no hex form of its own (the
	// common case for front-end-produced literals); passes that
	// synthesize a literal from an integer they already hold, such as a
	// storage slot, populate it alongside Value.
	HexValue string
}

func (n *Literal) Kind() Kind        { return KindLiteral }
func (n *Literal) Children() []int64 { return nil }
func (n *Literal) Describe() string  { return "Literal(" + n.Value + ")" }
func (n *Literal) replaceChild(int64, int64) bool { return false }

// IndexAccess is `base[index]`; IndexID is NoID for the bare `T[]` array-
// type-name spelling (distinct from an actual indexing expression). Passes
// that require a concrete index reject the NoID form explicitly.
type IndexAccess struct {
	base

	BaseID  int64
	IndexID int64
}

func (n *IndexAccess) Kind() Kind { return KindIndexAccess }

func (n *IndexAccess) Children() []int64 {
	return appendIfSet(appendIfSet(nil, n.BaseID), n.IndexID)
}

func (n *IndexAccess) Describe() string { return "IndexAccess" }

func (n *IndexAccess) replaceChild(oldID, newID int64) bool {
	found := false
	if n.BaseID == oldID {
		n.BaseID = newID
		found = true
	}

	if n.IndexID == oldID {
		n.IndexID = newID
		found = true
	}

	return found
}

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	base

	CalleeID  int64
	ArgumentIDs []int64
}

func (n *FunctionCall) Kind() Kind { return KindFunctionCall }

func (n *FunctionCall) Children() []int64 {
	ids := appendIfSet(nil, n.CalleeID)
	return append(ids, n.ArgumentIDs...)
}

func (n *FunctionCall) Describe() string { return "FunctionCall" }

func (n *FunctionCall) replaceChild(oldID, newID int64) bool {
	found := false
	if n.CalleeID == oldID {
		n.CalleeID = newID
		found = true
	}

	for i, id := range n.ArgumentIDs {
		if id == oldID {
			n.ArgumentIDs[i] = newID
			found = true
		}
	}

	return found
}

// TupleExpression is `(a, b, ...)`; a nil entry (NoID) in ComponentIDs is a
// deliberately omitted tuple slot, e.g. `(a, , c) = f();`.
type TupleExpression struct {
	base

	ComponentIDs []int64
}

func (n *TupleExpression) Kind() Kind { return KindTupleExpression }

func (n *TupleExpression) Children() []int64 {
	var ids []int64
	for _, id := range n.ComponentIDs {
		ids = appendIfSet(ids, id)
	}

	return ids
}

func (n *TupleExpression) Describe() string { return "TupleExpression" }

func (n *TupleExpression) replaceChild(oldID, newID int64) bool {
	found := false
	for i, id := range n.ComponentIDs {
		if id == oldID {
			n.ComponentIDs[i] = newID
			found = true
		}
	}

	return found
}

// Mutability mirrors the input language's variable mutability modifiers,
// relevant to passes that synthesise their own Constant-mutability
// temporaries.
type Mutability int

const (
	MutabilityMutable Mutability = iota
	MutabilityConstant
	MutabilityImmutable
)

// StorageLocation mirrors the input language's data-location annotations.
type StorageLocation int

const (
	LocationDefault StorageLocation = iota
	LocationStorage
	LocationMemory
	LocationCalldata
)

// VariableDeclaration declares one name with one type. StateVariable is
// the flag the storage-access pass's isStateVar predicate reads.
type VariableDeclaration struct {
	base

	Name            string
	StateVariable   bool
	Mutability      Mutability
	Location        StorageLocation
	// TypeNameID references the declaration's ElementaryTypeName/Mapping/etc
	// type-name subtree, used by the declaration-splitter when it needs the
	// declared type's textual form.
	TypeNameID int64
	// InitialValueID is set only when this declaration owns its own
	// initialiser directly (single-name declaration); multi-name
	// declarations carry their shared initialiser on the enclosing
	// VariableDeclarationStatement instead.
	InitialValueID int64
}

func (n *VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

func (n *VariableDeclaration) Children() []int64 {
	return appendIfSet(appendIfSet(nil, n.TypeNameID), n.InitialValueID)
}

func (n *VariableDeclaration) Describe() string {
	return "VariableDeclaration(" + n.Name + ")"
}

func (n *VariableDeclaration) replaceChild(oldID, newID int64) bool {
	found := false
	if n.TypeNameID == oldID {
		n.TypeNameID = newID
		found = true
	}

	if n.InitialValueID == oldID {
		n.InitialValueID = newID
		found = true
	}

	return found
}

// VariableDeclarationStatement binds zero or more declarations (a nil entry
// is an omitted tuple slot, as for TupleExpression) to an optional shared
// initialiser.
type VariableDeclarationStatement struct {
	base

	DeclarationIDs []int64
	InitialValueID int64
	Documentation  string
	Raw            string
}

func (n *VariableDeclarationStatement) Kind() Kind { return KindVariableDeclarationStatement }

func (n *VariableDeclarationStatement) Children() []int64 {
	ids := make([]int64, 0, len(n.DeclarationIDs)+1)
	for _, id := range n.DeclarationIDs {
		ids = appendIfSet(ids, id)
	}

	return appendIfSet(ids, n.InitialValueID)
}

func (n *VariableDeclarationStatement) Describe() string {
	return "VariableDeclarationStatement"
}

func (n *VariableDeclarationStatement) replaceChild(oldID, newID int64) bool {
	found := false
	for i, id := range n.DeclarationIDs {
		if id == oldID {
			n.DeclarationIDs[i] = newID
			found = true
		}
	}

	if n.InitialValueID == oldID {
		n.InitialValueID = newID
		found = true
	}

	return found
}

// ExpressionStatement is a bare expression evaluated for its side effect.
type ExpressionStatement struct {
	base

	ExpressionID int64
}

func (n *ExpressionStatement) Kind() Kind { return KindExpressionStatement }

func (n *ExpressionStatement) Children() []int64 {
	return appendIfSet(nil, n.ExpressionID)
}

func (n *ExpressionStatement) Describe() string { return "ExpressionStatement" }

func (n *ExpressionStatement) replaceChild(oldID, newID int64) bool {
	if n.ExpressionID == oldID {
		n.ExpressionID = newID
		return true
	}

	return false
}

// Block is an ordered sequence of statements. A pass that rewrites a
// block's contents replaces StatementIDs wholesale via ReplaceStatements
// rather than patching entries one at a time.
type Block struct {
	base

	StatementIDs []int64
}

func (n *Block) Kind() Kind          { return KindBlock }
func (n *Block) Children() []int64   { return append([]int64(nil), n.StatementIDs...) }
func (n *Block) Describe() string    { return "Block" }

func (n *Block) replaceChild(oldID, newID int64) bool {
	found := false
	for i, id := range n.StatementIDs {
		if id == oldID {
			n.StatementIDs[i] = newID
			found = true
		}
	}

	return found
}

// ReplaceStatements overwrites the block's statement sequence wholesale.
func (n *Block) ReplaceStatements(ids []int64) { n.StatementIDs = ids }

// UncheckedBlock is identical to Block in structure; the input language's
// unchecked-arithmetic scoping is irrelevant to every pass in this core, so
// it is modelled as a distinct kind purely so mappers that must not descend
// into one (none currently) retain the option to special-case it.
type UncheckedBlock struct {
	base

	StatementIDs []int64
}

func (n *UncheckedBlock) Kind() Kind        { return KindUncheckedBlock }
func (n *UncheckedBlock) Children() []int64 { return append([]int64(nil), n.StatementIDs...) }
func (n *UncheckedBlock) Describe() string  { return "UncheckedBlock" }

func (n *UncheckedBlock) replaceChild(oldID, newID int64) bool {
	found := false
	for i, id := range n.StatementIDs {
		if id == oldID {
			n.StatementIDs[i] = newID
			found = true
		}
	}

	return found
}

// ReplaceStatements overwrites the block's statement sequence wholesale.
func (n *UncheckedBlock) ReplaceStatements(ids []int64) { n.StatementIDs = ids }

// Mapping is a type-name node, `mapping(Key => Value)`, as it appears in
// declaration position (distinct from the structural type-node variant in
// package typesys, which is what TypeString/translator operate on; this is
// the AST spelling a VariableDeclaration's TypeNameID points at).
type Mapping struct {
	base

	KeyTypeID   int64
	ValueTypeID int64
}

func (n *Mapping) Kind() Kind { return KindMapping }

func (n *Mapping) Children() []int64 {
	return appendIfSet(appendIfSet(nil, n.KeyTypeID), n.ValueTypeID)
}

func (n *Mapping) Describe() string { return "Mapping" }

func (n *Mapping) replaceChild(oldID, newID int64) bool {
	found := false
	if n.KeyTypeID == oldID {
		n.KeyTypeID = newID
		found = true
	}

	if n.ValueTypeID == oldID {
		n.ValueTypeID = newID
		found = true
	}

	return found
}

// ElementaryTypeName is a leaf type-name node, e.g. `uint256`, `address`.
type ElementaryTypeName struct {
	base

	Name string
}

func (n *ElementaryTypeName) Kind() Kind        { return KindElementaryTypeName }
func (n *ElementaryTypeName) Children() []int64 { return nil }
func (n *ElementaryTypeName) Describe() string  { return "ElementaryTypeName(" + n.Name + ")" }
func (n *ElementaryTypeName) replaceChild(int64, int64) bool { return false }

// ContractDefinition owns a storage allocation table entry per state
// variable declared within it; the storage-access pass looks this table up
// via Context.ClosestAncestor(node, KindContractDefinition).
type ContractDefinition struct {
	base

	Name          string
	StateVarIDs   []int64
	FunctionBodyIDs []int64
}

func (n *ContractDefinition) Kind() Kind { return KindContractDefinition }

func (n *ContractDefinition) Children() []int64 {
	ids := append([]int64(nil), n.StateVarIDs...)
	return append(ids, n.FunctionBodyIDs...)
}

func (n *ContractDefinition) Describe() string {
	return "ContractDefinition(" + n.Name + ")"
}

func (n *ContractDefinition) replaceChild(oldID, newID int64) bool {
	found := false
	for i, id := range n.StateVarIDs {
		if id == oldID {
			n.StateVarIDs[i] = newID
			found = true
		}
	}

	for i, id := range n.FunctionBodyIDs {
		if id == oldID {
			n.FunctionBodyIDs[i] = newID
			found = true
		}
	}

	return found
}
