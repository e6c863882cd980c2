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

import (
	"github.com/ftupas/warp/pkg/corerr"
)

// Context is the single owner of every node produced by one compilation. A
// Context is never shared between concurrent compilations: ids, the
// allocation table and every registered node live only here.
type Context struct {
	nextID   int64
	nodes    map[int64]Node
	parentOf map[int64]int64
	allocation map[int64]uint64
}

// NewContext constructs an empty, ready-to-use context.
func NewContext() *Context {
	return &Context{
		nextID:     0,
		nodes:      make(map[int64]Node),
		parentOf:   make(map[int64]int64),
		allocation: make(map[int64]uint64),
	}
}

// ReserveId allocates the next monotonic node identity for this context.
// Ids are opaque and not comparable across contexts.
func (c *Context) ReserveId() int64 {
	id := c.nextID
	c.nextID++

	return id
}

// Register places node into this context's arena, assigning parent as its
// parent (pass NoID for a root, e.g. a ContractDefinition). A node must
// already carry an id reserved via ReserveId.
func (c *Context) Register(node Node, parent int64) {
	c.nodes[node.Id()] = node
	if parent != NoID {
		c.parentOf[node.Id()] = parent
	}
}

// Get looks a node up by id, or returns (nil, false) if it is not (or no
// longer) registered.
func (c *Context) Get(id int64) (Node, bool) {
	if id == NoID {
		return nil, false
	}

	n, ok := c.nodes[id]

	return n, ok
}

// MustGet looks a node up by id and panics if absent; reserved for call
// sites where absence is already known to be impossible (e.g. right after
// Register), not for front-end-supplied ids.
func (c *Context) MustGet(id int64) Node {
	n, ok := c.Get(id)
	if !ok {
		panic("warp-core: unreachable: node not registered")
	}

	return n
}

// ParentId returns the id of node's registered parent, or (NoID, false) if
// node is a root or unregistered.
func (c *Context) ParentId(id int64) (int64, bool) {
	p, ok := c.parentOf[id]
	return p, ok
}

// ReplaceNode substitutes newID for oldID under oldID's registered parent
// (or parentOverride[0] if given): the parent's reference is repointed,
// newID is fully registered under that parent, and every descendant of
// newID is re-owned by this context via SetContextRecursive. oldID is
// dropped from the arena. Failing to find a parent is an AssertionFailure —
// a node with no registered parent should never reach replacement.
func (c *Context) ReplaceNode(oldID, newID int64, parentOverride ...int64) error {
	var parentID int64

	if len(parentOverride) > 0 {
		parentID = parentOverride[0]
	} else {
		pid, ok := c.parentOf[oldID]
		if !ok {
			old, _ := c.Get(oldID)
			desc := "?"
			if old != nil {
				desc = old.Describe()
			}

			return corerr.OnNode(corerr.AssertionFailure, oldID, desc,
				"ReplaceNode: no parent registered for node being replaced")
		}

		parentID = pid
	}

	parent, ok := c.Get(parentID)
	if !ok {
		return corerr.New(corerr.AssertionFailure,
			"ReplaceNode: parent %d of node %d is not registered", parentID, oldID)
	}

	if !parent.replaceChild(oldID, newID) {
		return corerr.OnNode(corerr.AssertionFailure, parentID, parent.Describe(),
			"ReplaceNode: parent does not reference old child %d", oldID)
	}

	newNode, ok := c.Get(newID)
	if !ok {
		return corerr.New(corerr.AssertionFailure,
			"ReplaceNode: replacement node %d is not registered", newID)
	}

	_ = newNode
	c.parentOf[newID] = parentID
	delete(c.nodes, oldID)
	delete(c.parentOf, oldID)
	c.SetContextRecursive(newID)

	return nil
}

// SetContextRecursive walks rootID's subtree (via Children) and ensures
// every descendant's parent link is recorded against this context. It is
// idempotent and safe to call on a subtree that is already fully owned; it
// exists for the case where a pass constructs several new nodes, registers
// only the root under a parent, and relies on this call to wire up the
// root's already-registered children.
func (c *Context) SetContextRecursive(rootID int64) {
	root, ok := c.Get(rootID)
	if !ok {
		return
	}

	for _, childID := range root.Children() {
		c.parentOf[childID] = rootID
		c.SetContextRecursive(childID)
	}
}

// ClosestAncestor walks parent links upward from id until it finds a node
// of the given kind, or returns (NoID, false) if the root is reached first.
func (c *Context) ClosestAncestor(id int64, kind Kind) (int64, bool) {
	cur := id

	for {
		parent, ok := c.parentOf[cur]
		if !ok {
			return NoID, false
		}

		node, ok := c.Get(parent)
		if !ok {
			return NoID, false
		}

		if node.Kind() == kind {
			return parent, true
		}

		cur = parent
	}
}

// Describe renders a short diagnostic string for a node id, tolerating an
// id that is no longer registered (already-replaced nodes still appear in
// error messages built before their replacement completed).
func (c *Context) Describe(id int64) string {
	n, ok := c.Get(id)
	if !ok {
		return "<unregistered node>"
	}

	return n.Describe()
}

// Clone deep-copies the subtree rooted at id into fresh ids within this
// same context, registering every copy and returning the clone's root id.
// Used whenever a pass needs to splice a copy of an existing subtree
// somewhere new while the original must remain reachable from its current
// parent.
func (c *Context) Clone(id int64) int64 {
	n, ok := c.Get(id)
	if !ok {
		return NoID
	}

	clone := cloneNode(n, c)
	newID := c.ReserveId()
	clone.setId(newID)
	c.Register(clone, NoID)

	for _, childID := range clone.Children() {
		newChildID := c.Clone(childID)
		clone.replaceChild(childID, newChildID)
		c.parentOf[newChildID] = newID
	}

	return newID
}

func cloneNode(n Node, _ *Context) Node {
	switch v := n.(type) {
	case *Assignment:
		cp := *v
		return &cp
	case *Identifier:
		cp := *v
		return &cp
	case *Literal:
		cp := *v
		return &cp
	case *IndexAccess:
		cp := *v
		return &cp
	case *FunctionCall:
		cp := *v
		cp.ArgumentIDs = append([]int64(nil), v.ArgumentIDs...)
		return &cp
	case *TupleExpression:
		cp := *v
		cp.ComponentIDs = append([]int64(nil), v.ComponentIDs...)
		return &cp
	case *VariableDeclaration:
		cp := *v
		return &cp
	case *VariableDeclarationStatement:
		cp := *v
		cp.DeclarationIDs = append([]int64(nil), v.DeclarationIDs...)
		return &cp
	case *ExpressionStatement:
		cp := *v
		return &cp
	case *Block:
		cp := *v
		cp.StatementIDs = append([]int64(nil), v.StatementIDs...)
		return &cp
	case *UncheckedBlock:
		cp := *v
		cp.StatementIDs = append([]int64(nil), v.StatementIDs...)
		return &cp
	case *Mapping:
		cp := *v
		return &cp
	case *ElementaryTypeName:
		cp := *v
		return &cp
	case *ContractDefinition:
		cp := *v
		cp.StateVarIDs = append([]int64(nil), v.StateVarIDs...)
		cp.FunctionBodyIDs = append([]int64(nil), v.FunctionBodyIDs...)
		return &cp
	default:
		panic("warp-core: unreachable: cloneNode: unknown node type")
	}
}

// SetAllocation installs the (externally assigned) storage slot for a
// state variable declaration id. Populated once, before any pass that reads
// storage slots runs; every state variable such a pass visits must have an
// entry here.
func (c *Context) SetAllocation(stateVarDeclID int64, slot uint64) {
	c.allocation[stateVarDeclID] = slot
}

// Allocation looks up a state variable declaration's assigned storage slot.
func (c *Context) Allocation(stateVarDeclID int64) (uint64, bool) {
	slot, ok := c.allocation[stateVarDeclID]
	return slot, ok
}
