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

// Package typesys is the structural type system: the tagged variant used by
// every pass that needs to reason about an input-language type (as opposed
// to ast.Node's TypeString, which is the front-end's opaque textual form),
// and the translator mapping it down to the target language's own type
// vocabulary.
package typesys

// Location is the input language's data-location annotation, relevant only
// to Pointer.
type Location int

const (
	LocationStorage Location = iota
	LocationMemory
	LocationCalldata
	LocationDefault
)

func (l Location) String() string {
	switch l {
	case LocationStorage:
		return "storage"
	case LocationMemory:
		return "memory"
	case LocationCalldata:
		return "calldata"
	default:
		return "default"
	}
}

// Type is the closed sum of structural type-node variants this core
// operates on. It is a marker interface; exhaustive handling lives in
// translate.go's type switch, whose default branch is the translator's
// UnhandledType case.
type Type interface {
	isType()
	// String renders a debug form; not the target-language type (see
	// Cairo in translate.go for that).
	String() string
}

type tagged struct{}

func (tagged) isType() {}

// Int is a signed or unsigned integer of the given bit width.
type Int struct {
	tagged
	NBits  uint
	Signed bool
}

func (t Int) String() string {
	if t.Signed {
		return "int" + itoa(t.NBits)
	}

	return "uint" + itoa(t.NBits)
}

// Bool is the input language's boolean type.
type Bool struct{ tagged }

func (Bool) String() string { return "bool" }

// Address is the input language's account-address type.
type Address struct{ tagged }

func (Address) String() string { return "address" }

// String is the input language's dynamically-sized string type.
type String struct{ tagged }

func (String) String() string { return "string" }

// Bytes is the input language's dynamically-sized byte-array type.
type Bytes struct{ tagged }

func (Bytes) String() string { return "bytes" }

// Array is a (possibly dynamically-sized) homogeneous array. Length is nil
// for a dynamic array.
type Array struct {
	tagged
	Element Type
	Length  *uint64
}

func (t Array) String() string {
	if t.Length == nil {
		return t.Element.String() + "[]"
	}

	return t.Element.String() + "[" + itoa(uint(*t.Length)) + "]"
}

// Mapping is the input language's storage-only associative container.
type Mapping struct {
	tagged
	Key   Type
	Value Type
}

func (t Mapping) String() string { return "mapping(" + t.Key.String() + " => " + t.Value.String() + ")" }

// Function is a function type (used for function-typed values, e.g.
// external function pointers passed as calldata).
type Function struct {
	tagged
	Inputs  []Type
	Outputs []Type
}

func (Function) String() string { return "function" }

// Tuple is the type of a parenthesised expression list, most commonly a
// multi-value function return type.
type Tuple struct {
	tagged
	Elements []Type
}

func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elements {
		if i > 0 {
			s += ","
		}

		s += e.String()
	}

	return s + ")"
}

// Pointer wraps a type with a data-location annotation; the target
// language has no notion of storage/memory/calldata pointers, so the
// translator erases it and returns the pointee's own translation.
type Pointer struct {
	tagged
	Pointee  Type
	Location Location
}

func (t Pointer) String() string { return t.Pointee.String() + " " + t.Location.String() }

// UserDefined is a named type resolved to a front-end declaration (struct,
// enum, contract, user-defined value type).
type UserDefined struct {
	tagged
	Name                    string
	ReferencedDeclarationID int64
}

func (t UserDefined) String() string { return t.Name }

// Builtin is a target-opaque built-in type referenced by name (e.g. a
// front-end builtin like `msg` or `block`).
type Builtin struct {
	tagged
	Name string
}

func (t Builtin) String() string { return t.Name }

// BuiltinStruct is a built-in aggregate type referenced by name (e.g.
// `abi.decode`'s helper structs).
type BuiltinStruct struct {
	tagged
	Name string
}

func (t BuiltinStruct) String() string { return t.Name }

func itoa(n uint) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[i:])
}
