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

// Package codegen is the utility-function generator:
// storageRead/storageWrite/readMapping/writeMapping each return a
// target-language call expression and idempotently register, keyed by a
// canonical signature, the generated helper's body for later emission.
package codegen

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/ftupas/warp/pkg/ast"
	"github.com/ftupas/warp/pkg/corerr"
	"github.com/ftupas/warp/pkg/fieldvalue"
	"github.com/ftupas/warp/pkg/rational"
	"github.com/ftupas/warp/pkg/typesys"
)

// Registry is the per-compilation utility-function table. It is never
// shared between compilations, matching the one-mutable-context-per-
// compilation concurrency model; callers construct exactly one per
// Context.
type Registry struct {
	ctx *ast.Context

	names  map[string]string // canonical key -> generated helper name
	order  []string          // canonical keys in first-registration order
	bodies map[string]string // canonical key -> rendered helper body
}

// NewRegistry constructs an empty registry bound to ctx; every call
// expression it builds is registered into ctx.
func NewRegistry(ctx *ast.Context) *Registry {
	return &Registry{
		ctx:    ctx,
		names:  make(map[string]string),
		order:  make([]string, 0),
		bodies: make(map[string]string),
	}
}

type storageData struct {
	Name string
	Decl string
}

type mappingData struct {
	Name string
}

// StorageRead builds a `storageRead_<type>(slotLiteral, typeName)` call,
// registering the helper on first use. typeNameID is spliced into the call
// unchanged; the generator only needs cairoType to pick the right template
// family and canonical key.
func (r *Registry) StorageRead(slotLiteralID, typeNameID int64, cairoType string) (int64, error) {
	key := "storageRead:" + cairoType

	name, ok := r.names[key]
	if !ok {
		name = "storageRead_" + typesys.CanonicalMangle(cairoType)

		tmpl := storageReadFeltTmpl
		if cairoType == "Uint256" {
			tmpl = storageReadUint256Tmpl
		}

		body, err := render(tmpl, storageData{Name: name})
		if err != nil {
			return ast.NoID, err
		}

		r.register(key, name, body)
	}

	return r.buildCall(name, []int64{slotLiteralID, typeNameID})
}

// StorageWrite builds a `storageWrite_<type>(slotLiteral, value)` call.
// declID names the state variable being written, for the helper body's
// leading reference comment only — it contributes nothing to the emitted
// call's argument list. If valueID is a compile-time numeric literal, its
// textual form is folded through the rational literal engine into the
// target field representation before it is spliced into the call.
func (r *Registry) StorageWrite(declID, slotLiteralID, valueID int64, cairoType string) (int64, error) {
	r.foldLiteralConstant(valueID, cairoType)

	key := "storageWrite:" + cairoType

	name, ok := r.names[key]
	if !ok {
		name = "storageWrite_" + typesys.CanonicalMangle(cairoType)

		tmpl := storageWriteFeltTmpl
		if cairoType == "Uint256" {
			tmpl = storageWriteUint256Tmpl
		}

		body, err := render(tmpl, storageData{Name: name, Decl: r.declDescription(declID)})
		if err != nil {
			return ast.NoID, err
		}

		r.register(key, name, body)
	}

	return r.buildCall(name, []int64{slotLiteralID, valueID})
}

// ReadMapping builds a `readMapping_<key>_<value>(base, index)` call.
func (r *Registry) ReadMapping(baseID, indexID int64, mappingType typesys.Mapping) (int64, error) {
	if indexID == ast.NoID {
		return ast.NoID, corerr.New(corerr.AssertionFailure, "codegen.ReadMapping: missing index expression")
	}

	keyCairo, valueCairo, err := mappingCairoTypes(mappingType)
	if err != nil {
		return ast.NoID, err
	}

	key := "readMapping:" + keyCairo + "=>" + valueCairo

	name, ok := r.names[key]
	if !ok {
		name = "readMapping_" + typesys.CanonicalMangle(keyCairo) + "_" + typesys.CanonicalMangle(valueCairo)

		tmpl := readMappingFeltTmpl
		if valueCairo == "Uint256" {
			tmpl = readMappingUint256Tmpl
		}

		body, err := render(tmpl, mappingData{Name: name})
		if err != nil {
			return ast.NoID, err
		}

		r.register(key, name, body)
	}

	return r.buildCall(name, []int64{baseID, indexID})
}

// WriteMapping builds a `writeMapping_<key>_<value>(base, index, value)`
// call. If valueID is a compile-time numeric literal, its textual form is
// folded through the rational literal engine into the target field
// representation before it is spliced into the call.
func (r *Registry) WriteMapping(baseID, indexID, valueID int64, mappingType typesys.Mapping) (int64, error) {
	if indexID == ast.NoID {
		return ast.NoID, corerr.New(corerr.AssertionFailure, "codegen.WriteMapping: missing index expression")
	}

	keyCairo, valueCairo, err := mappingCairoTypes(mappingType)
	if err != nil {
		return ast.NoID, err
	}

	r.foldLiteralConstant(valueID, valueCairo)

	key := "writeMapping:" + keyCairo + "=>" + valueCairo

	name, ok := r.names[key]
	if !ok {
		name = "writeMapping_" + typesys.CanonicalMangle(keyCairo) + "_" + typesys.CanonicalMangle(valueCairo)

		tmpl := writeMappingFeltTmpl
		if valueCairo == "Uint256" {
			tmpl = writeMappingUint256Tmpl
		}

		body, err := render(tmpl, mappingData{Name: name})
		if err != nil {
			return ast.NoID, err
		}

		r.register(key, name, body)
	}

	return r.buildCall(name, []int64{baseID, indexID, valueID})
}

// Emit concatenates every registered helper's body, in first-registration
// order, as the compilation's output preamble.
func (r *Registry) Emit() string {
	var b strings.Builder

	for _, key := range r.order {
		b.WriteString(r.bodies[key])
		b.WriteString("\n")
	}

	return b.String()
}

// Names returns every currently-registered helper name, in
// first-registration order. Used by the dead-function pruner to know the
// registry's full emitted set before it computes reachability.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, key := range r.order {
		names[i] = r.names[key]
	}

	return names
}

// Bodies returns every registered helper's rendered body, keyed by the
// helper's generated name. Used by the dead-function pruner to search one
// helper's body for a call to another registered helper.
func (r *Registry) Bodies() map[string]string {
	bodies := make(map[string]string, len(r.order))
	for _, key := range r.order {
		bodies[r.names[key]] = r.bodies[key]
	}

	return bodies
}

// Prune drops every registered helper whose name is not in reachable,
// preserving relative order for the ones that remain.
func (r *Registry) Prune(reachable map[string]bool) {
	kept := r.order[:0]

	for _, key := range r.order {
		if reachable[r.names[key]] {
			kept = append(kept, key)
		} else {
			delete(r.names, key)
			delete(r.bodies, key)
		}
	}

	r.order = kept
}

// foldLiteralConstant rewrites valueID in place when it is a Literal whose
// text parses as a compile-time rational integer: the parsed value is
// folded into the field representation cairoType implies (a bare felt, or
// a two-limb Uint256) and its canonical textual form replaces the
// literal's Value. Anything else a write's value expression can be — a
// variable reference, a call result, a non-numeric literal such as a bool
// or string — is left untouched; folding only ever applies to a constant
// that the rational engine can actually parse and resolve to an integer.
func (r *Registry) foldLiteralConstant(valueID int64, cairoType string) {
	node, ok := r.ctx.Get(valueID)
	if !ok {
		return
	}

	lit, ok := node.(*ast.Literal)
	if !ok {
		return
	}

	parsed, err := rational.Parse(lit.Value)
	if err != nil {
		return
	}

	bitWidth := uint(typesys.FeltBitWidth)
	if cairoType == "Uint256" {
		bitWidth = typesys.FeltBitWidth + 1
	}

	folded, err := fieldvalue.FromRational(parsed, bitWidth)
	if err != nil {
		return
	}

	lit.Value = folded.String()
}

func (r *Registry) register(key, name, body string) {
	r.names[key] = name
	r.order = append(r.order, key)
	r.bodies[key] = body
}

func (r *Registry) buildCall(calleeName string, argIDs []int64) (int64, error) {
	callee := r.ctx.NewIdentifier(calleeName, ast.NoID)
	r.ctx.Register(callee, ast.NoID)

	call := r.ctx.NewFunctionCall(callee.Id(), argIDs)
	r.ctx.Register(call, ast.NoID)
	r.ctx.SetContextRecursive(call.Id())

	return call.Id(), nil
}

func (r *Registry) declDescription(declID int64) string {
	node, ok := r.ctx.Get(declID)
	if !ok {
		return "<unregistered declaration>"
	}

	decl, ok := node.(*ast.VariableDeclaration)
	if !ok {
		return node.Describe()
	}

	return "storage slot for " + decl.Name
}

func mappingCairoTypes(m typesys.Mapping) (keyCairo, valueCairo string, err error) {
	keyCairo, err = typesys.Cairo(m.Key)
	if err != nil {
		return "", "", err
	}

	valueCairo, err = typesys.Cairo(m.Value)
	if err != nil {
		return "", "", err
	}

	return keyCairo, valueCairo, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return "", corerr.New(corerr.TranspileFailed, "codegen: template render failed: %v", err)
	}

	return buf.String(), nil
}
