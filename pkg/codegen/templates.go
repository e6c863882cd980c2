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

package codegen

import "text/template"

// Helper body templates, one per operation family. felt- and Uint256-typed
// helpers render from different templates within the same family since the
// two-limb representation needs a pair of storage_write calls, one per
// limb, where the single-limb felt form needs only one.
//
// These bodies are representative target-language source, not validated
// against a real Cairo compiler; they exist to be syntactically plausible
// and stable so Emit()'s output is deterministic and testable.

var storageReadFeltTmpl = template.Must(template.New("storageReadFelt").Parse(
	`func {{.Name}}(slot : felt) -> (value : felt):
    let (value) = storage_read(address = slot)
    return (value)
end
`))

var storageReadUint256Tmpl = template.Must(template.New("storageReadUint256").Parse(
	`func {{.Name}}(slot : felt) -> (value : Uint256):
    let (low) = storage_read(address = slot)
    let (high) = storage_read(address = slot + 1)
    return (Uint256(low=low, high=high))
end
`))

var storageWriteFeltTmpl = template.Must(template.New("storageWriteFelt").Parse(
	`// {{.Decl}}
func {{.Name}}(slot : felt, value : felt):
    storage_write(address = slot, value = value)
    return ()
end
`))

var storageWriteUint256Tmpl = template.Must(template.New("storageWriteUint256").Parse(
	`// {{.Decl}}
func {{.Name}}(slot : felt, value : Uint256):
    storage_write(address = slot, value = value.low)
    storage_write(address = slot + 1, value = value.high)
    return ()
end
`))

var readMappingFeltTmpl = template.Must(template.New("readMappingFelt").Parse(
	`func {{.Name}}(base : felt, index : felt) -> (value : felt):
    let (slot) = hash2{hash_ptr = pedersen_ptr}(base, index)
    let (value) = storage_read(address = slot)
    return (value)
end
`))

var readMappingUint256Tmpl = template.Must(template.New("readMappingUint256").Parse(
	`func {{.Name}}(base : felt, index : felt) -> (value : Uint256):
    let (slot) = hash2{hash_ptr = pedersen_ptr}(base, index)
    let (low) = storage_read(address = slot)
    let (high) = storage_read(address = slot + 1)
    return (Uint256(low=low, high=high))
end
`))

var writeMappingFeltTmpl = template.Must(template.New("writeMappingFelt").Parse(
	`func {{.Name}}(base : felt, index : felt, value : felt):
    let (slot) = hash2{hash_ptr = pedersen_ptr}(base, index)
    storage_write(address = slot, value = value)
    return ()
end
`))

var writeMappingUint256Tmpl = template.Must(template.New("writeMappingUint256").Parse(
	`func {{.Name}}(base : felt, index : felt, value : Uint256):
    let (slot) = hash2{hash_ptr = pedersen_ptr}(base, index)
    storage_write(address = slot, value = value.low)
    storage_write(address = slot + 1, value = value.high)
    return ()
end
`))
