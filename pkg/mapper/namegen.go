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

package mapper

import (
	"strconv"

	"github.com/ftupas/warp/pkg/typesys"
)

// NameGenerator produces deterministic `__warp_<prefix>_<counter>` names
// (e.g. the declaration-splitter pass's `__warp_td_<n>` temporaries). A
// NameGenerator is always a fresh, pass-instance-local value — never a
// package-level counter — so names stay deterministic within one
// compilation without leaking state into the next.
type NameGenerator struct {
	counters map[string]int
}

// NewNameGenerator constructs an empty generator.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{counters: make(map[string]int)}
}

// Next returns the next name for the given prefix, mangled the same way
// user-defined type names are, and advances that prefix's counter.
func (g *NameGenerator) Next(prefix string) string {
	mangled := typesys.CanonicalMangle(prefix)
	n := g.counters[mangled]
	g.counters[mangled] = n + 1

	return "__warp_" + mangled + "_" + strconv.Itoa(n)
}
