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

// Package corerr defines the tagged error taxonomy shared by every pass in
// the pipeline. Nothing in this module panics its way out of a pass except
// for genuinely unreachable internal states; everything else is a *Error
// with one of the Kinds below, propagated up through the pipeline driver.
package corerr

import (
	"errors"
	"fmt"
)

// Kind identifies which of the compiler's fatal error categories occurred.
type Kind int

const (
	// UnhandledType indicates the type translator was asked to translate a
	// type-node variant it does not know.
	UnhandledType Kind = iota
	// NotSupportedYet indicates a recognised construct that is not yet
	// lowered by any pass.
	NotSupportedYet
	// WillNotSupport indicates a construct deliberately excluded from
	// lowering.
	WillNotSupport
	// TranspileFailed indicates internal lowering could not proceed on a
	// valid input.
	TranspileFailed
	// AssertionFailure indicates an invariant expected from an earlier pass
	// was broken; always a compiler bug.
	AssertionFailure
	// DivisionByZero indicates a zero-denominator rational was constructed.
	DivisionByZero
)

// String renders a Kind for log messages and error text.
func (k Kind) String() string {
	switch k {
	case UnhandledType:
		return "UnhandledType"
	case NotSupportedYet:
		return "NotSupportedYet"
	case WillNotSupport:
		return "WillNotSupport"
	case TranspileFailed:
		return "TranspileFailed"
	case AssertionFailure:
		return "AssertionFailure"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type raised across pass boundaries. NodeID and
// NodeDescription are optional; set them whenever the error concerns a
// specific AST node so the message can include its printed description.
type Error struct {
	Kind            Kind
	Message         string
	NodeID          int64
	NodeDescription string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.NodeDescription != "" {
		return fmt.Sprintf("%s: %s (node #%d: %s)", e.Kind, e.Message, e.NodeID, e.NodeDescription)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New constructs a plain, node-less error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// OnNode constructs an error tagged with the offending node's identity and
// printed description.
func OnNode(kind Kind, nodeID int64, nodeDescription, format string, args ...any) *Error {
	return &Error{
		Kind:            kind,
		Message:         fmt.Sprintf(format, args...),
		NodeID:          nodeID,
		NodeDescription: nodeDescription,
	}
}

// Is reports whether err is a *Error of the given kind, unwrapping as
// necessary. Provided so callers can branch on error category without a
// type assertion at every call site.
func Is(err error, kind Kind) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}

	return ce.Kind == kind
}
