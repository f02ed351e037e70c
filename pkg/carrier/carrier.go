// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package carrier

// UTF8String is a symbolic alias used throughout the module.
//
// File contents are raw bytes; UTF8String is only used when a carrier has to
// be rendered as text (logging, stdout).
type UTF8String = string

// Carrier is the item contract used by the generic pipeline.
//
// The stack (Processor, Processors, Async, Source, Dest, Splicer, …) is
// parameterized by a type S that implements Carrier[S].
//
// Method expectations:
//
//   - UTF8String returns the current UTF‑8 representation of the carrier.
//
//   - FromUTF8String creates a new carrier from a UTF‑8 token. The receiver is
//     treated as a prototype: most code calls it on the zero value of S, so it
//     must not rely on receiver state.
//
//   - WithIndex / GetIndex attach and retrieve an ordering hint.
//     Source uses it to record the discovery order of files.
//
//   - Aggregate combines multiple carrier values into a single value.
//
//   - WithError / GetError attach and retrieve a per-item error.
//
//     Important: errors carried by S are *data*, not control-flow. Most stages
//     forward error-carrying items unchanged. It is up to the final consumer to
//     decide how to handle them (see textual.Collect).
//
// Implementations should be cheap to copy (typically small structs) and
// methods must be safe to call on the zero value.
type Carrier[S any] interface {
	UTF8String() UTF8String
	FromUTF8String(s UTF8String) S
	WithIndex(index int) S
	GetIndex() int
	Aggregate(items []S) S
	WithError(err error) S
	GetError() error
}
