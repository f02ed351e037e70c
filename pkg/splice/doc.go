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

// Package splice merges the contents of one file ("inner") into another
// ("outer") at the first occurrence of a literal marker ("key").
//
// A Splicer is a textual.Processor[carrier.File]. It runs in two phases:
//
//   - Collection: every incoming file is classified as outer, inner or
//     pass-through, in arrival order. Pass-through files are forwarded
//     immediately; outer and inner files are consumed.
//   - Finalization: once the input channel is closed, a missing outer or
//     inner is loaded from the configured fallback path, the key is located
//     in the outer contents and exactly one spliced file is emitted.
//
// Typical usage:
//
//	s, err := splice.NewFromConfig(&splice.Config{Key: "<#key#>", Inner: "inner.html"})
//	if err != nil {
//	    return err
//	}
//	files, err := splice.Run(ctx, s, outer, inner, other)
//
// A failed run emits one error-carrying file in place of the result; Run
// (or textual.Collect) turns it into a returned error. See errors.go for the
// error taxonomy.
package splice
