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

package splice

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
)

// verdict is the outcome of classifying one incoming file.
type verdict int

const (
	passThrough verdict = iota
	acceptedOuter
	acceptedInner
)

func (v verdict) String() string {
	switch v {
	case acceptedOuter:
		return "outer"
	case acceptedInner:
		return "inner"
	default:
		return "pass-through"
	}
}

// accumulator holds the state of one run. It is owned by a single Apply
// goroutine and never shared.
//
// hasOuter and hasInner are the "set" sentinels: a zero-length buffer is
// valid content.
type accumulator struct {
	outer    []byte
	template carrier.File
	hasOuter bool

	// inner holds every inner contribution, indexed by arrival order.
	inner    []carrier.File
	hasInner bool
}

// classify applies the collection rules to f and updates the accumulator.
// An error is returned only for streamed contents.
func (a *accumulator) classify(cfg Config, key []byte, f carrier.File) (verdict, error) {
	switch f.Contents.Kind() {
	case carrier.ContentsEmpty:
		return passThrough, nil
	case carrier.ContentsStream:
		return passThrough, fmt.Errorf("%w: %s", ErrUnsupportedContent, f.Path)
	case carrier.ContentsBytes:
	default:
		return passThrough, fmt.Errorf("%w: %s has contents of kind %v", ErrUnsupportedContent, f.Path, f.Contents.Kind())
	}

	if !a.hasOuter && f.Contents.Contains(key) && (cfg.Outer == "" || strings.Contains(f.Path, cfg.Outer)) {
		a.outer = bytes.Clone(f.Contents.Bytes())
		a.template = f.WithContents(carrier.Empty())
		a.hasOuter = true
		return acceptedOuter, nil
	}

	if cfg.Inner == "" {
		a.inner = append(a.inner, f.WithIndex(len(a.inner)))
		a.hasInner = true
		return acceptedInner, nil
	}

	if strings.Contains(f.Path, cfg.Inner) {
		a.inner = []carrier.File{f.WithIndex(0)}
		a.hasInner = true
		return acceptedInner, nil
	}

	return passThrough, nil
}

// innerBytes returns the inner contributions concatenated in arrival order.
func (a *accumulator) innerBytes() []byte {
	if len(a.inner) == 1 {
		return a.inner[0].Contents.Bytes()
	}
	return carrier.File{}.Aggregate(a.inner).Contents.Bytes()
}

// spliceAt replaces the first occurrence of key in outer with inner.
// ok is false when outer does not contain key.
func spliceAt(outer, inner, key []byte) (result []byte, ok bool) {
	i := bytes.Index(outer, key)
	if i < 0 {
		return nil, false
	}
	result = make([]byte, 0, len(outer)-len(key)+len(inner))
	result = append(result, outer[:i]...)
	result = append(result, inner...)
	result = append(result, outer[i+len(key):]...)
	return result, true
}
