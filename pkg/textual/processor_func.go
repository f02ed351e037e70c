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

package textual

import (
	"context"
	"runtime/debug"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
)

// ProcessorFunc is a function adapter that implements Processor.
//
// It allows plain functions to be used as Processor values:
//
//	p := ProcessorFunc[carrier.File](func(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
//	    return Async(ctx, in, func(ctx context.Context, f carrier.File) carrier.File {
//	        return f
//	    })
//	})
//
// Apply recovers panics raised while wiring the stage and stores them in the
// context PanicStore; a closed channel is returned in that case.
type ProcessorFunc[S carrier.Carrier[S]] func(ctx context.Context, in <-chan S) <-chan S

// Apply calls f(ctx, in).
func (f ProcessorFunc[S]) Apply(ctx context.Context, in <-chan S) (out <-chan S) {
	ctx, ps := EnsurePanicStore(ctx)

	defer func() {
		if r := recover(); r != nil {
			if ps != nil {
				ps.Store(r, debug.Stack())
			}
			out = closedChan[S]()
		}
	}()

	out = f(ctx, in)
	if out == nil {
		if ps != nil {
			ps.Store("textual: ProcessorFunc returned a nil channel", debug.Stack())
		}
		out = closedChan[S]()
	}
	return out
}

// Chain returns a ProcessorFunc running f and then p in sequence.
// Nil processors are ignored.
func (f ProcessorFunc[S]) Chain(p ...Processor[S]) ProcessorFunc[S] {
	switch len(p) {
	case 0:
		return f
	case 1:
		if p[0] == nil {
			return f
		}
		next := p[0]
		return ProcessorFunc[S](func(ctx context.Context, in <-chan S) <-chan S {
			return next.Apply(ctx, f.Apply(ctx, in))
		})
	default:
		return NewChain[S](append([]Processor[S]{f}, p...)...)
	}
}
