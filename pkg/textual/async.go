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
)

// Async starts a single-worker streaming "map" stage.
//
// It consumes values from `in`, applies `f` to each value, and sends the
// resulting values to the returned channel.
//
//   - Async NEVER closes `in`. The upstream stage owns the input channel.
//   - Async closes the returned channel exactly once, when it is done.
//   - The worker goroutine exits when ctx is canceled, when `in` is closed by
//     upstream, or when `f` panics (the panic is recovered into the context
//     PanicStore).
//   - Async emits exactly one output for each input (1:1 mapping).
//     Stages that drop, hold back or synthesize items (such as the splicer)
//     write their own loop.
//
// Every receive and every send is performed in a select that also watches
// ctx.Done(). If the final consumer wants to stop early, it must cancel the
// context.
//
// The output channel is unbuffered: a slow consumer slows the whole pipeline
// and memory stays bounded.
func Async[T1 any, T2 any](ctx context.Context, in <-chan T1, f func(ctx context.Context, t T1) T2) <-chan T2 {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, _ = EnsurePanicStore(ctx)
	ctx, cancel := context.WithCancel(ctx)

	out := make(chan T2)
	go func() {
		defer close(out)
		defer cancel()

		// The panic is swallowed: the supervisor checks the PanicStore.
		defer func() {
			if r := recover(); r != nil {
				if ps := PanicStoreFromContext(ctx); ps != nil {
					ps.Store(r, debug.Stack())
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-in:
				if !ok {
					return
				}

				res := f(ctx, s)

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}()
	return out
}
