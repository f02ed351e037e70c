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

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
)

// Collect drains out until it is closed and acts as the pipeline supervisor:
//
//   - items without an error are returned in arrival order,
//   - the first error carried by an item is returned as err (items carrying
//     an error are not part of the returned slice),
//   - a panic recorded in the context PanicStore takes precedence and is
//     returned as a *PanicError,
//   - if ctx is done before out is closed, ctx.Err() is returned.
//
// Collect drains out until it is closed or ctx is done.
func Collect[S carrier.Carrier[S]](ctx context.Context, out <-chan S) ([]S, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	items := make([]S, 0, 4)
	var firstErr error
	for {
		select {
		case <-ctx.Done():
			return items, ctx.Err()
		case v, ok := <-out:
			if !ok {
				if err := PanicStoreFromContext(ctx).Err(); err != nil {
					return items, err
				}
				return items, firstErr
			}
			if err := v.GetError(); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			items = append(items, v)
		}
	}
}

// Run feeds items through p and collects the output with Collect.
// A PanicStore is attached to ctx when it does not carry one.
func Run[S carrier.Carrier[S]](ctx context.Context, p Processor[S], items ...S) ([]S, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, _ = EnsurePanicStore(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return Collect(ctx, p.Apply(ctx, Generator(ctx, items...)))
}
