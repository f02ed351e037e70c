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
	"fmt"
	"sync"
)

// PanicInfo holds details about a recovered panic.
//
// Value is the value passed to panic(...). Stack is the goroutine stack at
// recovery time (runtime/debug.Stack()).
type PanicInfo struct {
	Value any
	Stack []byte
}

// PanicError is the error form of a PanicInfo, returned by Collect.
type PanicError struct {
	Info PanicInfo
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("textual: recovered panic: %v", e.Info.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Info.Value.(error)
	return err
}

// PanicStore is a mutable holder that can be placed in a context via
// WithPanicStore.
//
//   - Store is write-once: the first call wins, subsequent calls are ignored.
//   - Load is safe to call concurrently with Store.
//   - Load returns a COPY of the stored stack trace.
//
// Stages communicate through channels and have no natural "return error"
// path from their goroutine. PanicStore surfaces unexpected panics to the
// pipeline supervisor without crashing the process.
type PanicStore struct {
	once sync.Once
	mu   sync.Mutex
	info PanicInfo
	set  bool
}

// Store records the first panic. If ps is nil, Store is a no-op.
func (ps *PanicStore) Store(value any, stack []byte) {
	if ps == nil {
		return
	}
	ps.once.Do(func() {
		var stackCopy []byte
		if len(stack) > 0 {
			stackCopy = make([]byte, len(stack))
			copy(stackCopy, stack)
		}

		ps.mu.Lock()
		ps.info = PanicInfo{Value: value, Stack: stackCopy}
		ps.set = true
		ps.mu.Unlock()
	})
}

// Load returns the stored panic, if any.
func (ps *PanicStore) Load() (PanicInfo, bool) {
	if ps == nil {
		return PanicInfo{}, false
	}

	ps.mu.Lock()
	info := ps.info
	ok := ps.set
	ps.mu.Unlock()

	if !ok {
		return PanicInfo{}, false
	}

	if len(info.Stack) > 0 {
		stackCopy := make([]byte, len(info.Stack))
		copy(stackCopy, info.Stack)
		info.Stack = stackCopy
	}

	return info, true
}

// Err returns the stored panic as a *PanicError, or nil.
func (ps *PanicStore) Err() error {
	info, ok := ps.Load()
	if !ok {
		return nil
	}
	return &PanicError{Info: info}
}

type panicStoreKey struct{}

// WithPanicStore returns a derived context that carries a new PanicStore,
// plus the store. If parent is nil, it falls back to context.Background().
//
// Typical usage at the pipeline boundary:
//
//	ctx, ps := WithPanicStore(base)
//	out := stage.Apply(ctx, in)
//	for f := range out {
//	    _ = f
//	}
//	if err := ps.Err(); err != nil {
//	    // surface the fatal fault
//	}
func WithPanicStore(parent context.Context) (context.Context, *PanicStore) {
	if parent == nil {
		parent = context.Background()
	}
	ps := &PanicStore{}
	return context.WithValue(parent, panicStoreKey{}, ps), ps
}

// EnsurePanicStore returns ctx unchanged when it already carries a store,
// otherwise a derived context with a fresh one.
func EnsurePanicStore(ctx context.Context) (context.Context, *PanicStore) {
	if ps := PanicStoreFromContext(ctx); ps != nil {
		return ctx, ps
	}
	return WithPanicStore(ctx)
}

// PanicStoreFromContext retrieves the PanicStore from a context, if present.
func PanicStoreFromContext(ctx context.Context) *PanicStore {
	if ctx == nil {
		return nil
	}
	ps, _ := ctx.Value(panicStoreKey{}).(*PanicStore)
	return ps
}
