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

package vfs

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
	"github.com/benoit-pereira-da-silva/splice/pkg/textual"
)

// Source connects files on disk to a Processor: it expands glob patterns and
// feeds one carrier.File per match, in order, with Index set to the
// discovery order.
//
// Usage pattern:
//
//	src := vfs.NewSource(splicer, "src/**/*.html", "!src/vendor/**")
//	src.SetContext(ctx)   // optional, must be called before Start
//	src.SetBuffer(false)  // optional, emit lazily streamed contents
//	out := src.Start()
//	for f := range out { /* consume results */ }
//
// By default contents are read into memory (carrier.Bytes). With buffering
// disabled, contents are carrier.Stream values opened on first read.
//
// Expansion or read failures do not stop the source: a File carrying the
// error is sent instead.
type Source struct {
	patterns  []string
	processor textual.Processor[carrier.File]
	buffer    bool
	logger    *zap.Logger

	// ctx and cancel control the lifetime of the feeding loop.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSource builds a Source feeding processor. A nil processor forwards
// files unchanged.
func NewSource(processor textual.Processor[carrier.File], patterns ...string) *Source {
	if processor == nil {
		processor = textual.IdentityProcessor[carrier.File]{}
	}
	return &Source{
		patterns:  patterns,
		processor: processor,
		buffer:    true,
		logger:    zap.NewNop(),
	}
}

// SetContext sets the base context used by Start. It must be called before
// Start.
func (s *Source) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
}

// SetBuffer selects materialized (true, default) or streamed contents.
func (s *Source) SetBuffer(buffer bool) {
	s.buffer = buffer
}

// SetLogger sets the logger used to trace discovered files.
func (s *Source) SetLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Source) ensureContext() {
	switch {
	case s.ctx == nil && s.cancel == nil:
		s.ctx, s.cancel = context.WithCancel(context.Background())
	case s.ctx != nil && s.cancel == nil:
		s.ctx, s.cancel = context.WithCancel(s.ctx)
	}
}

// Context returns the context the pipeline runs with. Supervisors use it to
// reach the PanicStore (see textual.Collect).
func (s *Source) Context() context.Context {
	s.ensureContext()
	return s.ctx
}

// Start expands the patterns and feeds the processor from a goroutine.
// Feeding stops when every match has been sent or when the context is done.
func (s *Source) Start() <-chan carrier.File {
	s.ensureContext()
	s.ctx, _ = textual.EnsurePanicStore(s.ctx)

	in := make(chan carrier.File)
	out := s.processor.Apply(s.ctx, in)

	go func() {
		defer close(in)

		send := func(f carrier.File) bool {
			select {
			case <-s.ctx.Done():
				return false
			case in <- f:
				return true
			}
		}

		matches, err := Expand(s.patterns...)
		if err != nil {
			s.logger.Error("vfs: cannot expand sources", zap.Strings("patterns", s.patterns), zap.Error(err))
			send(carrier.File{}.WithError(err))
			return
		}

		for i, m := range matches {
			f := s.open(m).WithIndex(i)
			s.logger.Debug("vfs: source file", zap.String("path", f.Path), zap.Stringer("contents", f.Contents.Kind()))
			if !send(f) {
				return
			}
		}
	}()
	return out
}

// StartWithTimeout is like Start but cancels the context when timeout
// elapses. If timeout <= 0, it simply delegates to Start.
func (s *Source) StartWithTimeout(timeout time.Duration) <-chan carrier.File {
	if timeout <= 0 {
		return s.Start()
	}
	parent := s.ctx
	if parent == nil {
		parent = context.Background()
	}
	s.ctx, s.cancel = context.WithTimeout(parent, timeout)
	return s.Start()
}

// Stop cancels the current context, if any.
func (s *Source) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Source) open(m Match) carrier.File {
	f := carrier.File{Path: m.Path, Base: m.Base}
	info, err := os.Stat(m.Path)
	if err != nil {
		return f.WithError(err)
	}
	f.Mode = info.Mode()
	f.ModTime = info.ModTime()

	if !s.buffer {
		f.Contents = carrier.Stream(&lazyFile{path: m.Path})
		return f
	}
	b, err := os.ReadFile(m.Path)
	if err != nil {
		return f.WithError(err)
	}
	f.Contents = carrier.Bytes(b)
	return f
}
