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
	"context"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
	"github.com/benoit-pereira-da-silva/splice/pkg/textual"
)

// Splicer is the splice stage. It is safe to Apply the same Splicer several
// times: every Apply call owns a fresh accumulator.
type Splicer struct {
	cfg     Config
	key     []byte
	logger  *zap.Logger
	loader  Loader
	workDir string
}

var _ textual.Processor[carrier.File] = (*Splicer)(nil)

// New builds a Splicer from a bare key, with no outer or inner path.
func New(key string, opts ...Option) (*Splicer, error) {
	return NewFromConfig(&Config{Key: key}, opts...)
}

// NewFromConfig builds a Splicer from a structured configuration.
// No disk access happens here.
func NewFromConfig(cfg *Config, opts ...Option) (*Splicer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Splicer{
		cfg:    *cfg,
		key:    []byte(cfg.Key),
		logger: zap.NewNop(),
		loader: OSLoader{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Config returns a copy of the configuration.
func (s *Splicer) Config() Config {
	return s.cfg
}

// Apply implements textual.Processor.
//
// Pass-through files are forwarded as soon as they are classified. When in is
// closed, the spliced file (or one file carrying the run error) is emitted
// and the output channel is closed.
//
// A streamed file aborts the run: the error is emitted and the rest of the
// input is drained without being classified.
func (s *Splicer) Apply(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, _ = textual.EnsurePanicStore(ctx)

	out := make(chan carrier.File)
	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				textual.PanicStoreFromContext(ctx).Store(r, debug.Stack())
			}
		}()

		emit := func(f carrier.File) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- f:
				return true
			}
		}

		acc := &accumulator{}
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-in:
				if !ok {
					emit(s.finalize(acc))
					return
				}
				if f.GetError() != nil {
					if !emit(f) {
						return
					}
					continue
				}
				v, err := acc.classify(s.cfg, s.key, f)
				if err != nil {
					s.logger.Error("splice: rejected file", zap.String("path", f.Path), zap.Error(err))
					if emit(f.WithContents(carrier.Empty()).WithError(err)) {
						drain(ctx, in)
					}
					return
				}
				s.logger.Debug("splice: classified file", zap.String("path", f.Path), zap.Stringer("as", v))
				if v == passThrough && !emit(f) {
					return
				}
			}
		}
	}()
	return out
}

// finalize resolves fallbacks and builds the spliced file. On failure the
// returned file carries the error.
func (s *Splicer) finalize(acc *accumulator) carrier.File {
	res, err := s.resolve(acc)
	if err != nil {
		s.logger.Error("splice: run failed", zap.String("key", s.cfg.Key), zap.Error(err))
		if res.Path == "" {
			res = acc.template
		}
		return res.WithError(err)
	}
	s.logger.Info("splice: spliced",
		zap.String("path", res.Path),
		zap.Int("size", res.Contents.Len()),
	)
	return res
}

func (s *Splicer) resolve(acc *accumulator) (carrier.File, error) {
	if !acc.hasInner && s.cfg.Inner == "" {
		return carrier.File{}, ErrNoInner
	}
	if !acc.hasOuter && s.cfg.Outer == "" {
		return carrier.File{}, ErrNoOuter
	}

	var inner []byte
	if acc.hasInner {
		inner = acc.innerBytes()
	} else {
		b, _, err := s.load(RoleInner, s.cfg.Inner)
		if err != nil {
			return carrier.File{}, err
		}
		inner = b
	}

	outer, template := acc.outer, acc.template
	if !acc.hasOuter {
		b, path, err := s.load(RoleOuter, s.cfg.Outer)
		if err != nil {
			return carrier.File{}, err
		}
		base, err := workingDir(s.workDir)
		if err != nil {
			return carrier.File{}, &IOError{Role: RoleOuter, Path: s.cfg.Outer, Err: err}
		}
		outer = b
		template = carrier.File{Path: path, Base: base}
	}

	result, ok := spliceAt(outer, inner, s.key)
	if !ok {
		return template, &KeyNotFoundError{Key: s.cfg.Key, Name: template.Name()}
	}
	return template.WithContents(carrier.Bytes(result)), nil
}

// load reads a fallback path. It returns the contents and the absolute path.
func (s *Splicer) load(role Role, p string) ([]byte, string, error) {
	abs, err := resolve(s.workDir, p)
	if err != nil {
		return nil, "", &IOError{Role: role, Path: p, Err: err}
	}
	s.logger.Debug("splice: loading fallback", zap.String("role", string(role)), zap.String("path", abs))
	b, err := s.loader.Load(abs)
	if err != nil {
		return nil, abs, &IOError{Role: role, Path: abs, Err: err}
	}
	return b, abs, nil
}

// drain discards the remaining input so upstream stages can finish.
func drain(ctx context.Context, in <-chan carrier.File) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-in:
			if !ok {
				return
			}
		}
	}
}

// Run feeds files through s in order and collects the output.
// Pass-through files come first in arrival order, the spliced file last.
func Run(ctx context.Context, s *Splicer, files ...carrier.File) ([]carrier.File, error) {
	return textual.Run[carrier.File](ctx, s, files...)
}
