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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
)

func upper() ProcessorFunc[carrier.File] {
	return func(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
		return Async(ctx, in, func(_ context.Context, f carrier.File) carrier.File {
			return f.WithContents(carrier.Bytes([]byte(strings.ToUpper(f.UTF8String()))))
		})
	}
}

func suffix(s string) ProcessorFunc[carrier.File] {
	return func(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
		return Async(ctx, in, func(_ context.Context, f carrier.File) carrier.File {
			return f.WithContents(carrier.Bytes([]byte(f.UTF8String() + s)))
		})
	}
}

func TestNewChain_RunsStagesInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	chain := NewChain[carrier.File](upper(), nil, suffix("!"))
	got, err := Run[carrier.File](ctx, chain, carrier.FileFromString("a.txt", "a"), carrier.FileFromString("b.txt", "b"))
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt"}, names(got))
	require.Equal(t, "A!", got[0].UTF8String())
	require.Equal(t, "B!", got[1].UTF8String())
}

func TestProcessorFunc_ChainAppends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := suffix("1").Chain(suffix("2"), suffix("3"))
	got, err := Run[carrier.File](ctx, p, carrier.FileFromString("x", "x"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "x123", got[0].UTF8String())
}

func TestProcessors_EmptyChainIsPassThrough(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := Run[carrier.File](ctx, Processors[carrier.File]{}, carrier.FileFromString("x", "x"))
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, names(got))
}

func TestProcessors_NilOutputIsRecorded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	bad := ProcessorFunc[carrier.File](func(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
		return nil
	})
	in := make(chan carrier.File)
	close(in)

	pctx, ps := WithPanicStore(ctx)
	out := NewChain[carrier.File](bad).Apply(pctx, in)
	_, err := collectWithContext(ctx, out)
	require.NoError(t, err)

	var pe *PanicError
	require.ErrorAs(t, ps.Err(), &pe)
}

func TestCollect_ReturnsFirstCarriedError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	e1 := errors.New("first")
	e2 := errors.New("second")
	items := []carrier.File{
		carrier.FileFromString("ok.txt", "ok"),
		carrier.FileFromString("bad1.txt", "").WithError(e1),
		carrier.FileFromString("bad2.txt", "").WithError(e2),
	}

	got, err := Collect(ctx, Generator(ctx, items...))
	require.ErrorIs(t, err, e1)
	require.NotErrorIs(t, err, e2)
	require.Equal(t, []string{"ok.txt"}, names(got))
}

func TestRun_SurfacesPanics(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	boom := ProcessorFunc[carrier.File](func(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
		return Async(ctx, in, func(_ context.Context, f carrier.File) carrier.File {
			panic("boom")
		})
	})

	_, err := Run[carrier.File](ctx, boom, carrier.FileFromString("x", "x"))
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "boom", pe.Info.Value)
}

func TestLog_TapsEveryItem(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	core, logs := observer.New(zapcore.DebugLevel)
	tap := Log[carrier.File](zap.New(core), "files")

	in := []carrier.File{
		carrier.FileFromString("a.txt", "aaa"),
		carrier.EmptyFile("b.txt").WithError(errors.New("unreadable")),
	}
	out, err := collectWithContext(ctx, tap.Apply(ctx, Generator(ctx, in...)))
	require.NoError(t, err)
	require.Len(t, out, 2)

	entries := logs.FilterMessage("files").All()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, int64(3), entries[0].ContextMap()["size"])
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
