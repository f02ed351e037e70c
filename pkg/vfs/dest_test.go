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
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
	"github.com/benoit-pereira-da-silva/splice/pkg/splice"
	"github.com/benoit-pereira-da-silva/splice/pkg/textual"
)

func TestNewDest_RequiresDir(t *testing.T) {
	_, err := NewDest(nil, nil)
	require.ErrorIs(t, err, os.ErrInvalid)
	_, err = NewDest(&DestOptions{Dir: "  "}, nil)
	require.ErrorIs(t, err, os.ErrInvalid)
}

func TestDest_WritesRelativeLayout(t *testing.T) {
	out := t.TempDir()
	d, err := NewDest(&DestOptions{Dir: out}, zaptest.NewLogger(t))
	require.NoError(t, err)

	base := filepath.Join(t.TempDir(), "src")
	files := []carrier.File{
		{Path: filepath.Join(base, "a.txt"), Base: base, Contents: carrier.Bytes([]byte("A")), Mode: 0o600},
		{Path: filepath.Join(base, "nested", "b.txt"), Base: base, Contents: carrier.Bytes([]byte("B"))},
		carrier.EmptyFile(filepath.Join(base, "empty")),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := textual.Run[carrier.File](ctx, d, files...)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, filepath.Join(out, "a.txt"), got[0].Path)
	require.Equal(t, out, got[0].Base)
	require.Equal(t, filepath.Join(out, "nested", "b.txt"), got[1].Path)
	require.Equal(t, files[2].Path, got[2].Path, "empty files are forwarded untouched")

	b, err := os.ReadFile(filepath.Join(out, "nested", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "B", string(b))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(out, "a.txt"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
	_, err = os.Stat(filepath.Join(out, "empty"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDest_FlatKeepsBasenames(t *testing.T) {
	out := t.TempDir()
	d, err := NewDest(&DestOptions{Dir: out, Flat: true}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	f := carrier.File{Path: filepath.Join("/src", "deep", "c.txt"), Base: "/src", Contents: carrier.Bytes([]byte("C"))}
	got, err := textual.Run[carrier.File](ctx, d, f)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "c.txt"), got[0].Path)
}

// Source -> Splicer -> Dest, the way the CLI wires it.
func TestPipeline_SplicesSourcesIntoDestination(t *testing.T) {
	dir := layout(t, map[string]string{
		"src/index.html":   "<html>" + key + "</html>",
		"src/header.html":  "<h1/>",
		"src/site.css":     "body{}",
		"partials/nav.htm": "<nav/>",
	})
	out := filepath.Join(dir, "dist")

	s, err := splice.NewFromConfig(&splice.Config{Key: key, Inner: "header"}, splice.WithWorkDir(dir))
	require.NoError(t, err)
	d, err := NewDest(&DestOptions{Dir: out}, nil)
	require.NoError(t, err)

	src := NewSource(textual.NewChain[carrier.File](s, d), filepath.Join(dir, "src", "*"))
	files, err := collect(t, src)
	require.NoError(t, err)
	require.Equal(t, []string{"dist/site.css", "dist/index.html"}, relPaths(t, dir, files))

	b, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html><h1/></html>", string(b))

	_, err = os.Stat(filepath.Join(out, "header.html"))
	require.ErrorIs(t, err, os.ErrNotExist, "the inner file is consumed")
}

func TestPipeline_RejectsStreamedSources(t *testing.T) {
	dir := layout(t, map[string]string{
		"src/index.html": "<html>" + key + "</html>",
	})
	s, err := splice.New(key)
	require.NoError(t, err)

	src := NewSource(s, filepath.Join(dir, "src", "*.html"))
	src.SetBuffer(false)
	_, err = collect(t, src)
	require.ErrorIs(t, err, splice.ErrUnsupportedContent)
}
