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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match is one file found by Expand.
//
// Base is the static (non-glob) prefix of the pattern that matched, so that
// Path relative to Base reproduces the layout the pattern selected.
type Match struct {
	Path string
	Base string
}

// Expand resolves doublestar patterns ("**" supported) into absolute file
// paths. Matches are ordered per pattern, lexically, and deduplicated across
// patterns. Patterns starting with "!" exclude previous matches.
//
// A pattern without glob meta characters that matches nothing reports
// fs.ErrNotExist.
func Expand(patterns ...string) ([]Match, error) {
	var (
		matches []Match
		seen    = map[string]struct{}{}
	)
	for _, p := range patterns {
		if strings.HasPrefix(p, "!") {
			matches = exclude(matches, seen, strings.TrimPrefix(p, "!"))
			continue
		}

		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		absBase, err := filepath.Abs(filepath.FromSlash(base))
		if err != nil {
			return nil, fmt.Errorf("vfs: resolve base of %q: %w", p, err)
		}

		hits, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("vfs: expand %q: %w", p, err)
		}
		if len(hits) == 0 && !hasMeta(p) {
			return nil, fmt.Errorf("vfs: %q: %w", p, fs.ErrNotExist)
		}
		sort.Strings(hits)

		for _, h := range hits {
			abs, err := filepath.Abs(h)
			if err != nil {
				return nil, fmt.Errorf("vfs: resolve %q: %w", h, err)
			}
			if _, dup := seen[abs]; dup {
				continue
			}
			seen[abs] = struct{}{}
			matches = append(matches, Match{Path: abs, Base: absBase})
		}
	}
	return matches, nil
}

func exclude(matches []Match, seen map[string]struct{}, pattern string) []Match {
	abs, err := filepath.Abs(pattern)
	if err != nil {
		abs = pattern
	}
	abs = filepath.ToSlash(abs)
	kept := matches[:0]
	for _, m := range matches {
		if ok, _ := doublestar.Match(abs, filepath.ToSlash(m.Path)); ok {
			delete(seen, m.Path)
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// lazyFile opens path on first Read and closes it at EOF or on error.
type lazyFile struct {
	path string
	f    *os.File
	done bool
}

func (l *lazyFile) Read(p []byte) (int, error) {
	if l.done {
		return 0, io.EOF
	}
	if l.f == nil {
		f, err := os.Open(l.path)
		if err != nil {
			l.done = true
			return 0, err
		}
		l.f = f
	}
	n, err := l.f.Read(p)
	if err != nil {
		l.done = true
		_ = l.f.Close()
	}
	return n, err
}
