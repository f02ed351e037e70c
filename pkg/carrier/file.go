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

package carrier

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File is the carrier used by the splice pipeline: a file-like object with a
// path, some non-content metadata and tagged contents.
//
// Base is the directory the file was sourced from. Relative() uses it to
// rebuild the layout under a destination directory.
//
// Index is an ordering hint used by Aggregate (and set by vfs.Source to the
// discovery order). Error carries a per-item error attached by a stage.
type File struct {
	Path     string
	Base     string
	Mode     fs.FileMode
	ModTime  time.Time
	Contents Contents
	Index    int
	Error    error
}

// UTF8String renders materialized contents as a string. Empty and streamed
// contents render as "".
func (f File) UTF8String() UTF8String {
	return string(f.Contents.Bytes())
}

func (f File) FromUTF8String(str UTF8String) File {
	return File{
		Contents: Bytes([]byte(str)),
	}
}

func (f File) WithIndex(idx int) File {
	f.Index = idx
	return f
}

func (f File) GetIndex() int {
	return f.Index
}

// WithContents returns a copy of f carrying c. Path, Base, Mode, ModTime and
// Index are kept; the error is cleared.
func (f File) WithContents(c Contents) File {
	f.Contents = c
	f.Error = nil
	return f
}

// Name returns the basename of Path.
func (f File) Name() string {
	if f.Path == "" {
		return ""
	}
	return filepath.Base(f.Path)
}

// Relative returns Path relative to Base. When Base is unset or Path is not
// below Base, the basename is returned.
func (f File) Relative() string {
	if f.Base == "" || f.Path == "" {
		return f.Name()
	}
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return f.Name()
	}
	return rel
}

// Aggregate concatenates the materialized contents of files into one File.
//
// The input slice is copied and stably sorted by Index, so callers that care
// about arrival order must index items accordingly. Empty and streamed
// contents contribute nothing. Metadata is taken from the first sorted item.
//
// Errors from all inputs are merged (using errors.Join) and attached to the
// returned value.
func (f File) Aggregate(files []File) File {
	if len(files) == 0 {
		return File{Contents: Bytes(nil)}
	}
	items := make([]File, len(files))
	copy(items, files)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Index < items[j].Index
	})

	total := 0
	for _, it := range items {
		total += it.Contents.Len()
	}

	buf := make([]byte, 0, total)
	var aggErr error
	for _, it := range items {
		buf = append(buf, it.Contents.Bytes()...)
		if it.Error != nil {
			aggErr = errors.Join(aggErr, it.Error)
		}
	}

	out := items[0].WithContents(Bytes(buf))
	out.Index = 0
	out.Error = aggErr
	return out
}

func (f File) WithError(err error) File {
	if err == nil {
		return f
	}
	if f.Error == nil {
		f.Error = err
	} else {
		f.Error = errors.Join(f.Error, err)
	}
	return f
}

func (f File) GetError() error {
	return f.Error
}
