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
	"path/filepath"
	"strings"
	"testing"
)

func TestContents_ZeroValueIsEmpty(t *testing.T) {
	var c Contents
	if got, want := c.Kind(), ContentsEmpty; got != want {
		t.Fatalf("unexpected kind: got %v want %v", got, want)
	}
	if c.Bytes() != nil || c.Reader() != nil {
		t.Fatalf("expected no bytes and no reader on empty contents")
	}
}

func TestContents_BytesNilIsNotEmpty(t *testing.T) {
	c := Bytes(nil)
	if !c.IsBytes() {
		t.Fatalf("expected Bytes(nil) to be materialized, got %v", c.Kind())
	}
	if c.Bytes() == nil {
		t.Fatalf("expected a non-nil zero-length slice")
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("unexpected length: got %d want 0", got)
	}
}

func TestContents_StreamNeverContains(t *testing.T) {
	c := Stream(strings.NewReader("<#key#>"))
	if c.Contains([]byte("<#key#>")) {
		t.Fatalf("streamed contents must not be searched")
	}
	if c.Reader() == nil {
		t.Fatalf("expected the reader to be exposed")
	}
	if got, want := c.Kind().String(), "stream"; got != want {
		t.Fatalf("unexpected kind name: got %q want %q", got, want)
	}
}

func TestFile_WithContentsKeepsMetadata(t *testing.T) {
	f := File{Path: "/a/b.txt", Base: "/a", Mode: 0o640, Index: 3, Error: errors.New("stale")}
	g := f.WithContents(Bytes([]byte("x")))

	if g.Path != f.Path || g.Base != f.Base || g.Mode != f.Mode || g.Index != f.Index {
		t.Fatalf("metadata changed: got %+v from %+v", g, f)
	}
	if g.Error != nil {
		t.Fatalf("expected error to be cleared, got %v", g.Error)
	}
	if got, want := g.UTF8String(), "x"; got != want {
		t.Fatalf("unexpected contents: got %q want %q", got, want)
	}
}

func TestFile_Relative(t *testing.T) {
	base := filepath.Join("root", "src")
	cases := []struct {
		name string
		f    File
		want string
	}{
		{"below base", File{Path: filepath.Join(base, "a", "b.txt"), Base: base}, filepath.Join("a", "b.txt")},
		{"no base", File{Path: filepath.Join(base, "b.txt")}, "b.txt"},
		{"outside base", File{Path: filepath.Join("root", "other", "c.txt"), Base: base}, "c.txt"},
		{"no path", File{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Relative(); got != tc.want {
				t.Fatalf("unexpected relative path: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFile_AggregateConcatenatesByIndex(t *testing.T) {
	e1 := errors.New("one")
	e2 := errors.New("two")
	items := []File{
		{Path: "c", Contents: Bytes([]byte("C")), Index: 2, Error: e2},
		{Path: "a", Contents: Bytes([]byte("A")), Index: 0},
		{Path: "skip", Index: 1},
		{Path: "b", Contents: Bytes([]byte("B")), Index: 1, Error: e1},
	}

	got := File{}.Aggregate(items)

	if want := "AB" + "C"; got.UTF8String() != want {
		t.Fatalf("unexpected aggregate: got %q want %q", got.UTF8String(), want)
	}
	if got.Path != "a" {
		t.Fatalf("expected metadata of first item, got path %q", got.Path)
	}
	if !errors.Is(got.Error, e1) || !errors.Is(got.Error, e2) {
		t.Fatalf("expected both errors to be joined, got %v", got.Error)
	}
	if items[0].Path != "c" {
		t.Fatalf("Aggregate must not reorder the caller's slice")
	}
}

func TestFile_AggregateOfNothingIsZeroLengthBytes(t *testing.T) {
	got := File{}.Aggregate(nil)
	if !got.Contents.IsBytes() || got.Contents.Len() != 0 {
		t.Fatalf("unexpected aggregate of nothing: %+v", got)
	}
}

func TestFile_WithErrorJoins(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")
	f := File{}.WithError(nil).WithError(e1).WithError(e2)
	if !errors.Is(f.GetError(), e1) || !errors.Is(f.GetError(), e2) {
		t.Fatalf("expected joined errors, got %v", f.GetError())
	}
}

func TestFacilities(t *testing.T) {
	f := FileFromString("x.txt", "hello")
	if f.Path != "x.txt" || f.UTF8String() != "hello" {
		t.Fatalf("unexpected file: %+v", f)
	}
	if e := EmptyFile("e.txt"); !e.Contents.IsEmpty() || e.Path != "e.txt" {
		t.Fatalf("unexpected empty file: %+v", e)
	}
	if b := FileFrom("b.bin", []byte{0, 1}); b.Contents.Len() != 2 {
		t.Fatalf("unexpected byte file: %+v", b)
	}
}
