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
	"bytes"
	"io"
)

// ContentsKind tags the three states a File's contents can be in.
type ContentsKind uint8

const (
	// ContentsEmpty marks a file without contents (a directory entry or a
	// placeholder). Stages forward such files untouched.
	ContentsEmpty ContentsKind = iota
	// ContentsBytes marks fully materialized contents.
	ContentsBytes
	// ContentsStream marks contents exposed as a lazy io.Reader.
	ContentsStream
)

func (k ContentsKind) String() string {
	switch k {
	case ContentsEmpty:
		return "empty"
	case ContentsBytes:
		return "bytes"
	case ContentsStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Contents is a tagged variant: Empty | Bytes(data) | Stream(reader).
//
// The zero value is Empty. Note that Bytes(nil) is NOT Empty: a zero-length
// file is valid materialized content.
type Contents struct {
	kind   ContentsKind
	data   []byte
	stream io.Reader
}

// Empty returns contents in the ContentsEmpty state.
func Empty() Contents {
	return Contents{}
}

// Bytes returns materialized contents holding b. The slice is not copied.
func Bytes(b []byte) Contents {
	if b == nil {
		b = []byte{}
	}
	return Contents{kind: ContentsBytes, data: b}
}

// Stream returns lazy contents backed by r.
func Stream(r io.Reader) Contents {
	return Contents{kind: ContentsStream, stream: r}
}

// Kind reports which variant c holds.
func (c Contents) Kind() ContentsKind {
	return c.kind
}

func (c Contents) IsEmpty() bool  { return c.kind == ContentsEmpty }
func (c Contents) IsBytes() bool  { return c.kind == ContentsBytes }
func (c Contents) IsStream() bool { return c.kind == ContentsStream }

// Bytes returns the materialized data, or nil for the other variants.
func (c Contents) Bytes() []byte {
	if c.kind != ContentsBytes {
		return nil
	}
	return c.data
}

// Reader returns the lazy reader, or nil for the other variants.
func (c Contents) Reader() io.Reader {
	if c.kind != ContentsStream {
		return nil
	}
	return c.stream
}

// Len returns the number of materialized bytes (0 for Empty and Stream).
func (c Contents) Len() int {
	return len(c.Bytes())
}

// Contains reports whether the materialized data holds sep at least once.
// Empty and Stream contents never contain anything.
func (c Contents) Contains(sep []byte) bool {
	if c.kind != ContentsBytes {
		return false
	}
	return bytes.Contains(c.data, sep)
}
