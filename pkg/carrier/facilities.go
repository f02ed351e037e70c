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

// FileFrom builds a File at path holding data as materialized contents.
func FileFrom(path string, data []byte) File {
	return File{Path: path, Contents: Bytes(data)}
}

// FileFromString is FileFrom for string data.
func FileFromString(path string, s UTF8String) File {
	return (*new(File)).FromUTF8String(s).withPath(path)
}

// EmptyFile builds a File at path without contents.
func EmptyFile(path string) File {
	return File{Path: path}
}

func (f File) withPath(path string) File {
	f.Path = path
	return f
}
