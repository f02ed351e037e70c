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
	"os"
	"path/filepath"
)

// Loader reads a whole file into memory. Fallback reads are blocking and
// happen at most twice per run, during finalization.
type Loader interface {
	Load(path string) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) ([]byte, error)

func (f LoaderFunc) Load(path string) ([]byte, error) {
	return f(path)
}

// OSLoader loads files with os.ReadFile.
type OSLoader struct{}

func (OSLoader) Load(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// resolve returns p in absolute form, relative to dir when set, otherwise
// to the process working directory.
func resolve(dir, p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if dir == "" {
		return filepath.Abs(p)
	}
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		dir = abs
	}
	return filepath.Join(dir, p), nil
}

// workingDir returns dir in absolute form, or the process working directory.
func workingDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
