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
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by the constructors for unusable options.
	ErrConfiguration = errors.New("splice: invalid configuration")
	// ErrMissingOptions is returned when no configuration is supplied at all.
	ErrMissingOptions = fmt.Errorf("%w: missing options", ErrConfiguration)
	// ErrMissingKey is returned when the configuration has no key.
	ErrMissingKey = fmt.Errorf("%w: missing required key option", ErrConfiguration)

	// ErrUnsupportedContent is carried when a file's contents are a stream.
	ErrUnsupportedContent = errors.New("splice: streams not supported")

	// ErrMissingInput is the parent of ErrNoInner and ErrNoOuter.
	ErrMissingInput = errors.New("splice: missing input")
	// ErrNoInner: nothing was piped as inner and no inner path is configured.
	ErrNoInner = fmt.Errorf("%w: no inner file", ErrMissingInput)
	// ErrNoOuter: nothing was piped as outer and no outer path is configured.
	ErrNoOuter = fmt.Errorf("%w: no outer file", ErrMissingInput)

	// ErrIO matches every *IOError.
	ErrIO = errors.New("splice: i/o failure")
	// ErrKeyNotFound matches every *KeyNotFoundError.
	ErrKeyNotFound = errors.New("splice: key not found")
)

// Role names the side of the splice a file plays.
type Role string

const (
	RoleOuter Role = "outer"
	RoleInner Role = "inner"
)

// IOError reports a failed fallback read. The cause is kept and reachable
// through errors.Is / errors.As (e.g. fs.ErrNotExist).
type IOError struct {
	Role Role
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("splice: cannot load %s file %q: %v", e.Role, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// KeyNotFoundError reports an outer file that does not contain the key.
// Name is the basename of the outer file.
type KeyNotFoundError struct {
	Key  string
	Name string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("splice: key %s not found in %s", e.Key, e.Name)
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}
