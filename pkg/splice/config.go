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
	"go.uber.org/zap"
)

// Config is the validated, immutable configuration of a Splicer.
//
// Outer and Inner are path fragments used two ways: as a filter on the paths
// of incoming files, and as a fallback path loaded from disk when the
// pipeline did not supply that side of the splice.
type Config struct {
	Key   string `yaml:"key" json:"key"`
	Outer string `yaml:"outer,omitempty" json:"outer,omitempty"`
	Inner string `yaml:"inner,omitempty" json:"inner,omitempty"`
}

// Validate reports ErrMissingOptions for a nil config and ErrMissingKey for
// an empty key.
func (c *Config) Validate() error {
	if c == nil {
		return ErrMissingOptions
	}
	if c.Key == "" {
		return ErrMissingKey
	}
	return nil
}

// Option customizes a Splicer.
type Option func(*Splicer)

// WithLogger sets the logger used for classification and result traces.
func WithLogger(l *zap.Logger) Option {
	return func(s *Splicer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader replaces the disk loader used for fallback paths.
func WithLoader(l Loader) Option {
	return func(s *Splicer) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithWorkDir resolves relative fallback paths against dir instead of the
// process working directory.
func WithWorkDir(dir string) Option {
	return func(s *Splicer) {
		s.workDir = dir
	}
}
