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

// Package config loads splice job files.
//
// A job file lists independent splice runs:
//
//	jobs:
//	  - name: site
//	    key: "<!-- splice -->"
//	    inner: header.html
//	    src: ["src/**/*.html", "!src/vendor/**"]
//	    dest: dist
//
// Relative paths (src patterns, dest, outer, inner) are resolved against the
// job's work_dir, which defaults to the directory holding the job file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benoit-pereira-da-silva/splice/pkg/splice"
)

// DefaultFile is the job file looked up when none is given.
const DefaultFile = "splice.yaml"

// ErrNoJobs is returned for a job file without jobs.
var ErrNoJobs = errors.New("config: no jobs defined")

// File is the decoded job file.
type File struct {
	Jobs []Job `yaml:"jobs"`
}

// Job is one splice run.
type Job struct {
	Name          string `yaml:"name"`
	splice.Config `yaml:",inline"`
	Src           []string `yaml:"src"`
	Dest          string   `yaml:"dest"`
	Flat          bool     `yaml:"flat"`
	Stream        bool     `yaml:"stream"`
	WorkDir       string   `yaml:"work_dir"`
}

// Load reads and validates the job file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytes.NewReader(b), filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a job file from r. dir is the default work_dir.
// Unknown fields are rejected.
func Parse(r io.Reader, dir string) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoJobs
		}
		return nil, err
	}
	if err := f.normalize(dir); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) normalize(dir string) error {
	if len(f.Jobs) == 0 {
		return ErrNoJobs
	}
	names := make(map[string]struct{}, len(f.Jobs))
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if _, dup := names[j.Name]; dup {
			return fmt.Errorf("duplicate job name %q", j.Name)
		}
		names[j.Name] = struct{}{}

		if err := j.Config.Validate(); err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
		switch {
		case j.WorkDir == "":
			j.WorkDir = dir
		case !filepath.IsAbs(j.WorkDir):
			j.WorkDir = filepath.Join(dir, j.WorkDir)
		}
	}
	return nil
}

// Sources returns the src patterns resolved against the work dir.
// Exclusion patterns keep their "!" prefix.
func (j Job) Sources() []string {
	out := make([]string, 0, len(j.Src))
	for _, p := range j.Src {
		neg := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		p = j.abs(p)
		if neg {
			p = "!" + p
		}
		out = append(out, p)
	}
	return out
}

// DestDir returns the destination directory, or "" when the job prints its
// result instead.
func (j Job) DestDir() string {
	if j.Dest == "" {
		return ""
	}
	return j.abs(j.Dest)
}

func (j Job) abs(p string) string {
	if filepath.IsAbs(p) || j.WorkDir == "" {
		return p
	}
	return filepath.Join(j.WorkDir, p)
}
