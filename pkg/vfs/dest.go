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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
	"github.com/benoit-pereira-da-silva/splice/pkg/textual"
)

// ErrPathInvalid is attached to files whose relative path escapes the
// destination directory.
var ErrPathInvalid = errors.New("vfs: path invalid")

// DestOptions configures a Dest.
type DestOptions struct {
	// Dir is the output root (required).
	Dir string `yaml:"dir" json:"dir"`
	// Flat keeps only the basename of every file.
	Flat bool `yaml:"flat,omitempty" json:"flat,omitempty"`
	// PermFile is used when a file carries no mode. Default 0o644.
	PermFile os.FileMode `yaml:"perm_file,omitempty" json:"perm_file,omitempty"`
	// PermDir is used for created directories. Default 0o755.
	PermDir os.FileMode `yaml:"perm_dir,omitempty" json:"perm_dir,omitempty"`
}

// Dest is a Processor writing every materialized file under a directory,
// at Dir/Relative(). Written files are forwarded with Path and Base pointing
// at the destination. Empty, streamed and error-carrying files are forwarded
// unchanged. Write failures are attached to the file.
//
// Writes are atomic: a temporary file in the target directory is renamed
// over the destination.
type Dest struct {
	dir    string
	flat   bool
	permF  os.FileMode
	permD  os.FileMode
	logger *zap.Logger
}

var _ textual.Processor[carrier.File] = (*Dest)(nil)

// NewDest validates opts and builds a Dest.
func NewDest(opts *DestOptions, logger *zap.Logger) (*Dest, error) {
	if opts == nil || strings.TrimSpace(opts.Dir) == "" {
		return nil, fmt.Errorf("vfs: destination directory: %w", os.ErrInvalid)
	}
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pf := opts.PermFile
	if pf == 0 {
		pf = 0o644
	}
	pd := opts.PermDir
	if pd == 0 {
		pd = 0o755
	}
	return &Dest{dir: dir, flat: opts.Flat, permF: pf, permD: pd, logger: logger}, nil
}

func (d *Dest) Apply(ctx context.Context, in <-chan carrier.File) <-chan carrier.File {
	return textual.Async(ctx, in, func(ctx context.Context, f carrier.File) carrier.File {
		if f.GetError() != nil || !f.Contents.IsBytes() {
			return f
		}
		target, err := d.mapPath(f)
		if err != nil {
			return f.WithError(err)
		}
		if err := d.write(target, f); err != nil {
			d.logger.Error("vfs: write failed", zap.String("path", target), zap.Error(err))
			return f.WithError(err)
		}
		d.logger.Info("vfs: wrote file", zap.String("path", target), zap.Int("size", f.Contents.Len()))
		f.Path = target
		f.Base = d.dir
		return f
	})
}

// mapPath joins the file's relative path to the root, rejecting escapes.
func (d *Dest) mapPath(f carrier.File) (string, error) {
	rel := filepath.Clean(f.Relative())
	if d.flat {
		rel = filepath.Base(rel)
	}
	switch {
	case rel == "." || rel == "" || rel == "..":
		return "", fmt.Errorf("%w: %q", ErrPathInvalid, f.Path)
	case filepath.IsAbs(rel), filepath.VolumeName(rel) != "":
		return "", fmt.Errorf("%w: %q", ErrPathInvalid, f.Path)
	case strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("%w: %q", ErrPathInvalid, f.Path)
	}
	return filepath.Join(d.dir, rel), nil
}

func (d *Dest) write(target string, f carrier.File) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, d.permD); err != nil {
		return err
	}
	perm := f.Mode.Perm()
	if perm == 0 {
		perm = d.permF
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(f.Contents.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
