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

package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/splice/internal/config"
)

// debounce is the quiet period after the last event before a re-run.
var debounce = 100 * time.Millisecond

// watchJob runs the job once, then again after every debounced change to
// its sources or fallback files, until ctx is done.
func watchJob(ctx context.Context, job config.Job, logger *zap.Logger, stdout io.Writer) error {
	logger = logger.With(zap.String("job", job.Name))
	return watch(ctx, logger, watchTargets(job), job.DestDir(), func() error {
		return execute(ctx, job, logger, stdout)
	})
}

// watchTargets lists the directories holding a job's inputs: the static
// prefix of every src pattern (walked recursively) and the directories of
// the outer and inner fallback files. The destination tree is skipped.
func watchTargets(job config.Job) []string {
	dest := job.DestDir()
	seen := make(map[string]struct{})
	add := func(dir string) {
		if dir == "" || within(dir, dest) {
			return
		}
		seen[filepath.Clean(dir)] = struct{}{}
	}

	for _, p := range job.Sources() {
		if strings.HasPrefix(p, "!") {
			continue
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		root := filepath.FromSlash(base)
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if within(path, dest) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
	}
	for _, fallback := range []string{job.Outer, job.Inner} {
		if fallback == "" {
			continue
		}
		if !filepath.IsAbs(fallback) {
			fallback = filepath.Join(job.WorkDir, fallback)
		}
		add(filepath.Dir(fallback))
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// watch calls fn once, then after every debounced burst of events under
// dirs. Events inside exclude are ignored. fn errors are logged and do not
// stop the loop. watch returns nil when ctx is done.
func watch(ctx context.Context, logger *zap.Logger, dirs []string, exclude string, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			logger.Warn("watch: cannot watch directory", zap.String("dir", d), zap.Error(err))
			continue
		}
		logger.Debug("watch: watching directory", zap.String("dir", d))
	}

	rerun := func() {
		if err := fn(); err != nil {
			logger.Error("watch: run failed", zap.Error(err))
		}
	}
	rerun()
	logger.Info("watch: waiting for changes", zap.Int("dirs", len(dirs)))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || within(ev.Name, exclude) {
				continue
			}
			logger.Debug("watch: event", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: watcher error", zap.Error(err))

		case <-timer.C:
			rerun()
		}
	}
}

// within reports whether path is dir or lies under it.
func within(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
