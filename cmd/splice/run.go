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
	"os"

	"github.com/spf13/cobra"

	"github.com/benoit-pereira-da-silva/splice/internal/config"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		job   config.Job
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "run [flags] [glob...]",
		Short: "Splice the files matched by the globs",
		Long: `Sources every file matched by the globs ("**" supported, "!" excludes),
splices the inner contents into the outer file at the first occurrence of the
key, and writes the result under --dest (or to stdout).

Without --inner, every non-outer file is concatenated as the inner contents.
Without --outer, the first file containing the key is the outer file.
--outer and --inner also name files loaded from disk when no sourced file
plays that role.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			job.Name = "run"
			job.Src = args
			job.WorkDir = wd
			if err := job.Config.Validate(); err != nil {
				return err
			}
			if watch {
				return watchJob(cmd.Context(), job, a.logger, a.stdout)
			}
			return execute(cmd.Context(), job, a.logger, a.stdout)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&job.Key, "key", "k", "", "marker replaced by the inner contents (required)")
	f.StringVar(&job.Outer, "outer", "", "outer path fragment / fallback file")
	f.StringVar(&job.Inner, "inner", "", "inner path fragment / fallback file")
	f.StringVarP(&job.Dest, "dest", "d", "", "output directory (default: print the result)")
	f.BoolVar(&job.Flat, "flat", false, "write files under --dest without their directories")
	f.BoolVar(&job.Stream, "stream", false, "source files as streams instead of buffers")
	f.BoolVarP(&watch, "watch", "w", false, "re-run when a source or fallback file changes")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
