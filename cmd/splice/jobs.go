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
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/benoit-pereira-da-silva/splice/internal/config"
)

func newJobsCmd(a *app) *cobra.Command {
	var (
		file     string
		parallel int
		only     []string
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run the splice jobs of a job file",
		Long: `Runs every job of a YAML job file (default splice.yaml), each with its own
splicer. Jobs run concurrently, at most --parallel at a time. With --watch,
every job is re-run when one of its inputs changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load(file)
			if err != nil {
				return err
			}
			jobs, err := selectJobs(f.Jobs, only)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			if !watch && parallel > 0 {
				g.SetLimit(parallel)
			}
			for _, job := range jobs {
				logger := a.logger.With(zap.String("job", job.Name))
				g.Go(func() error {
					if watch {
						return watchJob(ctx, job, a.logger, a.stdout)
					}
					return execute(ctx, job, logger, a.stdout)
				})
			}
			return g.Wait()
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&file, "file", "f", config.DefaultFile, "job file")
	fl.IntVarP(&parallel, "parallel", "p", runtime.NumCPU(), "maximum number of concurrent jobs")
	fl.StringSliceVar(&only, "only", nil, "run only the named jobs")
	fl.BoolVarP(&watch, "watch", "w", false, "re-run jobs when their inputs change")
	return cmd
}

// selectJobs keeps the jobs named in only, in file order. An empty only
// keeps every job.
func selectJobs(jobs []config.Job, only []string) ([]config.Job, error) {
	if len(only) == 0 {
		return jobs, nil
	}
	for _, name := range only {
		if !slices.ContainsFunc(jobs, func(j config.Job) bool { return j.Name == name }) {
			return nil, fmt.Errorf("unknown job %q", name)
		}
	}
	out := make([]config.Job, 0, len(only))
	for _, j := range jobs {
		if slices.Contains(only, j.Name) {
			out = append(out, j)
		}
	}
	return out, nil
}
