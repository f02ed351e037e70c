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
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/splice/internal/config"
	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
	"github.com/benoit-pereira-da-silva/splice/pkg/splice"
	"github.com/benoit-pereira-da-silva/splice/pkg/textual"
	"github.com/benoit-pereira-da-silva/splice/pkg/vfs"
)

// execute runs one job: sources -> splicer -> [dest] -> log tap.
//
// Without a destination, the spliced contents are written to stdout and
// pass-through files are dropped.
func execute(ctx context.Context, job config.Job, logger *zap.Logger, stdout io.Writer) error {
	s, err := splice.NewFromConfig(&job.Config, splice.WithLogger(logger), splice.WithWorkDir(job.WorkDir))
	if err != nil {
		return err
	}

	stages := []textual.Processor[carrier.File]{s}
	dest := job.DestDir()
	if dest != "" {
		d, err := vfs.NewDest(&vfs.DestOptions{Dir: dest, Flat: job.Flat}, logger)
		if err != nil {
			return err
		}
		stages = append(stages, d)
	}
	stages = append(stages, textual.Log[carrier.File](logger, "splice: output"))

	src := vfs.NewSource(textual.NewChain(stages...), job.Sources()...)
	src.SetContext(ctx)
	src.SetBuffer(!job.Stream)
	src.SetLogger(logger)
	defer src.Stop()

	out := src.Start()
	files, err := textual.Collect(src.Context(), out)
	if err != nil {
		return fmt.Errorf("job %q: %w", job.Name, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("job %q: no output", job.Name)
	}

	result := files[len(files)-1]
	logger.Info("splice: job done",
		zap.String("job", job.Name),
		zap.String("result", result.Path),
		zap.Int("pass_through", len(files)-1),
	)
	if dest == "" {
		if _, err := stdout.Write(result.Contents.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
