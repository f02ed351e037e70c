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

package textual

import (
	"context"

	"go.uber.org/zap"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
)

// Log is a tap stage: it logs every item flowing through and forwards it
// unchanged. Error-carrying items are logged at error level.
//
// A nil logger falls back to zap.L().
func Log[C carrier.Carrier[C]](logger *zap.Logger, label string) ProcessorFunc[C] {
	if logger == nil {
		logger = zap.L()
	}
	return ProcessorFunc[C](func(ctx context.Context, in <-chan C) <-chan C {
		return Async(ctx, in, func(ctx context.Context, p C) C {
			if err := p.GetError(); err != nil {
				logger.Error(label, zap.Error(err), zap.Int("index", p.GetIndex()))
			} else {
				logger.Debug(label, zap.Int("index", p.GetIndex()), zap.Int("size", len(p.UTF8String())))
			}
			return p
		})
	})
}
