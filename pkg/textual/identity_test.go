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
	"testing"
	"time"

	"github.com/benoit-pereira-da-silva/splice/pkg/carrier"
)

func TestIdentityProcessor_PassThrough(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := IdentityProcessor[carrier.File]{}

	in := make(chan carrier.File, 2)
	outCh := p.Apply(ctx, in)

	in <- carrier.FileFromString("one.txt", "one").WithIndex(1)
	in <- carrier.EmptyFile("zero.txt").WithIndex(0)
	close(in)

	items, err := collectWithContext(ctx, outCh)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("unexpected output count: got %d want %d", len(items), 2)
	}
	if got, want := items[0].Path, "one.txt"; got != want {
		t.Fatalf("identity must preserve arrival order: got %q first want %q", got, want)
	}
	sortByIndex(items)
	if got, want := items[0].Path, "zero.txt"; got != want {
		t.Fatalf("unexpected item[0] path: got %q want %q", got, want)
	}
	if !items[0].Contents.IsEmpty() {
		t.Fatalf("expected empty contents to be preserved")
	}
	if got, want := items[1].UTF8String(), "one"; got != want {
		t.Fatalf("unexpected item[1] contents: got %q want %q", got, want)
	}
}
