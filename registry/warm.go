/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"context"
	"reflect"
	"runtime"

	"golang.org/x/sync/errgroup"

	"dirpx.dev/jfx/apis"
)

// Warm builds the metadata of types under cfg in parallel, at most limit at
// a time (GOMAXPROCS when limit <= 0). It returns the first failure and
// skips builds that have not started yet.
func Warm(ctx context.Context, c apis.Cache, cfg apis.Config, limit int, types ...reflect.Type) error {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, max(len(types), 1)))

	for _, t := range types {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := c.Get(t, cfg)
			return err
		})
	}
	return g.Wait()
}
