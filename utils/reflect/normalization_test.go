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

package reflect_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uref "dirpx.dev/jfx/utils/reflect"
)

// Local test types.
type A struct{ X int }
type G[T any] struct{ V T }

func TestNormalize_Pointers(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"plain", reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{})},
		{"ptrptr", reflect.TypeOf((**A)(nil))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, 0)
			require.NoError(t, err)
			assert.Equal(t, reflect.TypeOf(A{}), got)
		})
	}
}

func TestNormalize_GenericInstantiation(t *testing.T) {
	got, err := uref.Normalize(reflect.TypeOf(&G[int]{}), 0)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(G[int]{}), got)
}

func TestNormalize_MaxUnwrap(t *testing.T) {
	_, err := uref.Normalize(reflect.TypeOf((**A)(nil)), 1)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotStruct)

	got, err := uref.Normalize(reflect.TypeOf((**A)(nil)), 2)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(A{}), got)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := uref.Normalize(nil, 0)
	assert.ErrorIs(t, err, uref.ErrReflectNilType)

	for _, typ := range []reflect.Type{
		reflect.TypeOf(0),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(func() {}),
	} {
		_, err := uref.Normalize(typ, 0)
		assert.ErrorIs(t, err, uref.ErrReflectTypeNotStruct, "type %v", typ)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf(&G[string]{}),
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	errs := make(chan error, workers)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if _, err := uref.Normalize(types[i%len(types)], 0); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("Normalize failed under concurrency: %v", err)
	}
}
