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

package registry_test

import (
	"context"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/builder"
	"dirpx.dev/jfx/config"
	"dirpx.dev/jfx/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct {
	A int `json:"a"`
}
type T1 struct {
	B     int            `mapstructure:"bee"`
	Extra map[string]any `mapstructure:",remain"`
}
type T2 struct {
	X map[string]any `json:",unknown"`
	Y map[string]any `json:",unknown"`
}
type T3 struct {
	X map[string]any `mapstructure:",remain"`
	Y map[string]any `mapstructure:",remain"`
}

var (
	modeOff = config.NewConfig()
	modeOn  = config.NewConfig(config.WithCompatibilityVocabulary(true))
)

// countingBuilder counts Build calls and optionally stalls them so that
// concurrent callers overlap.
type countingBuilder struct {
	apis.Builder
	builds atomic.Int64
	delay  time.Duration
}

func newCountingBuilder(delay time.Duration) *countingBuilder {
	return &countingBuilder{Builder: builder.New(), delay: delay}
}

func (b *countingBuilder) Build(t reflect.Type, cfg apis.Config) (*apis.TypeMetadata, error) {
	b.builds.Add(1)
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	return b.Builder.Build(t, cfg)
}

func TestGet_MemoizesPerTypeAndMode(t *testing.T) {
	b := newCountingBuilder(0)
	c := registry.New(b)

	off1, err := c.Get(reflect.TypeOf(T1{}), modeOff)
	require.NoError(t, err)
	off2, err := c.Get(reflect.TypeOf(T1{}), modeOff)
	require.NoError(t, err)
	assert.Same(t, off1, off2)

	on, err := c.Get(reflect.TypeOf(T1{}), modeOn)
	require.NoError(t, err)
	assert.NotSame(t, off1, on)

	// Outcomes legitimately differ by mode.
	_, ok := off1.ExtensionSlot()
	assert.False(t, ok)
	slot, ok := on.ExtensionSlot()
	assert.True(t, ok)
	assert.Equal(t, "Extra", slot.Member)

	assert.EqualValues(t, 2, b.builds.Load())
	assert.Equal(t, 2, c.Count())
}

func TestGet_EmptyTagKeysShareEntryWithDefaults(t *testing.T) {
	b := newCountingBuilder(0)
	c := registry.New(b)

	_, err := c.Get(reflect.TypeOf(T0{}), apis.Config{})
	require.NoError(t, err)
	_, err = c.Get(reflect.TypeOf(T0{}), config.DefaultConfig())
	require.NoError(t, err)

	assert.EqualValues(t, 1, b.builds.Load())
}

func TestGet_NilType(t *testing.T) {
	_, err := registry.New(builder.New()).Get(nil, modeOff)
	assert.ErrorIs(t, err, registry.ErrNilType)
}

func TestGet_ReplaysFailures(t *testing.T) {
	b := newCountingBuilder(0)
	c := registry.New(b)

	for i := 0; i < 5; i++ {
		md, err := c.Get(reflect.TypeOf(T2{}), modeOff)
		assert.Nil(t, md)
		require.ErrorIs(t, err, apis.ErrDuplicateExtensionSlot)
	}
	assert.EqualValues(t, 1, b.builds.Load())

	md, ok := c.Lookup(reflect.TypeOf(T2{}), modeOff)
	assert.Nil(t, md)
	assert.False(t, ok)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.ErrorIs(t, entries[0].Err, apis.ErrDuplicateExtensionSlot)
}

func TestGet_RevalidatesFailures(t *testing.T) {
	b := newCountingBuilder(0)
	c := registry.New(b, registry.WithFailurePolicy(apis.RevalidateFailures))

	_, err1 := c.Get(reflect.TypeOf(T3{}), modeOn)
	_, err2 := c.Get(reflect.TypeOf(T3{}), modeOn)
	require.ErrorIs(t, err1, apis.ErrDuplicateExtensionSlot)
	require.ErrorIs(t, err2, apis.ErrDuplicateExtensionSlot)
	assert.Equal(t, err1.Error(), err2.Error())

	assert.EqualValues(t, 2, b.builds.Load())
	assert.Equal(t, 0, c.Count())

	// Same type succeeds with the vocabulary disabled.
	md, err := c.Get(reflect.TypeOf(T3{}), modeOff)
	require.NoError(t, err)
	_, ok := md.ExtensionSlot()
	assert.False(t, ok)
}

// TestConcurrentGet verifies at most one effective build per key and that
// every caller observes the same published metadata.
func TestConcurrentGet(t *testing.T) {
	b := newCountingBuilder(20 * time.Millisecond)
	c := registry.New(b)
	typ := reflect.TypeOf(T1{})

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	results := make([]*apis.TypeMetadata, workers)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			md, err := c.Get(typ, modeOn)
			if err == nil {
				results[id] = md
			}
		}(w)
	}
	wg.Wait()

	assert.EqualValues(t, 1, b.builds.Load())
	for i, md := range results {
		require.NotNil(t, md, "worker %d", i)
		assert.Same(t, results[0], md)
	}
}

func TestConcurrentGet_DistinctConfigs(t *testing.T) {
	// Tag keys that would collide if joined without quoting.
	cfgs := []apis.Config{
		config.NewConfig(config.WithNativeTagKey("a|b"), config.WithCompatibilityTagKey("c")),
		config.NewConfig(config.WithNativeTagKey("a"), config.WithCompatibilityTagKey("b|c")),
	}
	b := newCountingBuilder(20 * time.Millisecond)
	c := registry.New(b)
	typ := reflect.TypeOf(T0{})

	got := make([]*apis.TypeMetadata, len(cfgs))
	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			md, err := c.Get(typ, cfg)
			assert.NoError(t, err)
			got[i] = md
		}()
	}
	wg.Wait()

	for i, cfg := range cfgs {
		require.NotNil(t, got[i])
		assert.Equal(t, cfg, got[i].Config())
	}
	assert.EqualValues(t, 2, b.builds.Load())
	assert.Equal(t, 2, c.Count())
}

func TestConcurrentGet_ReplayedFailure(t *testing.T) {
	b := newCountingBuilder(10 * time.Millisecond)
	c := registry.New(b)

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	var failures atomic.Int64

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := c.Get(reflect.TypeOf(T2{}), modeOn); err != nil {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, workers*50, failures.Load())
	assert.EqualValues(t, 1, b.builds.Load())
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	c := registry.New(builder.New())

	_, _ = c.Get(reflect.TypeOf(T0{}), modeOff)
	_, _ = c.Get(reflect.TypeOf(T1{}), modeOff)

	snap := c.Entries()
	c.Reset()

	assert.Equal(t, 0, c.Count())
	require.Len(t, snap, 2)
	for _, e := range snap {
		assert.NotNil(t, e.Metadata)
		assert.Equal(t, modeOff, e.Config)
	}

	_, ok := c.Lookup(reflect.TypeOf(T0{}), modeOff)
	assert.False(t, ok)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := registry.New(builder.New(), registry.WithLogger(zap.New(core)))

	_, err := c.Get(reflect.TypeOf(T0{}), modeOff)
	require.NoError(t, err)
	_, err = c.Get(reflect.TypeOf(T2{}), modeOff)
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("type metadata built").Len())
	failed := logs.FilterMessage("type metadata build failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.Equal(t, "replay", failed[0].ContextMap()["policy"])
}

func TestWarm(t *testing.T) {
	b := newCountingBuilder(0)
	c := registry.New(b)

	err := registry.Warm(context.Background(), c, modeOn, 2,
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(&T0{}))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Count())

	_, ok := c.Lookup(reflect.TypeOf(T1{}), modeOn)
	assert.True(t, ok)
}

func TestWarm_ReportsConflicts(t *testing.T) {
	c := registry.New(builder.New())
	err := registry.Warm(context.Background(), c, modeOn, 0, reflect.TypeOf(T0{}), reflect.TypeOf(T3{}))
	assert.ErrorIs(t, err, apis.ErrDuplicateExtensionSlot)
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Cache = registry.New(builder.New())
