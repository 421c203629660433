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
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("jfx(registry): nil reflect.Type provided")
	// ErrNilMetadata is returned when a builder yields neither metadata nor an error.
	ErrNilMetadata = errors.New("jfx(registry): builder returned nil metadata")
)

// Option customizes a cache.
type Option func(*cache)

// WithLogger sets the logger used to report builds. Nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithFailurePolicy selects whether build failures are stored and replayed.
func WithFailurePolicy(p apis.FailurePolicy) Option {
	return func(c *cache) {
		c.policy = p
	}
}

// New constructs a Cache that builds missing entries with b.
func New(b apis.Builder, opts ...Option) apis.Cache {
	c := &cache{
		b:   b,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cacheKey ensures memoization respects every config knob that affects resolution.
type cacheKey struct {
	t   reflect.Type
	cfg apis.Config
}

// flightKey identifies the key for singleflight. Types live for the whole
// process, so the type's address is a stable identity. Tag keys are quoted
// since they may contain the separator.
func (k cacheKey) flightKey() string {
	return fmt.Sprintf("%p|%t|%q|%q", k.t, k.cfg.UseCompatibilityVocabulary, k.cfg.NativeTagKey, k.cfg.CompatibilityTagKey)
}

// entry is immutable once stored.
type entry struct {
	md  *apis.TypeMetadata
	err error
}

// cache is a process-lifetime Cache backed by sync.Map.
// Misses are coalesced so each key is built at most once at a time.
type cache struct {
	b      apis.Builder
	log    *zap.Logger
	policy apis.FailurePolicy
	// group coalesces concurrent misses.
	group singleflight.Group
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps cacheKey to *entry.
	m sync.Map
	// count tracks the number of stored entries.
	count int
}

// Get returns the metadata of t under cfg, building it on first use.
func (c *cache) Get(t reflect.Type, cfg apis.Config) (*apis.TypeMetadata, error) {
	if t == nil {
		return nil, ErrNilType
	}
	key := cacheKey{t: t, cfg: config.Normalize(cfg)}

	// Fast read path.
	if v, ok := c.m.Load(key); ok {
		e := v.(*entry)
		return e.md, e.err
	}

	v, _, shared := c.group.Do(key.flightKey(), func() (any, error) {
		// Re-check in case another flight stored meanwhile.
		if v, ok := c.m.Load(key); ok {
			return v, nil
		}
		return c.build(key), nil
	})
	if shared {
		c.log.Debug("type metadata build coalesced", zap.Stringer("type", t))
	}
	e := v.(*entry)
	return e.md, e.err
}

// build runs the builder and publishes the result according to the policy.
func (c *cache) build(key cacheKey) *entry {
	md, err := c.b.Build(key.t, key.cfg)
	if err == nil && md == nil {
		err = ErrNilMetadata
	}
	e := &entry{md: md, err: err}

	fields := []zap.Field{
		zap.Stringer("type", key.t),
		zap.Bool("compat", key.cfg.UseCompatibilityVocabulary),
	}
	if err != nil {
		e.md = nil
		c.log.Warn("type metadata build failed", append(fields, zap.Error(err), zap.Stringer("policy", c.policy))...)
		if c.policy != apis.ReplayFailures {
			return e
		}
	} else {
		c.log.Debug("type metadata built", append(fields, zap.Int("members", md.Len()))...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, loaded := c.m.LoadOrStore(key, e); !loaded {
		c.count++
	}
	return e
}

// Lookup returns already published metadata without building.
func (c *cache) Lookup(t reflect.Type, cfg apis.Config) (*apis.TypeMetadata, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := c.m.Load(cacheKey{t: t, cfg: config.Normalize(cfg)})
	if !ok {
		return nil, false
	}
	e := v.(*entry)
	return e.md, e.err == nil
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (c *cache) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, c.Count())
	c.m.Range(func(key, value any) bool {
		k, e := key.(cacheKey), value.(*entry)
		entries = append(entries, apis.Entry{
			Type:     k.t,
			Config:   k.cfg,
			Metadata: e.md,
			Err:      e.err,
		})
		return true
	})
	return entries
}

// Count returns the number of stored entries.
func (c *cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset clears all stored entries.
func (c *cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m.Clear()
	c.count = 0
}
