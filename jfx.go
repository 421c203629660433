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

package jfx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/builder"
	"dirpx.dev/jfx/codec"
	"dirpx.dev/jfx/config"
	"dirpx.dev/jfx/registry"
)

// init initializes the global state.
func init() {
	// Initialize state with default cfg, builder and cache.
	b := builder.New()
	st.Store(&state{
		cfg:   config.DefaultConfig(),
		bld:   b,
		cache: registry.New(b),
	})
}

var (
	// ErrNilValue is returned by MetadataOf for a nil value.
	ErrNilValue = errors.New("jfx: nil value")
)

// Metadata returns the metadata of t under the global configuration.
// DuplicateExtensionSlotError and other build failures are returned on every
// call for the same (type, configuration) pair.
func Metadata(t reflect.Type) (*apis.TypeMetadata, error) {
	s := st.Load()
	return s.cache.Get(t, s.cfg)
}

// MetadataOf returns the metadata of v's type under the global configuration.
func MetadataOf(v any) (*apis.TypeMetadata, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	return Metadata(reflect.TypeOf(v))
}

// Marshal encodes v using the global configuration.
func Marshal(v any) ([]byte, error) {
	md, err := MetadataOf(v)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(v, md)
}

// Unmarshal decodes data into v, a non-nil pointer to struct, using the
// global configuration.
func Unmarshal(data []byte, v any) error {
	md, err := MetadataOf(v)
	if err != nil {
		return err
	}
	return codec.Unmarshal(data, v, md)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// The cache is kept: entries are keyed by configuration, so switching modes
// back and forth reuses earlier builds.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:    config.Normalize(cfg),
		bld:    old.bld,
		cache:  old.cache,
		pcache: old.pcache,
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b.
// Unless the cache is pinned, a fresh cache backed by b replaces the old one.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nc := old.cache
	if !old.pcache {
		nc = registry.New(b)
	}
	st.Store(&state{
		cfg:    old.cfg,
		bld:    b,
		cache:  nc,
		pcache: old.pcache,
	})
}

// Cache returns the global cache.
func Cache() apis.Cache {
	return st.Load().cache
}

// SetCache sets the global cache to c and pins it.
func SetCache(c apis.Cache) {
	if c == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:    old.cfg,
		bld:    old.bld,
		cache:  c,
		pcache: true,
	})
}

// SetAll explicitly sets all global state components.
//
// A nil cfg or bld leaves the corresponding component unchanged. A nil cache
// is rebuilt from the (new) builder and left unpinned; a non-nil cache is pinned.
func SetAll(cfg *apis.Config, c apis.Cache, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = config.Normalize(*cfg)
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}
	nc, pinned := c, true
	if nc == nil {
		nc, pinned = registry.New(nbld), false
	}
	st.Store(&state{
		cfg:    ncfg,
		bld:    nbld,
		cache:  nc,
		pcache: pinned,
	})
}

// IsCachePinned returns whether the global cache is pinned.
func IsCachePinned() bool {
	return st.Load().pcache
}

// PinCache keeps the global cache across SetBuilder calls.
func PinCache() {
	setPinned(true)
}

// UnpinCache lets SetBuilder replace the global cache again.
func UnpinCache() {
	setPinned(false)
}

func setPinned(p bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{
		cfg:    old.cfg,
		bld:    old.bld,
		cache:  old.cache,
		pcache: p,
	})
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// bld is the global builder.
	bld apis.Builder
	// cache is the global metadata cache.
	cache apis.Cache
	// pcache indicates whether the cache is pinned.
	pcache bool
}
