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

package builder

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/config"
	"dirpx.dev/jfx/resolver"
	uref "dirpx.dev/jfx/utils/reflect"
)

var (
	// ErrDuplicateMember is returned when two member sets share an identifier.
	ErrDuplicateMember = errors.New("jfx(builder): duplicate member identifier")
	// ErrEmptyMember is returned when a member set has no identifier.
	ErrEmptyMember = errors.New("jfx(builder): empty member identifier")
)

// Option customizes a builder.
type Option func(*builder)

// WithInspector replaces the reflection snapshot used by Build.
func WithInspector(in apis.Inspector) Option {
	return func(b *builder) {
		if in != nil {
			b.in = in
		}
	}
}

// WithNameResolver replaces the per-member name resolver.
func WithNameResolver(r apis.NameResolver) Option {
	return func(b *builder) {
		if r != nil {
			b.names = r
		}
	}
}

// WithExtensionResolver replaces the whole-type extension slot resolver.
func WithExtensionResolver(r apis.ExtensionResolver) Option {
	return func(b *builder) {
		if r != nil {
			b.ext = r
		}
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{
		in:    uref.NewInspector(),
		names: resolver.DefaultNames(),
		ext:   resolver.NewExtension(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder holds only immutable collaborators and is safe for concurrent use.
type builder struct {
	in    apis.Inspector
	names apis.NameResolver
	ext   apis.ExtensionResolver
}

// Build inspects t and assembles its metadata. The returned metadata remembers t.
func (b *builder) Build(t reflect.Type, cfg apis.Config) (*apis.TypeMetadata, error) {
	cfg = config.Normalize(cfg)
	sets, err := b.in.Inspect(t, cfg)
	if err != nil {
		return nil, fmt.Errorf("jfx(builder): inspect %v: %w", t, err)
	}
	st, _ := uref.Normalize(t, uref.DefaultMaxUnwrap)
	if st == nil {
		st = t
	}
	return b.assemble(st.String(), st, sets, cfg)
}

// Assemble resolves every member name, then the extension slot once.
//
// The extension member keeps its resolved name; consumers must consult
// TypeMetadata.ExtensionSlot before matching unmapped input keys.
func (b *builder) Assemble(typeName string, sets []apis.MemberAttributeSet, cfg apis.Config) (*apis.TypeMetadata, error) {
	return b.assemble(typeName, nil, sets, config.Normalize(cfg))
}

func (b *builder) assemble(typeName string, t reflect.Type, sets []apis.MemberAttributeSet, cfg apis.Config) (*apis.TypeMetadata, error) {
	seen := make(map[string]struct{}, len(sets))
	names := make([]apis.ResolvedName, 0, len(sets))
	for _, s := range sets {
		if s.Member == "" {
			return nil, fmt.Errorf("%w in type %s", ErrEmptyMember, typeName)
		}
		if _, dup := seen[s.Member]; dup {
			return nil, fmt.Errorf("%w %q in type %s", ErrDuplicateMember, s.Member, typeName)
		}
		seen[s.Member] = struct{}{}
		names = append(names, b.names.Resolve(s, cfg))
	}

	slot, ok, err := b.ext.Resolve(typeName, sets, cfg)
	if err != nil {
		return nil, err
	}
	var sp *apis.ExtensionSlot
	if ok {
		sp = &slot
	}
	return apis.NewTypeMetadata(typeName, t, cfg, names, sp), nil
}
