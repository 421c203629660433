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

package apis

import (
	"fmt"
	"reflect"
	"slices"
)

// NameSource records which rule produced a ResolvedName.
type NameSource int

const (
	// SourceDefault means the declared member name was used.
	SourceDefault NameSource = iota
	// SourceNative means a Native naming tag supplied the name.
	SourceNative
	// SourceCompatibility means a Compatibility naming tag supplied the name.
	SourceCompatibility
)

// String returns a human-readable representation of the NameSource value.
func (s NameSource) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceNative:
		return "native"
	case SourceCompatibility:
		return "compatibility"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ResolvedName is the effective serialized name of one member.
type ResolvedName struct {
	Member string
	Name   string
	Source NameSource
	Index  []int
}

// ExtensionSlot identifies the member that collects unmapped properties.
type ExtensionSlot struct {
	Member     string
	Vocabulary Vocabulary
	Index      []int
}

// TypeMetadata is the resolved, immutable metadata of one type under one Config.
//
// The extension member, if any, keeps its entry in Names so it can still be
// written under its own name by encoders that choose to, but Lookup never
// matches it: consumers must route input keys that Lookup does not resolve
// into the extension member instead.
type TypeMetadata struct {
	typeName string
	typ      reflect.Type
	cfg      Config
	names    []ResolvedName
	byMember map[string]int
	byName   map[string]int
	slot     ExtensionSlot
	hasSlot  bool
}

// NewTypeMetadata assembles TypeMetadata from already resolved parts.
// Member identifiers in names must be unique. slot may be nil.
// Inputs are copied; the result shares no memory with the caller.
func NewTypeMetadata(typeName string, t reflect.Type, cfg Config, names []ResolvedName, slot *ExtensionSlot) *TypeMetadata {
	md := &TypeMetadata{
		typeName: typeName,
		typ:      t,
		cfg:      cfg,
		names:    make([]ResolvedName, len(names)),
		byMember: make(map[string]int, len(names)),
		byName:   make(map[string]int, len(names)),
	}
	if slot != nil {
		md.slot = ExtensionSlot{Member: slot.Member, Vocabulary: slot.Vocabulary, Index: slices.Clone(slot.Index)}
		md.hasSlot = true
	}
	for i, n := range names {
		n.Index = slices.Clone(n.Index)
		md.names[i] = n
		md.byMember[n.Member] = i
		if md.hasSlot && n.Member == md.slot.Member {
			continue
		}
		// First declared member wins on name collisions.
		if _, dup := md.byName[n.Name]; !dup {
			md.byName[n.Name] = i
		}
	}
	return md
}

// TypeName returns the display name of the described type.
func (m *TypeMetadata) TypeName() string { return m.typeName }

// Type returns the Go type, or nil when the metadata was assembled from a snapshot.
func (m *TypeMetadata) Type() reflect.Type { return m.typ }

// Config returns the Config the metadata was resolved under.
func (m *TypeMetadata) Config() Config { return m.cfg }

// Len returns the number of members.
func (m *TypeMetadata) Len() int { return len(m.names) }

// Names returns the resolved names in declaration order.
func (m *TypeMetadata) Names() []ResolvedName {
	out := make([]ResolvedName, len(m.names))
	for i, n := range m.names {
		n.Index = slices.Clone(n.Index)
		out[i] = n
	}
	return out
}

// Name returns the resolved name of member.
func (m *TypeMetadata) Name(member string) (ResolvedName, bool) {
	i, ok := m.byMember[member]
	if !ok {
		return ResolvedName{}, false
	}
	n := m.names[i]
	n.Index = slices.Clone(n.Index)
	return n, true
}

// Lookup matches a serialized property name against the ordinary members.
// The extension member is never returned.
func (m *TypeMetadata) Lookup(name string) (ResolvedName, bool) {
	i, ok := m.byName[name]
	if !ok {
		return ResolvedName{}, false
	}
	n := m.names[i]
	n.Index = slices.Clone(n.Index)
	return n, true
}

// ExtensionSlot returns the extension member, if any.
func (m *TypeMetadata) ExtensionSlot() (ExtensionSlot, bool) {
	if !m.hasSlot {
		return ExtensionSlot{}, false
	}
	s := m.slot
	s.Index = slices.Clone(s.Index)
	return s, true
}

// IsExtension reports whether member is the extension slot.
func (m *TypeMetadata) IsExtension(member string) bool {
	return m.hasSlot && m.slot.Member == member
}

// Equal reports whether m and o describe the same resolution outcome.
func (m *TypeMetadata) Equal(o *TypeMetadata) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.typeName != o.typeName || m.typ != o.typ || m.cfg != o.cfg || m.hasSlot != o.hasSlot {
		return false
	}
	if m.hasSlot && (m.slot.Member != o.slot.Member || m.slot.Vocabulary != o.slot.Vocabulary) {
		return false
	}
	return slices.EqualFunc(m.names, o.names, func(a, b ResolvedName) bool {
		return a.Member == b.Member && a.Name == b.Name && a.Source == b.Source && slices.Equal(a.Index, b.Index)
	})
}
