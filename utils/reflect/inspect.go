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

package reflect

import (
	"reflect"
	"slices"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/config"
)

// NewInspector creates an apis.Inspector that reads struct tags, or defers to
// apis.AttributeProvider when the type implements it.
func NewInspector() apis.Inspector {
	return inspector{}
}

// inspector is the default reflection snapshot.
type inspector struct{}

// Ensure inspector implements apis.Inspector.
var _ apis.Inspector = inspector{}

var providerType = reflect.TypeFor[apis.AttributeProvider]()

// Inspect returns the member attribute sets of t in field order.
//
// Field policy:
//   - unexported fields are skipped;
//   - a Native tag of "-" excludes the field;
//   - a Compatibility tag of "-" excludes the field only when the
//     Compatibility vocabulary is enabled and the field has no Native tag;
//     otherwise it is ignored.
func (inspector) Inspect(t reflect.Type, cfg apis.Config) ([]apis.MemberAttributeSet, error) {
	st, err := Normalize(t, DefaultMaxUnwrap)
	if err != nil {
		return nil, err
	}
	if sets, ok := provided(st); ok {
		return sets, nil
	}
	return fromTags(st, config.Normalize(cfg)), nil
}

// provided returns the sets declared via apis.AttributeProvider, if any.
func provided(st reflect.Type) ([]apis.MemberAttributeSet, bool) {
	var p apis.AttributeProvider
	switch {
	case st.Implements(providerType):
		p = reflect.Zero(st).Interface().(apis.AttributeProvider)
	case reflect.PointerTo(st).Implements(providerType):
		p = reflect.New(st).Interface().(apis.AttributeProvider)
	default:
		return nil, false
	}

	src := p.JSONMembers()
	out := make([]apis.MemberAttributeSet, len(src))
	for i, s := range src {
		s.Tags = slices.Clone(s.Tags)
		s.Index = slices.Clone(s.Index)
		if s.Index == nil {
			if f, ok := st.FieldByName(s.Member); ok && f.IsExported() && reachable(st, f.Index) {
				s.Index = slices.Clone(f.Index)
			}
		}
		out[i] = s
	}
	return out, true
}

// reachable reports whether the field at index can be allocated and set
// through a value of st. A promoted field behind an unexported embedded
// pointer is not: the pointer cannot be allocated from outside the package.
func reachable(st reflect.Type, index []int) bool {
	t := st
	for i, x := range index {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		f := t.Field(x)
		if i < len(index)-1 && !f.IsExported() && f.Type.Kind() == reflect.Pointer {
			return false
		}
		t = f.Type
	}
	return true
}

// fromTags reads both vocabularies from the struct tags of st.
func fromTags(st reflect.Type, cfg apis.Config) []apis.MemberAttributeSet {
	out := make([]apis.MemberAttributeSet, 0, st.NumField())
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}

		ntag, hasNative := f.Tag.Lookup(cfg.NativeTagKey)
		ctag, hasCompat := f.Tag.Lookup(cfg.CompatibilityTagKey)
		if hasNative && ntag == "-" {
			continue
		}
		if hasCompat && ctag == "-" {
			if cfg.UseCompatibilityVocabulary && !hasNative {
				continue
			}
			hasCompat = false
		}

		set := apis.MemberAttributeSet{Member: f.Name, Index: slices.Clone(f.Index)}
		if hasNative {
			set.Tags = append(set.Tags, Tags(apis.Native, ntag, NativeExtensionOption)...)
		}
		if hasCompat {
			set.Tags = append(set.Tags, Tags(apis.Compatibility, ctag, CompatibilityExtensionOption)...)
		}
		out = append(out, set)
	}
	return out
}
