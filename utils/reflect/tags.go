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
	"strings"

	"dirpx.dev/jfx/apis"
)

const (
	// NativeExtensionOption marks a Native extension-data member: `json:",unknown"`.
	NativeExtensionOption = "unknown"
	// CompatibilityExtensionOption marks a Compatibility extension-data member:
	// `mapstructure:",remain"`.
	CompatibilityExtensionOption = "remain"
	// OmitEmptyOption skips zero values on write in either vocabulary.
	OmitEmptyOption = "omitempty"
)

// OmitEmpty reports whether f carries the omitempty option in the vocabulary
// that names it under cfg: the Native tag when present, otherwise the
// Compatibility tag when that vocabulary is enabled.
func OmitEmpty(f reflect.StructField, cfg apis.Config) bool {
	tag, ok := f.Tag.Lookup(cfg.NativeTagKey)
	if !ok {
		if !cfg.UseCompatibilityVocabulary {
			return false
		}
		if tag, ok = f.Tag.Lookup(cfg.CompatibilityTagKey); !ok {
			return false
		}
	}
	_, opts := ParseTag(tag)
	return slices.Contains(opts, OmitEmptyOption)
}

// ParseTag splits a struct tag value into its name and comma-separated options.
func ParseTag(tag string) (name string, opts []string) {
	name, rest, found := strings.Cut(tag, ",")
	if !found {
		return name, nil
	}
	for _, o := range strings.Split(rest, ",") {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	return name, opts
}

// Tags converts one struct tag value into attribute tags of vocabulary v.
// A non-empty name yields a Naming tag; extOpt among the options yields an
// ExtensionData tag.
func Tags(v apis.Vocabulary, tag, extOpt string) []apis.AttributeTag {
	name, opts := ParseTag(tag)
	var out []apis.AttributeTag
	if name != "" {
		out = append(out, apis.AttributeTag{Vocabulary: v, Kind: apis.Naming, Value: name})
	}
	for _, o := range opts {
		if o == extOpt {
			out = append(out, apis.AttributeTag{Vocabulary: v, Kind: apis.ExtensionData})
			break
		}
	}
	return out
}
