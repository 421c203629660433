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
	"strings"
)

// Vocabulary identifies which annotation family a tag belongs to.
type Vocabulary int

const (
	// Native tags are always honored and outrank Compatibility tags.
	Native Vocabulary = iota
	// Compatibility tags take effect only when Config.UseCompatibilityVocabulary is set.
	Compatibility
)

// String returns a human-readable representation of the Vocabulary value.
func (v Vocabulary) String() string {
	switch v {
	case Native:
		return "native"
	case Compatibility:
		return "compatibility"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// ParseVocabulary parses the output of Vocabulary.String (case-insensitive).
// "compat" is accepted as a short form of "compatibility".
func ParseVocabulary(s string) (Vocabulary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native":
		return Native, nil
	case "compatibility", "compat":
		return Compatibility, nil
	default:
		return 0, fmt.Errorf("jfx(apis): unknown vocabulary %q", s)
	}
}

// TagKind distinguishes naming tags from extension-data tags.
type TagKind int

const (
	// Naming carries an explicit serialized name in AttributeTag.Value.
	Naming TagKind = iota
	// ExtensionData marks the member as the catch-all bucket for unmapped properties.
	ExtensionData
)

// String returns a human-readable representation of the TagKind value.
func (k TagKind) String() string {
	switch k {
	case Naming:
		return "naming"
	case ExtensionData:
		return "extension"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseTagKind parses the output of TagKind.String (case-insensitive).
func ParseTagKind(s string) (TagKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naming", "name":
		return Naming, nil
	case "extension", "extensiondata", "extension_data":
		return ExtensionData, nil
	default:
		return 0, fmt.Errorf("jfx(apis): unknown tag kind %q", s)
	}
}

// AttributeTag is one occurrence of an annotation on a member.
type AttributeTag struct {
	// Vocabulary is the family the tag was found in.
	Vocabulary Vocabulary
	// Kind is the role of the tag.
	Kind TagKind
	// Value is the serialized name for Naming tags; unused for ExtensionData.
	Value string
}

// MemberAttributeSet is the ordered list of tags found on one member.
// It is produced once per type and treated as read-only afterwards.
type MemberAttributeSet struct {
	// Member identifies the member within its type and doubles as its declared name.
	Member string
	// Index is the reflect field index path; nil when the type is not backed by a Go struct.
	Index []int
	// Tags holds the tags in declaration order.
	Tags []AttributeTag
}

// Naming returns the value of the first naming tag of vocabulary v.
func (s MemberAttributeSet) Naming(v Vocabulary) (string, bool) {
	for _, t := range s.Tags {
		if t.Vocabulary == v && t.Kind == Naming {
			return t.Value, true
		}
	}
	return "", false
}

// Extension reports whether the member carries an extension-data tag of vocabulary v.
func (s MemberAttributeSet) Extension(v Vocabulary) bool {
	for _, t := range s.Tags {
		if t.Vocabulary == v && t.Kind == ExtensionData {
			return true
		}
	}
	return false
}
