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

// AttributeProvider lets a type describe its members without struct tags.
//
// # Overview
//
// AttributeProvider is the reflection-free fast path of member inspection.
// When a struct type (or a pointer to it) implements AttributeProvider, the
// inspector MUST use the returned sets verbatim instead of reading struct
// tags. This is how types declare vocabularies that cannot be expressed as
// Go struct tags, or that are generated elsewhere.
//
// JSONMembers is a type-level contract: it is called on the zero value (or a
// freshly allocated pointer) of the type, so the result MUST NOT depend on
// instance state.
//
// # Usage
//
//	type Account struct {
//	    ID    int
//	    Extra map[string]any
//	}
//
//	func (Account) JSONMembers() []apis.MemberAttributeSet {
//	    return []apis.MemberAttributeSet{
//	        {Member: "ID", Tags: []apis.AttributeTag{{Vocabulary: apis.Native, Kind: apis.Naming, Value: "id"}}},
//	        {Member: "Extra", Tags: []apis.AttributeTag{{Vocabulary: apis.Compatibility, Kind: apis.ExtensionData}}},
//	    }
//	}
//
// # Contract
//
//   - Member identifiers MUST be unique within the returned slice.
//   - Index MAY be omitted; the inspector fills it by field name when the
//     member names an exported struct field.
//   - The returned slice MUST be deterministic across calls; callers MAY
//     retain it.
//   - Implementations MUST NOT perform blocking operations or I/O.
type AttributeProvider interface {
	// JSONMembers returns one attribute set per member, in declaration order.
	JSONMembers() []MemberAttributeSet
}
