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

package strategy

import (
	"slices"

	"dirpx.dev/jfx/apis"
)

// NewNativeStrategy creates an apis.NameStrategy that honors Native naming tags.
func NewNativeStrategy() apis.NameStrategy {
	return &nativeStrategy{}
}

// nativeStrategy wins unconditionally when a Native naming tag is present,
// whatever the mode and whatever Compatibility tags the member also carries.
type nativeStrategy struct{}

// Ensure nativeStrategy implements apis.NameStrategy.
var _ apis.NameStrategy = (*nativeStrategy)(nil)

// TryResolve returns the first Native naming tag of the member.
func (*nativeStrategy) TryResolve(set apis.MemberAttributeSet, _ apis.Config) (apis.ResolvedName, bool) {
	name, ok := set.Naming(apis.Native)
	if !ok {
		return apis.ResolvedName{}, false
	}
	return resolved(set, name, apis.SourceNative), true
}

// resolved builds a ResolvedName for set.
func resolved(set apis.MemberAttributeSet, name string, src apis.NameSource) apis.ResolvedName {
	return apis.ResolvedName{
		Member: set.Member,
		Name:   name,
		Source: src,
		Index:  slices.Clone(set.Index),
	}
}
