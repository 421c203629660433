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
	"dirpx.dev/jfx/apis"
)

// NewCompatibilityStrategy creates an apis.NameStrategy that honors
// Compatibility naming tags when the vocabulary is enabled.
func NewCompatibilityStrategy() apis.NameStrategy {
	return &compatibilityStrategy{}
}

// compatibilityStrategy is inert unless cfg.UseCompatibilityVocabulary is set.
type compatibilityStrategy struct{}

// Ensure compatibilityStrategy implements apis.NameStrategy.
var _ apis.NameStrategy = (*compatibilityStrategy)(nil)

// TryResolve returns the first Compatibility naming tag of the member.
func (*compatibilityStrategy) TryResolve(set apis.MemberAttributeSet, cfg apis.Config) (apis.ResolvedName, bool) {
	if !cfg.UseCompatibilityVocabulary {
		return apis.ResolvedName{}, false
	}
	name, ok := set.Naming(apis.Compatibility)
	if !ok {
		return apis.ResolvedName{}, false
	}
	return resolved(set, name, apis.SourceCompatibility), true
}
