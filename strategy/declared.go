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

// NewDeclaredStrategy creates an apis.NameStrategy that falls back to the
// declared member name.
func NewDeclaredStrategy() apis.NameStrategy {
	return declaredStrategy{}
}

// declaredStrategy is the universal fallback; it always handles the member.
type declaredStrategy struct{}

// Ensure declaredStrategy implements apis.NameStrategy.
var _ apis.NameStrategy = declaredStrategy{}

// TryResolve returns the declared name.
func (declaredStrategy) TryResolve(set apis.MemberAttributeSet, _ apis.Config) (apis.ResolvedName, bool) {
	return resolved(set, set.Member, apis.SourceDefault), true
}
