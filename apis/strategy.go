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

// NameStrategy is a pluggable naming step. A NameResolver chains multiple
// strategies in order (e.g., Native -> Compatibility -> Declared).
type NameStrategy interface {
	// TryResolve attempts to name the member according to cfg.
	// It returns (name, true) if handled; otherwise (zero, false) to fall through.
	TryResolve(set MemberAttributeSet, cfg Config) (name ResolvedName, handled bool)
}
