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

// NameResolver picks the effective serialized name of a single member.
type NameResolver interface {
	// Resolve always returns a name; naming cannot fail.
	Resolve(set MemberAttributeSet, cfg Config) ResolvedName
}

// ExtensionResolver selects at most one extension-data member for a whole type.
type ExtensionResolver interface {
	// Resolve returns the slot and true, (zero, false) when the type has none,
	// or a *DuplicateExtensionSlotError on ambiguity.
	Resolve(typeName string, sets []MemberAttributeSet, cfg Config) (ExtensionSlot, bool, error)
}
