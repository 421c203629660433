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

import "reflect"

// Inspector derives the member attribute sets of a Go type.
type Inspector interface {
	// Inspect returns one set per member in declaration order.
	Inspect(t reflect.Type, cfg Config) ([]MemberAttributeSet, error)
}

// Builder produces TypeMetadata. Implementations must be safe for concurrent use.
type Builder interface {
	// Build inspects t and resolves its metadata under cfg.
	Build(t reflect.Type, cfg Config) (*TypeMetadata, error)
	// Assemble resolves metadata from already inspected member sets.
	Assemble(typeName string, sets []MemberAttributeSet, cfg Config) (*TypeMetadata, error)
}
