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

// Cache memoizes TypeMetadata per (type, Config) for the life of the process.
// Implementations must be safe for concurrent use and must publish only
// fully built metadata.
type Cache interface {
	// Get returns the metadata of t under cfg, building it on first use.
	Get(t reflect.Type, cfg Config) (*TypeMetadata, error)
	// Lookup returns already published metadata without building.
	Lookup(t reflect.Type, cfg Config) (*TypeMetadata, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of published entries.
	Count() int
	// Reset clears all entries.
	Reset()
}

// Entry is a single published cache entry.
type Entry struct {
	// Type is the cached reflect.Type.
	Type reflect.Type
	// Config is the Config the entry was built under.
	Config Config
	// Metadata is nil when Err is set.
	Metadata *TypeMetadata
	// Err is the replayed build failure, if any.
	Err error
}
