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

// Package codec applies resolved TypeMetadata to JSON documents.
//
// Members are written under their resolved names in declaration order. The
// extension member is never written as itself: its map entries are written
// as additional top-level properties instead. On read, every property is
// matched with TypeMetadata.Lookup; properties that match nothing are stored
// in the extension member when the type has one, and dropped otherwise.
//
// Values below the top level are delegated to encoding/json.
package codec
