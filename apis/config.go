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

// Config carries read-only resolution knobs that influence metadata building.
// It is passed by value, is comparable, and is part of every cache key because
// the same type can resolve differently under different settings.
type Config struct {
	// UseCompatibilityVocabulary enables the Compatibility vocabulary.
	// When false, Compatibility tags are recorded but inert.
	UseCompatibilityVocabulary bool

	// NativeTagKey is the struct tag key of the Native vocabulary (e.g. "json").
	NativeTagKey string

	// CompatibilityTagKey is the struct tag key of the Compatibility
	// vocabulary (e.g. "mapstructure").
	CompatibilityTagKey string
}
