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

// Package jfx resolves, once per type, how a Go struct maps onto JSON when
// two independent tag vocabularies may annotate the same fields.
//
// jfx is responsible for turning "a struct type plus a configuration" into
// immutable metadata: the serialized name of every member and the single
// member, if any, that collects properties matching no declared name (the
// extension data member).
//
// # Vocabularies
//
// The Native vocabulary follows encoding/json conventions:
//
//	Name  int            `json:"name"`
//	Extra map[string]any `json:",unknown"`
//
// The Compatibility vocabulary emulates mapstructure conventions:
//
//	Name  int            `mapstructure:"name"`
//	Extra map[string]any `mapstructure:",remain"`
//
// Native tags are always honored. Compatibility tags are honored only when
// apis.Config.UseCompatibilityVocabulary is set. Tag keys are configurable
// (see package config). Types can skip struct tags altogether by
// implementing apis.AttributeProvider.
//
// # Precedence
//
// Names are resolved per member, in priority order:
//  1. a Native naming tag, in every mode;
//  2. a Compatibility naming tag, when the vocabulary is enabled;
//  3. the declared field name.
//
// The extension member is chosen per type, in two tiers:
//
//   - Native tier: two or more Native extension members fail with
//     apis.DuplicateExtensionSlotError in every mode; exactly one wins and
//     the Compatibility tier is not consulted.
//   - Compatibility tier: reached only with no Native candidate and the
//     vocabulary enabled; two or more fail, exactly one wins.
//
// A single Native designation therefore shields a type from conflicts
// among Compatibility-tagged members.
//
// # Global API
//
// The package keeps a read-mostly global snapshot of configuration, builder
// and cache:
//
//	md, err := jfx.MetadataOf(v)
//	data, err := jfx.Marshal(v)
//	err = jfx.Unmarshal(data, &v)
//
// Reads are lock-free. SetConfig, SetBuilder, SetCache and SetAll take a
// short build mutex, assemble a new snapshot and publish it atomically.
// The cache is keyed by (type, configuration), so changing configuration
// never invalidates earlier entries; SetCache pins a cache so SetBuilder
// keeps it.
//
// # Errors
//
// A DuplicateExtensionSlotError is a configuration error detected the first
// time a type is used under a configuration. The cache replays it to every
// later caller (or re-derives it, with apis.RevalidateFailures).
package jfx
