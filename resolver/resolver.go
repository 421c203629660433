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

package resolver

import (
	"slices"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/strategy"
)

// NewNames constructs an apis.NameResolver that tries the given strategies in order.
// Nil strategies are ignored. If no strategy handles a member, its declared
// name is used, so resolution is total. The returned resolver is safe for
// concurrent use provided strategies themselves are.
func NewNames(strategies ...apis.NameStrategy) apis.NameResolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.NameStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// DefaultNames returns the Native -> Compatibility -> Declared chain.
func DefaultNames() apis.NameResolver {
	return NewNames(
		strategy.NewNativeStrategy(),
		strategy.NewCompatibilityStrategy(),
		strategy.NewDeclaredStrategy(),
	)
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.NameStrategy
}

// Resolve runs strategies in order until one handles the member.
func (r chain) Resolve(set apis.MemberAttributeSet, cfg apis.Config) apis.ResolvedName {
	for _, s := range r.strats {
		if name, ok := s.TryResolve(set, cfg); ok {
			return name
		}
	}
	return apis.ResolvedName{
		Member: set.Member,
		Name:   set.Member,
		Source: apis.SourceDefault,
		Index:  slices.Clone(set.Index),
	}
}
