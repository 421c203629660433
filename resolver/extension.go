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
)

// NewExtension constructs the two-tier apis.ExtensionResolver.
//
// Tier A collects every member carrying a Native extension-data tag. Two or
// more is an error in every mode; exactly one is the slot and Tier B is
// never consulted. Only when Tier A is empty and the Compatibility
// vocabulary is enabled does Tier B apply the same rule to Compatibility
// extension-data tags.
func NewExtension() apis.ExtensionResolver {
	return extension{}
}

// extension is stateless and safe for concurrent use.
type extension struct{}

// Ensure extension implements apis.ExtensionResolver.
var _ apis.ExtensionResolver = extension{}

// Resolve selects the extension slot of the whole type.
func (extension) Resolve(typeName string, sets []apis.MemberAttributeSet, cfg apis.Config) (apis.ExtensionSlot, bool, error) {
	slot, found, err := tier(typeName, sets, apis.Native)
	if err != nil || found {
		return slot, found, err
	}
	if !cfg.UseCompatibilityVocabulary {
		return apis.ExtensionSlot{}, false, nil
	}
	return tier(typeName, sets, apis.Compatibility)
}

// tier collects all candidates of vocabulary v before deciding, so the
// outcome does not depend on member order.
func tier(typeName string, sets []apis.MemberAttributeSet, v apis.Vocabulary) (apis.ExtensionSlot, bool, error) {
	var hits []int
	for i, s := range sets {
		if s.Extension(v) {
			hits = append(hits, i)
		}
	}

	switch len(hits) {
	case 0:
		return apis.ExtensionSlot{}, false, nil
	case 1:
		s := sets[hits[0]]
		return apis.ExtensionSlot{Member: s.Member, Vocabulary: v, Index: slices.Clone(s.Index)}, true, nil
	default:
		members := make([]string, len(hits))
		for i, h := range hits {
			members[i] = sets[h].Member
		}
		return apis.ExtensionSlot{}, false, &apis.DuplicateExtensionSlotError{
			TypeName:   typeName,
			Vocabulary: v,
			Members:    members,
		}
	}
}
