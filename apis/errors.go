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

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateExtensionSlot is matched (via errors.Is) by every
// *DuplicateExtensionSlotError.
var ErrDuplicateExtensionSlot = errors.New("jfx: duplicate extension data members")

// DuplicateExtensionSlotError reports two or more members competing for the
// extension-data role within the same vocabulary tier. It is a configuration
// error: the type cannot be (de)serialized under the offending Config.
type DuplicateExtensionSlotError struct {
	// TypeName is the display name of the offending type.
	TypeName string
	// Vocabulary is the tier in which the tie was found.
	Vocabulary Vocabulary
	// Members lists the conflicting members in declaration order.
	Members []string
}

func (e *DuplicateExtensionSlotError) Error() string {
	return fmt.Sprintf("jfx: type %s has %d %s extension data members (%s); at most one is allowed",
		e.TypeName, len(e.Members), e.Vocabulary, strings.Join(e.Members, ", "))
}

// Is makes errors.Is(err, ErrDuplicateExtensionSlot) succeed.
func (e *DuplicateExtensionSlotError) Is(target error) bool {
	return target == ErrDuplicateExtensionSlot
}
