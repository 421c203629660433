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

import "fmt"

// FailurePolicy controls how a Cache treats builds that fail.
//
// # Values
//
//   - ReplayFailures     — the first failure is stored and returned to every
//     later caller for the same key without rebuilding.
//   - RevalidateFailures — failures are not stored; every later call rebuilds.
//
// Either way concurrent callers for the same key are coalesced onto a single
// build, and successful results are always stored.
type FailurePolicy int

const (
	// ReplayFailures stores build errors alongside successful metadata.
	ReplayFailures FailurePolicy = iota
	// RevalidateFailures rebuilds on every call until a build succeeds.
	RevalidateFailures
)

// String returns a human-readable representation of the FailurePolicy value.
//
// For unknown or out-of-range values String returns "Unknown(<n>)" so that
// corrupted values can still be surfaced in logs.
func (p FailurePolicy) String() string {
	switch p {
	case ReplayFailures:
		return "replay"
	case RevalidateFailures:
		return "revalidate"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}
