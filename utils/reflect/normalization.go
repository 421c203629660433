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

package reflect

import (
	"errors"
	"reflect"
)

// DefaultMaxUnwrap limits pointer unwrapping in Normalize.
// A value of 8 should be sufficient for all practical purposes.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotStruct indicates that the provided type (after unwrapping
	// pointers) is not a struct and therefore has no members.
	ErrReflectTypeNotStruct = errors.New("reflect: type is not a struct")
)

// Normalize unwraps pointers (at most maxUnwrap levels) and returns the
// underlying struct type, or an error if none is found.
//
// If maxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer && i < maxUnwrap; i++ {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, ErrReflectTypeNotStruct
	}
	return t, nil
}

