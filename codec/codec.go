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

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/jfx/apis"
	uref "dirpx.dev/jfx/utils/reflect"
)

var (
	// ErrNotStruct is returned when Marshal receives something other than a struct.
	ErrNotStruct = errors.New("jfx(codec): value is not a struct")
	// ErrNotStructPointer is returned when Unmarshal receives something other
	// than a non-nil pointer to a struct.
	ErrNotStructPointer = errors.New("jfx(codec): target is not a non-nil struct pointer")
	// ErrTypeMismatch is returned when metadata was built for another type.
	ErrTypeMismatch = errors.New("jfx(codec): metadata describes a different type")
	// ErrExtensionContainer is returned when the extension member is not a
	// map with string keys.
	ErrExtensionContainer = errors.New("jfx(codec): extension member must be a map with string keys")
	// ErrUnsettableField is returned when a member sits behind a nil embedded
	// pointer that cannot be allocated.
	ErrUnsettableField = errors.New("jfx(codec): member behind unsettable embedded pointer")
)

// Marshal encodes v, a struct or pointer to struct, using md.
func Marshal(v any, md *apis.TypeMetadata) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []byte("null"), nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	if err := checkType(rv.Type(), md); err != nil {
		return nil, err
	}

	w := writer{}
	w.buf.WriteByte('{')
	for _, n := range md.Names() {
		if n.Index == nil {
			continue
		}
		fv, err := rv.FieldByIndexErr(n.Index)
		if err != nil {
			// Nil embedded pointer on the path: nothing to write.
			continue
		}
		if !fv.CanInterface() {
			continue
		}
		if md.IsExtension(n.Member) {
			if err := w.splat(fv); err != nil {
				return nil, fmt.Errorf("%w (member %s)", err, n.Member)
			}
			continue
		}
		if isEmpty(fv) && uref.OmitEmpty(rv.Type().FieldByIndex(n.Index), md.Config()) {
			continue
		}
		if err := w.property(n.Name, fv.Interface()); err != nil {
			return nil, fmt.Errorf("jfx(codec): member %s: %w", n.Member, err)
		}
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// Unmarshal decodes data into v, a non-nil pointer to struct, using md.
func Unmarshal(data []byte, v any, md *apis.TypeMetadata) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	rv = rv.Elem()
	if err := checkType(rv.Type(), md); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("jfx(codec): %w", err)
	}
	if raw == nil {
		return nil
	}

	var ext reflect.Value
	if slot, ok := md.ExtensionSlot(); ok && slot.Index != nil {
		var err error
		if ext, err = fieldAlloc(rv, slot.Index); err != nil {
			return fmt.Errorf("%w (member %s)", err, slot.Member)
		}
		if !isContainer(ext.Type()) {
			return fmt.Errorf("%w (member %s)", ErrExtensionContainer, slot.Member)
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if n, ok := md.Lookup(k); ok {
			if n.Index == nil {
				continue
			}
			fv, err := fieldAlloc(rv, n.Index)
			if err != nil {
				return fmt.Errorf("%w (member %s)", err, n.Member)
			}
			if err := json.Unmarshal(raw[k], fv.Addr().Interface()); err != nil {
				return fmt.Errorf("jfx(codec): member %s: %w", n.Member, err)
			}
			continue
		}
		if !ext.IsValid() {
			continue
		}
		if ext.IsNil() {
			ext.Set(reflect.MakeMap(ext.Type()))
		}
		ev := reflect.New(ext.Type().Elem())
		if err := json.Unmarshal(raw[k], ev.Interface()); err != nil {
			return fmt.Errorf("jfx(codec): extension property %q: %w", k, err)
		}
		ext.SetMapIndex(reflect.ValueOf(k).Convert(ext.Type().Key()), ev.Elem())
	}
	return nil
}

func checkType(t reflect.Type, md *apis.TypeMetadata) error {
	if md == nil {
		return ErrTypeMismatch
	}
	if mt := md.Type(); mt != nil && mt != t {
		return fmt.Errorf("%w: have %v, want %v", ErrTypeMismatch, t, mt)
	}
	return nil
}

// isEmpty follows encoding/json's notion of an empty value for omitempty.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	default:
		return false
	}
}

func isContainer(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// fieldAlloc is FieldByIndex that allocates nil embedded pointers on the way.
func fieldAlloc(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsettableField, v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsettableField, v.Type())
	}
	return v, nil
}

// writer accumulates the members of one object.
type writer struct {
	buf   bytes.Buffer
	comma bool
}

func (w *writer) property(name string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	if w.comma {
		w.buf.WriteByte(',')
	}
	w.comma = true
	w.buf.Write(key)
	w.buf.WriteByte(':')
	w.buf.Write(val)
	return nil
}

// splat writes the entries of the extension map as top-level properties,
// sorted by key. A nil map writes nothing.
func (w *writer) splat(m reflect.Value) error {
	if !isContainer(m.Type()) {
		return ErrExtensionContainer
	}
	if m.IsNil() {
		return nil
	}
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		if err := w.property(k.String(), m.MapIndex(k).Interface()); err != nil {
			return fmt.Errorf("jfx(codec): extension property %q: %w", k.String(), err)
		}
	}
	return nil
}
