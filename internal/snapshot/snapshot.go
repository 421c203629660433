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

// Package snapshot reads type descriptions (members and their tags) from
// yaml, toml or json files, for types that are not compiled into the tool.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"dirpx.dev/jfx/apis"
)

// ErrUnknownFormat is returned for unsupported file formats.
var ErrUnknownFormat = errors.New("snapshot: unknown format")

// File is the root of a snapshot document.
type File struct {
	Types []Type `json:"types" yaml:"types" toml:"types"`
}

// Type describes one type.
type Type struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Members []Member `json:"members" yaml:"members" toml:"members"`
}

// Member describes one member and its tags in declaration order.
type Member struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Tags []Tag  `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
}

// Tag is the textual form of apis.AttributeTag.
type Tag struct {
	Vocabulary string `json:"vocabulary" yaml:"vocabulary" toml:"vocabulary"`
	Kind       string `json:"kind" yaml:"kind" toml:"kind"`
	Value      string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Load reads path, picking the format from its extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data), FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// FormatOf maps a file extension to a format name.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return ""
	}
}

// Decode reads a snapshot in the given format ("yaml", "toml" or "json").
func Decode(r io.Reader, format string) (*File, error) {
	var f File
	switch format {
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	return &f, nil
}

// Sets converts the type's members into attribute sets.
func (t Type) Sets() ([]apis.MemberAttributeSet, error) {
	out := make([]apis.MemberAttributeSet, 0, len(t.Members))
	for _, m := range t.Members {
		set := apis.MemberAttributeSet{Member: m.Name}
		for _, tag := range m.Tags {
			v, err := apis.ParseVocabulary(tag.Vocabulary)
			if err != nil {
				return nil, fmt.Errorf("type %s member %s: %w", t.Name, m.Name, err)
			}
			k, err := apis.ParseTagKind(tag.Kind)
			if err != nil {
				return nil, fmt.Errorf("type %s member %s: %w", t.Name, m.Name, err)
			}
			set.Tags = append(set.Tags, apis.AttributeTag{Vocabulary: v, Kind: k, Value: tag.Value})
		}
		out = append(out, set)
	}
	return out, nil
}
