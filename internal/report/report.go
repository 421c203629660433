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

// Package report renders resolution outcomes for humans and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"dirpx.dev/jfx/apis"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("report: unknown format")

// Formats lists the supported output formats.
var Formats = []string{"json", "yaml", "toml", "msgpack"}

// Document is the root of every encoded report.
type Document struct {
	Reports []Report `json:"reports" yaml:"reports" toml:"reports" msgpack:"reports"`
}

// Report is the outcome of resolving one type under one mode.
type Report struct {
	Type      string   `json:"type" yaml:"type" toml:"type" msgpack:"type"`
	Compat    bool     `json:"compat" yaml:"compat" toml:"compat" msgpack:"compat"`
	Members   []Member `json:"members,omitempty" yaml:"members,omitempty" toml:"members,omitempty" msgpack:"members,omitempty"`
	Extension string   `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty" msgpack:"extension,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty" msgpack:"error,omitempty"`
}

// Member is one resolved member.
type Member struct {
	Member    string `json:"member" yaml:"member" toml:"member" msgpack:"member"`
	Name      string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Source    string `json:"source" yaml:"source" toml:"source" msgpack:"source"`
	Extension bool   `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty" msgpack:"extension,omitempty"`
}

// FromMetadata summarizes md.
func FromMetadata(md *apis.TypeMetadata) Report {
	r := Report{
		Type:   md.TypeName(),
		Compat: md.Config().UseCompatibilityVocabulary,
	}
	for _, n := range md.Names() {
		r.Members = append(r.Members, Member{
			Member:    n.Member,
			Name:      n.Name,
			Source:    n.Source.String(),
			Extension: md.IsExtension(n.Member),
		})
	}
	if slot, ok := md.ExtensionSlot(); ok {
		r.Extension = slot.Member
	}
	return r
}

// FromError records a failed resolution.
func FromError(typeName string, cfg apis.Config, err error) Report {
	return Report{Type: typeName, Compat: cfg.UseCompatibilityVocabulary, Error: err.Error()}
}

// Encode writes reports to w in the given format.
func Encode(w io.Writer, format string, reports []Report) error {
	doc := Document{Reports: reports}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
