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

package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/builder"
	"dirpx.dev/jfx/config"
	"dirpx.dev/jfx/internal/report"
)

func sample(t *testing.T) []report.Report {
	t.Helper()
	cfg := config.NewConfig(config.WithCompatibilityVocabulary(true))
	md, err := builder.New().Assemble("Sample", []apis.MemberAttributeSet{
		{Member: "MyInt", Tags: []apis.AttributeTag{{Vocabulary: apis.Compatibility, Kind: apis.Naming, Value: "FirstInt"}}},
		{Member: "Bag", Tags: []apis.AttributeTag{{Vocabulary: apis.Compatibility, Kind: apis.ExtensionData}}},
	}, cfg)
	require.NoError(t, err)
	return []report.Report{
		report.FromMetadata(md),
		report.FromError("Broken", cfg, errors.New("boom")),
	}
}

func TestFromMetadata(t *testing.T) {
	r := sample(t)[0]
	assert.Equal(t, "Sample", r.Type)
	assert.True(t, r.Compat)
	assert.Equal(t, "Bag", r.Extension)
	assert.Equal(t, []report.Member{
		{Member: "MyInt", Name: "FirstInt", Source: "compatibility"},
		{Member: "Bag", Name: "Bag", Source: "default", Extension: true},
	}, r.Members)
}

func TestEncode_TextFormats(t *testing.T) {
	cases := map[string][]string{
		"json": {`"type": "Sample"`, `"extension": "Bag"`, `"error": "boom"`},
		"yaml": {"type: Sample", "extension: Bag", "error: boom"},
		"toml": {"[[reports]]", `extension = "Bag"`, `error = "boom"`},
	}
	for format, markers := range cases {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, report.Encode(&buf, format, sample(t)))
			for _, m := range markers {
				assert.Contains(t, buf.String(), m)
			}
		})
	}
}

func TestEncode_Msgpack(t *testing.T) {
	want := report.Document{Reports: sample(t)}

	var buf bytes.Buffer
	require.NoError(t, report.Encode(&buf, "msgpack", want.Reports))

	var got report.Document
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := report.Encode(&bytes.Buffer{}, "xml", nil)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
