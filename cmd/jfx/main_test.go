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

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"dirpx.dev/jfx/internal/report"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func decodeJSON(t *testing.T, s string) report.Document {
	t.Helper()
	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func byType(doc report.Document) map[string]report.Report {
	m := make(map[string]report.Report, len(doc.Reports))
	for _, r := range doc.Reports {
		m[r.Type] = r
	}
	return m
}

func TestResolve_NativeOnly(t *testing.T) {
	out, _, err := run(t, "resolve", "testdata/types.yaml")
	require.NoError(t, err)

	reports := byType(decodeJSON(t, out))
	require.Len(t, reports, 2)

	c := reports["Conflicts"]
	assert.False(t, c.Compat)
	assert.Equal(t, "ExtensionData", c.Extension)
	require.Len(t, c.Members, 2)
	assert.Equal(t, report.Member{Member: "MyInt", Name: "NotFirstInt", Source: "native"}, c.Members[0])
	assert.True(t, c.Members[1].Extension)

	co := reports["CompatOnly"]
	assert.Empty(t, co.Extension, "compatibility extension tags are inert")
	require.Len(t, co.Members, 2)
	assert.Equal(t, "ID", co.Members[0].Name)
	assert.Equal(t, "default", co.Members[0].Source)
}

func TestResolve_CompatFlag(t *testing.T) {
	out, _, err := run(t, "resolve", "--compat", "testdata/types.yaml")
	require.NoError(t, err)

	reports := byType(decodeJSON(t, out))

	c := reports["Conflicts"]
	assert.True(t, c.Compat)
	assert.Equal(t, "ExtensionData", c.Extension)
	assert.Equal(t, "NotFirstInt", c.Members[0].Name)

	co := reports["CompatOnly"]
	assert.Equal(t, "Rest", co.Extension)
	assert.Equal(t, report.Member{Member: "ID", Name: "id", Source: "compatibility"}, co.Members[0])
}

func TestResolve_DuplicateNativeExtension(t *testing.T) {
	out, _, err := run(t, "resolve", "--compat", "testdata/duplicate.toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errConflicts))

	doc := decodeJSON(t, out)
	require.Len(t, doc.Reports, 1)
	r := doc.Reports[0]
	assert.Equal(t, "WithDuplicateExtensionData", r.Type)
	assert.Contains(t, r.Error, "ExtensionData, ExtensionData2")
	assert.Empty(t, r.Members)
}

func TestResolve_CompatDuplicateDependsOnMode(t *testing.T) {
	_, _, err := run(t, "resolve", "testdata/compat_duplicate.json")
	require.NoError(t, err)

	out, _, err := run(t, "resolve", "--compat", "testdata/compat_duplicate.json")
	require.ErrorIs(t, err, errConflicts)
	assert.Contains(t, decodeJSON(t, out).Reports[0].Error, "First, Second")
}

func TestResolve_ConfigFile(t *testing.T) {
	out, _, err := run(t, "resolve", "--config", "testdata/jfx.yaml", "testdata/types.yaml")
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	reports := byType(doc)
	assert.True(t, reports["CompatOnly"].Compat)
	assert.Equal(t, "Rest", reports["CompatOnly"].Extension)
}

func TestResolve_FlagOverridesConfigFile(t *testing.T) {
	out, _, err := run(t, "resolve", "--config", "testdata/jfx.yaml", "-f", "json", "testdata/types.yaml")
	require.NoError(t, err)
	assert.True(t, byType(decodeJSON(t, out))["CompatOnly"].Compat)
}

func TestResolve_Msgpack(t *testing.T) {
	out, _, err := run(t, "resolve", "-f", "msgpack", "testdata/types.yaml")
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, msgpack.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Reports, 2)
}

func TestResolve_Dump(t *testing.T) {
	_, stderr, err := run(t, "resolve", "--dump", "testdata/types.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "MemberAttributeSet")
	assert.Contains(t, stderr, "NotFirstInt")
}

func TestResolve_Errors(t *testing.T) {
	_, _, err := run(t, "resolve", "testdata/missing.yaml")
	assert.Error(t, err)

	_, _, err = run(t, "resolve", "-f", "xml", "testdata/types.yaml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)

	_, _, err = run(t, "resolve")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check", "testdata/types.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "ok       Conflicts (compat=false) extension=ExtensionData")
	assert.Contains(t, out, "ok       CompatOnly (compat=true) extension=Rest")
	assert.Contains(t, out, "4 checks, 0 conflicts")
}

func TestCheck_Conflicts(t *testing.T) {
	out, _, err := run(t, "check", "testdata/types.yaml", "testdata/compat_duplicate.json")
	require.ErrorIs(t, err, errConflicts)
	assert.Contains(t, out, "ok       WithDuplicateCompatExtensionData (compat=false)")
	assert.Contains(t, out, "CONFLICT WithDuplicateCompatExtensionData (compat=true)")
	assert.Contains(t, out, "6 checks, 1 conflicts")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jfx dev")
}
