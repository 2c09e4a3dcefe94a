package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/uicontract/source"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		expect      Format
		expectErr   bool
	}{
		{description: "default", name: "", expect: FormatJSON},
		{description: "json", name: "JSON", expect: FormatJSON},
		{description: "yml alias", name: "yml", expect: FormatYAML},
		{description: "unknown", name: "xml", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseFormat(testCase.name)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestEncode(t *testing.T) {
	assembler := newAssembler(t)
	single, err := assembler.Single(context.Background(), source.NewUnit("Plain.tsx", "export const Plain = () => null"))
	require.NoError(t, err)

	data, err := Encode(single, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"$schema\": "))
	assert.NotContains(t, string(data), "\"style\"")

	data, err = Encode(single, FormatYAML)
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, SchemaURL, decoded["$schema"])
	assert.Equal(t, SchemaVersion, decoded["schemaVersion"])
	assert.Equal(t, "Plain", decoded["entryId"])
}

func TestWriter_Stream(t *testing.T) {
	assembler := newAssembler(t)
	result, err := assembler.Assemble(context.Background(), []*source.Unit{
		source.NewUnit("src/a/X.tsx", "export const X = () => null"),
		source.NewUnit("src/b/Y.tsx", "export const Y = () => null"),
	})
	require.NoError(t, err)

	buffer := new(bytes.Buffer)
	written, err := NewWriter(nil, FormatJSON, buffer).Write(context.Background(), "", result)
	require.NoError(t, err)
	assert.Empty(t, written)

	decoded := struct {
		Folders map[string][]json.RawMessage `json:"folders"`
		Project map[string]interface{}       `json:"project"`
	}{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	assert.Len(t, decoded.Folders, 2)
	assert.Equal(t, ProjectSchemaURL, decoded.Project["$schema"])
}

func TestWriter_Destination(t *testing.T) {
	assembler := newAssembler(t)
	ctx := context.Background()
	result, err := assembler.Assemble(ctx, []*source.Unit{
		source.NewUnit("Root.tsx", "export const Root = () => null"),
		source.NewUnit("src/a/X.tsx", "export const X = () => null"),
	})
	require.NoError(t, err)

	dir := t.TempDir()
	written, err := NewWriter(afs.New(), FormatJSON, nil).Write(ctx, dir, result)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.ToSlash(filepath.Join(dir, "folder.bundle.json")),
		filepath.ToSlash(filepath.Join(dir, "src/a/folder.bundle.json")),
		filepath.ToSlash(filepath.Join(dir, "project.bundle.json")),
	}, written)
	for _, location := range written {
		_, err := os.Stat(location)
		assert.NoError(t, err, location)
	}
}

func TestFolderFile(t *testing.T) {
	assert.Equal(t, "folder.bundle.json", FolderFile(source.RootFolder, FormatJSON))
	assert.Equal(t, "src/ui/folder.bundle.yaml", FolderFile("src/ui", FormatYAML))
	assert.Equal(t, "_abs/folder.bundle.json", FolderFile("/", FormatJSON))
}

func TestWriter_ConfinedToDestination(t *testing.T) {
	var testCases = []struct {
		description string
		units       []*source.Unit
		expect      []string
	}{
		{
			description: "parent segment in single entry",
			units:       []*source.Unit{source.NewUnit("../lib/Foo.tsx", "export const Foo = () => null")},
			expect:      []string{"__/lib/Foo.bundle.json"},
		},
		{
			description: "root and slash folders",
			units: []*source.Unit{
				source.NewUnit("Foo.tsx", "export const Foo = () => null"),
				source.NewUnit("/Bar.tsx", "export const Bar = () => null"),
			},
			expect: []string{"_abs/folder.bundle.json", "folder.bundle.json", "project.bundle.json"},
		},
		{
			description: "parent folders",
			units: []*source.Unit{
				source.NewUnit("../lib/Foo.tsx", "export const Foo = () => null"),
				source.NewUnit("src/Bar.tsx", "export const Bar = () => null"),
			},
			expect: []string{"__/lib/folder.bundle.json", "src/folder.bundle.json", "project.bundle.json"},
		},
	}
	ctx := context.Background()
	assembler := newAssembler(t)
	for _, testCase := range testCases {
		base := t.TempDir()
		destination := filepath.Join(base, "out")
		result, err := assembler.Assemble(ctx, testCase.units)
		require.NoError(t, err, testCase.description)
		written, err := NewWriter(afs.New(), FormatJSON, nil).Write(ctx, destination, result)
		require.NoError(t, err, testCase.description)

		var expect []string
		for _, rel := range testCase.expect {
			expect = append(expect, filepath.ToSlash(filepath.Join(destination, rel)))
		}
		assert.Equal(t, expect, written, testCase.description)
		for _, location := range written {
			_, err := os.Stat(location)
			assert.NoError(t, err, location)
		}
		entries, err := os.ReadDir(base)
		require.NoError(t, err, testCase.description)
		require.Len(t, entries, 1, testCase.description)
		assert.Equal(t, "out", entries[0].Name(), testCase.description)
	}
}

func TestOutputPath(t *testing.T) {
	var testCases = []struct {
		description string
		location    string
		expect      string
	}{
		{description: "relative", location: "src/ui/Hero", expect: "src/ui/Hero"},
		{description: "parent", location: "../../lib/Foo", expect: "__/__/lib/Foo"},
		{description: "absolute", location: "/tmp/app/Foo", expect: "_abs/tmp/app/Foo"},
		{description: "slash folder", location: "/", expect: "_abs"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, OutputPath(testCase.location), testCase.description)
	}
}
