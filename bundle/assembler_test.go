package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/uicontract/contract"
	"github.com/viant/uicontract/inspector/repository"
	"github.com/viant/uicontract/source"
)

var fixedClock = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func newAssembler(t *testing.T, options ...Option) *Assembler {
	t.Helper()
	assembler, err := NewAssembler(append([]Option{WithClock(fixedClock)}, options...)...)
	require.NoError(t, err)
	return assembler
}

func TestAssembler_Single(t *testing.T) {
	assembler := newAssembler(t)
	unit := source.NewUnit("src/Hero.tsx", "export const Hero = () => <h1 className=\"text-xl font-bold\">Hi</h1>\n")
	actual, err := assembler.Single(context.Background(), unit)
	require.NoError(t, err)
	assert.Equal(t, SchemaURL, actual.Schema)
	assert.Equal(t, SchemaVersion, actual.SchemaVersion)
	assert.Equal(t, TypeEntry, actual.Type)
	assert.Equal(t, "src/Hero", actual.EntryID)
	assert.Equal(t, Depth, actual.Depth)
	assert.Equal(t, "2024-05-01T12:00:00Z", actual.CreatedAt)
	assert.Len(t, actual.BundleHash, 16)
	require.Len(t, actual.Graph.Nodes, 1)
	assert.Equal(t, "1/1", actual.Graph.Nodes[0].Position)
	assert.Equal(t, "src/Hero", actual.Graph.Nodes[0].EntryID)
	assert.NotNil(t, actual.Graph.Nodes[0].Contract.Style)
	assert.Empty(t, actual.Graph.Edges)
	assert.NotNil(t, actual.Graph.Edges)
	assert.Equal(t, Meta{Generator: Generator, Extractor: "heuristic", UnitCount: 1}, actual.Meta)

	_, err = assembler.Single(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestAssembler_Multi(t *testing.T) {
	assembler := newAssembler(t)
	units := []*source.Unit{
		source.NewUnit("src/b/Z.tsx", "export const Z = () => null"),
		source.NewUnit("src/a/X.tsx", "export const X = () => <div className=\"p-2\" />"),
		source.NewUnit("src/a/Y.tsx", "export function Y() { return null }"),
	}
	actual, err := assembler.Multi(context.Background(), units)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/a", "src/b"}, actual.Project.Folders)
	require.Len(t, actual.Folders, 2)
	require.Len(t, actual.Folders["src/a"], 1)
	require.Len(t, actual.Folders["src/b"], 1)
	assert.Len(t, actual.Folders["src/a"][0].Graph.Nodes, 2)
	assert.Len(t, actual.Folders["src/b"][0].Graph.Nodes, 1)
	assert.Equal(t, "src/a", actual.Folders["src/a"][0].FolderPath)
	assert.Equal(t, TypeFolder, actual.Folders["src/a"][0].Type)
	assert.Equal(t, "1/2", actual.Folders["src/a"][0].Graph.Nodes[0].Position)
	assert.Equal(t, "2/2", actual.Folders["src/a"][0].Graph.Nodes[1].Position)

	project := actual.Project
	assert.Equal(t, ProjectSchemaURL, project.Schema)
	assert.Equal(t, TypeProject, project.Type)
	assert.Equal(t, source.RootFolder, project.ProjectPath)
	assert.Equal(t, 3, project.Summary.TotalFiles)
	assert.Equal(t, 2, project.Summary.TotalFolders)
	assert.Equal(t, []*ComponentSummary{
		{EntryID: "src/a/X", Name: "X", Path: "X.tsx", Type: "component", Folder: "src/a"},
		{EntryID: "src/a/Y", Name: "Y", Path: "Y.tsx", Type: "component", Folder: "src/a"},
		{EntryID: "src/b/Z", Name: "Z", Path: "Z.tsx", Type: "component", Folder: "src/b"},
	}, project.Summary.Components)
}

func TestAssembler_Multi_FolderCoverage(t *testing.T) {
	var testCases = []struct {
		description string
		paths       []string
		folders     []string
	}{
		{
			description: "root sentinel folder",
			paths:       []string{"Thing.tsx", "ui/Button.tsx", "Other.jsx"},
			folders:     []string{source.RootFolder, "ui"},
		},
		{
			description: "single unit in folder mode",
			paths:       []string{"src/a/X.tsx"},
			folders:     []string{"src/a"},
		},
		{
			description: "duplicates dropped",
			paths:       []string{"a/One.tsx", "./a/One.tsx", "b/c/Two.tsx", "b/Three.tsx"},
			folders:     []string{"a", "b", "b/c"},
		},
	}
	assembler := newAssembler(t)
	for _, testCase := range testCases {
		var units []*source.Unit
		for _, location := range testCase.paths {
			units = append(units, source.NewUnit(location, "export const C = () => null"))
		}
		expectUnits, _ := source.Dedupe(units)
		actual, err := assembler.Multi(context.Background(), units)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.folders, actual.Project.Folders, testCase.description)

		nodeCount := 0
		seen := map[string]int{}
		for _, folder := range actual.Project.Folders {
			for _, folderBundle := range actual.Folders[folder] {
				nodeCount += len(folderBundle.Graph.Nodes)
				for _, node := range folderBundle.Graph.Nodes {
					seen[node.Contract.EntryPathRel]++
				}
			}
		}
		assert.Equal(t, len(expectUnits), nodeCount, testCase.description)
		assert.Equal(t, len(expectUnits), actual.Project.Summary.TotalFiles, testCase.description)
		assert.Len(t, actual.Project.Summary.Components, len(expectUnits), testCase.description)
		for _, unit := range expectUnits {
			assert.Equal(t, 1, seen[unit.Path], testCase.description+" "+unit.Path)
		}
	}
}

func TestAssembler_EmptyInput(t *testing.T) {
	assembler := newAssembler(t)
	_, err := assembler.Multi(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
	_, err = assembler.Assemble(context.Background(), []*source.Unit{})
	assert.True(t, errors.Is(err, ErrEmptyInput))
	assert.EqualError(t, err, "no source units supplied")
}

func TestAssembler_Assemble(t *testing.T) {
	assembler := newAssembler(t)
	single, err := assembler.Assemble(context.Background(), []*source.Unit{
		source.NewUnit("src/A.tsx", "export const A = () => null"),
		source.NewUnit("src/A.tsx", "export const A = () => null"),
	})
	require.NoError(t, err)
	assert.NotNil(t, single.Single)
	assert.Nil(t, single.Multi)

	multi, err := assembler.Assemble(context.Background(), []*source.Unit{
		source.NewUnit("src/A.tsx", "export const A = () => null"),
		source.NewUnit("src/B.tsx", "export const B = () => null"),
	})
	require.NoError(t, err)
	assert.Nil(t, multi.Single)
	assert.NotNil(t, multi.Multi)
}

func TestAssembler_Deterministic(t *testing.T) {
	units := func() []*source.Unit {
		return []*source.Unit{
			source.NewUnit("src/a/X.tsx", "export const X = () => <div className=\"grid md:grid-cols-2 gap-4\" />"),
			source.NewUnit("src/b/Y.tsx", "import { motion } from \"framer-motion\"\nexport const Y = () => <motion.div className=\"animate-bounce\" />"),
		}
	}
	project := &repository.Project{Name: "acme-ui", Type: repository.TypeJavaScript}
	first, err := newAssembler(t, WithProject(project)).Assemble(context.Background(), units())
	require.NoError(t, err)
	second, err := newAssembler(t, WithProject(project)).Assemble(context.Background(), units())
	require.NoError(t, err)

	a, err := json.Marshal(first.Multi)
	require.NoError(t, err)
	b, err := json.Marshal(second.Multi)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, "acme-ui", first.Multi.Project.Meta.ProjectName)
	assert.Equal(t, first.Multi.Project.BundleHash, second.Multi.Project.BundleHash)
}

func TestCodeHeader(t *testing.T) {
	content := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\n14"
	assert.Equal(t, "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12", CodeHeader(content))
	assert.Equal(t, "a\nb", CodeHeader("a\r\nb"))
	assert.Equal(t, "", CodeHeader(""))
}

func TestAssembler_Multi_UniqueEntryIDs(t *testing.T) {
	assembler := newAssembler(t)
	actual, err := assembler.Multi(context.Background(), []*source.Unit{
		source.NewUnit("src/Button.tsx", "export const Button = () => <button className=\"px-4\" />"),
		source.NewUnit("src/Button.ts", "export const buttonSizes = ['sm', 'lg']"),
		source.NewUnit("src/Card.tsx", "export const Card = () => null"),
	})
	require.NoError(t, err)

	var nodeIDs []string
	for _, folder := range actual.Project.Folders {
		for _, folderBundle := range actual.Folders[folder] {
			for _, node := range folderBundle.Graph.Nodes {
				nodeIDs = append(nodeIDs, node.EntryID)
				assert.Equal(t, node.EntryID, node.Contract.EntryID)
			}
		}
	}
	assert.Equal(t, []string{"src/Button.ts", "src/Button.tsx", "src/Card"}, nodeIDs)

	summaryIDs := map[string]int{}
	for _, component := range actual.Project.Summary.Components {
		summaryIDs[component.EntryID]++
	}
	assert.Len(t, summaryIDs, 3)
	for id, count := range summaryIDs {
		assert.Equal(t, 1, count, id)
	}
}

func TestAssembler_ReusedBuilderCache(t *testing.T) {
	builder, err := contract.NewBuilder(contract.WithCacheSize(8))
	require.NoError(t, err)
	assembler := newAssembler(t, WithBuilder(builder, "heuristic"))
	units := []*source.Unit{
		source.NewUnit("src/a/X.tsx", "export const X = () => <div className=\"p-2\" />"),
		source.NewUnit("src/b/Y.tsx", "export const Y = () => null"),
	}
	first, err := assembler.Assemble(context.Background(), units)
	require.NoError(t, err)
	second, err := assembler.Assemble(context.Background(), units)
	require.NoError(t, err)

	for _, folder := range first.Multi.Project.Folders {
		firstNode := first.Multi.Folders[folder][0].Graph.Nodes[0]
		secondNode := second.Multi.Folders[folder][0].Graph.Nodes[0]
		assert.Same(t, firstNode.Contract, secondNode.Contract, folder)
	}
}
