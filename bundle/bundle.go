package bundle

import (
	"github.com/viant/uicontract/contract"
)

// Schema identifiers and document versions
const (
	SchemaURL        = "https://schemas.uicontract.dev/bundle/v0.1.json"
	ProjectSchemaURL = "https://schemas.uicontract.dev/project-bundle/v0.1.json"
	SchemaVersion    = "0.1"
)

// Document types
const (
	TypeEntry   = "entry-bundle"
	TypeFolder  = "folder-bundle"
	TypeProject = "project-bundle"
)

// Depth is the graph depth of every bundle; no edges are resolved between entries
const Depth = 1

// CodeHeaderLines is the number of leading unit lines carried by a graph node
const CodeHeaderLines = 12

// Bundle is a schema-versioned document wrapping one or more contracts.
// Single-entry bundles set EntryID, folder bundles set FolderPath.
type Bundle struct {
	Schema        string `json:"$schema" yaml:"$schema"`
	SchemaVersion string `json:"schemaVersion" yaml:"schemaVersion"`
	Type          string `json:"type" yaml:"type"`
	EntryID       string `json:"entryId,omitempty" yaml:"entryId,omitempty"`
	FolderPath    string `json:"folderPath,omitempty" yaml:"folderPath,omitempty"`
	Depth         int    `json:"depth" yaml:"depth"`
	CreatedAt     string `json:"createdAt" yaml:"createdAt"`
	BundleHash    string `json:"bundleHash" yaml:"bundleHash"`
	Graph         Graph  `json:"graph" yaml:"graph"`
	Meta          Meta   `json:"meta" yaml:"meta"`
}

// Graph holds bundle nodes; edges are always empty
type Graph struct {
	Nodes []*Node `json:"nodes" yaml:"nodes"`
	Edges []Edge  `json:"edges" yaml:"edges"`
}

// Node wraps one component contract
type Node struct {
	EntryID    string             `json:"entryId" yaml:"entryId"`
	Position   string             `json:"position" yaml:"position"`
	Contract   *contract.Contract `json:"contract" yaml:"contract"`
	CodeHeader string             `json:"codeHeader" yaml:"codeHeader"`
}

// Edge is a dependency between two entries
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Meta describes how a document was produced
type Meta struct {
	Generator   string `json:"generator" yaml:"generator"`
	Extractor   string `json:"extractor" yaml:"extractor"`
	UnitCount   int    `json:"unitCount" yaml:"unitCount"`
	ProjectName string `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	ProjectType string `json:"projectType,omitempty" yaml:"projectType,omitempty"`
}

// ProjectBundle is the top-level index summarising all folder bundles of a run
type ProjectBundle struct {
	Schema        string   `json:"$schema" yaml:"$schema"`
	SchemaVersion string   `json:"schemaVersion" yaml:"schemaVersion"`
	Type          string   `json:"type" yaml:"type"`
	ProjectPath   string   `json:"projectPath" yaml:"projectPath"`
	CreatedAt     string   `json:"createdAt" yaml:"createdAt"`
	BundleHash    string   `json:"bundleHash" yaml:"bundleHash"`
	Folders       []string `json:"folders" yaml:"folders"`
	Summary       Summary  `json:"summary" yaml:"summary"`
	Meta          Meta     `json:"meta" yaml:"meta"`
}

// Summary counts and lists every unit of a run
type Summary struct {
	TotalFiles   int                 `json:"totalFiles" yaml:"totalFiles"`
	TotalFolders int                 `json:"totalFolders" yaml:"totalFolders"`
	Components   []*ComponentSummary `json:"components" yaml:"components"`
}

// ComponentSummary is a project level entry; Path is relative to Folder
type ComponentSummary struct {
	EntryID string `json:"entryId" yaml:"entryId"`
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Type    string `json:"type" yaml:"type"`
	Folder  string `json:"folder" yaml:"folder"`
}

// MultiBundle is the multi-entry result: one folder bundle per folder key plus the project bundle
type MultiBundle struct {
	Folders map[string][]*Bundle `json:"folders" yaml:"folders"`
	Project *ProjectBundle       `json:"project" yaml:"project"`
}

// Result holds either a single-entry bundle or a multi-entry bundle
type Result struct {
	Single *Bundle
	Multi  *MultiBundle
}
