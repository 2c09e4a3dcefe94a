package contract

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/viant/uicontract/inspector/info"
	"github.com/viant/uicontract/style"
)

// SchemaVersion is the component contract version
const SchemaVersion = "0.3"

// Contract is the structured fact sheet describing one component
type Contract struct {
	SchemaVersion  string           `json:"schemaVersion" yaml:"schemaVersion"`
	Kind           info.Kind        `json:"kind" yaml:"kind"`
	EntryID        string           `json:"entryId" yaml:"entryId"`
	EntryPathRel   string           `json:"entryPathRel" yaml:"entryPathRel"`
	Description    string           `json:"description" yaml:"description"`
	Version        Version          `json:"version" yaml:"version"`
	LogicSignature LogicSignature   `json:"logicSignature" yaml:"logicSignature"`
	Exports        []string         `json:"exports" yaml:"exports"`
	Framework      *FrameworkMarker `json:"framework,omitempty" yaml:"framework,omitempty"`
	Style          *style.Metadata  `json:"style,omitempty" yaml:"style,omitempty"`
	SemanticHash   string           `json:"semanticHash" yaml:"semanticHash"`
	FileHash       string           `json:"fileHash" yaml:"fileHash"`
}

// Version lists the structural facts that change when the component code changes shape
type Version struct {
	Hooks     []string `json:"hooks" yaml:"hooks"`
	Functions []string `json:"functions" yaml:"functions"`
	Imports   []string `json:"imports" yaml:"imports"`
}

// LogicSignature describes the component public surface
type LogicSignature struct {
	Props map[string]string `json:"props" yaml:"props"`
	Emits []string          `json:"emits" yaml:"emits"`
	State map[string]string `json:"state,omitempty" yaml:"state,omitempty"`
}

// FrameworkMarker is attached when both a routing framework and a module directive are detected
type FrameworkMarker struct {
	Name      string `json:"name" yaml:"name"`
	Directive string `json:"directive" yaml:"directive"`
}

// EntryID derives the entry identifier from a unit path by removing its extension
func EntryID(location string) string {
	ext := path.Ext(location)
	return strings.TrimSuffix(location, ext)
}

// EntryIDs maps each path to its entry identifier; paths sharing an extension-less stem keep their full path
func EntryIDs(locations []string) map[string]string {
	stems := make(map[string]int, len(locations))
	for _, location := range locations {
		stems[EntryID(location)]++
	}
	ret := make(map[string]string, len(locations))
	for _, location := range locations {
		id := EntryID(location)
		if stems[id] > 1 {
			id = location
		}
		ret[location] = id
	}
	return ret
}

// WithEntryID returns a copy of the contract carrying id, with the semantic hash recomputed
func (c *Contract) WithEntryID(id string) *Contract {
	if c.EntryID == id {
		return c
	}
	ret := *c
	ret.EntryID = id
	ret.SemanticHash = SemanticHash(&ret)
	return &ret
}

// New assembles a contract from extracted facts; metadata is nil when the unit carried no class tokens
func New(component *info.Component, metadata *style.Metadata, location string) *Contract {
	ret := &Contract{
		SchemaVersion: SchemaVersion,
		Kind:          component.Kind,
		EntryID:       EntryID(location),
		EntryPathRel:  location,
		Description:   component.Description,
		Version: Version{
			Hooks:     component.ContractHooks(),
			Functions: nonNil(component.Functions),
			Imports:   nonNil(component.Imports),
		},
		LogicSignature: LogicSignature{
			Props: component.Props,
			Emits: nonNil(component.Emits),
		},
		Exports: nonNil(component.Exports),
		Style:   metadata,
	}
	if ret.LogicSignature.Props == nil {
		ret.LogicSignature.Props = map[string]string{}
	}
	if component.HasState {
		ret.LogicSignature.State = component.State
	}
	if component.Directive != "" && component.Framework != "" && component.Framework != "react" {
		ret.Framework = &FrameworkMarker{Name: component.Framework, Directive: component.Directive}
	}
	ret.SemanticHash = SemanticHash(ret)
	return ret
}

// SemanticHash digests the canonical JSON of the contract semantic fields; hashes are excluded
func SemanticHash(c *Contract) string {
	semantic := *c
	semantic.SemanticHash = ""
	semantic.FileHash = ""
	data, err := json.Marshal(semantic)
	if err != nil {
		return ""
	}
	return Digest(data)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
