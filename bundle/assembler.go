package bundle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/uicontract/contract"
	"github.com/viant/uicontract/inspector/heuristic"
	"github.com/viant/uicontract/inspector/repository"
	"github.com/viant/uicontract/source"
)

// Generator names the producer recorded in document meta
const Generator = "uicontract"

// ErrEmptyInput is returned when no source units are supplied
var ErrEmptyInput = errors.New("no source units supplied")

// Assembler builds bundle documents from source units
type Assembler struct {
	builder     *contract.Builder
	extractor   string
	clock       func() time.Time
	projectPath string
	project     *repository.Project
}

// Option configures an Assembler
type Option func(*Assembler)

// WithBuilder sets the contract builder
func WithBuilder(builder *contract.Builder, extractorName string) Option {
	return func(a *Assembler) {
		a.builder = builder
		a.extractor = extractorName
	}
}

// WithClock sets the clock used for createdAt
func WithClock(clock func() time.Time) Option {
	return func(a *Assembler) {
		a.clock = clock
	}
}

// WithProjectPath sets the project path reported by the project bundle
func WithProjectPath(projectPath string) Option {
	return func(a *Assembler) {
		a.projectPath = projectPath
	}
}

// WithProject sets detected project information recorded in document meta
func WithProject(project *repository.Project) Option {
	return func(a *Assembler) {
		a.project = project
	}
}

// NewAssembler creates an assembler
func NewAssembler(options ...Option) (*Assembler, error) {
	ret := &Assembler{clock: time.Now, projectPath: source.RootFolder}
	for _, opt := range options {
		opt(ret)
	}
	if ret.builder == nil {
		builder, err := contract.NewBuilder()
		if err != nil {
			return nil, err
		}
		ret.builder = builder
		ret.extractor = heuristic.Name
	}
	return ret, nil
}

// Assemble produces a single-entry bundle for exactly one unit and a multi-entry bundle otherwise
func (a *Assembler) Assemble(ctx context.Context, units []*source.Unit) (*Result, error) {
	units, _ = source.Dedupe(units)
	switch len(units) {
	case 0:
		return nil, ErrEmptyInput
	case 1:
		single, err := a.Single(ctx, units[0])
		if err != nil {
			return nil, err
		}
		return &Result{Single: single}, nil
	}
	multi, err := a.Multi(ctx, units)
	if err != nil {
		return nil, err
	}
	return &Result{Multi: multi}, nil
}

// Single builds a bundle wrapping one contract
func (a *Assembler) Single(ctx context.Context, unit *source.Unit) (*Bundle, error) {
	if unit == nil {
		return nil, ErrEmptyInput
	}
	node, err := a.node(ctx, unit, 1, 1)
	if err != nil {
		return nil, err
	}
	ret := a.newBundle(TypeEntry, []*Node{node})
	ret.EntryID = node.EntryID
	return ret, nil
}

// Multi partitions units by folder and builds one folder bundle per folder plus a project bundle.
// Units are sorted by path and repeated paths are dropped before partitioning.
func (a *Assembler) Multi(ctx context.Context, units []*source.Unit) (*MultiBundle, error) {
	units, _ = source.Dedupe(units)
	if len(units) == 0 {
		return nil, ErrEmptyInput
	}
	sorted := make([]*source.Unit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	locations := make([]string, 0, len(sorted))
	for _, unit := range sorted {
		locations = append(locations, unit.Path)
	}
	entryIDs := contract.EntryIDs(locations)
	folders, partition := Partition(sorted)
	ret := &MultiBundle{Folders: make(map[string][]*Bundle, len(folders))}
	project := &ProjectBundle{
		Schema:        ProjectSchemaURL,
		SchemaVersion: SchemaVersion,
		Type:          TypeProject,
		ProjectPath:   a.projectPath,
		CreatedAt:     a.createdAt(),
		Folders:       folders,
		Summary: Summary{
			TotalFiles:   len(sorted),
			TotalFolders: len(folders),
			Components:   make([]*ComponentSummary, 0, len(sorted)),
		},
		Meta: a.meta(len(sorted)),
	}
	var folderHashes []string
	for _, folder := range folders {
		folderUnits := partition[folder]
		nodes := make([]*Node, 0, len(folderUnits))
		for i, unit := range folderUnits {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			node, err := a.node(ctx, unit, i+1, len(folderUnits))
			if err != nil {
				return nil, err
			}
			if id := entryIDs[unit.Path]; id != node.EntryID {
				node.Contract = node.Contract.WithEntryID(id)
				node.EntryID = id
			}
			nodes = append(nodes, node)
			name, _ := heuristic.ComponentName(unit.Content, unit.Path)
			project.Summary.Components = append(project.Summary.Components, &ComponentSummary{
				EntryID: node.EntryID,
				Name:    name,
				Path:    relativeTo(folder, unit.Path),
				Type:    string(node.Contract.Kind),
				Folder:  folder,
			})
		}
		folderBundle := a.newBundle(TypeFolder, nodes)
		folderBundle.FolderPath = folder
		ret.Folders[folder] = []*Bundle{folderBundle}
		folderHashes = append(folderHashes, folder+":"+folderBundle.BundleHash)
		logrus.WithFields(logrus.Fields{"folder": folder, "nodes": len(nodes)}).Debug("assembled folder bundle")
	}
	project.BundleHash = contract.Digest([]byte(strings.Join(folderHashes, "\n")))
	ret.Project = project
	return ret, nil
}

// Partition groups units by folder key, returning keys in first-seen order
func Partition(units []*source.Unit) ([]string, map[string][]*source.Unit) {
	var keys []string
	ret := map[string][]*source.Unit{}
	for _, unit := range units {
		folder := unit.Folder()
		if _, ok := ret[folder]; !ok {
			keys = append(keys, folder)
		}
		ret[folder] = append(ret[folder], unit)
	}
	return keys, ret
}

func (a *Assembler) node(ctx context.Context, unit *source.Unit, position, total int) (*Node, error) {
	built, err := a.builder.Build(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("failed to build contract for %s: %w", unit.Path, err)
	}
	return &Node{
		EntryID:    built.EntryID,
		Position:   fmt.Sprintf("%d/%d", position, total),
		Contract:   built,
		CodeHeader: CodeHeader(unit.Content),
	}, nil
}

func (a *Assembler) newBundle(bundleType string, nodes []*Node) *Bundle {
	hashes := make([]string, 0, len(nodes))
	for _, node := range nodes {
		hashes = append(hashes, node.EntryID+":"+node.Contract.SemanticHash+":"+node.Contract.FileHash)
	}
	return &Bundle{
		Schema:        SchemaURL,
		SchemaVersion: SchemaVersion,
		Type:          bundleType,
		Depth:         Depth,
		CreatedAt:     a.createdAt(),
		BundleHash:    contract.Digest([]byte(strings.Join(hashes, "\n"))),
		Graph:         Graph{Nodes: nodes, Edges: []Edge{}},
		Meta:          a.meta(len(nodes)),
	}
}

func (a *Assembler) meta(unitCount int) Meta {
	ret := Meta{Generator: Generator, Extractor: a.extractor, UnitCount: unitCount}
	if a.project != nil {
		ret.ProjectName = a.project.Name
		ret.ProjectType = a.project.Type
	}
	return ret
}

func (a *Assembler) createdAt() string {
	return a.clock().UTC().Format(time.RFC3339)
}

// CodeHeader returns the first CodeHeaderLines lines of content
func CodeHeader(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.SplitN(content, "\n", CodeHeaderLines+1)
	if len(lines) > CodeHeaderLines {
		lines = lines[:CodeHeaderLines]
	}
	return strings.Join(lines, "\n")
}

func relativeTo(folder, location string) string {
	switch folder {
	case source.RootFolder:
		return location
	case "/":
		return strings.TrimPrefix(location, "/")
	}
	return strings.TrimPrefix(location, folder+"/")
}
