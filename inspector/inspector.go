package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/uicontract/inspector/heuristic"
	"github.com/viant/uicontract/inspector/info"
	"github.com/viant/uicontract/inspector/jsx"
	"github.com/viant/uicontract/source"
)

// Extractor provides an interface for extracting component facts from a source unit
type Extractor interface {
	// Name returns the extractor name
	Name() string

	// Extract parses unit content and extracts component facts
	Extract(ctx context.Context, unit *source.Unit) (*info.Component, error)
}

// Extractor names
const (
	HeuristicName  = heuristic.Name
	TreeSitterName = jsx.Name
)

// New returns an extractor by name; an empty name selects the heuristic extractor
func New(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HeuristicName:
		return heuristic.New(), nil
	case TreeSitterName, "tree-sitter":
		return jsx.NewInspector(), nil
	}
	return nil, fmt.Errorf("unsupported extractor: %s", name)
}

// Factory selects extractors based on file extension
type Factory struct {
	preferred Extractor
	fallback  Extractor
}

// NewFactory creates a factory; the preferred extractor handles recognised script files
// while other files fall back to the heuristic extractor
func NewFactory(preferred Extractor) *Factory {
	if preferred == nil {
		preferred = heuristic.New()
	}
	return &Factory{preferred: preferred, fallback: heuristic.New()}
}

// GetExtractor returns an appropriate extractor based on file extension
func (f *Factory) GetExtractor(filename string) Extractor {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".mts", ".cts":
		return f.preferred
	}
	return f.fallback
}

// Extract is a convenience method that gets the appropriate extractor and extracts unit facts
func (f *Factory) Extract(ctx context.Context, unit *source.Unit) (*info.Component, error) {
	extractor := f.GetExtractor(unit.Path)
	component, err := extractor.Extract(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s with %s: %w", unit.Path, extractor.Name(), err)
	}
	return component, nil
}
