package contract

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/viant/uicontract/inspector"
	"github.com/viant/uicontract/source"
	"github.com/viant/uicontract/style"
)

// Builder combines identity extraction and style synthesis into contracts
type Builder struct {
	extractor  inspector.Extractor
	factory    *inspector.Factory
	classifier *style.Classifier
	cacheSize  int
	cache      *lru.Cache[string, *Contract]
}

// Option configures a Builder
type Option func(*Builder)

// WithExtractor sets the preferred fact extractor
func WithExtractor(extractor inspector.Extractor) Option {
	return func(b *Builder) {
		b.extractor = extractor
	}
}

// WithClassifier sets the class classifier
func WithClassifier(classifier *style.Classifier) Option {
	return func(b *Builder) {
		b.classifier = classifier
	}
}

// WithCacheSize enables an LRU contract cache with the supplied number of entries.
// Entries are keyed by extractor, path and file hash, so hits come from reusing one Builder
// across runs (e.g. an Assembler re-assembling edited sources); a single run never repeats a path.
func WithCacheSize(size int) Option {
	return func(b *Builder) {
		b.cacheSize = size
	}
}

// NewBuilder creates a contract builder
func NewBuilder(options ...Option) (*Builder, error) {
	ret := &Builder{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.extractor == nil {
		ret.extractor, _ = inspector.New(inspector.HeuristicName)
	}
	if ret.classifier == nil {
		ret.classifier = style.NewClassifier(nil)
	}
	ret.factory = inspector.NewFactory(ret.extractor)
	if ret.cacheSize > 0 {
		cache, err := lru.New[string, *Contract](ret.cacheSize)
		if err != nil {
			return nil, err
		}
		ret.cache = cache
	}
	return ret, nil
}

// Classifier returns builder classifier
func (b *Builder) Classifier() *style.Classifier {
	return b.classifier
}

// Build creates a contract for the unit; the style field is set only when the unit carries class tokens
func (b *Builder) Build(ctx context.Context, unit *source.Unit) (*Contract, error) {
	fileHash := FileHash(unit.Content)
	extractor := b.factory.GetExtractor(unit.Path)
	cacheKey := extractor.Name() + "|" + unit.Path + "|" + fileHash
	if b.cache != nil {
		if cached, ok := b.cache.Get(cacheKey); ok {
			logrus.WithField("path", unit.Path).Debug("contract cache hit")
			return cached, nil
		}
	}
	component, err := b.factory.Extract(ctx, unit)
	if err != nil {
		return nil, err
	}
	metadata, tokens := style.Analyze(unit.Content, b.classifier)
	ret := New(component, metadata, unit.Path)
	ret.FileHash = fileHash
	logrus.WithFields(logrus.Fields{
		"path":      unit.Path,
		"extractor": extractor.Name(),
		"name":      component.Name,
		"tokens":    len(tokens),
	}).Debug("built contract")
	if b.cache != nil {
		b.cache.Add(cacheKey, ret)
	}
	return ret, nil
}
