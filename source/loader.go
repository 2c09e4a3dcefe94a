package source

import (
	"context"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DefaultExtensions lists component source extensions picked up when walking folders
var DefaultExtensions = []string{".tsx", ".jsx", ".ts", ".js"}

var skipDirs = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"coverage":     {},
	"vendor":       {},
}

// Loader acquires source units from local or remote storage
type Loader struct {
	fs         afs.Service
	extensions map[string]bool
	skipTests  bool
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithFS sets storage service used to read sources
func WithFS(fs afs.Service) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithExtensions restricts folder walking to files with the supplied extensions
func WithExtensions(extensions ...string) LoaderOption {
	return func(l *Loader) {
		if len(extensions) == 0 {
			return
		}
		l.extensions = make(map[string]bool, len(extensions))
		for _, ext := range extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			l.extensions[ext] = true
		}
	}
}

// WithSkipTests excludes *.test.* and *.spec.* files when walking folders
func WithSkipTests(skip bool) LoaderOption {
	return func(l *Loader) {
		l.skipTests = skip
	}
}

// NewLoader creates a loader
func NewLoader(options ...LoaderOption) *Loader {
	ret := &Loader{fs: afs.New()}
	WithExtensions(DefaultExtensions...)(ret)
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Load reads every location; folders are walked recursively, files are read as is.
// Units are returned in acquisition order with repeated paths removed.
func (l *Loader) Load(ctx context.Context, locations ...string) ([]*Unit, error) {
	var units []*Unit
	for _, location := range locations {
		object, err := l.fs.Object(ctx, location)
		if err != nil {
			return nil, &SourceReadError{Path: location, Err: err}
		}
		if !object.IsDir() {
			unit, err := l.loadFile(ctx, location, location)
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
			continue
		}
		folderUnits, err := l.loadFolder(ctx, location)
		if err != nil {
			return nil, err
		}
		units = append(units, folderUnits...)
	}
	units, dropped := Dedupe(units)
	for _, p := range dropped {
		logrus.WithField("path", p).Warn("dropping duplicate source unit")
	}
	return units, nil
}

func (l *Loader) loadFile(ctx context.Context, URL string, location string) (*Unit, error) {
	content, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, &SourceReadError{Path: location, Err: err}
	}
	unit := NewUnit(location, string(content))
	logrus.WithFields(logrus.Fields{"path": unit.Path, "bytes": len(content)}).Debug("loaded source unit")
	return unit, nil
}

func (l *Loader) loadFolder(ctx context.Context, root string) ([]*Unit, error) {
	matcher := l.gitignore(ctx, root)
	prefix := NormalizePath(root)
	if prefix == "." {
		prefix = ""
	}
	var relPaths []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		name := info.Name()
		rel := path.Join(parent, name)
		if info.IsDir() {
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return false, nil
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return false, nil
			}
			return true, nil
		}
		if !l.accepts(name) {
			return true, nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return true, nil
		}
		relPaths = append(relPaths, rel)
		return true, nil
	}
	if err := l.fs.Walk(ctx, root, visitor); err != nil {
		return nil, &SourceReadError{Path: root, Err: err}
	}
	sort.Strings(relPaths)
	units := make([]*Unit, 0, len(relPaths))
	for _, rel := range relPaths {
		unit, err := l.loadFile(ctx, joinURL(root, rel), path.Join(prefix, rel))
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

func (l *Loader) accepts(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if l.skipTests && (strings.Contains(name, ".test.") || strings.Contains(name, ".spec.")) {
		return false
	}
	return l.extensions[strings.ToLower(path.Ext(name))]
}

func (l *Loader) gitignore(ctx context.Context, root string) *ignore.GitIgnore {
	location := joinURL(root, ".gitignore")
	if ok, _ := l.fs.Exists(ctx, location); !ok {
		return nil
	}
	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		logrus.WithError(err).WithField("path", location).Warn("unable to read .gitignore")
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}

func joinURL(baseURL string, elements ...string) string {
	if strings.Contains(baseURL, "://") {
		return url.Join(baseURL, elements...)
	}
	return path.Join(append([]string{baseURL}, elements...)...)
}
