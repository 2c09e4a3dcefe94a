package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project types
const (
	TypeJavaScript = "javascript"
	TypeGo         = "go"
	TypeGit        = "git"
	TypeUnknown    = "unknown"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"package.json", // JavaScript/Node projects
			"go.mod",       // Go projects serving embedded UI
			".git",         // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given location and returns project info.
// When no marker is found the location itself is reported as an unknown project.
func (d *Detector) DetectProject(ctx context.Context, location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	object, err := d.fs.Object(ctx, absPath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if !object.IsDir() {
		startDir = filepath.Dir(absPath)
	}
	rootPath, projectType := d.findProjectRoot(ctx, startDir)
	ret := &Project{
		Type:     TypeUnknown,
		RootPath: startDir,
		Name:     filepath.Base(startDir),
	}
	if rootPath != "" {
		ret.RootPath = rootPath
		ret.Type = projectType
		ret.Name = d.extractProjectName(ctx, rootPath, projectType)
		ret.Origin = d.extractGitOrigin(ctx, rootPath)
	}
	if relPath, err := filepath.Rel(ret.RootPath, absPath); err == nil {
		ret.RelativePath = filepath.ToSlash(relPath)
	}
	return ret, nil
}

// findProjectRoot searches up from the start directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, marker)); ok {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(ctx context.Context, rootPath string, projectType string) string {
	var name string
	switch projectType {
	case TypeJavaScript:
		name = d.packageName(ctx, filepath.Join(rootPath, "package.json"))
	case TypeGo:
		name = d.goModuleName(ctx, filepath.Join(rootPath, "go.mod"))
	case TypeGit:
		if origin := d.extractGitOrigin(ctx, rootPath); origin != "" {
			origin = strings.TrimSuffix(origin, ".git")
			name = origin[strings.LastIndexAny(origin, "/:")+1:]
		}
	}
	if name == "" {
		name = filepath.Base(rootPath)
	}
	return name
}

func (d *Detector) packageName(ctx context.Context, location string) string {
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return ""
	}
	manifest := struct {
		Name string `json:"name"`
	}{}
	if err = json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

func (d *Detector) goModuleName(ctx context.Context, location string) string {
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(ctx context.Context, rootPath string) string {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url") {
			if idx := strings.Index(line, "="); idx != -1 {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "package.json":
		return TypeJavaScript
	case "go.mod":
		return TypeGo
	case ".git":
		return TypeGit
	}
	return TypeUnknown
}
