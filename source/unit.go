package source

import (
	"path"
	"path/filepath"
	"strings"
)

// RootFolder is the folder key assigned to units whose path has no separator
const RootFolder = "."

// Unit represents one source file taking part in an analysis run
type Unit struct {
	Name    string `json:"name" yaml:"name"`       // File name
	Path    string `json:"path" yaml:"path"`       // Slash separated path, unique within a run
	Content string `json:"content" yaml:"content"` // Raw source text
}

// NewUnit creates a unit for the supplied path and content, normalizing the path
func NewUnit(location string, content string) *Unit {
	normalized := NormalizePath(location)
	return &Unit{
		Name:    path.Base(normalized),
		Path:    normalized,
		Content: content,
	}
}

// NormalizePath converts path to a cleaned slash separated form without a leading "./"
func NormalizePath(location string) string {
	if location == "" {
		return ""
	}
	normalized := path.Clean(filepath.ToSlash(location))
	normalized = strings.TrimPrefix(normalized, "./")
	return normalized
}

// Folder returns the unit path with its final segment removed
func (u *Unit) Folder() string {
	return FolderOf(u.Path)
}

// FolderOf returns location with its final segment removed, or RootFolder when location has no separator
func FolderOf(location string) string {
	location = NormalizePath(location)
	idx := strings.LastIndex(location, "/")
	if idx == -1 {
		return RootFolder
	}
	if idx == 0 {
		return "/"
	}
	return location[:idx]
}

// Ext returns the lower-cased file extension of the unit
func (u *Unit) Ext() string {
	return strings.ToLower(path.Ext(u.Path))
}

// Dedupe removes units with a repeated path, keeping the first occurrence
func Dedupe(units []*Unit) ([]*Unit, []string) {
	seen := make(map[string]bool, len(units))
	result := make([]*Unit, 0, len(units))
	var dropped []string
	for _, unit := range units {
		if unit == nil {
			continue
		}
		if seen[unit.Path] {
			dropped = append(dropped, unit.Path)
			continue
		}
		seen[unit.Path] = true
		result = append(result, unit)
	}
	return result, dropped
}

// Rebase returns units with paths relative to root; units outside root keep their path
func Rebase(units []*Unit, root string) []*Unit {
	ret := make([]*Unit, 0, len(units))
	for _, unit := range units {
		abs, err := filepath.Abs(filepath.FromSlash(unit.Path))
		if err != nil {
			ret = append(ret, unit)
			continue
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || rel == ".." || strings.HasPrefix(filepath.ToSlash(rel), "../") {
			ret = append(ret, unit)
			continue
		}
		ret = append(ret, NewUnit(rel, unit.Content))
	}
	return ret
}
