package repository

// Project represents information about a detected project
type Project struct {
	RootPath     string `json:"rootPath" yaml:"rootPath"` // absolute path to the project root directory
	Type         string `json:"type" yaml:"type"`         // javascript, go, git or unknown
	Name         string `json:"name" yaml:"name"`
	RelativePath string `json:"relativePath,omitempty" yaml:"relativePath,omitempty"` // path from project root to the inspected location
	Origin       string `json:"origin,omitempty" yaml:"origin,omitempty"`
}
