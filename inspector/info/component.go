package info

import (
	"path"
	"regexp"
	"strings"
)

// NameSource indicates how a component name was determined
type NameSource string

const (
	NameFromConst    NameSource = "export-const"
	NameFromFunction NameSource = "export-function"
	NameFromClass    NameSource = "export-class"
	NameFromFile     NameSource = "filename"
)

// Kind classifies an extracted unit
type Kind string

const (
	KindComponent Kind = "component"
	KindHook      Kind = "hook"
)

// MaxHooks caps the number of hooks carried into a contract
const MaxHooks = 3

var hookNameExpr = regexp.MustCompile(`^use[A-Z]`)

// Component holds the structural facts extracted from one source unit
type Component struct {
	Name        string
	NameSource  NameSource
	Kind        Kind
	Description string
	Hooks       []string // distinct hook identifiers, first-seen order
	Functions   []string
	Imports     []string // distinct module specifiers
	ImportCount int      // number of import-bearing lines
	Exports     []string
	Framework   string
	Directive   string
	HasProps    bool
	Props       map[string]string
	Emits       []string
	HasState    bool
	State       map[string]string
}

// ContractHooks returns at most MaxHooks hook names with the "use" prefix removed
func (c *Component) ContractHooks() []string {
	ret := []string{}
	for _, hook := range c.Hooks {
		if len(ret) == MaxHooks {
			break
		}
		ret = append(ret, strings.TrimPrefix(hook, "use"))
	}
	return ret
}

// IsHookName reports whether name follows the hook naming convention
func IsHookName(name string) bool {
	return hookNameExpr.MatchString(name)
}

// KindOf returns the kind implied by a declared name
func KindOf(name string) Kind {
	if IsHookName(name) {
		return KindHook
	}
	return KindComponent
}

// NameFromPath derives a component name from a file path: "src/ui/Thing.tsx" -> "Thing".
// Index files take the name of their folder.
func NameFromPath(location string) string {
	location = strings.ReplaceAll(location, "\\", "/")
	base := path.Base(location)
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	if base == "index" {
		if dir := path.Base(path.Dir(location)); dir != "." && dir != "/" {
			base = dir
		}
	}
	return base
}

// DefaultDescription describes a component that carries no doc comment
func DefaultDescription(name string, kind Kind) string {
	return name + " " + string(kind)
}
