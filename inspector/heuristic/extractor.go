// Package heuristic extracts component facts by pattern matching over raw source text.
// It performs no tokenization or parsing, so matches inside comments and string
// literals count like real code.
package heuristic

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/uicontract/inspector/info"
	"github.com/viant/uicontract/source"
)

// Name identifies the extractor
const Name = "heuristic"

var (
	exportConstExpr    = regexp.MustCompile(`export\s+(?:default\s+)?const\s+([A-Za-z_$][\w$]*)`)
	exportFunctionExpr = regexp.MustCompile(`export\s+(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`)
	exportClassExpr    = regexp.MustCompile(`export\s+(?:default\s+)?class\s+([A-Z][\w$]*)`)

	hookExpr        = regexp.MustCompile(`\b(use[A-Z][A-Za-z0-9_]*)\b`)
	importLineExpr  = regexp.MustCompile(`(?m)^\s*import[\s{*'"]`)
	importSpecExpr  = regexp.MustCompile(`(?m)^\s*import\s+(?:type\s+)?(?:[^'";]*?\s*from\s*)?["']([^"']+)["']`)
	functionExpr    = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*[<(]`)
	arrowExpr       = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const|let)\s+([A-Za-z_$][\w$]*)\s*(?::[^=\n]+)?=\s*(?:async\s*)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*(?::[^=\n]+)?=>`)
	namedExportExpr = regexp.MustCompile(`(?m)^\s*export\s+(?:declare\s+)?(?:async\s+)?(?:const|let|var|function\*?|class|interface|type|enum|abstract\s+class)\s+([A-Za-z_$][\w$]*)`)
	exportListExpr  = regexp.MustCompile(`(?m)^\s*export\s*\{([^}]*)\}`)
	defaultExpr     = regexp.MustCompile(`(?m)^\s*export\s+default\b`)
	propsTypeExpr   = regexp.MustCompile(`\b(?:[A-Z]\w*)?Props\b`)
	emitExpr        = regexp.MustCompile(`\b(on[A-Z]\w*)\??\s*:`)
	docExpr         = regexp.MustCompile(`(?s)^\s*(?:(?:"use (?:client|server)"|'use (?:client|server)');?\s*)?/\*\*(.*?)\*/`)
)

// ExampleProps is the prop shape attached when a Props type reference is found
func ExampleProps() map[string]string {
	return map[string]string{"children": "ReactNode", "className": "string"}
}

// ExampleState is the state shape attached when hooks are used
func ExampleState() map[string]string {
	return map[string]string{"value": "unknown"}
}

// Extractor extracts component facts with regular expressions
type Extractor struct{}

// New creates a heuristic extractor
func New() *Extractor {
	return &Extractor{}
}

// Name returns extractor name
func (e *Extractor) Name() string {
	return Name
}

// Extract never fails; ctx is accepted to satisfy the extractor contract
func (e *Extractor) Extract(ctx context.Context, unit *source.Unit) (*info.Component, error) {
	return Inspect(unit.Content, unit.Path), nil
}

// Inspect extracts facts from text; location is used for the filename fallback name
func Inspect(text string, location string) *info.Component {
	name, nameSource := ComponentName(text, location)
	kind := info.KindOf(name)
	ret := &info.Component{
		Name:        name,
		NameSource:  nameSource,
		Kind:        kind,
		Description: Description(text),
		Hooks:       Hooks(text),
		Functions:   Functions(text),
		Imports:     Imports(text),
		ImportCount: len(importLineExpr.FindAllStringIndex(text, -1)),
		Exports:     Exports(text),
		Framework:   Framework(text),
		Directive:   Directive(text),
		Props:       map[string]string{},
		Emits:       []string{},
	}
	if ret.Description == "" {
		ret.Description = info.DefaultDescription(name, kind)
	}
	if propsTypeExpr.MatchString(text) {
		ret.HasProps = true
		ret.Props = ExampleProps()
		ret.Emits = distinct(submatches(emitExpr, text))
	}
	if len(ret.Hooks) > 0 {
		ret.HasState = true
		ret.State = ExampleState()
	}
	return ret
}

// ComponentName tries exported const, function and class declarations in that order,
// falling back to a name derived from location
func ComponentName(text string, location string) (string, info.NameSource) {
	if match := exportConstExpr.FindStringSubmatch(text); match != nil {
		return match[1], info.NameFromConst
	}
	if match := exportFunctionExpr.FindStringSubmatch(text); match != nil {
		return match[1], info.NameFromFunction
	}
	if match := exportClassExpr.FindStringSubmatch(text); match != nil {
		return match[1], info.NameFromClass
	}
	return info.NameFromPath(location), info.NameFromFile
}

// Hooks returns distinct hook identifiers in first-seen order
func Hooks(text string) []string {
	return distinct(submatches(hookExpr, text))
}

// Imports returns distinct imported module specifiers
func Imports(text string) []string {
	return distinct(submatches(importSpecExpr, text))
}

// Functions returns declared function and arrow function names in source order
func Functions(text string) []string {
	type positioned struct {
		name string
		pos  int
	}
	var found []positioned
	for _, expr := range []*regexp.Regexp{functionExpr, arrowExpr} {
		for _, match := range expr.FindAllStringSubmatchIndex(text, -1) {
			found = append(found, positioned{name: text[match[2]:match[3]], pos: match[2]})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	names := make([]string, 0, len(found))
	for _, item := range found {
		names = append(names, item.name)
	}
	return distinct(names)
}

// Exports returns exported names; a default export is reported as "default"
func Exports(text string) []string {
	var names []string
	for _, match := range namedExportExpr.FindAllStringSubmatch(text, -1) {
		names = append(names, match[1])
	}
	for _, match := range exportListExpr.FindAllStringSubmatch(text, -1) {
		for _, item := range strings.Split(match[1], ",") {
			fields := strings.Fields(item)
			if len(fields) == 0 {
				continue
			}
			names = append(names, fields[len(fields)-1])
		}
	}
	if defaultExpr.MatchString(text) {
		names = append(names, "default")
	}
	return distinct(names)
}

// Framework detects the routing framework from import paths
func Framework(text string) string {
	switch {
	case strings.Contains(text, `"next/`), strings.Contains(text, `'next/`):
		return "next"
	case strings.Contains(text, "react-router"):
		return "react-router"
	}
	return "react"
}

// Directive returns the module directive literal when present
func Directive(text string) string {
	switch {
	case strings.Contains(text, `"use client"`), strings.Contains(text, `'use client'`):
		return "use client"
	case strings.Contains(text, `"use server"`), strings.Contains(text, `'use server'`):
		return "use server"
	}
	return ""
}

// Description returns the first line of a leading doc comment
func Description(text string) string {
	match := docExpr.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	for _, line := range strings.Split(match[1], "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if line != "" && !strings.HasPrefix(line, "@") {
			return line
		}
	}
	return ""
}

func submatches(expr *regexp.Regexp, text string) []string {
	var ret []string
	for _, match := range expr.FindAllStringSubmatch(text, -1) {
		ret = append(ret, match[1])
	}
	return ret
}

func distinct(values []string) []string {
	ret := []string{}
	seen := map[string]bool{}
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		ret = append(ret, value)
	}
	return ret
}
