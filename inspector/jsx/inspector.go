package jsx

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/uicontract/inspector/info"
	"github.com/viant/uicontract/source"
)

// Name identifies the extractor
const Name = "treesitter"

var (
	emitNameExpr = regexp.MustCompile(`^on[A-Z]`)
	propsExpr    = regexp.MustCompile(`Props\b`)
)

// Inspector extracts component facts from a tree-sitter syntax tree
type Inspector struct{}

// NewInspector creates a tree-sitter backed inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Name returns extractor name
func (i *Inspector) Name() string {
	return Name
}

// Extract parses unit content and extracts component facts
func (i *Inspector) Extract(ctx context.Context, unit *source.Unit) (*info.Component, error) {
	src := []byte(unit.Content)
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(unit.Ext()))
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", unit.Path, err)
	}
	return i.processFile(tree.RootNode(), src, unit.Path), nil
}

func languageFor(ext string) *sitter.Language {
	switch ext {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// declaration is an exported or local component candidate
type declaration struct {
	name   string
	source info.NameSource
	node   *sitter.Node
}

type fileState struct {
	src        []byte
	component  *info.Component
	candidates map[info.NameSource]*declaration
	local      map[string]*sitter.Node
	shapes     map[string]map[string]string
}

// processFile collects imports, exports, declarations, hooks and state from the syntax tree
func (i *Inspector) processFile(root *sitter.Node, src []byte, location string) *info.Component {
	state := &fileState{
		src: src,
		component: &info.Component{
			Hooks:     []string{},
			Functions: []string{},
			Imports:   []string{},
			Exports:   []string{},
			Props:     map[string]string{},
			Emits:     []string{},
		},
		candidates: map[info.NameSource]*declaration{},
		local:      map[string]*sitter.Node{},
		shapes:     map[string]map[string]string{},
	}
	c := state.component
	c.Framework = "react"

	for j := 0; j < int(root.NamedChildCount()); j++ {
		child := root.NamedChild(j)
		switch child.Type() {
		case "comment":
			if c.Description == "" {
				c.Description = docLine(child.Content(src))
			}
		case "expression_statement":
			if directive := directiveOf(child, src); directive != "" && c.Directive == "" {
				c.Directive = directive
			}
		case "import_statement":
			state.processImport(child)
		case "export_statement":
			state.processExport(child)
		case "function_declaration", "generator_function_declaration", "class_declaration", "lexical_declaration", "variable_declaration":
			state.processDeclaration(child, false)
		case "interface_declaration", "type_alias_declaration":
			state.processShape(child)
		}
	}

	chosen := state.chooseComponent()
	if chosen != nil {
		c.Name = chosen.name
		c.NameSource = chosen.source
	} else {
		c.Name = info.NameFromPath(location)
		c.NameSource = info.NameFromFile
		if node, ok := state.local[c.Name]; ok {
			chosen = &declaration{name: c.Name, node: node}
		}
	}
	c.Kind = info.KindOf(c.Name)
	if c.Description == "" {
		c.Description = info.DefaultDescription(c.Name, c.Kind)
	}

	if chosen != nil {
		state.processProps(chosen.node)
	}
	state.processHooksAndState(root)
	return c
}

func (s *fileState) processImport(node *sitter.Node) {
	s.component.ImportCount++
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}
	importPath := strings.Trim(sourceNode.Content(s.src), "'\"`")
	s.component.Imports = appendDistinct(s.component.Imports, importPath)
	switch {
	case strings.HasPrefix(importPath, "next/"):
		s.component.Framework = "next"
	case strings.Contains(importPath, "react-router") && s.component.Framework != "next":
		s.component.Framework = "react-router"
	}
}

func (s *fileState) processExport(node *sitter.Node) {
	isDefault := false
	for j := 0; j < int(node.ChildCount()); j++ {
		if node.Child(j).Type() == "default" {
			isDefault = true
			break
		}
	}
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		names := s.processDeclaration(decl, true)
		if !isDefault {
			for _, name := range names {
				s.component.Exports = appendDistinct(s.component.Exports, name)
			}
		}
	} else if value := node.ChildByFieldName("value"); value != nil {
		switch value.Type() {
		case "identifier":
			if node, ok := s.local[value.Content(s.src)]; ok {
				s.addCandidate(value.Content(s.src), info.NameFromFunction, node)
			}
		case "function", "function_expression", "arrow_function", "class":
			if nameNode := value.ChildByFieldName("name"); nameNode != nil {
				name := nameNode.Content(s.src)
				if value.Type() != "class" {
					s.component.Functions = appendDistinct(s.component.Functions, name)
				}
				s.local[name] = value
				s.addCandidate(name, candidateSource(value.Type()), value)
			}
		}
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		clause := node.NamedChild(j)
		if clause.Type() != "export_clause" {
			continue
		}
		for k := 0; k < int(clause.NamedChildCount()); k++ {
			specifier := clause.NamedChild(k)
			if specifier.Type() != "export_specifier" {
				continue
			}
			nameNode := specifier.ChildByFieldName("alias")
			if nameNode == nil {
				nameNode = specifier.ChildByFieldName("name")
			}
			if nameNode != nil {
				s.component.Exports = appendDistinct(s.component.Exports, nameNode.Content(s.src))
			}
		}
	}
	if isDefault {
		s.component.Exports = appendDistinct(s.component.Exports, "default")
	}
}

// processDeclaration records functions and component candidates, returning declared names
func (s *fileState) processDeclaration(node *sitter.Node, exported bool) []string {
	var names []string
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil
		}
		name := nameNode.Content(s.src)
		names = append(names, name)
		s.component.Functions = appendDistinct(s.component.Functions, name)
		s.local[name] = node
		if exported {
			s.addCandidate(name, info.NameFromFunction, node)
		}
	case "class_declaration", "abstract_class_declaration":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil
		}
		name := nameNode.Content(s.src)
		names = append(names, name)
		s.local[name] = node
		if exported && startsUpper(name) {
			s.addCandidate(name, info.NameFromClass, node)
		}
	case "lexical_declaration", "variable_declaration":
		isConst := strings.HasPrefix(node.Content(s.src), "const")
		for j := 0; j < int(node.NamedChildCount()); j++ {
			declarator := node.NamedChild(j)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			nameNode := declarator.ChildByFieldName("name")
			if nameNode == nil || nameNode.Type() != "identifier" {
				continue
			}
			name := nameNode.Content(s.src)
			names = append(names, name)
			value := unwrapValue(declarator.ChildByFieldName("value"))
			if value != nil && isFunctionNode(value) {
				s.component.Functions = appendDistinct(s.component.Functions, name)
				s.local[name] = value
			}
			if exported && isConst {
				s.addCandidate(name, info.NameFromConst, value)
			}
		}
	case "interface_declaration", "type_alias_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			names = append(names, nameNode.Content(s.src))
		}
		s.processShape(node)
	}
	return names
}

func (s *fileState) addCandidate(name string, nameSource info.NameSource, node *sitter.Node) {
	if _, ok := s.candidates[nameSource]; ok {
		return
	}
	s.candidates[nameSource] = &declaration{name: name, source: nameSource, node: node}
}

// chooseComponent applies the naming precedence: exported const, function, then class
func (s *fileState) chooseComponent() *declaration {
	for _, nameSource := range []info.NameSource{info.NameFromConst, info.NameFromFunction, info.NameFromClass} {
		if candidate, ok := s.candidates[nameSource]; ok {
			return candidate
		}
	}
	return nil
}

// processShape indexes interface and object type alias members by type name
func (s *fileState) processShape(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		body = node.ChildByFieldName("value")
	}
	if body == nil {
		return
	}
	members := map[string]string{}
	for j := 0; j < int(body.NamedChildCount()); j++ {
		member := body.NamedChild(j)
		if member.Type() != "property_signature" {
			continue
		}
		propName := member.ChildByFieldName("name")
		if propName == nil {
			continue
		}
		typeName := "unknown"
		if typeNode := member.ChildByFieldName("type"); typeNode != nil {
			typeName = strings.TrimSpace(strings.TrimPrefix(typeNode.Content(s.src), ":"))
		}
		members[propName.Content(s.src)] = typeName
	}
	s.shapes[nameNode.Content(s.src)] = members
}

// processProps extracts props from the first parameter of the component function
func (s *fileState) processProps(node *sitter.Node) {
	c := s.component
	if node == nil {
		return
	}
	if node.Type() == "class_declaration" || node.Type() == "class" {
		if propsExpr.MatchString(node.Content(s.src)) {
			c.HasProps = true
		}
		return
	}
	param := firstParameter(node)
	if param == nil {
		return
	}
	pattern := param
	var typeNode *sitter.Node
	switch param.Type() {
	case "required_parameter", "optional_parameter":
		pattern = param.ChildByFieldName("pattern")
		typeNode = param.ChildByFieldName("type")
	case "assignment_pattern":
		pattern = param.ChildByFieldName("left")
	}
	if typeNode != nil {
		typeName := strings.TrimSpace(strings.TrimPrefix(typeNode.Content(s.src), ":"))
		if members, ok := s.shapes[typeName]; ok {
			for name, kind := range members {
				c.Props[name] = kind
			}
		}
		if propsExpr.MatchString(typeName) {
			c.HasProps = true
		}
	}
	if pattern != nil && pattern.Type() == "object_pattern" {
		for j := 0; j < int(pattern.NamedChildCount()); j++ {
			name := patternName(pattern.NamedChild(j), s.src)
			if name == "" {
				continue
			}
			if _, ok := c.Props[name]; !ok {
				c.Props[name] = "unknown"
			}
		}
	}
	if len(c.Props) > 0 {
		c.HasProps = true
	}
	for _, name := range sortedKeys(c.Props) {
		if emitNameExpr.MatchString(name) {
			c.Emits = append(c.Emits, name)
		}
	}
}

// processHooksAndState walks the tree for hook calls and useState declarations
func (s *fileState) processHooksAndState(root *sitter.Node) {
	c := s.component
	walk(root, func(node *sitter.Node) {
		switch node.Type() {
		case "call_expression":
			if name := calleeName(node.ChildByFieldName("function"), s.src); info.IsHookName(name) {
				c.Hooks = appendDistinct(c.Hooks, name)
			}
		case "variable_declarator":
			value := node.ChildByFieldName("value")
			nameNode := node.ChildByFieldName("name")
			if value == nil || nameNode == nil || value.Type() != "call_expression" || nameNode.Type() != "array_pattern" {
				return
			}
			if calleeName(value.ChildByFieldName("function"), s.src) != "useState" {
				return
			}
			var stateName string
			for j := 0; j < int(nameNode.NamedChildCount()); j++ {
				if element := nameNode.NamedChild(j); element.Type() == "identifier" {
					stateName = element.Content(s.src)
					break
				}
			}
			if stateName == "" {
				return
			}
			if c.State == nil {
				c.State = map[string]string{}
			}
			c.State[stateName] = literalType(value.ChildByFieldName("arguments"))
		}
	})
	c.HasState = len(c.State) > 0
}

func walk(node *sitter.Node, visit func(node *sitter.Node)) {
	visit(node)
	for j := 0; j < int(node.NamedChildCount()); j++ {
		walk(node.NamedChild(j), visit)
	}
}

func calleeName(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return node.Content(src)
	case "member_expression":
		if property := node.ChildByFieldName("property"); property != nil {
			return property.Content(src)
		}
	}
	return ""
}

func literalType(arguments *sitter.Node) string {
	if arguments == nil || arguments.NamedChildCount() == 0 {
		return "undefined"
	}
	switch arg := arguments.NamedChild(0); arg.Type() {
	case "number":
		return "number"
	case "string", "template_string":
		return "string"
	case "true", "false":
		return "boolean"
	case "array":
		return "array"
	case "object":
		return "object"
	case "null":
		return "null"
	case "arrow_function", "function", "function_expression":
		return "lazy"
	default:
		return "unknown"
	}
}

func firstParameter(node *sitter.Node) *sitter.Node {
	if param := node.ChildByFieldName("parameter"); param != nil {
		return param
	}
	params := node.ChildByFieldName("parameters")
	if params == nil || params.NamedChildCount() == 0 {
		return nil
	}
	return params.NamedChild(0)
}

func patternName(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "shorthand_property_identifier_pattern", "shorthand_property_identifier", "identifier":
		return node.Content(src)
	case "pair_pattern":
		if key := node.ChildByFieldName("key"); key != nil {
			return key.Content(src)
		}
	case "object_assignment_pattern":
		if left := node.ChildByFieldName("left"); left != nil {
			return patternName(left, src)
		}
	}
	return ""
}

// unwrapValue returns the function wrapped by memo/forwardRef style calls
func unwrapValue(node *sitter.Node) *sitter.Node {
	for node != nil && node.Type() == "call_expression" {
		arguments := node.ChildByFieldName("arguments")
		if arguments == nil || arguments.NamedChildCount() == 0 {
			return node
		}
		node = arguments.NamedChild(0)
	}
	return node
}

func isFunctionNode(node *sitter.Node) bool {
	switch node.Type() {
	case "arrow_function", "function", "function_expression", "generator_function":
		return true
	}
	return false
}

func candidateSource(nodeType string) info.NameSource {
	if nodeType == "class" {
		return info.NameFromClass
	}
	return info.NameFromFunction
}

func directiveOf(node *sitter.Node, src []byte) string {
	if node.NamedChildCount() == 0 {
		return ""
	}
	literal := node.NamedChild(0)
	if literal.Type() != "string" {
		return ""
	}
	switch value := strings.Trim(literal.Content(src), "'\""); value {
	case "use client", "use server":
		return value
	}
	return ""
}

func docLine(comment string) string {
	if !strings.HasPrefix(comment, "/**") {
		return ""
	}
	body := strings.TrimSuffix(strings.TrimPrefix(comment, "/**"), "*/")
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		if line != "" && !strings.HasPrefix(line, "@") {
			return line
		}
	}
	return ""
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func startsUpper(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func appendDistinct(values []string, value string) []string {
	if value == "" {
		return values
	}
	for _, candidate := range values {
		if candidate == value {
			return values
		}
	}
	return append(values, value)
}
