package style

import (
	"regexp"
	"strings"
)

const (
	// VisualLimit caps the visual highlight lists
	VisualLimit = 10
	// GridColumns is the placeholder column hint set when grid usage is detected
	GridColumns = "auto"
	// DefaultRadius is reported when no border radius token exists
	DefaultRadius = "none"
	// DefaultAnimation is the animation type used when no animate-* token exists
	DefaultAnimation = "transition"
	// UtilityLibrary names the animation source when no motion library is imported
	UtilityLibrary = "tailwindcss"
)

// Layout types
const (
	LayoutGrid  = "grid"
	LayoutFlex  = "flex"
	LayoutBlock = "block"
)

var (
	colorRoleExpr   = regexp.MustCompile(`^(?:bg|text|border(?:-[trblxy])?|from|via|to|ring(?:-offset)?|fill|stroke|divide|outline|decoration|placeholder|caret|accent|shadow)-(.+)$`)
	motionLibraries = regexp.MustCompile(`(?:from\s+|require\(\s*|import\s+)["'](framer-motion|motion/react|motion|react-spring|@react-spring/web|gsap)["']`)
)

// Metadata summarises the styling facts of one component
type Metadata struct {
	StyleSources Sources    `json:"styleSources" yaml:"styleSources"`
	Layout       LayoutHint `json:"layout" yaml:"layout"`
	Visual       Visual     `json:"visual" yaml:"visual"`
	Animation    *Animation `json:"animation,omitempty" yaml:"animation,omitempty"`
}

// Sources groups style facts by the styling system they were read from
type Sources struct {
	TailwindLike TailwindLike `json:"tailwindLike" yaml:"tailwindLike"`
}

// TailwindLike holds utility-class derived facts
type TailwindLike struct {
	Categories  CategoryMap `json:"categories" yaml:"categories"`
	Breakpoints []string    `json:"breakpoints" yaml:"breakpoints"`
	ClassCount  int         `json:"classCount" yaml:"classCount"`
}

// LayoutHint is a coarse layout classification
type LayoutHint struct {
	Type            string `json:"type" yaml:"type"`
	Cols            string `json:"cols,omitempty" yaml:"cols,omitempty"`
	HasFeatureCards bool   `json:"hasFeatureCards,omitempty" yaml:"hasFeatureCards,omitempty"`
}

// Visual lists the most prominent visual tokens
type Visual struct {
	Colors     []string `json:"colors" yaml:"colors"`
	Spacing    []string `json:"spacing" yaml:"spacing"`
	Radius     string   `json:"radius" yaml:"radius"`
	Typography []string `json:"typography" yaml:"typography"`
}

// Animation describes detected motion usage
type Animation struct {
	Library string `json:"library" yaml:"library"`
	Type    string `json:"type" yaml:"type"`
}

// Synthesize combines classifier output into style metadata; an empty token set still
// yields a fully populated structure with default values.
func Synthesize(tokens []string, categories CategoryMap, breakpoints []string, text string) *Metadata {
	if categories == nil {
		categories = CategoryMap{}
	}
	if breakpoints == nil {
		breakpoints = []string{}
	}
	distinct := 0
	seen := map[string]bool{}
	for _, token := range tokens {
		if token != "" && !seen[token] {
			seen[token] = true
			distinct++
		}
	}
	return &Metadata{
		StyleSources: Sources{TailwindLike: TailwindLike{
			Categories:  categories,
			Breakpoints: breakpoints,
			ClassCount:  distinct,
		}},
		Layout:    layoutHint(tokens),
		Visual:    visual(tokens, categories),
		Animation: animation(tokens, text),
	}
}

// Analyze runs tokenization, classification and synthesis over text.
// It returns nil metadata when text carries no class tokens.
func Analyze(text string, classifier *Classifier) (*Metadata, []string) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil, tokens
	}
	if classifier == nil {
		classifier = defaultClassifier
	}
	return Synthesize(tokens, classifier.Classify(tokens), Breakpoints(tokens), text), tokens
}

func layoutHint(tokens []string) LayoutHint {
	hasGrid, hasFlex := false, false
	for _, token := range tokens {
		utility := Utility(token)
		switch {
		case utility == "grid", utility == "inline-grid", strings.HasPrefix(utility, "grid-"):
			hasGrid = true
		case utility == "flex", utility == "inline-flex", strings.HasPrefix(utility, "flex-"):
			hasFlex = true
		}
	}
	switch {
	case hasGrid:
		return LayoutHint{Type: LayoutGrid, Cols: GridColumns}
	case hasFlex:
		return LayoutHint{Type: LayoutFlex, HasFeatureCards: true}
	}
	return LayoutHint{Type: LayoutBlock}
}

func visual(tokens []string, categories CategoryMap) Visual {
	ret := Visual{
		Colors:     []string{},
		Spacing:    limited(categories[Spacing]),
		Radius:     DefaultRadius,
		Typography: limited(categories[Typography]),
	}
	seen := map[string]bool{}
	for _, token := range categories[Colors] {
		if len(ret.Colors) == VisualLimit {
			break
		}
		match := colorRoleExpr.FindStringSubmatch(Utility(token))
		if match == nil || seen[match[1]] {
			continue
		}
		seen[match[1]] = true
		ret.Colors = append(ret.Colors, match[1])
	}
	for _, token := range tokens {
		utility := Utility(token)
		if utility == "rounded" {
			ret.Radius = "default"
			break
		}
		if strings.HasPrefix(utility, "rounded-") {
			ret.Radius = strings.TrimPrefix(utility, "rounded-")
			break
		}
	}
	return ret
}

func limited(tokens []string) []string {
	ret := []string{}
	seen := map[string]bool{}
	for _, token := range tokens {
		if len(ret) == VisualLimit {
			break
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		ret = append(ret, token)
	}
	return ret
}

func animation(tokens []string, text string) *Animation {
	library := ""
	if match := motionLibraries.FindStringSubmatch(text); match != nil {
		library = match[1]
	}
	animated := false
	animationType := ""
	for _, token := range tokens {
		utility := Utility(token)
		if strings.HasPrefix(utility, "animate-") {
			animated = true
			if animationType == "" {
				animationType = strings.TrimPrefix(utility, "animate-")
			}
			continue
		}
		if strings.HasPrefix(utility, "transition") {
			animated = true
		}
	}
	if !animated && library == "" {
		return nil
	}
	ret := &Animation{Library: UtilityLibrary, Type: animationType}
	if library != "" {
		ret.Library = library
	}
	if ret.Type == "" {
		ret.Type = DefaultAnimation
		if library != "" && !animated {
			ret.Type = "motion"
		}
	}
	return ret
}
