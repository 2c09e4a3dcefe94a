package style

import (
	"regexp"
	"strings"
)

// Category is a semantic style bucket a class token is assigned to
type Category string

const (
	Layout      Category = "layout"
	Spacing     Category = "spacing"
	Colors      Category = "colors"
	Typography  Category = "typography"
	Borders     Category = "borders"
	Effects     Category = "effects"
	Sizing      Category = "sizing"
	Transitions Category = "transitions"
	Other       Category = "other"
)

// Matcher reports whether a class token belongs to a category
type Matcher func(token string) bool

// Rule pairs a category with its matcher
type Rule struct {
	Category Category
	Match    Matcher
}

// Rules is an ordered rule table; the first matching rule assigns the category
type Rules []Rule

const colorNames = `(?:transparent|current|inherit|black|white|` +
	`(?:slate|gray|grey|zinc|neutral|stone|red|orange|amber|yellow|lime|green|emerald|teal|cyan|sky|blue|indigo|violet|purple|fuchsia|pink|rose)(?:-\d{2,3})?|` +
	`primary|secondary|accent|muted|background|foreground|destructive|card|popover|input|ring)(?:-foreground)?(?:/\d{1,3})?`

var (
	colorExpr      = regexp.MustCompile(`^(?:bg|text|border|border-[trblxy]|from|via|to|ring|ring-offset|fill|stroke|divide|outline|decoration|placeholder|caret|accent|shadow)-` + colorNames + `$`)
	spacingExpr    = regexp.MustCompile(`^-?(?:p|px|py|pt|pr|pb|pl|ps|pe|m|mx|my|mt|mr|mb|ml|ms|me|gap|gap-x|gap-y|space-x|space-y)-`)
	layoutExpr     = regexp.MustCompile(`^(?:flex|grid|block|inline|inline-block|inline-flex|inline-grid|hidden|contents|table|flow-root|container|absolute|relative|fixed|sticky|static|isolate|grow|shrink)$|^-?(?:flex|grid|col|row|items|justify|content|self|place|order|inset|top|right|bottom|left|start|end|z|overflow|overscroll|float|clear|object|auto-cols|auto-rows|basis|grow|shrink|columns|aspect)-`)
	typographyExpr = regexp.MustCompile(`^text-(?:xs|sm|base|lg|xl|\dxl|left|center|right|justify|start|end|ellipsis|clip|wrap|nowrap|balance|pretty)$|^(?:font|leading|tracking|whitespace|break|list|indent|align|line-clamp|decoration|underline-offset)-|^(?:uppercase|lowercase|capitalize|normal-case|italic|not-italic|underline|overline|line-through|no-underline|truncate|antialiased|subpixel-antialiased)$`)
	bordersExpr    = regexp.MustCompile(`^(?:rounded|border|ring|outline|divide)(?:-|$)`)
	effectsExpr    = regexp.MustCompile(`^(?:shadow|opacity|blur|backdrop|mix-blend|bg-blend|drop-shadow|brightness|contrast|grayscale|invert|saturate|sepia|hue-rotate|filter|bg-gradient|bg-clip|bg-opacity)(?:-|$)`)
	sizingExpr     = regexp.MustCompile(`^(?:w|h|min-w|min-h|max-w|max-h|size)-`)
	transitionExpr = regexp.MustCompile(`^(?:transition|duration|ease|delay|animate|transform|scale|rotate|translate|skew|origin|will-change)(?:-|$)`)
)

// DefaultRules returns the category rule table in priority order:
// colors, spacing, layout, typography, borders, effects, sizing, transitions
func DefaultRules() Rules {
	return Rules{
		{Category: Colors, Match: colorExpr.MatchString},
		{Category: Spacing, Match: spacingExpr.MatchString},
		{Category: Layout, Match: layoutExpr.MatchString},
		{Category: Typography, Match: typographyExpr.MatchString},
		{Category: Borders, Match: bordersExpr.MatchString},
		{Category: Effects, Match: effectsExpr.MatchString},
		{Category: Sizing, Match: sizingExpr.MatchString},
		{Category: Transitions, Match: transitionExpr.MatchString},
	}
}

// Categories returns category names in rule order followed by Other
func (r Rules) Categories() []Category {
	ret := make([]Category, 0, len(r)+1)
	for _, rule := range r {
		ret = append(ret, rule.Category)
	}
	return append(ret, Other)
}

// Utility strips variant prefixes (md:, hover:, dark:), the important marker and the negative sign from a token
func Utility(token string) string {
	if idx := strings.LastIndex(token, ":"); idx != -1 {
		token = token[idx+1:]
	}
	token = strings.TrimPrefix(token, "!")
	return strings.TrimPrefix(token, "-")
}
