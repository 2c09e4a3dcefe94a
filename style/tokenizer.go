package style

import (
	"regexp"
	"strings"
)

var (
	classAttrExpr   = regexp.MustCompile("\\b(?:className|class)\\s*=\\s*(?:\"([^\"]*)\"|'([^']*)'|\\{\\s*(?:\"([^\"]*)\"|'([^']*)'|`([^`]*)`)\\s*\\})")
	placeholderExpr = regexp.MustCompile(`\$\{[^}]*\}`)
)

// Tokenize extracts distinct utility class tokens from styling attributes found in text,
// ordered by first occurrence. Matching is textual, so attribute-like substrings in
// comments or unrelated literals are picked up too.
func Tokenize(text string) []string {
	var tokens []string
	seen := map[string]bool{}
	for _, match := range classAttrExpr.FindAllStringSubmatch(text, -1) {
		value := ""
		for _, group := range match[1:] {
			if group != "" {
				value = group
				break
			}
		}
		value = placeholderExpr.ReplaceAllString(value, " ")
		for _, token := range strings.Fields(value) {
			if token == "" || seen[token] {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}
