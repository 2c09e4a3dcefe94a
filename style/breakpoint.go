package style

import (
	"regexp"
	"sort"
)

var breakpointExpr = regexp.MustCompile(`^(sm|md|lg|xl|2xl|3xl):`)

// Breakpoints returns the distinct responsive prefixes used by tokens, sorted ascending
func Breakpoints(tokens []string) []string {
	seen := map[string]bool{}
	result := []string{}
	for _, token := range tokens {
		match := breakpointExpr.FindStringSubmatch(token)
		if match == nil || seen[match[1]] {
			continue
		}
		seen[match[1]] = true
		result = append(result, match[1])
	}
	sort.Strings(result)
	return result
}
