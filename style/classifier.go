package style

// CategoryMap maps a category to the tokens assigned to it, in token order
type CategoryMap map[Category][]string

// Len returns the number of tokens across all categories
func (m CategoryMap) Len() int {
	count := 0
	for _, tokens := range m {
		count += len(tokens)
	}
	return count
}

// Lookup returns the category holding token
func (m CategoryMap) Lookup(token string) (Category, bool) {
	for category, tokens := range m {
		for _, candidate := range tokens {
			if candidate == token {
				return category, true
			}
		}
	}
	return "", false
}

// Classifier assigns class tokens to categories using an ordered rule table
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier; nil rules fall back to DefaultRules
func NewClassifier(rules Rules) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns the classifier rule table
func (c *Classifier) Rules() Rules {
	return c.rules
}

// CategoryOf returns the category of the first rule matching token, or Other
func (c *Classifier) CategoryOf(token string) Category {
	utility := Utility(token)
	for _, rule := range c.rules {
		if rule.Match(utility) {
			return rule.Category
		}
	}
	return Other
}

// Classify places every distinct token in exactly one category; empty categories are omitted
func (c *Classifier) Classify(tokens []string) CategoryMap {
	result := CategoryMap{}
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		category := c.CategoryOf(token)
		result[category] = append(result[category], token)
	}
	return result
}

var defaultClassifier = NewClassifier(nil)

// Classify classifies tokens with the default rule table
func Classify(tokens []string) CategoryMap {
	return defaultClassifier.Classify(tokens)
}
