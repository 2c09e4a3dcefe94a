package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	var testCases = []struct {
		description string
		tokens      []string
		expect      CategoryMap
	}{
		{
			description: "basic card",
			tokens:      []string{"flex", "items-center", "bg-blue-500", "text-white", "rounded-xl"},
			expect: CategoryMap{
				Layout:  {"flex", "items-center"},
				Colors:  {"bg-blue-500", "text-white"},
				Borders: {"rounded-xl"},
			},
		},
		{
			description: "all categories with variants",
			tokens: []string{
				"md:grid", "hover:bg-primary", "-mt-4", "text-lg", "font-semibold", "border-2",
				"shadow-lg", "w-full", "max-w-md", "transition-all", "duration-300", "animate-spin", "sr-only",
			},
			expect: CategoryMap{
				Layout:      {"md:grid"},
				Colors:      {"hover:bg-primary"},
				Spacing:     {"-mt-4"},
				Typography:  {"text-lg", "font-semibold"},
				Borders:     {"border-2"},
				Effects:     {"shadow-lg"},
				Sizing:      {"w-full", "max-w-md"},
				Transitions: {"transition-all", "duration-300", "animate-spin"},
				Other:       {"sr-only"},
			},
		},
		{
			description: "color wins over borders and typography",
			tokens:      []string{"border-red-500", "text-slate-900/80", "ring-offset-white"},
			expect: CategoryMap{
				Colors: {"border-red-500", "text-slate-900/80", "ring-offset-white"},
			},
		},
		{
			description: "duplicates are placed once",
			tokens:      []string{"p-2", "p-2", ""},
			expect:      CategoryMap{Spacing: {"p-2"}},
		},
		{
			description: "empty set",
			tokens:      nil,
			expect:      CategoryMap{},
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Classify(testCase.tokens), testCase.description)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	tokens := Tokenize(`<div className="flex gap-2 px-4 bg-white text-sm rounded shadow w-8 ease-in custom">`)
	first := Classify(tokens)
	second := Classify(tokens)
	assert.Equal(t, first, second)
}

func TestClassify_TotalAndDisjoint(t *testing.T) {
	tokens := strings.Fields("flex grid p-1 m-1 bg-red-100 text-xs font-bold border rounded-md opacity-50 h-4 delay-75 lg:hidden sr-only peer")
	categories := Classify(tokens)
	assert.Equal(t, len(tokens), categories.Len())
	for _, token := range tokens {
		count := 0
		for _, assigned := range categories {
			for _, candidate := range assigned {
				if candidate == token {
					count++
				}
			}
		}
		assert.Equal(t, 1, count, token)
	}
	for category, assigned := range categories {
		assert.NotEmpty(t, assigned, string(category))
	}
}

func TestClassifier_RuleOrder(t *testing.T) {
	always := func(string) bool { return true }
	classifier := NewClassifier(Rules{
		{Category: Typography, Match: func(token string) bool { return strings.HasPrefix(token, "text-") }},
		{Category: Colors, Match: always},
	})
	categories := classifier.Classify([]string{"text-white", "bg-white"})
	assert.Equal(t, CategoryMap{Typography: {"text-white"}, Colors: {"bg-white"}}, categories)

	category, ok := categories.Lookup("bg-white")
	assert.True(t, ok)
	assert.Equal(t, Colors, category)
}

func TestRules_Categories(t *testing.T) {
	assert.Equal(t,
		[]Category{Colors, Spacing, Layout, Typography, Borders, Effects, Sizing, Transitions, Other},
		DefaultRules().Categories())
}
