package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{name: "simple title", title: "Hello World", expected: "hello-world"},
		{name: "uppercase folded", title: "HELLO WORLD", expected: "hello-world"},
		{name: "punctuation stripped", title: "Hello, World!", expected: "hello-world"},
		{name: "whitespace collapsed", title: "Hello   \t World", expected: "hello-world"},
		{name: "diacritics folded", title: "Crème Brûlée à Paris", expected: "creme-brulee-a-paris"},
		{name: "leading and trailing separators trimmed", title: "  --Hello--  ", expected: "hello"},
		{name: "numbers kept", title: "Top 10 Posts of 2026", expected: "top-10-posts-of-2026"},
		{name: "punctuation only falls back", title: "!!!???", expected: "post"},
		{name: "empty title falls back", title: "", expected: "post"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizeSlug(tc.title))
		})
	}
}
