package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain markdown untouched",
			input:    "# Hello\n\nSome *markdown* content.",
			expected: "# Hello\n\nSome *markdown* content.",
		},
		{
			name:     "script tag removed",
			input:    "before<script>alert('x')</script>after",
			expected: "beforeafter",
		},
		{
			name:     "script tag with attributes removed",
			input:    `<script type="text/javascript">alert('x')</script>text`,
			expected: "text",
		},
		{
			name:     "mixed case script removed",
			input:    "<SCRIPT>alert('x')</SCRIPT>text",
			expected: "text",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeMarkdown(tc.input))
		})
	}
}
