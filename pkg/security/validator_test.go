package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectError bool
		expected    string
	}{
		{
			name:     "empty query",
			query:    "",
			expected: "",
		},
		{
			name:     "plain name",
			query:    "ann",
			expected: "ann",
		},
		{
			name:     "email fragment",
			query:    "bo@example.com",
			expected: "bo@example.com",
		},
		{
			name:     "query with spaces trimmed",
			query:    "  jane doe  ",
			expected: "jane doe",
		},
		{
			name:        "too long",
			query:       strings.Repeat("a", MaxSearchQueryLength+1),
			expectError: true,
		},
		{
			name:        "union injection",
			query:       "ann UNION SELECT * FROM users",
			expectError: true,
		},
		{
			name:        "or condition injection",
			query:       "ann OR 1=1",
			expectError: true,
		},
		{
			name:        "comment injection",
			query:       "ann--",
			expectError: true,
		},
		{
			name:        "script tag",
			query:       "<script>alert(1)</script>",
			expectError: true,
		},
		{
			name:        "disallowed characters",
			query:       "ann;drop",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSearchQuery(tt.query)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeSearchString(t *testing.T) {
	assert.Equal(t, "", SanitizeSearchString(""))
	assert.Equal(t, "ann", SanitizeSearchString("ann"))
	assert.Equal(t, "50\\%", SanitizeSearchString("50%"))
	assert.Equal(t, "a\\_b", SanitizeSearchString("a_b"))
}
