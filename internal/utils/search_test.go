package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ErkinN/go-crm/internal/utils"
)

func TestSanitizeSearchTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips punctuation", "Jo-hn!!", "John"},
		{"keeps letters digits and spaces", "Mary Jane 42", "Mary Jane 42"},
		{"strips symbols between words", "a;b'c--d", "abcd"},
		{"strips non-ascii letters", "Jöhn", "Jhn"},
		{"empty input", "", ""},
		{"only special characters", "%_;--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.SanitizeSearchTerm(tt.input))
		})
	}
}
