package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"https domain", "https://example.com", true},
		{"http with path", "http://example.com/a/b?c=d", true},
		{"query only", "https://example.com?q=1", true},
		{"trailing slash", "https://example.com/", true},
		{"subdomains", "https://a.b-c.example.co.uk", true},
		{"trailing dot", "ftps://example.org.", true},
		{"ftp", "ftp://files.example.net/pub", true},
		{"upper case", "HTTPS://EXAMPLE.COM/X", true},
		{"localhost with port", "http://localhost:8080/health", true},
		{"ipv4", "http://127.0.0.1", true},
		{"ipv4 out of range", "http://999.300.1.1:65536", true},
		{"long port", "http://example.com:123456789", true},

		{"no scheme", "not-a-url", false},
		{"bare domain", "example.com", false},
		{"unknown scheme", "gopher://example.com", false},
		{"mailto", "mailto:user@example.com", false},
		{"no tld", "http://example", false},
		{"numeric tld", "http://example.c0m", false},
		{"single letter tld", "http://example.c", false},
		{"leading hyphen", "http://-example.com", false},
		{"trailing hyphen", "http://example-.com", false},
		{"short ipv4", "http://1.2.3", false},
		{"space in path", "https://example.com/a b", false},
		{"trailing newline", "https://example.com\n", false},
		{"empty", "", false},
		{"label too long", "http://" + strings.Repeat("a", 64) + ".com", false},
		{"label max length", "http://" + strings.Repeat("a", 63) + ".com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateURL(tt.input), tt.input)
		})
	}
}

func TestNewLink(t *testing.T) {
	link, err := NewLink("key", "abc123", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, &Link{APIKey: "key", ShortLinkID: "abc123", URL: "https://example.com"}, link)
}

func TestNewLink_InvalidURL(t *testing.T) {
	link, err := NewLink("key", "abc123", "not-a-url")
	assert.Nil(t, link)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "URL is not in correct format!", vErr.Message)
}
