package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "full url", input: "https://Example.COM/path?q=1", want: "example.com"},
		{name: "url with port", input: "http://example.com:8080/x", want: "example.com"},
		{name: "origin", input: "https://news.example.org", want: "news.example.org"},
		{name: "bare host", input: "Example.com", want: "example.com"},
		{name: "bare host with port", input: "example.com:3000", want: "example.com"},
		{name: "bare host with path", input: "example.com/a/b", want: "example.com"},
		{name: "userinfo stripped", input: "https://user:pw@example.com/", want: "example.com"},
		{name: "trailing dot", input: "https://example.com./", want: "example.com"},
		{name: "ipv6 literal", input: "http://[::1]:8080/", want: "::1"},
		{name: "idn host", input: "https://bücher.example/", want: "xn--bcher-kva.example"},
		{name: "malformed scheme falls back", input: "ht!tp://Bad.Example:99/x", want: "bad.example"},
		{name: "whitespace trimmed", input: "  example.com  ", want: "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSite(tt.input))
		})
	}
}

func TestNormalizeSite_Idempotent(t *testing.T) {
	inputs := []string{"https://A.b.C:1/x", "example.com", "ht!tp://Bad.Example:99/x"}
	for _, in := range inputs {
		once := NormalizeSite(in)
		assert.Equal(t, once, NormalizeSite(once), in)
	}
}

func TestIsInternalPage(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"chrome://settings", true},
		{"chrome-extension://abc/options.html", true},
		{"moz-extension://abc/popup.html", true},
		{"about:blank", true},
		{"legible://popup", true},
		{"https://example.com", false},
		{"http://localhost:8080", false},
		{"localhost:8080", false},
		{"example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsInternalPage(tt.url, nil), tt.url)
	}
}

func TestIsInternalPage_CustomSchemes(t *testing.T) {
	assert.True(t, IsInternalPage("vivaldi://flags", []string{"vivaldi"}))
	assert.False(t, IsInternalPage("chrome://flags", []string{"vivaldi"}))
}
