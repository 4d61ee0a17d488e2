// Package url provides site identifier normalization.
package url

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultInternalSchemes are schemes whose pages never receive styles.
var DefaultInternalSchemes = []string{"chrome", "chrome-extension", "moz-extension", "about", "legible"}

// NormalizeSite turns a URL, origin or bare host into a site identifier:
// lowercase hostname with no scheme, port or path. Input that does not parse
// as a URL falls back to splitting on "/" and ":".
func NormalizeSite(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	host := ""
	if strings.Contains(input, "://") {
		if u, err := url.Parse(input); err == nil {
			host = u.Hostname()
		}
	}
	if host == "" {
		host = fallbackHost(input)
	}

	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		host = ascii
	}
	return host
}

// fallbackHost mirrors a browser's best effort on malformed origins:
// take the authority part, then drop any port.
func fallbackHost(input string) string {
	s := input
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 0 {
			return s[1:end]
		}
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return s
}

// Scheme returns the lowercase scheme of rawURL, or "" when it has none.
func Scheme(rawURL string) string {
	i := strings.Index(rawURL, ":")
	if i <= 0 {
		return ""
	}
	scheme := strings.ToLower(rawURL[:i])
	for _, r := range scheme {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return ""
		}
	}
	return scheme
}

// IsInternalPage reports whether rawURL belongs to the browser or to this
// application and must be skipped during propagation.
func IsInternalPage(rawURL string, internalSchemes []string) bool {
	if internalSchemes == nil {
		internalSchemes = DefaultInternalSchemes
	}
	scheme := Scheme(rawURL)
	if scheme == "" {
		return false
	}
	return slices.Contains(internalSchemes, scheme)
}
