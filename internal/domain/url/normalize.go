// Package url normalizes the addresses tabs are opened with.
package url

import (
	"net"
	"net/url"
	"strings"
)

// schemes that are kept as typed.
var knownSchemes = []string{"http://", "https://", "file://", "about:"}

// Normalize turns what a user typed into a loadable address. Host-like input
// gets https://, localhost gets http://. Anything else is returned trimmed.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || hasKnownScheme(input) {
		return input
	}

	if isLocalhost(input) {
		return "http://" + input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL reports whether input is an address rather than free text.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasKnownScheme(input) {
		return true
	}
	return isLocalhost(input) || (strings.Contains(input, ".") && !strings.ContainsAny(input, " \t"))
}

// Host returns the host of rawURL without a leading "www.", or "" when it
// has none.
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func hasKnownScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, s := range knownSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}

func isLocalhost(input string) bool {
	host := input
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host == "localhost"
}
