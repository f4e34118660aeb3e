package entity

import (
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS via
// oversized feed payloads.
const maxURLLength = 2048

// IsValidURL reports whether rawURL is a syntactically valid http or https URL
// with a host. Anything else, including javascript: and ftp: schemes, is rejected
// so unsafe values never reach storage or the rendering layer.
func IsValidURL(rawURL string) bool {
	if rawURL == "" || len(rawURL) > maxURLLength {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// IsValidFeedURL reports whether rawURL is a valid http/https URL whose hostname
// equals, or is a subdomain of, an entry in allowedDomains. An empty allowlist
// accepts every valid URL; that mode exists for permissive and test configurations.
func IsValidFeedURL(rawURL string, allowedDomains []string) bool {
	if !IsValidURL(rawURL) {
		return false
	}
	if len(allowedDomains) == 0 {
		return true
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	hostname := strings.ToLower(parsed.Hostname())

	for _, domain := range allowedDomains {
		normalized := strings.ToLower(strings.TrimSpace(domain))
		if normalized == "" {
			continue
		}
		if hostname == normalized || strings.HasSuffix(hostname, "."+normalized) {
			return true
		}
	}
	return false
}

// isBlank reports whether s is empty after trimming whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
