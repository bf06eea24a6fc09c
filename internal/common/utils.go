package common

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

	// Must start with http:// or https:// followed by a plausible domain.
	urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?([/?#][^\s]*)?$`)
)

// ErrEmptyURL is returned by ValidateURL for blank input.
var ErrEmptyURL = errors.New("url is required")

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// "https://example.com," -> "https://example.com"
	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	// "(https://example.com" -> "https://example.com"
	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// ValidateURL sanitizes rawURL and checks that it is an absolute http(s) URL.
// It returns the sanitized form.
func ValidateURL(rawURL string) (string, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return "", ErrEmptyURL
	}

	// Literal spaces must be pre-encoded as %20
	if strings.Contains(cleaned, " ") {
		return "", fmt.Errorf("invalid url %q: contains spaces", rawURL)
	}
	if !urlPattern.MatchString(cleaned) {
		return "", fmt.Errorf("invalid url %q: must start with http:// or https:// and name a host", rawURL)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid url %q: unsupported scheme %s", rawURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	// "https://example.com{}" should fail
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return "", fmt.Errorf("invalid url %q: malformed host", rawURL)
	}
	return cleaned, nil
}

// SanitizeAndValidateURLs validates every URL and returns (sanitized URLs, invalid URLs).
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalidURLs []string
	for _, rawURL := range urls {
		cleaned, err := ValidateURL(rawURL)
		if err != nil {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}
		sanitized = append(sanitized, cleaned)
	}
	return sanitized, invalidURLs
}
