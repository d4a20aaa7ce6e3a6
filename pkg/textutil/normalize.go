// Package textutil canonicalizes headlines and URLs and derives the
// content fingerprints used as join keys across feeds and across runs.
// Everything here is pure: same input, same output, always.
package textutil

import (
	"crypto/sha256"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CanonicalizeURL trims and entity-unescapes a raw link. Scheme and host
// are lowercased and a trailing slash is dropped so that trivially
// different spellings of the same link fingerprint identically.
func CanonicalizeURL(raw string) string {
	s := strings.TrimSpace(html.UnescapeString(raw))
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(s, "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// Domain extracts the lowercased host of a link, without a www. prefix.
func Domain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// StripMarkup removes tags and entities from feed HTML and collapses
// whitespace, leaving plain text.
func StripMarkup(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Fingerprint hashes a canonicalized URL into a 16-hex-char identifier.
func Fingerprint(rawURL string) string {
	return shortHash(CanonicalizeURL(rawURL))
}

// StoryKey is the content-addressed identity of a story: a stable hash of
// the canonical source URL and the normalized headline. It is assigned
// once and never recomputed for an item.
func StoryKey(rawURL, headline string) string {
	normalized := CanonicalizeURL(rawURL) + "\n" + strings.ToLower(StripMarkup(headline))
	return shortHash(normalized)
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum)[:16]
}
