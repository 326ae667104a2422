// Package naming derives canonical local filenames from document URLs and
// normalizes stored names to lowercase.
//
// Derivation is a pure function: the same URL always yields the same
// filename. That determinism is what makes store existence a valid dedup
// check across runs.
package naming

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"
)

// Derive maps a URL to its canonical filename: the final path segment,
// percent-decoded, spaces replaced with hyphens, folded to lowercase.
// Scheme, host and query are discarded.
func Derive(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("unparsable url: %w", err)
	}

	// Split on the escaped form so an encoded slash inside the filename
	// does not shift the segment boundary, then decode the segment itself.
	segment := path.Base(u.EscapedPath())
	if segment == "." || segment == "/" || segment == "" {
		return "", fmt.Errorf("url %q has no filename segment", rawURL)
	}

	decoded, err := url.PathUnescape(segment)
	if err != nil {
		decoded = segment
	}

	decoded = strings.ReplaceAll(decoded, " ", "-")
	return strings.ToLower(decoded), nil
}

// HasUpper reports whether the basename of key contains any uppercase
// character.
func HasUpper(key string) bool {
	base := path.Base(key)
	for _, r := range base {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Lowered returns key with its basename folded to lowercase, directory
// part unchanged.
func Lowered(key string) string {
	dir, base := path.Split(key)
	return dir + strings.ToLower(base)
}
