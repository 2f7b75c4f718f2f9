// Package id generates prefixed identifiers for catalog builds and requests.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes in use.
const (
	PrefixCatalog = "cat"
	PrefixRequest = "req"
)

// requestIDLength keeps request IDs short enough for log lines.
const requestIDLength = 12

// Generate returns "prefix-<nanoid>" using the default 21-character
// URL-safe alphabet.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Catalog returns a new catalog build ID.
func Catalog() string {
	return MustGenerate(PrefixCatalog)
}

// Request returns a short request ID for log correlation.
// Falls back to a full-length ID if the short form cannot be generated.
func Request() string {
	n, err := gonanoid.New(requestIDLength)
	if err != nil {
		return MustGenerate(PrefixRequest)
	}
	return PrefixRequest + "-" + n
}
