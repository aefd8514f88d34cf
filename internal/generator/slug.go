package generator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SlugLength is the length of generated slugs.
const SlugLength = 7

// NewSlug returns a cryptographically random, URL-safe slug of exactly the
// given length. The alphabet is base64url (A-Z, a-z, 0-9, '-', '_'), 64
// symbols, so every character matches [A-Za-z0-9_-]. Safe for concurrent use.
func NewSlug(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid slug length %d", length)
	}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	slug := base64.RawURLEncoding.EncodeToString(b)
	return slug[:length], nil
}
