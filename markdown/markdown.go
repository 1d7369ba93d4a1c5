// Package markdown provides typed frontmatter decoding and HTML rendering
// for markdown documents, on top of the raw splitting the codec package
// offers.
package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
)

// Decode extracts frontmatter from source into v (YAML, TOML, and JSON
// delimiter styles are auto-detected) and returns the body without the
// frontmatter block. Sources without frontmatter decode nothing into v and
// return the full body.
func Decode(source []byte, v any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(source), v)
	if err != nil {
		return nil, fmt.Errorf("markdown: parse frontmatter: %w", err)
	}
	return body, nil
}

// SlugFromPath derives a URL-safe slug from the file name of path, without
// its extension. Used as the fallback identity for documents whose
// frontmatter carries no explicit slug.
func SlugFromPath(path string) (string, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	normalized, err := slug.Normalize(base)
	if err != nil {
		return "", fmt.Errorf("markdown: slug for %s: %w", path, err)
	}
	return normalized, nil
}
