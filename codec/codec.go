// Package codec parses and serializes structured data by file extension:
// YAML, JSON, TOML, and Markdown documents with frontmatter.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// UnsupportedFormatCode is the text code attached to format errors.
const UnsupportedFormatCode = "UNSUPPORTED_FORMAT"

// Document is a parsed frontmatter document: structured metadata (nil when
// the source had no frontmatter block) and the body text.
type Document struct {
	FrontMatter any
	Body        string
}

// ParseByPath decodes data according to the file extension of path. The
// extension match is case-sensitive, as found: yaml/yml, json, toml, and
// md/mdx/markdown (frontmatter documents) are supported. Any other
// extension yields a format error naming the extension and the path.
func ParseByPath(data []byte, path string) (any, error) {
	switch ext := extensionOf(path); ext {
	case "yaml", "yml":
		out, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("codec: parse yaml %s: %w", path, err)
		}
		return out, nil
	case "json":
		var out any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("codec: parse json %s: %w", path, err)
		}
		return out, nil
	case "toml":
		out := map[string]any{}
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("codec: parse toml %s: %w", path, err)
		}
		return out, nil
	case "md", "mdx", "markdown":
		doc, err := ParseMarkdown(string(data))
		if err != nil {
			return nil, fmt.Errorf("codec: parse markdown %s: %w", path, err)
		}
		return doc, nil
	default:
		return nil, unsupportedFormat(ext, path)
	}
}

// StringifyByPath encodes value according to the file extension of path,
// the inverse of ParseByPath. Markdown documents are reassembled with YAML
// frontmatter delimiters.
func StringifyByPath(value any, path string) ([]byte, error) {
	switch ext := extensionOf(path); ext {
	case "yaml", "yml":
		out, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("codec: stringify yaml %s: %w", path, err)
		}
		return out, nil
	case "json":
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("codec: stringify json %s: %w", path, err)
		}
		return out, nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(value); err != nil {
			return nil, fmt.Errorf("codec: stringify toml %s: %w", path, err)
		}
		return buf.Bytes(), nil
	case "md", "mdx", "markdown":
		doc, err := toDocument(value)
		if err != nil {
			return nil, fmt.Errorf("codec: stringify markdown %s: %w", path, err)
		}
		out, err := StringifyMarkdown(doc)
		if err != nil {
			return nil, fmt.Errorf("codec: stringify markdown %s: %w", path, err)
		}
		return out, nil
	default:
		return nil, unsupportedFormat(ext, path)
	}
}

// StringifyMarkdown reassembles a frontmatter document as
// "---\n<yaml frontmatter>---\n<body>".
func StringifyMarkdown(doc *Document) ([]byte, error) {
	meta, err := yaml.Marshal(doc.FrontMatter)
	if err != nil {
		return nil, fmt.Errorf("codec: stringify frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	buf.WriteString(doc.Body)
	return buf.Bytes(), nil
}

// toDocument accepts either a *Document or a map carrying the
// "frontmatter" and "markdown" keys.
func toDocument(value any) (*Document, error) {
	switch v := value.(type) {
	case *Document:
		return v, nil
	case Document:
		return &v, nil
	case map[string]any:
		doc := &Document{FrontMatter: v["frontmatter"]}
		if body, ok := v["markdown"].(string); ok {
			doc.Body = body
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("codec: value %T is not a frontmatter document", value)
	}
}

// extensionOf strips the leading dot; the extension is otherwise used as
// found, so "YAML" does not match "yaml".
func extensionOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func unsupportedFormat(ext, path string) error {
	return goerrors.New(
		fmt.Sprintf("codec: unsupported file format %q for %s", ext, path),
		goerrors.CategoryValidation,
	).WithTextCode(UnsupportedFormatCode)
}

// IsUnsupportedFormat reports whether err is a format error produced by this
// package.
func IsUnsupportedFormat(err error) bool {
	var coded *goerrors.Error
	if !errors.As(err, &coded) {
		return false
	}
	return coded.TextCode == UnsupportedFormatCode
}
