package codec

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseByPathYAML(t *testing.T) {
	value, err := ParseByPath([]byte("title: Hello\ncount: 2\n"), "config.yaml")
	if err != nil {
		t.Fatalf("ParseByPath: %v", err)
	}
	want := map[string]any{"title": "Hello", "count": 2}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("unexpected value: %#v", value)
	}
}

func TestParseByPathYAMLKeepsDateStrings(t *testing.T) {
	value, err := ParseByPath([]byte("date: 2020-01-02\nupdated: 2020-01-02T15:04:05Z\n"), "doc.yaml")
	if err != nil {
		t.Fatalf("ParseByPath: %v", err)
	}
	want := map[string]any{
		"date":    "2020-01-02",
		"updated": "2020-01-02T15:04:05Z",
	}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("timestamp-shaped scalars should stay strings: %#v", value)
	}
}

func TestParseByPathYAMLScalarTypes(t *testing.T) {
	input := "count: 3\nratio: 0.5\nok: true\nname: hi\nmissing: null\nitems:\n  - 1\n  - two\n"
	value, err := ParseByPath([]byte(input), "doc.yml")
	if err != nil {
		t.Fatalf("ParseByPath: %v", err)
	}
	want := map[string]any{
		"count":   3,
		"ratio":   0.5,
		"ok":      true,
		"name":    "hi",
		"missing": nil,
		"items":   []any{1, "two"},
	}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("unexpected value: %#v", value)
	}
}

func TestParseByPathJSON(t *testing.T) {
	value, err := ParseByPath([]byte(`{"a": [1, 2]}`), "data.json")
	if err != nil {
		t.Fatalf("ParseByPath: %v", err)
	}
	want := map[string]any{"a": []any{float64(1), float64(2)}}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("unexpected value: %#v", value)
	}
}

func TestParseByPathTOML(t *testing.T) {
	value, err := ParseByPath([]byte("title = \"Hello\"\n"), "config.toml")
	if err != nil {
		t.Fatalf("ParseByPath: %v", err)
	}
	out, ok := value.(map[string]any)
	if !ok || out["title"] != "Hello" {
		t.Fatalf("unexpected value: %#v", value)
	}
}

func TestParseByPathUnsupportedExtension(t *testing.T) {
	_, err := ParseByPath([]byte("x"), "settings.ini")
	if err == nil {
		t.Fatal("expected a format error")
	}
	if !IsUnsupportedFormat(err) {
		t.Fatalf("expected unsupported-format error, got %v", err)
	}
	if !strings.Contains(err.Error(), "ini") || !strings.Contains(err.Error(), "settings.ini") {
		t.Fatalf("error should name extension and path: %v", err)
	}
}

func TestParseByPathExtensionIsCaseSensitive(t *testing.T) {
	if _, err := ParseByPath([]byte("a: 1\n"), "config.YAML"); !IsUnsupportedFormat(err) {
		t.Fatalf("expected case-sensitive extension mismatch, got %v", err)
	}
}

func TestParseByPathDecodeErrorPropagates(t *testing.T) {
	_, err := ParseByPath([]byte("{not json"), "broken.json")
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if IsUnsupportedFormat(err) {
		t.Fatalf("decode error misclassified as format error: %v", err)
	}
}

func TestRoundTripPerFormat(t *testing.T) {
	value := map[string]any{
		"title": "Round Trip",
		"tags":  []any{"a", "b"},
		"nested": map[string]any{
			"enabled": true,
		},
	}

	for _, path := range []string{"doc.yaml", "doc.yml", "doc.json", "doc.toml"} {
		t.Run(path, func(t *testing.T) {
			encoded, err := StringifyByPath(value, path)
			if err != nil {
				t.Fatalf("StringifyByPath: %v", err)
			}
			decoded, err := ParseByPath(encoded, path)
			if err != nil {
				t.Fatalf("ParseByPath: %v", err)
			}
			out, ok := decoded.(map[string]any)
			if !ok {
				t.Fatalf("expected a map, got %T", decoded)
			}
			if out["title"] != "Round Trip" {
				t.Fatalf("title lost in round trip: %#v", out)
			}
			nested, ok := out["nested"].(map[string]any)
			if !ok || nested["enabled"] != true {
				t.Fatalf("nested value lost in round trip: %#v", out)
			}
		})
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	doc := &Document{
		FrontMatter: map[string]any{"title": "Hi"},
		Body:        "Body text\n",
	}
	encoded, err := StringifyByPath(doc, "page.md")
	if err != nil {
		t.Fatalf("StringifyByPath: %v", err)
	}
	decoded, err := ParseByPath(encoded, "page.md")
	if err != nil {
		t.Fatalf("ParseByPath: %v", err)
	}
	out, ok := decoded.(*Document)
	if !ok {
		t.Fatalf("expected *Document, got %T", decoded)
	}
	if !reflect.DeepEqual(out.FrontMatter, doc.FrontMatter) {
		t.Fatalf("frontmatter mismatch: %#v", out.FrontMatter)
	}
	if out.Body != doc.Body {
		t.Fatalf("body mismatch: %q", out.Body)
	}
}

func TestParseMarkdownYAMLFrontmatter(t *testing.T) {
	doc, err := ParseMarkdown("---\ntitle: Hi\n---\n\nBody text\n")
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if !reflect.DeepEqual(doc.FrontMatter, map[string]any{"title": "Hi"}) {
		t.Fatalf("unexpected frontmatter: %#v", doc.FrontMatter)
	}
	if doc.Body != "Body text\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
}

func TestParseMarkdownFrontmatterKeepsDateStrings(t *testing.T) {
	doc, err := ParseMarkdown("---\ndate: 2020-01-02\n---\nBody\n")
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if !reflect.DeepEqual(doc.FrontMatter, map[string]any{"date": "2020-01-02"}) {
		t.Fatalf("timestamp-shaped scalars should stay strings: %#v", doc.FrontMatter)
	}
	if doc.Body != "Body\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
}

func TestParseMarkdownTOMLFrontmatter(t *testing.T) {
	doc, err := ParseMarkdown("+++\ntitle = \"Hi\"\n+++\nBody\n")
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	meta, ok := doc.FrontMatter.(map[string]any)
	if !ok || meta["title"] != "Hi" {
		t.Fatalf("unexpected frontmatter: %#v", doc.FrontMatter)
	}
	if doc.Body != "Body\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
}

func TestParseMarkdownJSONFrontmatter(t *testing.T) {
	doc, err := ParseMarkdown("{\n\"title\": \"Hi\"\n}\nBody\n")
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	meta, ok := doc.FrontMatter.(map[string]any)
	if !ok || meta["title"] != "Hi" {
		t.Fatalf("unexpected frontmatter: %#v", doc.FrontMatter)
	}
	if doc.Body != "Body\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
}

func TestParseMarkdownNoFrontmatter(t *testing.T) {
	input := "No frontmatter here"
	doc, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if doc.FrontMatter != nil {
		t.Fatalf("expected nil frontmatter, got %#v", doc.FrontMatter)
	}
	if doc.Body != input {
		t.Fatalf("expected the full input as body, got %q", doc.Body)
	}
}

func TestParseMarkdownUnterminatedFrontmatter(t *testing.T) {
	input := "---\ntitle: Hi\nBody without closing"
	doc, err := ParseMarkdown(input)
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if doc.FrontMatter != nil {
		t.Fatalf("expected nil frontmatter, got %#v", doc.FrontMatter)
	}
	if doc.Body != input {
		t.Fatalf("expected the full input as body, got %q", doc.Body)
	}
}

func TestParseMarkdownNormalizesOnlyFirstCRLF(t *testing.T) {
	// Only the first \r\n is normalized; later ones survive into the body.
	doc, err := ParseMarkdown("---\r\ntitle: Hi\n---\nline one\r\nline two\n")
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if !reflect.DeepEqual(doc.FrontMatter, map[string]any{"title": "Hi"}) {
		t.Fatalf("unexpected frontmatter: %#v", doc.FrontMatter)
	}
	if doc.Body != "line one\r\nline two\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
}

func TestParseMarkdownMalformedFrontmatterErrors(t *testing.T) {
	if _, err := ParseMarkdown("---\n[unclosed\n---\nBody\n"); err == nil {
		t.Fatal("expected a decode error for malformed yaml frontmatter")
	}
}

func TestValidateWithSchema(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"title"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	}

	if err := ValidateWithSchema(map[string]any{"title": "ok"}, schema); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := ValidateWithSchema(map[string]any{}, schema); err == nil {
		t.Fatal("expected missing required property to fail")
	}
	if err := ValidateWithSchema(map[string]any{"x": 1}, nil); err != nil {
		t.Fatalf("nil schema should accept everything, got %v", err)
	}
}
