package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// frontmatterStyle describes one delimiter grammar tried against the start
// of a document. decode receives the raw text between the delimiters.
type frontmatterStyle struct {
	open   string
	close  string
	decode func(raw string) (any, error)
}

var frontmatterStyles = []frontmatterStyle{
	{
		open:  "---\n",
		close: "\n---",
		decode: func(raw string) (any, error) {
			out, err := decodeYAML([]byte(raw))
			if err != nil {
				return nil, fmt.Errorf("codec: parse yaml frontmatter: %w", err)
			}
			return out, nil
		},
	},
	{
		open:  "+++\n",
		close: "\n+++",
		decode: func(raw string) (any, error) {
			out := map[string]any{}
			if err := toml.Unmarshal([]byte(raw), &out); err != nil {
				return nil, fmt.Errorf("codec: parse toml frontmatter: %w", err)
			}
			return out, nil
		},
	},
	{
		// The JSON block requires the literal opening and closing brace
		// lines; single-line JSON or other layouts are not detected.
		open:  "{\n",
		close: "\n}",
		decode: func(raw string) (any, error) {
			var out any
			if err := json.Unmarshal([]byte("{\n"+raw+"\n}"), &out); err != nil {
				return nil, fmt.Errorf("codec: parse json frontmatter: %w", err)
			}
			return out, nil
		},
	},
}

// ParseMarkdown splits text into frontmatter and body. The delimiter styles
// are tried in fixed order: YAML ---/---, TOML +++/+++, and a JSON block
// with literal {/} lines. The first occurrence of the closing delimiter
// wins; an occurrence inside the frontmatter itself is not guarded against.
// When no style matches, the frontmatter is nil and the whole input is the
// body verbatim.
//
// A Windows line ending is normalized to "\n" only for the first occurrence
// in the string, a compatibility quirk kept on purpose.
func ParseMarkdown(text string) (*Document, error) {
	text = strings.Replace(text, "\r\n", "\n", 1)

	for _, style := range frontmatterStyles {
		doc, ok, err := splitFrontmatter(text, style)
		if err != nil {
			return nil, err
		}
		if ok {
			return doc, nil
		}
	}
	return &Document{Body: text}, nil
}

// splitFrontmatter applies one delimiter style. The closing delimiter must
// be followed by optional whitespace ending in a newline (or end-of-string);
// the body starts after the last newline of that whitespace run.
func splitFrontmatter(text string, style frontmatterStyle) (*Document, bool, error) {
	if !strings.HasPrefix(text, style.open) {
		return nil, false, nil
	}
	inner := text[len(style.open):]
	closeIdx := strings.Index(inner, style.close)
	if closeIdx < 0 {
		return nil, false, nil
	}

	raw := inner[:closeIdx]
	after := inner[closeIdx+len(style.close):]

	body, ok := bodyAfterClose(after)
	if !ok {
		return nil, false, nil
	}

	meta, err := style.decode(raw)
	if err != nil {
		return nil, false, err
	}
	return &Document{FrontMatter: meta, Body: body}, true, nil
}

func bodyAfterClose(after string) (string, bool) {
	run := 0
	lastNewline := -1
	for run < len(after) {
		c := after[run]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
		if c == '\n' {
			lastNewline = run
		}
		run++
	}
	if lastNewline >= 0 {
		return after[lastNewline+1:], true
	}
	if run == len(after) {
		// Optional whitespace then end-of-string.
		return "", true
	}
	return "", false
}
