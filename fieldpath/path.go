// Package fieldpath addresses values inside nested map/slice structures
// through typed key paths. A path is a sequence of string fields and numeric
// indexes; the dotted-string syntax ("a.b[0].c") is provided as a convenience
// constructor, and all internal logic operates on the parsed key sequence.
package fieldpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type keyKind uint8

const (
	kindField keyKind = iota
	kindIndex
)

// Key is a single path segment: either a string field or a numeric index.
type Key struct {
	name  string
	index int
	kind  keyKind
}

// Field builds a string key.
func Field(name string) Key {
	return Key{name: name}
}

// Index builds a numeric (sequence index) key.
func Index(i int) Key {
	return Key{index: i, kind: kindIndex}
}

// IsIndex reports whether the key addresses a sequence position.
func (k Key) IsIndex() bool { return k.kind == kindIndex }

// Name returns the field name; empty for index keys.
func (k Key) Name() string { return k.name }

// Index returns the numeric index; zero for field keys.
func (k Key) Index() int { return k.index }

// mapKey renders the key as a map lookup string. Numeric keys address maps by
// their decimal representation, matching loose key/index interchange.
func (k Key) mapKey() string {
	if k.kind == kindIndex {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// sliceIndex resolves the key into a sequence index, coercing digit-only
// field names.
func (k Key) sliceIndex() (int, bool) {
	if k.kind == kindIndex {
		return k.index, true
	}
	idx, err := cast.ToIntE(k.name)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Path locates a value within nested maps and slices.
type Path []Key

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Parse converts a dotted path expression into a Path. Supported syntax:
// dotted fields ("a.b"), bracketed indexes ("a[0]"), and bracketed quoted
// fields for keys containing non-word characters (`a["x-y"]` or `a['x-y']`).
// Digit-only dotted segments are treated as indexes.
func Parse(expr string) (Path, error) {
	if expr == "" {
		return nil, nil
	}

	var path Path
	rest := expr
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			if rest == "" {
				return nil, fmt.Errorf("fieldpath: trailing dot in %q", expr)
			}
		case '[':
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return nil, fmt.Errorf("fieldpath: unterminated bracket in %q", expr)
			}
			inner := rest[1:closing]
			rest = rest[closing+1:]
			key, err := parseBracket(inner, expr)
			if err != nil {
				return nil, err
			}
			path = append(path, key)
		default:
			end := strings.IndexAny(rest, ".[")
			segment := rest
			if end >= 0 {
				segment = rest[:end]
				rest = rest[end:]
			} else {
				rest = ""
			}
			if idx, err := cast.ToIntE(segment); err == nil && digitsOnly(segment) {
				path = append(path, Index(idx))
			} else {
				path = append(path, Field(segment))
			}
		}
	}
	return path, nil
}

// MustParse is Parse that panics on malformed expressions; intended for
// package-level path constants.
func MustParse(expr string) Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return path
}

func parseBracket(inner, expr string) (Key, error) {
	if inner == "" {
		return Key{}, fmt.Errorf("fieldpath: empty bracket in %q", expr)
	}
	if quoted(inner) {
		return Field(inner[1 : len(inner)-1]), nil
	}
	idx, err := cast.ToIntE(inner)
	if err != nil {
		return Key{}, fmt.Errorf("fieldpath: invalid bracket segment %q in %q", inner, expr)
	}
	return Index(idx), nil
}

func quoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the path as a human-readable accessor expression: bare
// dotted segments for identifier-shaped keys, bracketed quoted segments for
// keys containing non-word characters, and bracketed unquoted segments for
// indexes. The first segment never gets a leading dot.
func (p Path) String() string {
	var sb strings.Builder
	for i, key := range p {
		switch {
		case key.IsIndex():
			fmt.Fprintf(&sb, "[%d]", key.Index())
		case identifierPattern.MatchString(key.Name()):
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(key.Name())
		default:
			fmt.Fprintf(&sb, "[%q]", key.Name())
		}
	}
	return sb.String()
}
