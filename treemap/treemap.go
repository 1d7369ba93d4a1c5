// Package treemap applies a transforming iteratee to every node of an
// arbitrarily nested map/slice tree, producing a new tree. The input is
// never mutated.
package treemap

import (
	"github.com/goliatone/go-datakit/fieldpath"
)

// Iteratee transforms a single node. path holds the keys from the root to
// the node; ancestors holds the enclosing container values root-first. In
// pre-order traversal an ancestor value is captured after that ancestor's
// own iteratee call, so it reflects the possibly-replaced parent.
type Iteratee func(value any, path fieldpath.Path, ancestors []any) any

type config struct {
	postOrder  bool
	containers bool
	leaves     bool
}

// Option adjusts traversal behaviour.
type Option func(*config)

// WithPostOrder maps children before applying the iteratee to their parent.
// The default is pre-order: the iteratee runs first and the traversal
// descends into the replacement's children.
func WithPostOrder() Option {
	return func(c *config) { c.postOrder = true }
}

// WithoutContainers suppresses iteratee calls for map and sequence nodes.
// Their children are still visited.
func WithoutContainers() Option {
	return func(c *config) { c.containers = false }
}

// WithoutLeaves suppresses iteratee calls for scalar nodes.
func WithoutLeaves() Option {
	return func(c *config) { c.leaves = false }
}

// Map transforms every node of root with fn and returns the new tree.
func Map(root any, fn Iteratee, opts ...Option) any {
	cfg := config{containers: true, leaves: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if fn == nil {
		fn = func(value any, _ fieldpath.Path, _ []any) any { return value }
	}
	return mapNode(root, nil, nil, fn, cfg)
}

func mapNode(value any, path fieldpath.Path, ancestors []any, fn Iteratee, cfg config) any {
	if cfg.postOrder {
		value = mapChildren(value, path, ancestors, fn, cfg)
		if visits(value, cfg) {
			value = fn(value, path, ancestors)
		}
		return value
	}

	if visits(value, cfg) {
		value = fn(value, path, ancestors)
	}
	return mapChildren(value, path, ancestors, fn, cfg)
}

// mapChildren recurses into container nodes; scalars short-circuit.
func mapChildren(value any, path fieldpath.Path, ancestors []any, fn Iteratee, cfg config) any {
	switch node := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		childAncestors := push(ancestors, value)
		for key, child := range node {
			out[key] = mapNode(child, extend(path, fieldpath.Field(key)), childAncestors, fn, cfg)
		}
		return out
	case []any:
		out := make([]any, len(node))
		childAncestors := push(ancestors, value)
		for i, child := range node {
			out[i] = mapNode(child, extend(path, fieldpath.Index(i)), childAncestors, fn, cfg)
		}
		return out
	default:
		return value
	}
}

func visits(value any, cfg config) bool {
	switch value.(type) {
	case map[string]any, []any:
		return cfg.containers
	default:
		return cfg.leaves
	}
}

// extend copies path with key appended so sibling branches never share a
// backing array.
func extend(path fieldpath.Path, key fieldpath.Key) fieldpath.Path {
	out := make(fieldpath.Path, len(path)+1)
	copy(out, path)
	out[len(path)] = key
	return out
}

func push(ancestors []any, value any) []any {
	out := make([]any, len(ancestors)+1)
	copy(out, ancestors)
	out[len(ancestors)] = value
	return out
}
