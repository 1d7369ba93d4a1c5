package fieldpath

import (
	"errors"
	"fmt"
)

// ErrEmptyPath is returned by mutation operations invoked with a zero-length
// target path.
var ErrEmptyPath = errors.New("fieldpath: path must contain at least one key")

// Get resolves path against target. The boolean result reports presence:
// a key that exists with a nil value is present, a missing intermediate
// segment is absent rather than an error.
func Get(target any, path Path) (any, bool) {
	current := target
	for _, key := range path {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[key.mapKey()]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			idx, ok := key.sliceIndex()
			if !ok || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// GetFirst resolves each candidate path in order and returns the first
// present value.
func GetFirst(target any, paths ...Path) (any, bool) {
	for _, path := range paths {
		if value, ok := Get(target, path); ok {
			return value, true
		}
	}
	return nil, false
}

// Set writes value at path, mutating target in place. Missing intermediate
// segments materialize as maps; sequences are never autovivified, though
// existing sequence elements can be addressed by index.
func Set(target map[string]any, path Path, value any) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	parent, err := resolveParent(target, path)
	if err != nil {
		return err
	}

	last := path[len(path)-1]
	switch node := parent.(type) {
	case map[string]any:
		node[last.mapKey()] = value
	case []any:
		idx, ok := last.sliceIndex()
		if !ok || idx < 0 || idx >= len(node) {
			return fmt.Errorf("fieldpath: index %s out of range at %s", last.mapKey(), path.String())
		}
		node[idx] = value
	default:
		return fmt.Errorf("fieldpath: segment before %s is not a container at %s", last.mapKey(), path.String())
	}
	return nil
}

// resolveParent walks to the container holding the final key of path,
// creating intermediate maps as needed.
func resolveParent(target map[string]any, path Path) (any, error) {
	var current any = target
	for _, key := range path[:len(path)-1] {
		switch node := current.(type) {
		case map[string]any:
			child, ok := node[key.mapKey()]
			if !ok || child == nil {
				created := map[string]any{}
				node[key.mapKey()] = created
				current = created
				continue
			}
			current = child
		case []any:
			idx, ok := key.sliceIndex()
			if !ok || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("fieldpath: index %s out of range at %s", key.mapKey(), path.String())
			}
			if node[idx] == nil {
				created := map[string]any{}
				node[idx] = created
				current = created
				continue
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("fieldpath: segment %s is not a container at %s", key.mapKey(), path.String())
		}
	}
	return current, nil
}

// Append pushes a single element onto the sequence at path, initializing a
// missing path to an empty sequence first.
func Append(target map[string]any, path Path, value any) error {
	list, err := sequenceAt(target, path)
	if err != nil {
		return err
	}
	return Set(target, path, append(list, value))
}

// Concat merges one or more elements onto the sequence at path, initializing
// a missing path to an empty sequence first. When values is itself a
// sequence it is flattened one level; any other value is appended as a
// single element.
func Concat(target map[string]any, path Path, values any) error {
	list, err := sequenceAt(target, path)
	if err != nil {
		return err
	}
	if flat, ok := values.([]any); ok {
		list = append(list, flat...)
	} else {
		list = append(list, values)
	}
	return Set(target, path, list)
}

func sequenceAt(target map[string]any, path Path) ([]any, error) {
	existing, ok := Get(target, path)
	if !ok || existing == nil {
		return []any{}, nil
	}
	list, isList := existing.([]any)
	if !isList {
		return nil, fmt.Errorf("fieldpath: value at %s is not a sequence", path.String())
	}
	return list, nil
}

// Transform rewrites a value copied between paths.
type Transform func(value any) any

// Copy reads sourcePath from source and writes it to targetPath on target,
// applying the optional transform. Nothing is written when the source path
// does not resolve; the boolean result reports whether a write happened.
func Copy(source any, sourcePath Path, target map[string]any, targetPath Path, transform Transform) (bool, error) {
	value, ok := Get(source, sourcePath)
	if !ok {
		return false, nil
	}
	if transform != nil {
		value = transform(value)
	}
	if err := Set(target, targetPath, value); err != nil {
		return false, err
	}
	return true, nil
}

// CopyIfNotSet behaves like Copy but no-ops when the target path already
// holds a present value, enforcing a fill-missing-only merge policy. The
// operation is idempotent.
func CopyIfNotSet(source any, sourcePath Path, target map[string]any, targetPath Path, transform Transform) (bool, error) {
	if _, ok := Get(target, targetPath); ok {
		return false, nil
	}
	return Copy(source, sourcePath, target, targetPath, transform)
}

// Rename moves the value at oldPath to newPath and deletes the old key. It
// no-ops when the old path is absent. Deleting the root itself is
// impossible and skipped.
func Rename(target map[string]any, oldPath, newPath Path) error {
	value, ok := Get(target, oldPath)
	if !ok {
		return nil
	}
	if err := Set(target, newPath, value); err != nil {
		return err
	}
	return deleteAt(target, oldPath)
}

func deleteAt(target map[string]any, path Path) error {
	if len(path) == 0 {
		return nil
	}
	parent, err := resolveParent(target, path)
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	switch node := parent.(type) {
	case map[string]any:
		delete(node, last.mapKey())
	case []any:
		if idx, ok := last.sliceIndex(); ok && idx >= 0 && idx < len(node) {
			node[idx] = nil
		}
	}
	return nil
}
