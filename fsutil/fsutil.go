// Package fsutil composes the codec with a filesystem collaborator:
// recursive directory scans and encode-then-write output. The filesystem is
// an injected afero.Fs so callers can point the helpers at an in-memory
// filesystem in tests.
package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/goliatone/go-datakit/codec"
	"github.com/goliatone/go-datakit/seq"
)

// ScanOptions adjusts ReadDir behaviour.
type ScanOptions struct {
	// Filter decides per entry whether it is included; a filtered directory
	// is not descended into. The path is relative to the scan root.
	Filter func(rel string, info os.FileInfo) bool
	// IncludeDirs lists directory entries themselves alongside files.
	IncludeDirs bool
	// Absolute returns paths joined with the scan root instead of
	// root-relative ones.
	Absolute bool
}

// ReadDir recursively lists the entries under dir. Entries are visited in
// the order the filesystem reports them, one at a time.
func ReadDir(ctx context.Context, fsys afero.Fs, dir string, opts ScanOptions) ([]string, error) {
	var out []string
	if err := scanDir(ctx, fsys, dir, "", opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanDir(ctx context.Context, fsys afero.Fs, root, rel string, opts ScanOptions, out *[]string) error {
	current := root
	if rel != "" {
		current = filepath.Join(root, rel)
	}

	entries, err := afero.ReadDir(fsys, current)
	if err != nil {
		return fmt.Errorf("fsutil: read dir %s: %w", current, err)
	}

	return seq.ForEach(ctx, entries, func(ctx context.Context, info os.FileInfo, _ int) error {
		entryRel := info.Name()
		if rel != "" {
			entryRel = filepath.Join(rel, info.Name())
		}

		if opts.Filter != nil && !opts.Filter(entryRel, info) {
			return nil
		}

		entryPath := entryRel
		if opts.Absolute {
			entryPath = filepath.Join(root, entryRel)
		}

		if info.IsDir() {
			if opts.IncludeDirs {
				*out = append(*out, entryPath)
			}
			return scanDir(ctx, fsys, root, entryRel, opts, out)
		}

		*out = append(*out, entryPath)
		return nil
	})
}

// ReadData reads path and decodes it according to its extension.
func ReadData(fsys afero.Fs, path string) (any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("fsutil: read %s: %w", path, err)
	}
	return codec.ParseByPath(data, path)
}

// OutputData encodes value according to the extension of path and writes the
// full file content, creating parent directories as needed.
func OutputData(fsys afero.Fs, path string, value any) error {
	data, err := codec.StringifyByPath(value, path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("fsutil: create dir %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("fsutil: write %s: %w", path, err)
	}
	return nil
}
