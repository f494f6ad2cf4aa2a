// Package collector enumerates candidate file paths under a root
// directory. Enumeration is fully materialized before any scheduling
// happens; the sweep pipeline always works from a fixed list.
package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// vcsDirs are directory names pruned from recursive walks when version
// control exclusion is enabled.
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
	".bzr": {},
}

// Options configures file collection behavior.
type Options struct {
	// Recursive walks subdirectories; otherwise only the top-level
	// directory listing is considered.
	Recursive bool

	// ExcludeVCS prunes version-control directories (.git, .hg, .svn,
	// .bzr) from recursive walks.
	ExcludeVCS bool
}

// Result holds the collected candidate paths and any per-entry errors
// encountered along the way. Errors never abort collection.
type Result struct {
	// Files contains candidate file paths in sorted order.
	Files []string

	// Errors contains non-fatal errors encountered during the walk.
	Errors []error
}

// Collect enumerates candidate files under root according to opts.
// Hidden directories are walked: junk files routinely live inside them.
// Only the root being inaccessible or not a directory is a hard error.
func Collect(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &Result{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	if !opts.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			// Symlinks and other non-regular entries still enter the list;
			// the worker's regular-file precondition filters them later.
			result.Files = append(result.Files, filepath.Join(root, entry.Name()))
		}
		sort.Strings(result.Files)
		return result, nil
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if opts.ExcludeVCS {
				if _, excluded := vcsDirs[d.Name()]; excluded {
					return filepath.SkipDir
				}
			}
			return nil
		}
		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}
