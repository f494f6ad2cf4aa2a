package xattrs

import "os"

// RemoveAttr attempts to remove the named extended attribute from path and
// reports whether an attribute was (or would have been) removed.
//
// Preconditions and semantics:
//   - path must currently be a regular file; anything else reports false
//     without touching the backend (symlinks are followed, matching the
//     file-deletion precondition).
//   - dry-run reports true without probing. This is deliberately
//     optimistic: a dry run counts every candidate as removable on every
//     existing file.
//   - a real run probes first and only attempts removal when the attribute
//     is present.
//
// confirmRemoval selects between the two documented success contracts.
// When true (the default configuration) success requires the removal call
// itself to succeed. When false the legacy contract applies: a successful
// probe is reported as a removal even if the subsequent removal call fails
// silently.
//
// Every backend failure is swallowed and reported as false; RemoveAttr
// never returns an error and never panics on OS-level failures.
func RemoveAttr(b Backend, path, name string, dryRun, confirmRemoval bool) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if dryRun {
		return true
	}

	present, err := b.Probe(path, name)
	if err != nil || !present {
		return false
	}

	if err := b.Remove(path, name); err != nil {
		// Probe succeeded but removal failed. The legacy contract still
		// counts this as removed.
		return !confirmRemoval
	}
	return true
}
