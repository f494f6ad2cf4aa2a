// Package rules holds the static classification rules for junk-file
// detection: exact basenames, glob patterns, the downloaded-file provenance
// marker, and the default extended-attribute candidate list.
//
// The rule set is fixed at process start and never mutated; classification
// is pure and safe to call from any number of goroutines.
package rules

import (
	"path"
	"sort"
	"strings"
)

// junkNames is the set of exact basenames that identify OS-generated
// artifact files. Matching is case-sensitive.
var junkNames = map[string]struct{}{
	".DS_Store":               {},
	"Thumbs.db":               {},
	"desktop.ini":             {},
	".AppleDouble":            {},
	".LSOverride":             {},
	".fseventsd":              {},
	".Spotlight-V100":         {},
	".DocumentRevisions-V100": {},
	".TemporaryItems":         {},
	"lost+found":              {},
	".directory":              {},
}

// junkPatterns is the set of glob patterns (path.Match syntax) applied to
// basenames only. A basename never contains a path separator, so single
// segment matching is sufficient.
var junkPatterns = []string{
	".Trash-*",
	"._*",
	"*.swp",
	"*.swo",
	"*.tmp",
	"*.bak",
	"*~",
	".nfs*",
}

// ZoneIdentifierToken is the full-path substring that marks a downloaded
// file provenance stream (NTFS alternate data stream exposed as a separate
// file on non-NTFS filesystems).
const ZoneIdentifierToken = ":Zone.Identifier"

// DefaultAttrCandidates returns the built-in extended-attribute candidate
// list. Callers may append user-supplied names; duplicates are harmless
// because attribute removal is idempotent.
func DefaultAttrCandidates() []string {
	return []string{"user.Zone.Identifier"}
}

// IsJunk reports whether basename identifies an OS-generated junk file,
// either by exact name or by glob pattern. The check is case-sensitive and
// is applied to the final path segment only, never to a full path.
func IsJunk(basename string) bool {
	if _, ok := junkNames[basename]; ok {
		return true
	}
	for _, pattern := range junkPatterns {
		// path.Match only errors on malformed patterns; the fixed set above
		// is known well-formed.
		if ok, _ := path.Match(pattern, basename); ok {
			return true
		}
	}
	return false
}

// HasZoneIdentifier reports whether the full path carries the downloaded
// file provenance marker token.
func HasZoneIdentifier(fullPath string) bool {
	return strings.Contains(fullPath, ZoneIdentifierToken)
}

// JunkNames returns a sorted copy of the exact-name rule set. Intended for
// display and diagnostics.
func JunkNames() []string {
	names := make([]string, 0, len(junkNames))
	for name := range junkNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JunkPatterns returns a copy of the glob pattern rule set.
func JunkPatterns() []string {
	patterns := make([]string, len(junkPatterns))
	copy(patterns, junkPatterns)
	return patterns
}
