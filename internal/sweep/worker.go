package sweep

import (
	"os"
	"path/filepath"

	"github.com/NadjaSenpai/remove-junk-files/internal/config"
	"github.com/NadjaSenpai/remove-junk-files/internal/rules"
	"github.com/NadjaSenpai/remove-junk-files/internal/xattrs"
)

// Worker executes the full per-file pipeline for one task at a time. It is
// stateless apart from the shared read-only configuration and the injected
// attribute backend, so a single Worker is safe to use from many
// goroutines.
type Worker struct {
	cfg     *config.Config
	backend xattrs.Backend
	attrs   []string
}

// NewWorker creates a Worker bound to the given configuration and
// attribute backend. The attribute candidate list is resolved once here:
// the built-in candidates followed by any user-supplied names.
func NewWorker(cfg *config.Config, backend xattrs.Backend) *Worker {
	attrs := rules.DefaultAttrCandidates()
	attrs = append(attrs, cfg.Attrs...)
	return &Worker{
		cfg:     cfg,
		backend: backend,
		attrs:   attrs,
	}
}

// Process runs the three pipeline steps against one task and produces
// exactly one Outcome. The steps are independent: an earlier failure never
// short-circuits a later step, and no per-file failure ever propagates as
// an error.
func (w *Worker) Process(task Task) Outcome {
	outcome := Outcome{Path: task.Path}
	basename := filepath.Base(task.Path)

	// Step 1: junk rule check against the basename only.
	if rules.IsJunk(basename) {
		if removeFile(task.Path, w.cfg.DryRun) {
			outcome.Junk = true
		}
	}

	// Step 2: provenance marker check against the full path.
	if rules.HasZoneIdentifier(task.Path) {
		if removeFile(task.Path, w.cfg.DryRun) {
			outcome.File = true
		}
	}

	// Step 3: attribute sweep, in candidate order. Duplicate candidates
	// are harmless: the second removal finds nothing.
	for _, attr := range w.attrs {
		if xattrs.RemoveAttr(w.backend, task.Path, attr, w.cfg.DryRun, w.cfg.ConfirmRemoval) {
			outcome.Attrs = append(outcome.Attrs, attr)
		}
	}

	return outcome
}

// removeFile deletes path if it currently is a regular file. Dry-run
// reports success without deleting, but a nonexistent file never counts as
// removed even then. Any OS-level failure yields false; there is no retry.
func removeFile(path string, dryRun bool) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if dryRun {
		return true
	}
	if err := os.Remove(path); err != nil {
		return false
	}
	return true
}
