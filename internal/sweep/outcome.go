// Package sweep implements the concurrent classify-and-remove pipeline:
// per-file classification against the junk rule set, provenance-marker
// deletion, extended-attribute removal, and a bounded worker pool that
// aggregates per-file outcomes into run totals.
package sweep

import "time"

// Task is a single candidate file path. Tasks are created by the collector
// and consumed exactly once by a worker.
type Task struct {
	Path string
}

// Outcome is the per-task result record. It is produced once per task and
// never mutated after return.
type Outcome struct {
	// Path is the task's file path.
	Path string

	// File reports whether a provenance-marker file was deleted.
	File bool

	// Attrs lists the attribute names actually removed, in sweep order.
	Attrs []string

	// Junk reports whether the file matched a junk rule and was deleted.
	Junk bool
}

// Affected reports whether any of the three outcome fields is truthy.
func (o Outcome) Affected() bool {
	return o.File || o.Junk || len(o.Attrs) > 0
}

// Summary aggregates outcomes over a run. Totals are exact over whatever
// subset of tasks completed before interruption.
type Summary struct {
	// Scanned is the number of tasks whose outcomes were aggregated.
	Scanned int

	// FilesDeleted counts tasks with a provenance-marker deletion.
	FilesDeleted int

	// AttrsRemoved is the total number of attributes removed across all
	// tasks.
	AttrsRemoved int

	// JunkDeleted counts tasks with a junk-rule deletion.
	JunkDeleted int

	// Affected lists outcomes with at least one truthy field, in
	// completion order. Populated only in summary mode.
	Affected []Outcome

	// Interrupted reports whether the run stopped early on cancellation.
	Interrupted bool

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// add folds one outcome into the running totals. Each outcome is added
// exactly once, at the moment its result becomes available.
func (s *Summary) add(o Outcome, keepAffected bool) {
	s.Scanned++
	if o.File {
		s.FilesDeleted++
	}
	if o.Junk {
		s.JunkDeleted++
	}
	s.AttrsRemoved += len(o.Attrs)
	if keepAffected && o.Affected() {
		s.Affected = append(s.Affected, o)
	}
}
