package logger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/NadjaSenpai/remove-junk-files/internal/sweep"
)

// csvHeader is the fixed column layout of the outcome CSV stream.
var csvHeader = []string{"path", "junk_deleted", "file_deleted", "attrs_removed"}

// CSVWriter streams sweep outcomes to a CSV file, one row per affected
// file. It is thread-safe and flushes on Close; callers wire WriteOutcome
// into the scheduler's outcome hook.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates the CSV file at path, truncating any existing file,
// and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create csv file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	return &CSVWriter{file: file, writer: writer}, nil
}

// WriteOutcome appends one row for the outcome. Unaffected outcomes are
// skipped so the file only lists files the sweep actually touched.
func (w *CSVWriter) WriteOutcome(o sweep.Outcome) error {
	if !o.Affected() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	row := []string{
		o.Path,
		strconv.FormatBool(o.Junk),
		strconv.FormatBool(o.File),
		strings.Join(o.Attrs, ";"),
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the underlying file.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}
	return nil
}
