package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVWriter writes one output table to a CSV file. Rows go to a temporary
// file next to the destination; Commit renames it into place so readers
// never observe a half-written table. It is safe for concurrent use.
type CSVWriter struct {
	mu        sync.Mutex
	dst       string
	tmp       string
	file      *os.File
	writer    *csv.Writer
	committed bool
}

// NewCSVWriter creates the temporary file for the table at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{dst: path, tmp: tmp, file: f, writer: w}, nil
}

// WriteRow appends a single record to the table.
func (c *CSVWriter) WriteRow(row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	return nil
}

// Commit flushes everything and moves the temporary file to its final path.
func (c *CSVWriter) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if err := c.file.Close(); err != nil {
		return fmt.Errorf("csv: close: %w", err)
	}
	if err := os.Rename(c.tmp, c.dst); err != nil {
		return fmt.Errorf("csv: rename %q: %w", c.tmp, err)
	}
	c.committed = true
	return nil
}

// Close aborts an uncommitted table, removing the temporary file. After a
// successful Commit it is a no-op.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.committed {
		return nil
	}
	_ = c.file.Close()
	return os.Remove(c.tmp)
}
