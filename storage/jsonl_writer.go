package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"review-analytics/models"
)

// ReviewJSONLWriter persists canonical reviews as JSON Lines, one record per
// line in arrival order. Like CSVWriter it stages everything in a temporary
// file and renames on Commit.
type ReviewJSONLWriter struct {
	mu        sync.Mutex
	dst       string
	tmp       string
	file      *os.File
	w         *bufio.Writer
	count     int
	committed bool
}

// NewReviewJSONLWriter creates the temporary file for the dataset at path.
func NewReviewJSONLWriter(path string) (*ReviewJSONLWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("jsonl: create output dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("jsonl: create file %q: %w", tmp, err)
	}

	return &ReviewJSONLWriter{dst: path, tmp: tmp, file: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one review as a single JSON line.
func (j *ReviewJSONLWriter) Append(r models.Review) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("jsonl: marshal review: %w", err)
	}
	if _, err := j.w.Write(data); err != nil {
		return fmt.Errorf("jsonl: write: %w", err)
	}
	if err := j.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("jsonl: write: %w", err)
	}
	j.count++
	return nil
}

// Count reports how many reviews have been appended so far.
func (j *ReviewJSONLWriter) Count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.count
}

// Commit flushes everything and moves the temporary file to its final path.
func (j *ReviewJSONLWriter) Commit() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.w.Flush(); err != nil {
		return fmt.Errorf("jsonl: flush: %w", err)
	}
	if err := j.file.Close(); err != nil {
		return fmt.Errorf("jsonl: close: %w", err)
	}
	if err := os.Rename(j.tmp, j.dst); err != nil {
		return fmt.Errorf("jsonl: rename %q: %w", j.tmp, err)
	}
	j.committed = true
	return nil
}

// Close aborts an uncommitted dataset, removing the temporary file.
func (j *ReviewJSONLWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.committed {
		return nil
	}
	_ = j.file.Close()
	return os.Remove(j.tmp)
}

// EachReview streams a canonical review dataset back, invoking fn once per
// record in file order.
func EachReview(path string, fn func(models.Review) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("jsonl: open %q: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		data := sc.Bytes()
		if len(data) == 0 {
			continue
		}
		var r models.Review
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("jsonl: parse %q line %d: %w", path, line, err)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("jsonl: read %q: %w", path, err)
	}
	return nil
}
