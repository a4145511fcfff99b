// Package source reads raw records from heterogeneous files and exposes them
// as a lazy, single-pass stream of loosely typed rows. Nothing here assumes a
// fixed row shape; that is the normalizer's job.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Row is one raw record, keyed by source field name. Values are strings for
// tabular sources and decoded JSON primitives for structured ones.
type Row map[string]any

// Reader yields rows one at a time. Read returns io.EOF after the last row.
type Reader interface {
	Read() (Row, error)
	Close() error
}

// Open picks a reader for path based on its extension. An unsupported format
// or unreadable file is fatal for the run: Open fails before any row is
// produced.
func Open(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return NewJSONLReader(path)
	case ".csv":
		return NewCSVReader(path)
	case ".json":
		return NewJSONReader(path)
	default:
		return nil, fmt.Errorf("source: unsupported format %q", filepath.Ext(path))
	}
}
