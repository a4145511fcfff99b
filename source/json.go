package source

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// JSONReader yields the records of a structured JSON document: each element
// of a top-level array, or the top-level object itself as a single record.
// The document is one JSON value, so it is materialized on open; iteration
// then follows the same Reader contract as the streaming sources.
type JSONReader struct {
	rows []Row
	pos  int
}

// NewJSONReader parses the document at path. Invalid JSON and scalar
// documents are rejected here, before any row is produced.
func NewJSONReader(path string) (*JSONReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("source: %q is not valid JSON", path)
	}

	doc := gjson.ParseBytes(data)
	var rows []Row
	switch {
	case doc.IsArray():
		for _, el := range doc.Array() {
			if m, ok := el.Value().(map[string]any); ok {
				rows = append(rows, Row(m))
			}
		}
	case doc.IsObject():
		if m, ok := doc.Value().(map[string]any); ok {
			rows = append(rows, Row(m))
		}
	default:
		return nil, fmt.Errorf("source: %q holds neither an array nor an object", path)
	}

	return &JSONReader{rows: rows}, nil
}

// Read returns the next record, or io.EOF once the document is exhausted.
func (r *JSONReader) Read() (Row, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

// Close is a no-op; the file is already released.
func (r *JSONReader) Close() error { return nil }
