package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVReader streams tabular rows keyed by the file's header line. The column
// set is whatever the header declares for this particular file; cells are raw
// strings. Short rows are tolerated, the missing cells are simply absent.
type CSVReader struct {
	f      *os.File
	r      *csv.Reader
	header []string
}

// NewCSVReader opens path and consumes the header line. A file without a
// readable header is rejected here, before any row is produced.
func NewCSVReader(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("source: read csv header %q: %w", path, err)
	}

	return &CSVReader{f: f, r: cr, header: header}, nil
}

// Read returns the next row, or io.EOF once the file is exhausted.
func (r *CSVReader) Read() (Row, error) {
	rec, err := r.r.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("source: read csv row: %w", err)
	}

	row := make(Row, len(r.header))
	for i, name := range r.header {
		if i < len(rec) {
			row[name] = rec[i]
		}
	}
	return row, nil
}

// Close releases the underlying file.
func (r *CSVReader) Close() error { return r.f.Close() }
