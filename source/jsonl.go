package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

const maxLineBytes = 1 << 20

// JSONLReader streams line-delimited JSON records. Blank lines are skipped;
// a line that fails to parse gets one brace-rescue attempt (first '{' to
// last '}') and is otherwise skipped and counted.
type JSONLReader struct {
	f       *os.File
	sc      *bufio.Scanner
	skipped int
}

// NewJSONLReader opens path for streaming.
func NewJSONLReader(path string) (*JSONLReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &JSONLReader{f: f, sc: sc}, nil
}

// Read returns the next record, or io.EOF once the file is exhausted.
func (r *JSONLReader) Read() (Row, error) {
	for r.sc.Scan() {
		line := strings.TrimSpace(r.sc.Text())
		if line == "" {
			continue
		}

		row, ok := parseObject(line)
		if !ok {
			// Rescue records wrapped in stray output: keep the outermost braces.
			start := strings.Index(line, "{")
			end := strings.LastIndex(line, "}")
			if start >= 0 && end > start {
				row, ok = parseObject(line[start : end+1])
			}
		}
		if !ok {
			r.skipped++
			continue
		}
		return row, nil
	}

	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("source: read jsonl: %w", err)
	}
	return nil, io.EOF
}

// Skipped returns the number of lines dropped as unparseable.
func (r *JSONLReader) Skipped() int { return r.skipped }

// Close releases the underlying file.
func (r *JSONLReader) Close() error { return r.f.Close() }

func parseObject(s string) (Row, bool) {
	if !gjson.Valid(s) {
		return nil, false
	}
	m, ok := gjson.Parse(s).Value().(map[string]any)
	if !ok {
		return nil, false
	}
	return Row(m), true
}
