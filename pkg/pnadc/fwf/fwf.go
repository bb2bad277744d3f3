// Package fwf reads fixed-width text files into a Dataset using column
// widths and names derived from a codebook.
package fwf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ibgedata/pnadc-go/pkg/pnadc/models"
)

// ColumnType forces the parsed type of a named column, overriding inference.
type ColumnType int

const (
	// TypeString keeps the trimmed field text as-is.
	TypeString ColumnType = iota
	// TypeInt parses the field as int64.
	TypeInt
	// TypeFloat parses the field as float64.
	TypeFloat
)

// ParseOptions configures the fixed-width parse.
type ParseOptions struct {
	// SkipRows is the number of leading lines to ignore.
	SkipRows int
	// Limit caps the number of records read (0 means all).
	Limit int
	// CommentPrefix marks lines to ignore when non-empty.
	CommentPrefix string
	// Encoding names the file encoding: "", "utf-8", "latin-1",
	// "iso-8859-1", or "windows-1252". Empty means UTF-8.
	Encoding string
	// ColumnTypes overrides type inference for the named columns.
	ColumnTypes map[string]ColumnType
}

// Read parses the fixed-width file at path into a Dataset. Each record is
// sliced by rune offsets into len(widths) fields; fields are trimmed, blank
// fields become nil and the rest are coerced int64, float64, then string
// unless a ColumnTypes override applies. Short records yield nil for the
// columns past their end; the tail of long records is ignored.
func Read(path string, widths []int, names []string, opts ParseOptions) (*models.Dataset, error) {
	if len(widths) != len(names) {
		return nil, fmt.Errorf("widths and names misaligned: %d widths, %d names", len(widths), len(names))
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("no columns to parse")
	}
	for i, w := range widths {
		if w < 1 {
			return nil, fmt.Errorf("column %q has non-positive width %d", names[i], w)
		}
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("duplicate column name %q", n)
		}
		seen[n] = struct{}{}
	}

	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if dec != nil {
		r = transform.NewReader(f, dec.NewDecoder())
	}

	ds := &models.Dataset{Columns: names}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= opts.SkipRows {
			continue
		}
		line := scanner.Text()
		if opts.CommentPrefix != "" && strings.HasPrefix(line, opts.CommentPrefix) {
			continue
		}
		row, err := parseRecord(line, lineNo, widths, names, opts.ColumnTypes)
		if err != nil {
			return nil, err
		}
		ds.Rows = append(ds.Rows, row)
		if opts.Limit > 0 && len(ds.Rows) >= opts.Limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return ds, nil
}

// parseRecord slices one line into typed field values.
func parseRecord(line string, lineNo int, widths []int, names []string, types map[string]ColumnType) ([]any, error) {
	runes := []rune(line)
	row := make([]any, len(widths))
	pos := 0
	for i, w := range widths {
		if pos >= len(runes) {
			break
		}
		end := pos + w
		if end > len(runes) {
			end = len(runes)
		}
		field := strings.TrimSpace(string(runes[pos:end]))
		pos += w
		if field == "" {
			continue
		}
		if t, ok := types[names[i]]; ok {
			v, err := coerce(field, t)
			if err != nil {
				return nil, models.NewCoercionError(names[i], lineNo, field, err)
			}
			row[i] = v
			continue
		}
		row[i] = inferValue(field)
	}
	return row, nil
}

// coerce applies a forced column type to a field.
func coerce(field string, t ColumnType) (any, error) {
	switch t {
	case TypeInt:
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer")
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number")
		}
		return f, nil
	default:
		return field, nil
	}
}

// inferValue attempts to parse a field as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func inferValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// decoderFor maps an encoding name to its charmap, or nil for UTF-8.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
