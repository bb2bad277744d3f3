// Package models defines data structures for parsed survey microdata.
package models

// Dataset represents a parsed microdata file as an ordered column/row table.
// Cell values are nil (blank field), int64, float64, or string.
type Dataset struct {
	// Columns is the ordered list of column names from the codebook.
	Columns []string `json:"columns"`
	// Rows contains one entry per record, aligned with Columns.
	Rows [][]any `json:"rows"`
}

// NumRows returns the number of records in the dataset.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// NumCols returns the number of columns in the dataset.
func (d *Dataset) NumCols() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order,
// or nil if the column does not exist.
func (d *Dataset) Column(name string) []any {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]any, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values
}

// ApplyLabels replaces coded values with their codebook labels in place.
// For each column present in labels, a cell whose numeric value matches a
// category code becomes the label string; all other cells are untouched.
func (d *Dataset) ApplyLabels(labels map[string]map[float64]string) {
	for name, mapping := range labels {
		idx := d.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		for _, row := range d.Rows {
			code, ok := numericValue(row[idx])
			if !ok {
				continue
			}
			if label, ok := mapping[code]; ok {
				row[idx] = label
			}
		}
	}
}

// numericValue returns the float64 view of a cell value, when it has one.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
