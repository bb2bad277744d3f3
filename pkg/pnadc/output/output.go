// Package output serializes parsed datasets for the CLI.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/ibgedata/pnadc-go/pkg/pnadc/models"
)

// ToJSON serializes a dataset to JSON.
func ToJSON(ds *models.Dataset, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(ds, "", "  ")
	}
	return json.Marshal(ds)
}

// ToCSV serializes a dataset to CSV: a header row of column names followed
// by one record per row. Nil cells become empty fields.
func ToCSV(ds *models.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Columns); err != nil {
		return nil, err
	}
	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i := range record {
			record[i] = formatValue(row[i])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatValue renders a dataset cell as CSV field text.
func formatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	default:
		return ""
	}
}
