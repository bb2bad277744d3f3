// Package codebook extracts microdata layout metadata from PNAD Contínua
// codebook spreadsheets: column widths, column names, and per-variable
// category label mappings.
package codebook

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ibgedata/pnadc-go/pkg/pnadc/models"
)

// ErrRead indicates the codebook spreadsheet could not be opened or read.
var ErrRead = errors.New("codebook read error")

// ErrFormat indicates the codebook does not have the expected table shape.
var ErrFormat = errors.New("invalid codebook format")

// skipRows is the number of leading banner rows before the data region.
const skipRows = 3

// sentinelLabel is the category description the codebook uses for
// uninformative entries; such entries are dropped from the label mapping.
const sentinelLabel = "Não informado"

// Physical column positions of the retained fields in the codebook sheet.
const (
	colStartPos = 0
	colWidth    = 1
	colVarCode  = 2
	colDesc     = 4
	colCategory = 5
	colCatDesc  = 6
)

// row holds the retained cells of one codebook data row, as raw cell text.
type row struct {
	startPos     string
	width        string
	varCode      string
	description  string
	category     string
	categoryDesc string
	// line is the 1-based row number in the sheet, for error messages.
	line int
}

// Codebook gives access to the layout metadata of a PNAD Contínua microdata
// file. Derived artifacts are computed on first use and cached.
type Codebook struct {
	rows []row

	widths []int
	names  []string
	labels map[string]map[float64]string
}

// Load reads a codebook spreadsheet from path. The first sheet is used;
// the leading banner rows are skipped and the documented column subset is
// retained under canonical field names.
func Load(path string) (*Codebook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrFormat)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if len(raw) <= skipRows {
		return nil, fmt.Errorf("%w: no data rows after header", ErrFormat)
	}

	cb := &Codebook{}
	maxCols := 0
	for i, r := range raw[skipRows:] {
		if len(r) > maxCols {
			maxCols = len(r)
		}
		cb.rows = append(cb.rows, row{
			startPos:     cell(r, colStartPos),
			width:        cell(r, colWidth),
			varCode:      cell(r, colVarCode),
			description:  cell(r, colDesc),
			category:     cell(r, colCategory),
			categoryDesc: cell(r, colCatDesc),
			line:         skipRows + i + 1,
		})
	}
	if maxCols <= colVarCode {
		return nil, fmt.Errorf("%w: expected columns not present", ErrFormat)
	}

	return cb, nil
}

// Widths returns the byte width of each microdata column, in file order.
// Rows with a blank width cell are dropped; any other non-integer or
// non-positive value is a coercion error.
func (c *Codebook) Widths() ([]int, error) {
	if c.widths != nil {
		return c.widths, nil
	}

	var widths []int
	for _, r := range c.rows {
		if r.width == "" {
			continue
		}
		w, err := parseWidth(r.width)
		if err != nil {
			return nil, models.NewCoercionError("tamanho", r.line, r.width, err)
		}
		widths = append(widths, w)
	}

	c.widths = widths
	return c.widths, nil
}

// Names returns the variable code of each microdata column, in file order.
// Rows with a blank variable code are dropped.
func (c *Codebook) Names() ([]string, error) {
	if c.names != nil {
		return c.names, nil
	}

	var names []string
	for _, r := range c.rows {
		if r.varCode == "" {
			continue
		}
		names = append(names, r.varCode)
	}

	c.names = names
	return c.names, nil
}

// Labels returns, per variable, the mapping from numeric category code to
// its human-readable description. Category rows with a blank variable code
// inherit the nearest preceding variable. Rows whose category cell is blank
// or non-numeric are dropped, as are entries whose description is blank or
// the "not informed" sentinel.
func (c *Codebook) Labels() (map[string]map[float64]string, error) {
	if c.labels != nil {
		return c.labels, nil
	}

	labels := make(map[string]map[float64]string)
	current := ""
	for _, r := range c.rows {
		if r.varCode != "" {
			current = r.varCode
		}
		if current == "" || r.category == "" {
			continue
		}
		code, err := strconv.ParseFloat(r.category, 64)
		if err != nil {
			// Non-numeric categories (e.g. range notes) carry no label.
			continue
		}
		if r.categoryDesc == "" || r.categoryDesc == sentinelLabel {
			continue
		}
		if labels[current] == nil {
			labels[current] = make(map[float64]string)
		}
		labels[current][code] = r.categoryDesc
	}

	c.labels = labels
	return c.labels, nil
}

// cell returns the trimmed text of the idx-th cell of a sheet row.
// excelize trims trailing empty cells from each row, so a missing index
// reads as blank.
func cell(r []string, idx int) string {
	if idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

// parseWidth coerces a width cell to a positive integer. Spreadsheet
// numerics may surface as floats ("2.0"), which are accepted when integral.
func parseWidth(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("width must be positive, got %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if f != math.Trunc(f) || f < 1 {
		return 0, fmt.Errorf("width must be a positive integer, got %v", f)
	}
	return int(f), nil
}
