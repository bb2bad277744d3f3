// Package pnadc reads PNAD Contínua survey microdata files using the
// survey's codebook spreadsheet to derive column layout and value labels.
package pnadc

import "github.com/ibgedata/pnadc-go/pkg/pnadc/fwf"

// ReadOptions configures reading behavior.
type ReadOptions struct {
	// ApplyLabels specifies whether coded values are replaced with their
	// codebook labels. If nil, defaults to true.
	ApplyLabels *bool
	// Parse is forwarded to the fixed-width parser.
	Parse fwf.ParseOptions
}

// DefaultOptions returns default reading options.
func DefaultOptions() ReadOptions {
	return ReadOptions{}
}

// ShouldApplyLabels returns whether coded values are replaced with labels.
func (o ReadOptions) ShouldApplyLabels() bool {
	if o.ApplyLabels != nil {
		return *o.ApplyLabels
	}
	return true
}
