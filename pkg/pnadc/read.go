package pnadc

import (
	"fmt"
	"os"

	"github.com/ibgedata/pnadc-go/pkg/pnadc/codebook"
	"github.com/ibgedata/pnadc-go/pkg/pnadc/fwf"
	"github.com/ibgedata/pnadc-go/pkg/pnadc/models"
)

// Read parses the microdata file at microdataPath using the layout described
// by the codebook at codebookPath and returns the resulting dataset.
// When opts requests labels (the default), coded values are replaced with
// their codebook descriptions; values without a label pass through unchanged.
func Read(microdataPath, codebookPath string, opts ReadOptions) (*models.Dataset, error) {
	if err := checkPath("microdata", microdataPath); err != nil {
		return nil, err
	}
	if err := checkPath("codebook", codebookPath); err != nil {
		return nil, err
	}

	cb, err := codebook.Load(codebookPath)
	if err != nil {
		return nil, err
	}
	widths, err := cb.Widths()
	if err != nil {
		return nil, err
	}
	names, err := cb.Names()
	if err != nil {
		return nil, err
	}

	ds, err := fwf.Read(microdataPath, widths, names, opts.Parse)
	if err != nil {
		return nil, err
	}

	if opts.ShouldApplyLabels() {
		labels, err := cb.Labels()
		if err != nil {
			return nil, err
		}
		ds.ApplyLabels(labels)
	}

	return ds, nil
}

// checkPath validates a path argument before any file is opened.
func checkPath(arg, path string) error {
	if path == "" {
		return fmt.Errorf("%w: %s path is empty", ErrInvalidArgument, arg)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: the path to the %s file doesn't exist: %s", ErrNotFound, arg, path)
	}
	return nil
}
