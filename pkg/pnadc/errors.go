package pnadc

import (
	"errors"

	"github.com/ibgedata/pnadc-go/pkg/pnadc/codebook"
	"github.com/ibgedata/pnadc-go/pkg/pnadc/models"
)

// ErrNotFound indicates a given path does not reference an existing file.
var ErrNotFound = errors.New("file not found")

// ErrInvalidArgument indicates an argument failed validation before any I/O.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrRead indicates the codebook spreadsheet could not be opened or read.
var ErrRead = codebook.ErrRead

// ErrFormat indicates the codebook does not have the expected table shape.
var ErrFormat = codebook.ErrFormat

// CoercionError is a value that could not be converted to its expected type
// during codebook extraction or fixed-width parsing.
type CoercionError = models.CoercionError
