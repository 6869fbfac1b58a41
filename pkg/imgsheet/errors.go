package imgsheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

// ErrInvalidSettings indicates settings outside their allowed range.
var ErrInvalidSettings = models.ErrInvalidSettings

// ErrMalformedDataURL indicates an image payload without a base64 part.
var ErrMalformedDataURL = layout.ErrMalformedDataURL

// ErrUnreadableImage indicates an image payload that holds no supported
// raster image.
var ErrUnreadableImage = layout.ErrUnreadableImage

// ErrNoSink indicates Export was called without a delivery target.
var ErrNoSink = errors.New("no sink to deliver the document to")

// Components reported by ExportError.
const (
	ComponentSheet     = "sheet"
	ComponentImage     = "image"
	ComponentRender    = "render"
	ComponentSerialize = "serialize"
	ComponentDeliver   = "deliver"
)

// ExportError represents an error during export.
type ExportError struct {
	SheetName string
	Component string // one of the Component constants
	Err       error
}

func (e *ExportError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("export error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("export error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(sheetName, component string, err error) *ExportError {
	return &ExportError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
