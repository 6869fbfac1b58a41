package models

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings indicates export settings outside their allowed range.
var ErrInvalidSettings = errors.New("invalid export settings")

// Settings controls the layout of every worksheet in one export.
type Settings struct {
	// ImageWidth is the rendered image width in pixels.
	ImageWidth int `json:"image_width" yaml:"image_width" mapstructure:"image_width"`
	// ImageHeight is the rendered image height in pixels.
	ImageHeight int `json:"image_height" yaml:"image_height" mapstructure:"image_height"`
	// RowSpacing is the number of blank rows after each image.
	RowSpacing int `json:"row_spacing" yaml:"row_spacing" mapstructure:"row_spacing"`
	// LeftColumns is the number of margin columns before the image column.
	LeftColumns int `json:"left_columns" yaml:"left_columns" mapstructure:"left_columns"`
	// TopRows is the number of blank rows above the first image.
	TopRows int `json:"top_rows" yaml:"top_rows" mapstructure:"top_rows"`
	// ShowImageNumbers writes a 1-based index next to each image.
	// It needs at least one left column.
	ShowImageNumbers bool `json:"show_image_numbers" yaml:"show_image_numbers" mapstructure:"show_image_numbers"`
}

// Validate checks the settings bounds.
func (s Settings) Validate() error {
	switch {
	case s.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidSettings, s.ImageWidth)
	case s.ImageHeight <= 0:
		return fmt.Errorf("%w: image height must be positive, got %d", ErrInvalidSettings, s.ImageHeight)
	case s.RowSpacing < 0:
		return fmt.Errorf("%w: row spacing must not be negative, got %d", ErrInvalidSettings, s.RowSpacing)
	case s.LeftColumns < 0:
		return fmt.Errorf("%w: left columns must not be negative, got %d", ErrInvalidSettings, s.LeftColumns)
	case s.TopRows < 0:
		return fmt.Errorf("%w: top rows must not be negative, got %d", ErrInvalidSettings, s.TopRows)
	}
	return nil
}

// NumberingEnabled reports whether index cells and the header are written.
func (s Settings) NumberingEnabled() bool {
	return s.ShowImageNumbers && s.LeftColumns > 0
}

// ImageColumn returns the 1-based column that holds images and captions.
func (s Settings) ImageColumn() int {
	return s.LeftColumns + 1
}
