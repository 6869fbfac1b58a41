// Package layout computes worksheet layouts for image exports.
package layout

import (
	"math"

	"github.com/xuri/excelize/v2"
)

const (
	// UnitRowHeight is the pixel height covered by one image row.
	UnitRowHeight = 20
	// PointsPerPixel converts pixels to points (row height unit) at 96 DPI.
	PointsPerPixel = 0.75
	// PixelsPerWidthUnit converts pixels to column width units
	// (maximum digit width of the default font).
	PixelsPerWidthUnit = 7
	// MarginColumnWidth is the width of every left margin column.
	MarginColumnWidth = 8.38
	// SpacerRowHeight is the height in points of top margin and spacing rows.
	SpacerRowHeight = 15
)

// RequiredRows returns how many rows an image of the given pixel height spans.
func RequiredRows(imageHeight int) int {
	return int(math.Ceil(float64(imageHeight) / UnitRowHeight))
}

// ImageRowHeight returns the height in points of each row spanned by an
// image, so that the rows together render exactly imageHeight pixels.
func ImageRowHeight(imageHeight int) float64 {
	return (float64(imageHeight) / float64(RequiredRows(imageHeight))) * PointsPerPixel
}

// ImageColumnWidth converts an image width in pixels to column width units.
// Widths beyond the format limit are capped at excelize.MaxColumnWidth; the
// picture still fills the whole column.
func ImageColumnWidth(imageWidth int) float64 {
	return math.Min(float64(imageWidth)/PixelsPerWidthUnit, excelize.MaxColumnWidth)
}

// ColumnPixels returns the rendered pixel width excelize uses for a column
// of the given width when it anchors drawings.
func ColumnPixels(width float64) int {
	if width <= 0 {
		return 0
	}
	return int(width*8 + 0.5)
}

// RowPixels returns the rendered pixel height excelize uses for a row of the
// given height in points when it anchors drawings.
func RowPixels(height float64) int {
	if height <= 0 {
		return 0
	}
	return int(math.Ceil(4.0 / 3.4 * height))
}
