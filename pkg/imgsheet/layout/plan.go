package layout

import (
	"fmt"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

// HeaderLabel is written above the numbering column.
const HeaderLabel = "No"

const (
	captionBorderColor = "D0D0D0"
	borderStyleThin    = 1
	numberFontSize     = 12
)

// ImageError reports a record that could not be placed.
type ImageError struct {
	// Index is the 1-based record position within its tab.
	Index int
	Name  string
	Err   error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image %d (%q): %v", e.Index, e.Name, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// Plan lays out one tab. It does not touch any document, so the result can
// be inspected or rendered separately. Settings must already be valid.
func Plan(tab models.Tab, settings models.Settings) (models.SheetPlan, error) {
	imageCol := settings.ImageColumn()
	plan := models.SheetPlan{
		Name:         tab.Name,
		ColumnWidths: make(map[int]float64, settings.LeftColumns+1),
		RowHeights:   make(map[int]float64),
		LastCol:      imageCol,
	}

	for col := 1; col <= settings.LeftColumns; col++ {
		plan.ColumnWidths[col] = MarginColumnWidth
	}
	plan.ColumnWidths[imageCol] = ImageColumnWidth(settings.ImageWidth)

	currentRow := 1

	numbering := settings.NumberingEnabled()
	if numbering {
		plan.Cells = append(plan.Cells, numberCell(currentRow, settings.LeftColumns, HeaderLabel))
		currentRow++
	}

	currentRow = spacerRows(&plan, currentRow, settings.TopRows)

	requiredRows := RequiredRows(settings.ImageHeight)
	rowHeight := ImageRowHeight(settings.ImageHeight)

	for i, img := range tab.Images {
		if img.HasComment() {
			plan.Cells = append(plan.Cells, captionCell(currentRow, imageCol, img.Comment))
			currentRow++
		}

		if numbering {
			plan.Cells = append(plan.Cells, numberCell(currentRow, settings.LeftColumns, i+1))
		}

		data, _, err := DecodeDataURL(img.DataURL)
		if err != nil {
			return models.SheetPlan{}, &ImageError{Index: i + 1, Name: img.Name, Err: err}
		}
		info, err := Probe(data)
		if err != nil {
			return models.SheetPlan{}, &ImageError{Index: i + 1, Name: img.Name, Err: err}
		}

		for r := 0; r < requiredRows; r++ {
			plan.RowHeights[currentRow+r] = rowHeight
		}

		plan.Images = append(plan.Images, models.ImagePlacement{
			Index:         i + 1,
			Name:          img.Name,
			Extension:     ImageExtension(img.Name),
			Format:        info.Format,
			Data:          data,
			NaturalWidth:  info.Width,
			NaturalHeight: info.Height,
			FromCol:       settings.LeftColumns,
			FromRow:       currentRow - 1,
			ToCol:         settings.LeftColumns + 1,
			ToRow:         currentRow - 1 + requiredRows,
			Width:         settings.ImageWidth,
			Height:        settings.ImageHeight,
		})
		currentRow += requiredRows

		currentRow = spacerRows(&plan, currentRow, settings.RowSpacing)
	}

	plan.NextRow = currentRow
	return plan, nil
}

// spacerRows emits n blank rows of fixed height and returns the new cursor.
func spacerRows(plan *models.SheetPlan, row, n int) int {
	for i := 0; i < n; i++ {
		plan.RowHeights[row] = SpacerRowHeight
		row++
	}
	return row
}

func numberCell(row, col int, value interface{}) models.CellPlacement {
	return models.CellPlacement{
		Row:   row,
		Col:   col,
		Value: value,
		Alignment: models.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &models.Font{Bold: true, Size: numberFontSize},
	}
}

func captionCell(row, col int, text string) models.CellPlacement {
	return models.CellPlacement{
		Row:   row,
		Col:   col,
		Value: text,
		Alignment: models.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
		Border: &models.Border{Style: borderStyleThin, Color: captionBorderColor},
	}
}
