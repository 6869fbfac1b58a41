package inspect

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidFormat indicates the input is not a valid xlsx document.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// File reads the layout of the workbook at path.
func File(path string) (*models.WorkbookLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Bytes(data)
}

// Bytes reads the layout of an in-memory workbook.
func Bytes(data []byte) (*models.WorkbookLayout, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	anchors, err := ExtractImageAnchors(zr)
	if err != nil {
		return nil, err
	}
	printAreas := ExtractPrintAreas(f)

	wb := &models.WorkbookLayout{
		SheetOrder: f.GetSheetList(),
		Sheets:     make(map[string]models.SheetLayout),
	}

	for _, sheetName := range wb.SheetOrder {
		images := anchors[sheetName]
		lastRow := 0
		for i, img := range images {
			if img.W == 0 && img.H == 0 {
				if images[i], err = measureAnchor(f, sheetName, img); err != nil {
					return nil, fmt.Errorf("measuring images of %q: %w", sheetName, err)
				}
			}
			// ToRow is zero-based, so ToRow+1 is the row holding the bottom edge.
			if img.ToRow+1 > lastRow {
				lastRow = img.ToRow + 1
			}
		}

		rows, err := ExtractRows(f, sheetName, lastRow)
		if err != nil {
			return nil, fmt.Errorf("reading rows of %q: %w", sheetName, err)
		}
		values, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("reading rows of %q: %w", sheetName, err)
		}

		wb.Sheets[sheetName] = models.SheetLayout{
			Rows:       rows,
			Images:     images,
			UsedRange:  UsedRange(values),
			PrintAreas: printAreas[sheetName],
		}
	}

	return wb, nil
}

// measureAnchor derives the extent of a two-cell anchor that stores no size
// of its own from the columns and rows it spans.
func measureAnchor(f *excelize.File, sheet string, a models.ImageAnchor) (models.ImageAnchor, error) {
	a.W = a.ToColOff - a.FromColOff
	for col := a.FromCol + 1; col <= a.ToCol; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return a, err
		}
		w, err := f.GetColWidth(sheet, name)
		if err != nil {
			return a, err
		}
		a.W += layout.ColumnPixels(w)
	}

	a.H = a.ToRowOff - a.FromRowOff
	for row := a.FromRow + 1; row <= a.ToRow; row++ {
		h, err := f.GetRowHeight(sheet, row)
		if err != nil {
			return a, err
		}
		a.H += layout.RowPixels(h)
	}
	return a, nil
}
