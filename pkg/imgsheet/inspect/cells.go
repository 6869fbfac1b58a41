package inspect

import (
	"strconv"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows returns rows 1..lastRow with their heights and non-empty cells.
// lastRow is raised to cover every row that holds a value.
func ExtractRows(f *excelize.File, sheetName string, lastRow int) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) > lastRow {
		lastRow = len(rows)
	}

	result := make([]models.CellRow, 0, lastRow)
	for rowNum := 1; rowNum <= lastRow; rowNum++ {
		height, err := f.GetRowHeight(sheetName, rowNum)
		if err != nil {
			return nil, err
		}
		cellRow := models.CellRow{
			R:      rowNum,
			C:      make(map[string]interface{}),
			Height: height,
		}
		if rowNum <= len(rows) {
			for colIdx, cellValue := range rows[rowNum-1] {
				if cellValue == "" {
					continue
				}
				cellRow.C[strconv.Itoa(colIdx+1)] = parseValue(cellValue)
			}
		}
		result = append(result, cellRow)
	}

	return result, nil
}

// parseValue returns int64 for integers, float64 for decimals,
// or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
