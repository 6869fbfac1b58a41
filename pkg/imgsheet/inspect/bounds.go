package inspect

import "github.com/xuri/excelize/v2"

// UsedRange returns the range covering every non-empty cell, e.g. "B1:C12".
// It returns "" for an empty sheet.
func UsedRange(rows [][]string) string {
	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return ""
	}
	start, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	end, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return start + ":" + end
}
