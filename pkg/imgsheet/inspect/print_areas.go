package inspect

import (
	"strings"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas returns the print areas of a workbook keyed by sheet name.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference parses 'Sheet Name'!$A$1:$D$10 style references.
// Several areas may be separated by commas.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var sheetName string
	var areas []models.PrintArea

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		if sheetName == "" {
			sheet := part[:idx]
			if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
				sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
			}
			sheetName = sheet
		}

		if area, ok := parseRangeToArea(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10.
func parseRangeToArea(rangeStr string) (models.PrintArea, bool) {
	start, end, ok := strings.Cut(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if !ok {
		return models.PrintArea{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.PrintArea{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.PrintArea{}, false
	}

	return models.PrintArea{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}
