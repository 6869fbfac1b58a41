package imgsheet

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"github.com/xuri/excelize/v2"
)

// printAreaName is the reserved defined name Excel uses for print areas.
const printAreaName = "_xlnm.Print_Area"

// renderer writes a sheet plan into a document and caches its styles.
type renderer struct {
	f      *excelize.File
	logger *slog.Logger
	styles map[string]int
}

func newRenderer(f *excelize.File, logger *slog.Logger) *renderer {
	return &renderer{f: f, logger: logger, styles: make(map[string]int)}
}

// Render applies a plan to an existing worksheet.
func Render(f *excelize.File, plan models.SheetPlan, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	return newRenderer(f, logger).render(plan)
}

func (r *renderer) render(plan models.SheetPlan) error {
	sheet := plan.Name

	for _, col := range sortedKeys(plan.ColumnWidths) {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := r.f.SetColWidth(sheet, name, name, plan.ColumnWidths[col]); err != nil {
			return fmt.Errorf("setting width of column %s: %w", name, err)
		}
	}

	for _, row := range sortedKeys(plan.RowHeights) {
		if err := r.f.SetRowHeight(sheet, row, plan.RowHeights[row]); err != nil {
			return fmt.Errorf("setting height of row %d: %w", row, err)
		}
	}

	for _, c := range plan.Cells {
		if err := r.writeCell(sheet, c); err != nil {
			return err
		}
	}

	for _, img := range plan.Images {
		if err := r.addImage(sheet, img); err != nil {
			return &layout.ImageError{Index: img.Index, Name: img.Name, Err: err}
		}
	}

	return r.setPrintArea(plan)
}

func (r *renderer) writeCell(sheet string, c models.CellPlacement) error {
	cell, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return err
	}
	if err := r.f.SetCellValue(sheet, cell, c.Value); err != nil {
		return fmt.Errorf("writing cell %s: %w", cell, err)
	}

	styleID, err := r.style(c)
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(sheet, cell, cell, styleID)
}

// style returns a style id for the cell formatting, creating it once.
func (r *renderer) style(c models.CellPlacement) (int, error) {
	key := fmt.Sprintf("%+v|%+v|%+v", c.Alignment, c.Font, c.Border)
	if id, ok := r.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: c.Alignment.Horizontal,
			Vertical:   c.Alignment.Vertical,
			WrapText:   c.Alignment.WrapText,
		},
	}
	if c.Font != nil {
		style.Font = &excelize.Font{Bold: c.Font.Bold, Size: c.Font.Size}
	}
	if c.Border != nil {
		for _, side := range []string{"top", "left", "bottom", "right"} {
			style.Border = append(style.Border, excelize.Border{
				Type:  side,
				Color: c.Border.Color,
				Style: c.Border.Style,
			})
		}
	}

	id, err := r.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}
	r.styles[key] = id
	return id, nil
}

// addImage anchors the picture to its planned block. The scale makes the
// picture exactly as large as the block's columns and rows, so the bottom
// right corner lands on (ToCol, ToRow) with no offset.
func (r *renderer) addImage(sheet string, img models.ImagePlacement) error {
	cell, err := excelize.CoordinatesToCellName(img.FromCol+1, img.FromRow+1)
	if err != nil {
		return err
	}

	if img.Format != "" && img.Format != img.Extension {
		r.logger.Warn("image format differs from file name",
			slog.String("sheet", sheet),
			slog.String("image", img.Name),
			slog.String("labeled", img.Extension),
			slog.String("actual", img.Format))
	}

	width, height, err := r.blockPixels(sheet, img)
	if err != nil {
		return err
	}

	return r.f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
		Extension: "." + img.Extension,
		File:      img.Data,
		Format: &excelize.GraphicOptions{
			AltText:     img.Name,
			ScaleX:      blockScale(width, img.NaturalWidth),
			ScaleY:      blockScale(height, img.NaturalHeight),
			Positioning: "twoCell",
		},
	})
}

// blockPixels measures the planned block with the sheet's current column
// widths and row heights.
func (r *renderer) blockPixels(sheet string, img models.ImagePlacement) (int, int, error) {
	var width, height int
	for col := img.FromCol + 1; col <= img.ToCol; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return 0, 0, err
		}
		w, err := r.f.GetColWidth(sheet, name)
		if err != nil {
			return 0, 0, err
		}
		width += layout.ColumnPixels(w)
	}
	for row := img.FromRow + 1; row <= img.ToRow; row++ {
		h, err := r.f.GetRowHeight(sheet, row)
		if err != nil {
			return 0, 0, err
		}
		height += layout.RowPixels(h)
	}
	return width, height, nil
}

// blockScale returns the factor that turns natural pixels into target
// pixels once excelize truncates the product.
func blockScale(target, natural int) float64 {
	if natural <= 0 {
		return 1
	}
	return (float64(target) + 0.5) / float64(natural)
}

// setPrintArea covers every row and column that holds content.
func (r *renderer) setPrintArea(plan models.SheetPlan) error {
	lastCol, err := excelize.ColumnNumberToName(plan.LastCol)
	if err != nil {
		return err
	}
	lastRow := plan.NextRow - 1
	if lastRow < 1 {
		lastRow = 1
	}

	return r.f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: fmt.Sprintf("'%s'!$A$1:$%s$%d", strings.ReplaceAll(plan.Name, "'", "''"), lastCol, lastRow),
		Scope:    plan.Name,
	})
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
