package models

// SheetLayout is the layout of one worksheet as read back from a document.
type SheetLayout struct {
	// Rows contains rows with cell values and heights.
	Rows []CellRow `json:"rows,omitempty"`
	// Images contains the pictures anchored on the sheet.
	Images []ImageAnchor `json:"images,omitempty"`
	// UsedRange is the range of non-empty cells (e.g. "A1:B12").
	UsedRange string `json:"used_range,omitempty"`
	// PrintAreas contains the defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
