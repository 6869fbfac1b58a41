package models

// WorkbookLayout is the readback of an exported workbook.
type WorkbookLayout struct {
	// SheetOrder lists worksheet names in document order.
	SheetOrder []string `json:"sheet_order"`
	// Sheets maps sheet name to SheetLayout.
	Sheets map[string]SheetLayout `json:"sheets"`
}
