package models

// CellRow represents a single row of non-empty cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string) to cell value.
	C map[string]interface{} `json:"c"`
	// Height is the row height in points (0 if default).
	Height float64 `json:"height,omitempty"`
}
