package models

// Alignment is the horizontal/vertical placement of a cell value.
type Alignment struct {
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`
	WrapText   bool   `json:"wrap_text,omitempty"`
}

// Font describes the font of a planned cell. Size 0 keeps the workbook default.
type Font struct {
	Bold bool    `json:"bold,omitempty"`
	Size float64 `json:"size,omitempty"`
}

// Border is a uniform border drawn on all four sides of a cell.
type Border struct {
	// Style uses the excelize border style index (1 = thin).
	Style int `json:"style"`
	// Color is an RGB hex color without the leading '#'.
	Color string `json:"color"`
}

// CellPlacement is a value written into one cell.
type CellPlacement struct {
	// Row is the 1-based row index.
	Row int `json:"row"`
	// Col is the 1-based column index.
	Col int `json:"col"`
	// Value is a string or an int.
	Value     interface{} `json:"value"`
	Alignment Alignment   `json:"alignment"`
	Font      *Font       `json:"font,omitempty"`
	Border    *Border     `json:"border,omitempty"`
}

// ImagePlacement anchors one picture over a rectangular cell range.
// From and To coordinates are zero-based like DrawingML anchors.
type ImagePlacement struct {
	// Index is the 1-based position of the record within its tab.
	Index int `json:"index"`
	// Name is the original file name.
	Name string `json:"name"`
	// Extension is the inferred canonical format name (png, jpeg, gif, bmp).
	Extension string `json:"extension"`
	// Format is the format found in the payload header. It may differ from
	// Extension when the file name is wrong.
	Format string `json:"format"`
	// Data is the decoded payload.
	Data []byte `json:"-"`
	// NaturalWidth and NaturalHeight are the pixel size stored in the payload.
	NaturalWidth  int `json:"natural_width"`
	NaturalHeight int `json:"natural_height"`

	FromCol int `json:"from_col"`
	FromRow int `json:"from_row"`
	ToCol   int `json:"to_col"`
	ToRow   int `json:"to_row"`

	// Width and Height are the requested rendered size in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rows returns the number of rows spanned by the image.
func (p ImagePlacement) Rows() int {
	return p.ToRow - p.FromRow
}

// SheetPlan is the complete layout of one worksheet, computed before
// anything is written to a document.
type SheetPlan struct {
	// Name is the worksheet title.
	Name string `json:"name"`
	// ColumnWidths maps 1-based column index to width in character units.
	ColumnWidths map[int]float64 `json:"column_widths"`
	// RowHeights maps 1-based row index to height in points.
	RowHeights map[int]float64 `json:"row_heights"`
	Cells      []CellPlacement  `json:"cells"`
	Images     []ImagePlacement `json:"images"`
	// NextRow is the row cursor after the last record (1-based).
	NextRow int `json:"next_row"`
	// LastCol is the right-most column that holds content.
	LastCol int `json:"last_col"`
}

// RowsUsed returns how many rows the cursor advanced past row 1.
func (p SheetPlan) RowsUsed() int {
	return p.NextRow - 1
}
