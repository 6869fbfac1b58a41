package models

// ImageAnchor is a picture read back from a worksheet drawing.
type ImageAnchor struct {
	// ID is the drawing object id.
	ID int `json:"id"`
	// Name is the drawing object name (e.g. "Picture 1").
	Name string `json:"name,omitempty"`
	// AltText is the description stored on the picture.
	AltText string `json:"alt_text,omitempty"`
	// FromCol and FromRow are the zero-based top-left anchor cell.
	FromCol int `json:"from_col"`
	FromRow int `json:"from_row"`
	// ToCol and ToRow are the zero-based bottom-right anchor cell.
	ToCol int `json:"to_col"`
	ToRow int `json:"to_row"`
	// FromColOff etc. are offsets within the anchor cells, in pixels.
	FromColOff int `json:"from_col_off,omitempty"`
	FromRowOff int `json:"from_row_off,omitempty"`
	ToColOff   int `json:"to_col_off,omitempty"`
	ToRowOff   int `json:"to_row_off,omitempty"`
	// W and H are the picture extent in pixels.
	W int `json:"w"`
	H int `json:"h"`
}
