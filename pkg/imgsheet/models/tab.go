// Package models defines data structures for image sheet export and readback.
package models

// Tab is one named group of images. Each tab becomes one worksheet.
type Tab struct {
	// Name is used as the worksheet title.
	Name string `json:"name" yaml:"name"`
	// Images are placed top to bottom in this order.
	Images []ImageRecord `json:"images" yaml:"images"`
}

// ImageRecord is a single labeled image.
type ImageRecord struct {
	// Name is the original file name. Only its suffix matters for export.
	Name string `json:"name" yaml:"name"`
	// DataURL holds the raster data as "data:<media type>;base64,<payload>".
	DataURL string `json:"data_url" yaml:"data_url" masq:"secret"`
	// Comment is an optional caption written above the image.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// HasComment reports whether the record carries a caption.
func (r ImageRecord) HasComment() bool {
	return r.Comment != ""
}
