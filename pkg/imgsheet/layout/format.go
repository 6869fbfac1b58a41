package layout

import "strings"

// DefaultFormat is used when the file name suffix is not recognized.
// The bytes are not re-encoded, so a mislabeled image keeps its real data.
const DefaultFormat = "png"

var extensionMap = map[string]string{
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"png":  "png",
	"gif":  "gif",
	"bmp":  "bmp",
}

// ImageExtension infers the canonical image format from a file name.
func ImageExtension(filename string) string {
	ext := filename
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx+1:]
	}
	if format, ok := extensionMap[strings.ToLower(ext)]; ok {
		return format
	}
	return DefaultFormat
}
