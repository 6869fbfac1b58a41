package imgsheet

import "time"

// ContentType is the media type of the generated document.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// fileTimeLayout is an ISO 8601 timestamp truncated to seconds with the
// colons replaced, so the name is valid on every file system.
const fileTimeLayout = "2006-01-02T15-04-05"

// FileName returns the download name for a document created at t.
func FileName(prefix string, t time.Time) string {
	return prefix + "_" + t.UTC().Format(fileTimeLayout) + ".xlsx"
}
