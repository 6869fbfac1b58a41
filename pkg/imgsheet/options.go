// Package imgsheet exports labeled images, grouped into tabs, to a
// multi-sheet xlsx document.
package imgsheet

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

// Settings is re-exported so callers only need this package.
type Settings = models.Settings

// DefaultFilePrefix starts every generated file name.
const DefaultFilePrefix = "エビデンス"

// DefaultSettings returns the layout used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ImageWidth:       400,
		ImageHeight:      300,
		RowSpacing:       2,
		LeftColumns:      1,
		TopRows:          1,
		ShowImageNumbers: true,
	}
}

// Options configures export behavior that is not part of the layout.
type Options struct {
	// Logger receives progress and format mismatch warnings.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
	// Now returns the timestamp embedded in the file name.
	// If nil, time.Now is used.
	Now func() time.Time
	// FilePrefix starts the generated file name.
	// If empty, DefaultFilePrefix is used.
	FilePrefix string
	// Creator is stored in the document properties.
	Creator string
	// ExportID identifies the export. If empty, a random UUID is used.
	ExportID string
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		FilePrefix: DefaultFilePrefix,
		Creator:    "imgsheet",
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) filePrefix() string {
	if o.FilePrefix != "" {
		return o.FilePrefix
	}
	return DefaultFilePrefix
}

func (o Options) exportID() string {
	if o.ExportID != "" {
		return o.ExportID
	}
	return uuid.NewString()
}
