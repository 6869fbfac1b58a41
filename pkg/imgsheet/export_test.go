package imgsheet

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/inspect"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"github.com/xuri/excelize/v2"
)

type bufferSink struct {
	name        string
	contentType string
	buf         bytes.Buffer
	calls       int
}

func (s *bufferSink) Deliver(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	s.calls++
	s.name = name
	s.contentType = contentType
	_, err := io.Copy(&s.buf, r)
	return "memory://" + name, err
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return layout.EncodeDataURL("image/png", buf.Bytes())
}

func fixedOptions(logger *slog.Logger) Options {
	opts := DefaultOptions()
	opts.Logger = logger
	opts.Now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 15, 0, time.UTC) }
	return opts
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings() Settings {
	return Settings{
		ImageWidth:       140,
		ImageHeight:      45,
		RowSpacing:       2,
		LeftColumns:      2,
		TopRows:          1,
		ShowImageNumbers: true,
	}
}

func TestBuild_EmptyTabs(t *testing.T) {
	f, err := Build(context.Background(), nil, DefaultSettings(), fixedOptions(discardLogger()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
	_, err = f.WriteToBuffer()
	require.NoError(t, err)
}

func TestExport_EmptyTabs(t *testing.T) {
	sink := &bufferSink{}
	result, err := Export(context.Background(), []models.Tab{}, DefaultSettings(), sink, fixedOptions(discardLogger()))
	require.NoError(t, err)

	assert.Empty(t, result.Sheets)
	assert.Equal(t, 1, sink.calls)

	wb, err := inspect.Bytes(sink.buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, wb.SheetOrder, 1)
}

func TestExport_Layout(t *testing.T) {
	tabs := []models.Tab{
		{Name: "Login", Images: []models.ImageRecord{
			{Name: "form.png", DataURL: pngDataURL(t, 4, 4), Comment: "login form"},
			{Name: "error.png", DataURL: pngDataURL(t, 4, 4), Comment: "error shown"},
		}},
		{Name: "Logout", Images: []models.ImageRecord{
			{Name: "bye.png", DataURL: pngDataURL(t, 4, 4)},
		}},
	}

	sink := &bufferSink{}
	result, err := Export(context.Background(), tabs, testSettings(), sink, fixedOptions(discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, "エビデンス_2026-10-16T09-30-15.xlsx", result.FileName)
	assert.Equal(t, "memory://"+result.FileName, result.Location)
	assert.Equal(t, ContentType, sink.contentType)
	assert.Equal(t, []string{"Login", "Logout"}, result.Sheets)
	assert.Equal(t, 3, result.Images)
	assert.Equal(t, sink.buf.Len(), result.Size)
	assert.NotEmpty(t, result.ID)

	wb, err := inspect.Bytes(sink.buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Login", "Logout"}, wb.SheetOrder)

	login := wb.Sheets["Login"]
	// Row 1 header, row 2 top margin, row 3 caption, rows 4-6 image, rows 7-8 spacing.
	assert.Equal(t, "No", login.Rows[0].C["2"])
	assert.Equal(t, "login form", login.Rows[2].C["3"])
	assert.Equal(t, int64(1), login.Rows[3].C["2"])
	assert.Equal(t, "error shown", login.Rows[8].C["3"])
	assert.Equal(t, int64(2), login.Rows[9].C["2"])
	for _, r := range []int{4, 5, 6, 10, 11, 12} {
		assert.InDelta(t, 11.25, login.Rows[r-1].Height, 1e-6, "row %d", r)
	}

	require.Len(t, login.Images, 2)
	form := login.Images[0]
	assert.Equal(t, "form.png", form.AltText)
	// The picture covers column C and rows 4-6 exactly.
	assert.Equal(t, 2, form.FromCol)
	assert.Equal(t, 3, form.FromRow)
	assert.Equal(t, 3, form.ToCol)
	assert.Equal(t, 6, form.ToRow)
	assert.Zero(t, form.FromColOff)
	assert.Zero(t, form.FromRowOff)
	assert.Zero(t, form.ToColOff)
	assert.Zero(t, form.ToRowOff)
	assert.Equal(t, layout.ColumnPixels(20), form.W)
	assert.Equal(t, 3*layout.RowPixels(11.25), form.H)

	errShot := login.Images[1]
	assert.Equal(t, 2, errShot.FromCol)
	assert.Equal(t, 9, errShot.FromRow)
	assert.Equal(t, 3, errShot.ToCol)
	assert.Equal(t, 12, errShot.ToRow)
	assert.Zero(t, errShot.ToColOff)
	assert.Zero(t, errShot.ToRowOff)

	require.Len(t, login.PrintAreas, 1)
	assert.Equal(t, models.PrintArea{R1: 1, C1: 1, R2: 14, C2: 3}, login.PrintAreas[0])

	logout := wb.Sheets["Logout"]
	require.Len(t, logout.Images, 1)
	// No caption: header, top margin, then the image at row 3.
	assert.Equal(t, 2, logout.Images[0].FromRow)
	assert.Equal(t, 5, logout.Images[0].ToRow)
	assert.Equal(t, int64(1), logout.Rows[2].C["2"])
}

func TestExport_MalformedDataURL(t *testing.T) {
	tabs := []models.Tab{{Name: "broken", Images: []models.ImageRecord{
		{Name: "a.png", DataURL: "data:image/png;base64"},
	}}}

	sink := &bufferSink{}
	_, err := Export(context.Background(), tabs, testSettings(), sink, fixedOptions(discardLogger()))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrMalformedDataURL)
	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "broken", exportErr.SheetName)
	assert.Equal(t, ComponentImage, exportErr.Component)
	assert.Zero(t, sink.calls, "nothing must be delivered")
}

func TestExport_InvalidSettings(t *testing.T) {
	settings := testSettings()
	settings.ImageHeight = 0

	_, err := Export(context.Background(), nil, settings, &bufferSink{}, fixedOptions(discardLogger()))
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestExport_NoSink(t *testing.T) {
	_, err := Export(context.Background(), nil, DefaultSettings(), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoSink)
}

func TestExport_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tabs := []models.Tab{{Name: "t"}}
	_, err := Export(ctx, tabs, DefaultSettings(), &bufferSink{}, fixedOptions(discardLogger()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExport_WarnsOnMislabeledImage(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	tabs := []models.Tab{{Name: "t", Images: []models.ImageRecord{
		{Name: "really-a-png.jpg", DataURL: pngDataURL(t, 2, 2)},
	}}}

	_, err := Export(context.Background(), tabs, testSettings(), &bufferSink{}, fixedOptions(logger))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "image format differs from file name")
	assert.Contains(t, logs.String(), `"labeled":"jpeg"`)
	assert.Contains(t, logs.String(), `"actual":"png"`)
}

func TestExport_DirSink(t *testing.T) {
	dir := t.TempDir()
	tabs := []models.Tab{{Name: "t", Images: []models.ImageRecord{
		{Name: "a.png", DataURL: pngDataURL(t, 2, 2)},
	}}}

	result, err := Export(context.Background(), tabs, testSettings(), DirSink{Dir: dir}, fixedOptions(discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, result.FileName), result.Location)
	info, err := os.Stat(result.Location)
	require.NoError(t, err)
	assert.Equal(t, int64(result.Size), info.Size())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be gone")
}

func TestExport_DuplicateSheetNames(t *testing.T) {
	tabs := []models.Tab{{Name: "Same"}, {Name: "same"}, {Name: ""}}

	result, err := Export(context.Background(), tabs, testSettings(), &bufferSink{}, fixedOptions(discardLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Same", "same (2)", "Sheet3"}, result.Sheets)
}

func TestExport_WideImages(t *testing.T) {
	settings := testSettings()
	settings.ImageWidth = 1920
	settings.ImageHeight = 60
	tabs := []models.Tab{{Name: "wide", Images: []models.ImageRecord{
		{Name: "screen.png", DataURL: pngDataURL(t, 16, 9)},
	}}}

	sink := &bufferSink{}
	_, err := Export(context.Background(), tabs, settings, sink, fixedOptions(discardLogger()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(sink.buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	width, err := f.GetColWidth("wide", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(excelize.MaxColumnWidth), width)

	wb, err := inspect.Bytes(sink.buf.Bytes())
	require.NoError(t, err)
	require.Len(t, wb.Sheets["wide"].Images, 1)
	img := wb.Sheets["wide"].Images[0]
	assert.Equal(t, 3, img.ToCol)
	assert.Zero(t, img.ToColOff)
	assert.Equal(t, layout.ColumnPixels(excelize.MaxColumnWidth), img.W)
}

func TestExport_UnreadableImage(t *testing.T) {
	tabs := []models.Tab{{Name: "notes", Images: []models.ImageRecord{
		{Name: "readme.png", DataURL: layout.EncodeDataURL("image/png", []byte("not an image"))},
	}}}

	sink := &bufferSink{}
	_, err := Export(context.Background(), tabs, testSettings(), sink, fixedOptions(discardLogger()))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnreadableImage)
	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, ComponentImage, exportErr.Component)
	assert.Zero(t, sink.calls, "nothing must be delivered")
}
