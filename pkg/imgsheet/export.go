package imgsheet

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the worksheet every new document starts with.
const defaultSheet = "Sheet1"

// Result describes a delivered document.
type Result struct {
	// ID identifies the export in logs and responses.
	ID string `json:"id"`
	// FileName is the generated download name.
	FileName string `json:"file_name"`
	// Location is where the sink put the document.
	Location string `json:"location,omitempty"`
	// Size is the document size in bytes.
	Size int `json:"size"`
	// Sheets lists the worksheet titles in order.
	Sheets []string `json:"sheets"`
	// Images is the number of pictures placed over all sheets.
	Images int `json:"images"`
	// CreatedAt is the timestamp embedded in FileName.
	CreatedAt time.Time `json:"created_at"`
}

// Build creates a document with one worksheet per tab. The caller owns the
// returned file and must Close it.
func Build(ctx context.Context, tabs []models.Tab, settings Settings, opts Options) (*excelize.File, error) {
	f, _, err := build(ctx, tabs, settings, opts)
	return f, err
}

func build(ctx context.Context, tabs []models.Tab, settings Settings, opts Options) (*excelize.File, []models.SheetPlan, error) {
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}

	logger := opts.logger()
	f := excelize.NewFile()
	if opts.Creator != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Creator: opts.Creator}); err != nil {
			f.Close()
			return nil, nil, NewExportError("", ComponentSheet, err)
		}
	}

	plans := make([]models.SheetPlan, 0, len(tabs))
	used := make(map[string]bool, len(tabs))
	for i, tab := range tabs {
		if err := ctx.Err(); err != nil {
			f.Close()
			return nil, nil, err
		}

		name := uniqueSheetName(SheetName(tab.Name, i+1), used)
		if err := addSheet(f, i, name); err != nil {
			f.Close()
			return nil, nil, NewExportError(name, ComponentSheet, err)
		}

		tab.Name = name
		plan, err := layout.Plan(tab, settings)
		if err != nil {
			f.Close()
			return nil, nil, NewExportError(name, ComponentImage, err)
		}

		if err := Render(f, plan, logger); err != nil {
			f.Close()
			return nil, nil, NewExportError(name, ComponentRender, err)
		}

		logger.Debug("sheet rendered",
			slog.String("sheet", name),
			slog.Int("images", len(plan.Images)),
			slog.Int("rows", plan.RowsUsed()))
		plans = append(plans, plan)
	}

	f.SetActiveSheet(0)
	return f, plans, nil
}

// addSheet renames the default sheet for the first tab and appends the rest.
func addSheet(f *excelize.File, index int, name string) error {
	if index == 0 {
		return f.SetSheetName(defaultSheet, name)
	}
	_, err := f.NewSheet(name)
	return err
}

// Export builds the document, serializes it and hands it to sink.
// Any failure aborts the whole export; nothing is delivered.
func Export(ctx context.Context, tabs []models.Tab, settings Settings, sink Sink, opts Options) (*Result, error) {
	if sink == nil {
		return nil, ErrNoSink
	}

	id := opts.exportID()
	logger := opts.logger().With(slog.String("export_id", id))
	opts.Logger = logger
	start := time.Now()

	f, plans, err := build(ctx, tabs, settings, opts)
	if err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		return nil, err
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("serializing document failed", slog.String("error", err.Error()))
		return nil, NewExportError("", ComponentSerialize, err)
	}

	createdAt := opts.now()
	result := &Result{
		ID:        id,
		FileName:  FileName(opts.filePrefix(), createdAt),
		Size:      buf.Len(),
		CreatedAt: createdAt,
		Sheets:    make([]string, 0, len(plans)),
	}
	for _, plan := range plans {
		result.Sheets = append(result.Sheets, plan.Name)
		result.Images += len(plan.Images)
	}

	location, err := sink.Deliver(ctx, result.FileName, ContentType, bytes.NewReader(buf.Bytes()))
	if err != nil {
		logger.Error("delivering document failed", slog.String("error", err.Error()))
		return nil, NewExportError("", ComponentDeliver, err)
	}
	result.Location = location

	logger.Info("export completed",
		slog.String("file", result.FileName),
		slog.Int("sheets", len(result.Sheets)),
		slog.Int("images", result.Images),
		slog.Int("bytes", result.Size),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}
