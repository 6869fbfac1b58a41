package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/imgsheet-go/internal/ui"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/manifest"
)

// settingsFlags mirrors the export settings on the command line.
type settingsFlags struct {
	fs *pflag.FlagSet

	imageWidth, imageHeight, rowSpacing, leftColumns, topRows int
	showImageNumbers                                          bool
}

func (f *settingsFlags) register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.IntVar(&f.imageWidth, "image-width", 400, "image width in pixels")
	fs.IntVar(&f.imageHeight, "image-height", 300, "image height in pixels")
	fs.IntVar(&f.rowSpacing, "row-spacing", 2, "empty rows after each image")
	fs.IntVar(&f.leftColumns, "left-columns", 1, "margin columns left of the images")
	fs.IntVar(&f.topRows, "top-rows", 1, "margin rows at the top")
	fs.BoolVar(&f.showImageNumbers, "numbers", true, "write a sequence number next to each image")
}

// apply overrides settings with the flags the user set.
func (f *settingsFlags) apply(settings imgsheet.Settings) imgsheet.Settings {
	o := manifest.SettingsOverride{}
	set := func(name string, v *int) *int {
		if f.fs.Changed(name) {
			return v
		}
		return nil
	}
	o.ImageWidth = set("image-width", &f.imageWidth)
	o.ImageHeight = set("image-height", &f.imageHeight)
	o.RowSpacing = set("row-spacing", &f.rowSpacing)
	o.LeftColumns = set("left-columns", &f.leftColumns)
	o.TopRows = set("top-rows", &f.topRows)
	if f.fs.Changed("numbers") {
		o.ShowImageNumbers = &f.showImageNumbers
	}
	return o.Apply(settings)
}

func newExportCmd() *cobra.Command {
	var (
		outputDir string
		toStdout  bool
		flags     settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "export <manifest.yaml>",
		Short: "Build an xlsx document from a manifest",
		Long: `export reads a manifest listing tabs of images and writes one worksheet
per tab. Settings come from the config file, then the manifest, then flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			settings := flags.apply(m.Settings.Apply(cfg.Export))

			var sink imgsheet.Sink = imgsheet.DirSink{Dir: cfg.Output.Dir}
			if outputDir != "" {
				sink = imgsheet.DirSink{Dir: outputDir}
			}
			if toStdout {
				sink = imgsheet.WriterSink{W: cmd.OutOrStdout()}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runExport(ctx, cmd, m, settings, sink, !toStdout)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default from config output.dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the document to stdout instead of a file")
	flags.register(cmd.Flags())
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, m *manifest.Manifest, settings imgsheet.Settings, sink imgsheet.Sink, printResult bool) error {
	notifier := ui.LogNotifier{Logger: logger}

	opts := imgsheet.DefaultOptions()
	opts.Logger = logger
	opts.FilePrefix = cfg.Output.FilePrefix

	result, err := imgsheet.Export(ctx, m.Tabs, settings, sink, opts)
	if err != nil {
		notifier.Notify(ctx, "Export failed: "+err.Error(), ui.ToastError)
		return fmt.Errorf("export failed: %w", err)
	}
	notifier.Notify(ctx, fmt.Sprintf("Exported %d images to %s", result.Images, result.Location), ui.ToastSuccess)

	if !printResult {
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
