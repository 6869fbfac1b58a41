package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/inspect"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

func newInspectCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		sheetsDir  string
	)

	cmd := &cobra.Command{
		Use:   "inspect <input.xlsx>",
		Short: "Print the layout of an exported document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}

			wb, err := inspect.File(inputPath)
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}

			jsonData, err := toJSON(wb, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			} else if sheetsDir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			}

			if sheetsDir != "" {
				if err := writeSheetFiles(wb, sheetsDir, pretty); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "directory for per-sheet output files")
	return cmd
}

func toJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func writeSheetFiles(wb *models.WorkbookLayout, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		jsonData, err := toJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fmt.Sprintf("%02d_%s.json", i+1, safeFileName(name)))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

// safeFileName replaces path separators. Documents not written by
// imgsheet may carry them in sheet titles.
func safeFileName(name string) string {
	out := []rune(name)
	for i, r := range out {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			out[i] = '_'
		}
	}
	return string(out)
}
