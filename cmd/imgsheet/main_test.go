package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/inspect"
)

func TestSettingsFlags_OnlyChangedFlagsApply(t *testing.T) {
	var flags settingsFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.register(fs)
	require.NoError(t, fs.Parse([]string{"--image-width=640", "--numbers=false"}))

	base := imgsheet.DefaultSettings()
	base.RowSpacing = 5

	got := flags.apply(base)
	assert.Equal(t, 640, got.ImageWidth)
	assert.Equal(t, base.ImageHeight, got.ImageHeight)
	assert.Equal(t, 5, got.RowSpacing)
	assert.False(t, got.ShowImageNumbers)
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shot.png"), buf.Bytes(), 0644))

	manifestPath := filepath.Join(dir, "manifest.yaml")
	manifest := `settings:
  row_spacing: 1
tabs:
  - name: Checkout
    images:
      - path: shot.png
        comment: after submit
`
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0644))

	configPath := filepath.Join(dir, "config.yaml")
	config := "logging:\n  level: error\nui:\n  theme_file: " + filepath.Join(dir, "theme.yaml") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))
	return configPath
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFixture(t, dir)
	outDir := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"--config", configPath, "export", filepath.Join(dir, "manifest.yaml"), "-o", outDir})
	require.NoError(t, root.Execute())

	var result imgsheet.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, []string{"Checkout"}, result.Sheets)
	assert.Equal(t, 1, result.Images)
	assert.Equal(t, filepath.Join(outDir, result.FileName), result.Location)

	wb, err := inspect.File(result.Location)
	require.NoError(t, err)
	require.Contains(t, wb.Sheets, "Checkout")
	assert.Len(t, wb.Sheets["Checkout"].Images, 1)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestThemeCommands(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFixture(t, dir)

	run := func(args ...string) string {
		var stdout bytes.Buffer
		root := newRootCmd()
		root.SetOut(&stdout)
		root.SetArgs(append([]string{"--config", configPath}, args...))
		require.NoError(t, root.Execute())
		return stdout.String()
	}

	assert.Equal(t, "light\n", run("theme", "show"))
	assert.Equal(t, "dark\n", run("theme", "toggle"))
	assert.Equal(t, "dark\n", run("theme"))
	assert.Equal(t, "light\n", run("theme", "toggle"))
}
