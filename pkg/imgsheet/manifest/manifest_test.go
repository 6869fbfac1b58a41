package manifest

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "shots", "login.png"))
	writePNG(t, filepath.Join(dir, "logout", "b.png"))
	writePNG(t, filepath.Join(dir, "logout", "a.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logout", "notes.txt"), []byte("not an image"), 0644))

	manifest := `
settings:
  image_height: 45
  show_image_numbers: false
tabs:
  - name: Login
    images:
      - path: shots/login.png
        comment: login form
      - name: inline.gif
        data_url: "data:image/gif;base64,R0lGODlhAQABAAAAACw="
  - name: Logout
    dir: logout
`
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

	m, err := Load(path)
	require.NoError(t, err)

	require.Len(t, m.Tabs, 2)
	login := m.Tabs[0]
	assert.Equal(t, "Login", login.Name)
	require.Len(t, login.Images, 2)
	assert.Equal(t, "login.png", login.Images[0].Name)
	assert.Equal(t, "login form", login.Images[0].Comment)
	assert.True(t, strings.HasPrefix(login.Images[0].DataURL, "data:image/png;base64,"))
	_, mediaType, err := layout.DecodeDataURL(login.Images[0].DataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, "inline.gif", login.Images[1].Name)

	logout := m.Tabs[1]
	require.Len(t, logout.Images, 2)
	assert.Equal(t, "a.png", logout.Images[0].Name)
	assert.Equal(t, "b.png", logout.Images[1].Name)

	settings := m.Settings.Apply(models.Settings{ImageWidth: 400, ImageHeight: 300, LeftColumns: 1, ShowImageNumbers: true})
	assert.Equal(t, models.Settings{ImageWidth: 400, ImageHeight: 45, LeftColumns: 1}, settings)
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{"tabs":[{"name":"T","images":[{"name":"x.png","data_url":"data:image/png;base64,AAAA","comment":"c"}]}]}`)

	m, err := Parse(data, "")
	require.NoError(t, err)
	assert.Nil(t, m.Settings)
	require.Len(t, m.Tabs, 1)
	assert.Equal(t, models.ImageRecord{Name: "x.png", DataURL: "data:image/png;base64,AAAA", Comment: "c"}, m.Tabs[0].Images[0])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "tabs: [unclosed"},
		{"no source", "tabs:\n  - name: T\n    images:\n      - name: a.png\n"},
		{"both sources", "tabs:\n  - name: T\n    images:\n      - path: a.png\n        data_url: 'data:,AA'\n"},
		{"missing file", "tabs:\n  - name: T\n    images:\n      - path: missing.png\n"},
		{"missing dir", "tabs:\n  - name: T\n    dir: nowhere\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), t.TempDir())
			assert.ErrorIs(t, err, ErrManifest)
		})
	}
}

func TestSettingsOverride_Nil(t *testing.T) {
	var o *SettingsOverride
	base := models.Settings{ImageWidth: 1, ImageHeight: 2}
	assert.Equal(t, base, o.Apply(base))
}
