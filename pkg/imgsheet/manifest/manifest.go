// Package manifest loads export jobs described in YAML or JSON files.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/layout"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
	"gopkg.in/yaml.v3"
)

// ErrManifest indicates an unusable manifest.
var ErrManifest = errors.New("invalid manifest")

// Manifest is the parsed form of a manifest file.
type Manifest struct {
	// Settings is nil when the manifest sets nothing.
	Settings *SettingsOverride
	Tabs     []models.Tab
}

// SettingsOverride holds the settings a manifest chooses to set.
// Unset fields keep the configured value.
type SettingsOverride struct {
	ImageWidth       *int  `json:"image_width,omitempty" yaml:"image_width"`
	ImageHeight      *int  `json:"image_height,omitempty" yaml:"image_height"`
	RowSpacing       *int  `json:"row_spacing,omitempty" yaml:"row_spacing"`
	LeftColumns      *int  `json:"left_columns,omitempty" yaml:"left_columns"`
	TopRows          *int  `json:"top_rows,omitempty" yaml:"top_rows"`
	ShowImageNumbers *bool `json:"show_image_numbers,omitempty" yaml:"show_image_numbers"`
}

// Apply returns base with the overridden fields replaced.
func (o *SettingsOverride) Apply(base models.Settings) models.Settings {
	if o == nil {
		return base
	}
	if o.ImageWidth != nil {
		base.ImageWidth = *o.ImageWidth
	}
	if o.ImageHeight != nil {
		base.ImageHeight = *o.ImageHeight
	}
	if o.RowSpacing != nil {
		base.RowSpacing = *o.RowSpacing
	}
	if o.LeftColumns != nil {
		base.LeftColumns = *o.LeftColumns
	}
	if o.TopRows != nil {
		base.TopRows = *o.TopRows
	}
	if o.ShowImageNumbers != nil {
		base.ShowImageNumbers = *o.ShowImageNumbers
	}
	return base
}

type fileManifest struct {
	Settings *SettingsOverride `yaml:"settings"`
	Tabs     []fileTab         `yaml:"tabs"`
}

type fileTab struct {
	Name   string      `yaml:"name"`
	Dir    string      `yaml:"dir"`
	Images []fileImage `yaml:"images"`
}

type fileImage struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	DataURL string `yaml:"data_url"`
	Comment string `yaml:"comment"`
}

// Load reads a manifest file. Relative image paths are resolved against
// the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes manifest data. JSON is accepted as a subset of YAML.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	var fm fileManifest
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	m := &Manifest{Settings: fm.Settings, Tabs: make([]models.Tab, 0, len(fm.Tabs))}
	for i, ft := range fm.Tabs {
		tab, err := resolveTab(ft, baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: tab %d (%q): %v", ErrManifest, i+1, ft.Name, err)
		}
		m.Tabs = append(m.Tabs, tab)
	}
	return m, nil
}

func resolveTab(ft fileTab, baseDir string) (models.Tab, error) {
	tab := models.Tab{Name: ft.Name}

	if ft.Dir != "" {
		records, err := dirImages(resolvePath(baseDir, ft.Dir))
		if err != nil {
			return tab, err
		}
		tab.Images = append(tab.Images, records...)
	}

	for j, fi := range ft.Images {
		record, err := resolveImage(fi, baseDir)
		if err != nil {
			return tab, fmt.Errorf("image %d: %w", j+1, err)
		}
		tab.Images = append(tab.Images, record)
	}
	return tab, nil
}

func resolveImage(fi fileImage, baseDir string) (models.ImageRecord, error) {
	record := models.ImageRecord{Name: fi.Name, DataURL: fi.DataURL, Comment: fi.Comment}

	switch {
	case fi.DataURL != "" && fi.Path != "":
		return record, errors.New("both path and data_url set")
	case fi.DataURL != "":
		return record, nil
	case fi.Path == "":
		return record, errors.New("neither path nor data_url set")
	}

	path := resolvePath(baseDir, fi.Path)
	dataURL, err := fileDataURL(path)
	if err != nil {
		return record, err
	}
	record.DataURL = dataURL
	if record.Name == "" {
		record.Name = filepath.Base(path)
	}
	return record, nil
}

// dirImages turns every image file of dir into a record, sorted by name.
func dirImages(dir string) ([]models.ImageRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var records []models.ImageRecord
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		mtype := mimetype.Detect(data)
		if !strings.HasPrefix(mtype.String(), "image/") {
			continue
		}
		records = append(records, models.ImageRecord{
			Name:    e.Name(),
			DataURL: layout.EncodeDataURL(mediaType(mtype), data),
		})
	}
	return records, nil
}

// fileDataURL reads a file and encodes it with its detected media type.
func fileDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return layout.EncodeDataURL(mediaType(mimetype.Detect(data)), data), nil
}

// mediaType drops parameters such as "; charset=utf-8".
func mediaType(m *mimetype.MIME) string {
	mt, _, _ := strings.Cut(m.String(), ";")
	return mt
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
