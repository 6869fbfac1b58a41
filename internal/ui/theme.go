// Package ui holds the presentation state shared by the CLI and the HTTP
// front end: the light/dark theme preference and transient notifications.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Theme is the color scheme of the front end.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Only "dark" selects the dark
// theme; anything else falls back to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeStore persists the theme preference.
type ThemeStore interface {
	Load(ctx context.Context) (Theme, error)
	Save(ctx context.Context, theme Theme) error
}

// Preferences is the explicit theme state. It replaces a global toggle:
// callers own an instance and pass it where it is needed.
type Preferences struct {
	mu       sync.Mutex
	theme    Theme
	store    ThemeStore
	notifier Notifier
}

// NewPreferences creates preferences backed by store. notifier may be nil.
func NewPreferences(store ThemeStore, notifier Notifier) *Preferences {
	return &Preferences{theme: ThemeLight, store: store, notifier: notifier}
}

// Load reads the saved theme.
func (p *Preferences) Load(ctx context.Context) (Theme, error) {
	theme, err := p.store.Load(ctx)
	if err != nil {
		return ThemeLight, err
	}

	p.mu.Lock()
	p.theme = theme
	p.mu.Unlock()
	return theme, nil
}

// Theme returns the current theme.
func (p *Preferences) Theme() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// Toggle switches between light and dark, saves the choice and raises a
// success notification.
func (p *Preferences) Toggle(ctx context.Context) (Theme, error) {
	p.mu.Lock()
	current := p.theme
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	if err := p.store.Save(ctx, next); err != nil {
		p.mu.Unlock()
		return current, fmt.Errorf("saving theme: %w", err)
	}
	p.theme = next
	p.mu.Unlock()

	if p.notifier != nil {
		msg := "Switched to light mode"
		if next == ThemeDark {
			msg = "Switched to dark mode"
		}
		p.notifier.Notify(ctx, msg, ToastSuccess)
	}
	return next, nil
}

// MemoryThemeStore keeps the preference in memory.
type MemoryThemeStore struct {
	mu    sync.Mutex
	theme string
}

// Load returns the saved theme.
func (s *MemoryThemeStore) Load(context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ParseTheme(s.theme), nil
}

// Save stores the theme.
func (s *MemoryThemeStore) Save(_ context.Context, theme Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = string(theme)
	return nil
}

// FileThemeStore keeps the preference in a small YAML file.
type FileThemeStore struct {
	Path string
}

type themeFile struct {
	Theme string `yaml:"theme"`
}

// Load returns light when the file does not exist yet.
func (s FileThemeStore) Load(context.Context) (Theme, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return ThemeLight, nil
	}
	if err != nil {
		return ThemeLight, err
	}

	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return ThemeLight, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return ParseTheme(tf.Theme), nil
}

// Save writes the theme, creating the parent directory if needed.
func (s FileThemeStore) Save(_ context.Context, theme Theme) error {
	data, err := yaml.Marshal(themeFile{Theme: string(theme)})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}

// DefaultThemeFile returns $HOME/.config/imgsheet/theme.yaml.
func DefaultThemeFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "imgsheet", "theme.yaml"), nil
}
