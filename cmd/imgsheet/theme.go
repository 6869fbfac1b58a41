package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/imgsheet-go/internal/ui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or switch the color theme",
		Args:  cobra.NoArgs,
		RunE:  showTheme,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved theme",
		Args:  cobra.NoArgs,
		RunE:  showTheme,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := loadPreferences(cmd.Context(), ui.LogNotifier{Logger: logger})
			if err != nil {
				return err
			}
			theme, err := prefs.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	})
	return cmd
}

func showTheme(cmd *cobra.Command, _ []string) error {
	prefs, err := loadPreferences(cmd.Context(), nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), prefs.Theme())
	return nil
}

// loadPreferences reads the saved theme from ui.theme_file, or the
// per-user default location when unset.
func loadPreferences(ctx context.Context, notifier ui.Notifier) (*ui.Preferences, error) {
	path := cfg.UI.ThemeFile
	if path == "" {
		var err error
		if path, err = ui.DefaultThemeFile(); err != nil {
			return nil, fmt.Errorf("locating theme file: %w", err)
		}
	}

	prefs := ui.NewPreferences(ui.FileThemeStore{Path: path}, notifier)
	if _, err := prefs.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	return prefs, nil
}
