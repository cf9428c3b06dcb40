// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Davidcm2803/bot-literario/internal/effect"
	"github.com/Davidcm2803/bot-literario/internal/logger"
	"github.com/Davidcm2803/bot-literario/internal/sidebar"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the saved color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			store, err := e.openPrefs()
			if err != nil {
				return err
			}
			defer store.Close()

			side := sidebar.New(store, effect.NewLock(), logger.With("sidebar"))
			defer side.Close()

			theme := side.Theme()
			if len(args) == 1 {
				switch args[0] {
				case "toggle":
					theme, err = side.ToggleTheme()
				default:
					theme = sidebar.ParseTheme(args[0])
					err = side.SetTheme(theme)
				}
				if err != nil {
					return fmt.Errorf("failed to save theme: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(theme))
			return nil
		},
	}
}
