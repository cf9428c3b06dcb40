// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Davidcm2803/bot-literario/internal/logger"
	"github.com/Davidcm2803/bot-literario/internal/prefs"
	"github.com/Davidcm2803/bot-literario/internal/ui/app"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// errQuiet makes the process exit non-zero after the command already
// reported the failure itself.
var errQuiet = errors.New("quiet failure")

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	backendURL string
	logLevel   string
}

// NewRootCmd builds the biblio command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "biblio",
		Short: "Biblio IA, el asistente literario en tu terminal",
		Long: `Biblio IA answers questions about books from a retrieval backend.

Without a subcommand biblio opens the terminal interface. When stdin is not
a terminal it reads questions line by line instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTTY() {
				return runChat(cmd, opts)
			}
			return runTUI(opts)
		},
	}
	cmd.SetVersionTemplate(versionLine() + "\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.biblio/config.toml)")
	pf.StringVar(&opts.backendURL, "backend", "", "backend base URL")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newAskCmd(opts),
		newChatCmd(opts),
		newStatusCmd(opts),
		newThemeCmd(opts),
		newSuggestCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errQuiet) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", ErrorStyle.Render("Error:"), err)
		}
		return 1
	}
	return 0
}

// runTUI starts the full-screen interface.
func runTUI(opts *rootOptions) error {
	e, err := loadEnv(opts)
	if err != nil {
		return err
	}
	defer e.close()

	var store prefs.Store
	sqlite, err := e.openPrefs()
	if err != nil {
		e.log.Warn("preferences unavailable, theme will not persist", "error", err)
		store = prefs.NewMemoryStore()
	} else {
		store = sqlite
	}
	defer store.Close()

	conv := e.newController()
	m := app.New(conv, store, app.Options{
		NarrowWidth:  e.cfg.UI.NarrowWidth,
		Markdown:     e.cfg.UI.Markdown,
		ProbeTimeout: e.cfg.Backend.ProbeTimeout(),
		Logger:       logger.With("app"),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal interface failed: %w", err)
	}
	return nil
}
