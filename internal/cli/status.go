// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/ui/styles"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the backend is reachable",
		Long: `Probe the backend once and print online or offline.

Exits with status 1 when the backend is offline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			ctrl := e.newController()
			defer ctrl.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.Backend.ProbeTimeout())
			defer cancel()
			reach := ctrl.Probe(ctx)

			online := reach == conversation.ReachabilityOnline
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				styles.RenderStatus(online, reach.String()),
				DimStyle.Render(e.cfg.Backend.URL))
			if !online {
				return errQuiet
			}
			return nil
		},
	}
}
