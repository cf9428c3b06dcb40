// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Print a set of suggested questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			ctrl := e.newController()
			defer ctrl.Close()
			printSuggestions(cmd.OutOrStdout(), ctrl.Suggestions())
			return nil
		},
	}
}

// printSuggestions writes a numbered list, one suggestion per line.
func printSuggestions(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, DimStyle.Render("(sin sugerencias)"))
		return
	}
	for i, s := range items {
		fmt.Fprintf(w, "  %s %s\n", PromptStyle.Render(fmt.Sprintf("%d.", i+1)), s)
	}
}
