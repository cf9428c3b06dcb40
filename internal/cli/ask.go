// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <pregunta...>",
		Short: "Ask one question and print the answer",
		Example: `  biblio ask "¿Quién escribió Don Quijote de la Mancha?"
  biblio ask --backend http://localhost:8090 Resume Moby Dick`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, strings.Join(args, " "))
		},
	}
}

func runAsk(cmd *cobra.Command, opts *rootOptions, question string) error {
	e, err := loadEnv(opts)
	if err != nil {
		return err
	}
	defer e.close()

	ctrl := e.newController()
	defer ctrl.Close()

	stop := cancelOnInterrupt(ctrl, nil)
	accepted := ctrl.Send(question)
	stop()
	if !accepted {
		return errors.New("question is empty")
	}

	msg, ok := ctrl.Last()
	if !ok {
		return errors.New("no answer recorded")
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, newAnswerRenderer(e.cfg.UI.Markdown).formatMessage(msg))
	if msg.Error {
		return errQuiet
	}
	return nil
}
