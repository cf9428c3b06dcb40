// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/Davidcm2803/bot-literario/internal/conversation"
	"github.com/Davidcm2803/bot-literario/internal/ui/components"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat line by line with input history",
		Long: `Start an interactive line-mode conversation.

Arrow keys recall earlier input. Type /help for commands, /quit or Ctrl+D to
leave. Ctrl+C while waiting for an answer cancels the question.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

// =============================================================================
// INPUT
// =============================================================================

// promptReader returns one line per call and io.EOF when input ends.
type promptReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// lineEditor provides history and line editing on a terminal.
type lineEditor struct {
	line        *liner.State
	historyFile string
	log         *slog.Logger
}

func newLineEditor(historyFile string, log *slog.Logger) *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	e := &lineEditor{line: line, historyFile: historyFile, log: log}
	if f, err := os.Open(historyFile); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			log.Debug("history partially read", "error", err)
		}
		f.Close()
	}
	return e
}

func (e *lineEditor) ReadInput(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// Close writes the history with owner-only permissions and restores the terminal.
func (e *lineEditor) Close() {
	defer e.line.Close()
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		e.log.Warn("history not saved", "path", e.historyFile, "error", err)
		return
	}
	defer f.Close()
	if _, err := e.line.WriteHistory(f); err != nil {
		e.log.Warn("history not saved", "path", e.historyFile, "error", err)
	}
}

// plainReader reads piped input. liner only reads os.Stdin, so redirected
// command input goes through here.
type plainReader struct {
	sc *bufio.Scanner
}

func newPlainReader(r io.Reader) *plainReader {
	return &plainReader{sc: bufio.NewScanner(r)}
}

func (p *plainReader) ReadInput(string) (string, error) {
	if p.sc.Scan() {
		return p.sc.Text(), nil
	}
	if err := p.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (p *plainReader) Close() {}

// =============================================================================
// SESSION
// =============================================================================

// chatSession is one line-mode conversation.
type chatSession struct {
	ctrl         *conversation.Controller
	in           promptReader
	out          io.Writer
	render       answerRenderer
	interactive  bool
	backendURL   string
	probeTimeout time.Duration
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	e, err := loadEnv(opts)
	if err != nil {
		return err
	}
	defer e.close()

	ctrl := e.newController()
	defer ctrl.Close()

	stdin := cmd.InOrStdin()
	interactive := stdin == os.Stdin && IsTTY()

	var in promptReader
	if interactive {
		history, err := e.cfg.HistoryPath()
		if err != nil {
			return err
		}
		in = newLineEditor(history, e.log)
	} else {
		in = newPlainReader(stdin)
	}
	defer in.Close()

	s := &chatSession{
		ctrl:         ctrl,
		in:           in,
		out:          cmd.OutOrStdout(),
		render:       newAnswerRenderer(e.cfg.UI.Markdown),
		interactive:  interactive,
		backendURL:   e.cfg.Backend.URL,
		probeTimeout: e.cfg.Backend.ProbeTimeout(),
	}
	return s.run(cmd.Context())
}

func (s *chatSession) run(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	reach := s.ctrl.Probe(probeCtx)
	cancel()

	if s.interactive {
		s.printWelcome(reach)
	}

	for {
		input, err := s.in.ReadInput(PromptStyle.Render("biblio> "))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				s.printExitSummary()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if !s.handleSlashCommand(input) {
				s.printExitSummary()
				return nil
			}
			continue
		}

		s.send(input, !s.interactive)
	}
}

// send asks one question and prints the new messages. The user's own line
// is echoed only when the terminal did not already show it.
func (s *chatSession) send(text string, echo bool) {
	before := len(s.ctrl.Messages())

	stop := cancelOnInterrupt(s.ctrl, func() {
		fmt.Fprintln(s.out, WarningStyle.Render("[Cancelado]"))
	})
	accepted := s.ctrl.Send(text)
	stop()
	if !accepted {
		return
	}

	msgs := s.ctrl.Messages()
	if before > len(msgs) {
		return
	}
	for _, msg := range msgs[before:] {
		if msg.IsUser() && !echo {
			continue
		}
		fmt.Fprintln(s.out, s.render.formatMessage(msg))
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand runs one command and reports whether the session goes on.
func (s *chatSession) handleSlashCommand(input string) bool {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		s.printHelp()

	case "/suggest", "/s":
		s.handleSuggest(args)

	case "/status":
		reach := s.ctrl.Reachability()
		fmt.Fprintf(s.out, "%s %s\n", components.PillText(reach), DimStyle.Render(s.backendURL))

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Fprintf(s.out, "%s unknown command: %s (type /help for commands)\n",
			ErrorStyle.Render("[Error]"), command)
	}
	return true
}

// handleSuggest lists the suggestions, or asks suggestion n when given.
func (s *chatSession) handleSuggest(args []string) {
	items := s.ctrl.Suggestions()
	if len(args) == 0 {
		printSuggestions(s.out, items)
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintf(s.out, "%s choose a suggestion between 1 and %d\n",
			ErrorStyle.Render("[Error]"), len(items))
		return
	}
	s.ctrl.SelectSuggestion(items[n-1])
	s.send(s.ctrl.Draft(), true)
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *chatSession) printWelcome(reach conversation.Reachability) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, TitleStyle.Render(components.Title)+"  "+DimStyle.Render(components.Subtitle))
	fmt.Fprintln(s.out, Separator(30))
	fmt.Fprintf(s.out, "%s %s\n", LabelStyle.Render("Servidor:"), s.backendURL)
	fmt.Fprintf(s.out, "%s %s\n", LabelStyle.Render("Estado:"), components.PillText(reach))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, LabelStyle.Render(components.SuggestionsLabel))
	printSuggestions(s.out, s.ctrl.Suggestions())
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, DimStyle.Render("Escribe tu pregunta y pulsa Enter. Comandos: /help, /quit"))
	fmt.Fprintln(s.out)
}

func (s *chatSession) printHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/suggest, /s", "List suggested questions"},
		{"/suggest N", "Ask suggestion N"},
		{"/status", "Show backend reachability"},
		{"/quit, /q", "Leave the chat"},
	}

	fmt.Fprintln(s.out)
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %s  %s\n",
			PromptStyle.Render(fmt.Sprintf("%-14s", c.cmd)),
			DimStyle.Render(c.desc))
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, DimStyle.Render("Tip: Ctrl+C cancels a pending question, Ctrl+D exits"))
	fmt.Fprintln(s.out)
}

func (s *chatSession) printExitSummary() {
	if !s.interactive {
		return
	}
	asked := 0
	for _, m := range s.ctrl.Messages() {
		if m.IsUser() {
			asked++
		}
	}
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "%s %s\n",
		DimStyle.Render(fmt.Sprintf("%d preguntas en esta sesión.", asked)),
		TitleStyle.Render("¡Hasta pronto!"))
}
