package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"sitechat/sitechat/config"
	"sitechat/sitechat/services/llm"
	"sitechat/sitechat/services/responder"
	"sitechat/sitechat/utils/color"
	"sitechat/sitechat/utils/types"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

type askOptions struct {
	url   string
	raw   bool
	width int
}

func newAskCmd() *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask --url <url> [question]",
		Short: "Ask questions about a website",
		Long: `Extract a website, then answer questions about it using only its content.
Without a question, starts an interactive session that keeps the last turns
as conversation history.

Examples:
  sitechat ask --url example.com "What is this site about?"
  sitechat ask --url example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "website to chat about")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "stream the answer without markdown rendering")
	cmd.Flags().IntVar(&opts.width, "width", 0, "word wrap width for rendered answers (default: terminal width)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// session holds what one terminal conversation has accumulated.
type session struct {
	resp     *responder.Responder
	doc      *types.StructuredDocument
	history  []types.ConversationTurn
	out      io.Writer
	render   func(string) (string, error)
	streamed bool
}

func runAsk(cmd *cobra.Command, opts *askOptions, question string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.LoadConfig()

	gen, err := llm.New(ctx, cfg)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return fmt.Errorf("%w: set the API key for LLM_PROVIDER=%s", err, cfg.LLMProvider)
		}
		return err
	}

	s, err := newScraper(cfg)
	if err != nil {
		return err
	}
	doc, err := s.Extract(ctx, opts.url)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), color.ColorInfo("loaded ")+color.ColorURL(doc.URL)+" "+doc.Title)

	sess := &session{
		resp:     responder.New(gen, cfg.LLMTimeout),
		doc:      doc,
		out:      cmd.OutOrStdout(),
		render:   func(s string) (string, error) { return s + "\n", nil },
		streamed: opts.raw,
	}
	if !opts.raw {
		width := opts.width
		if width <= 0 {
			width = terminalWidth(100)
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
		if err != nil {
			return err
		}
		sess.render = r.Render
	}

	if question != "" {
		return sess.ask(ctx, question)
	}
	return sess.repl(ctx, cmd.InOrStdin(), cmd.ErrOrStderr())
}

func (s *session) ask(ctx context.Context, question string) error {
	var answer string
	if s.streamed {
		var sb strings.Builder
		ch, errCh := s.resp.RespondStream(ctx, question, s.doc, s.history)
		for chunk := range ch {
			sb.WriteString(chunk)
			fmt.Fprint(s.out, chunk)
		}
		fmt.Fprintln(s.out)
		if err := <-errCh; err != nil {
			return err
		}
		answer = sb.String()
	} else {
		var err error
		if answer, err = s.resp.Respond(ctx, question, s.doc, s.history); err != nil {
			return err
		}
		rendered, err := s.render(answer)
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, rendered)
	}

	now := time.Now().UTC()
	s.history = append(s.history,
		types.ConversationTurn{Role: types.RoleUser, Content: question, Timestamp: now},
		types.ConversationTurn{Role: types.RoleAssistant, Content: answer, Timestamp: now},
	)
	if len(s.history) > responder.HistoryWindow {
		s.history = s.history[len(s.history)-responder.HistoryWindow:]
	}
	return nil
}

func (s *session) repl(ctx context.Context, in io.Reader, prompt io.Writer) error {
	fmt.Fprintln(prompt, "Type your question or 'exit' to quit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(prompt, color.ColorPrompt("sitechat> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}
		if err := s.ask(ctx, line); err != nil {
			// one failed answer does not end the session
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(prompt, color.ColorError("error: ")+err.Error())
		}
	}
}
