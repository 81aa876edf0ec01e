package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/wardrobe-agent/internal/runner"
)

type turnRunner interface {
	RunTurn(ctx context.Context, conv []anthropic.MessageParam) ([]anthropic.MessageParam, string, error)
}

// session holds the in-memory conversation for one run of the agent.
type session struct {
	runner turnRunner
	conv   []anthropic.MessageParam
	errOut io.Writer
}

// send runs one user turn. A failed turn is dropped from the conversation,
// except when the step limit cut it short.
func (s *session) send(ctx context.Context, text string) error {
	before := len(s.conv)
	conv := append(s.conv, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))

	conv, _, err := s.runner.RunTurn(ctx, conv)
	switch {
	case err == nil:
		s.conv = conv
	case errors.Is(err, runner.ErrStepLimit):
		s.conv = conv
		fmt.Fprintln(s.errOut, "error: the assistant did not finish within the step limit")
	default:
		s.conv = s.conv[:before]
		fmt.Fprintf(s.errOut, "error: %v\n", err)
	}
	return err
}

// loop reads one prompt per line from in until EOF or ctx is cancelled.
func (s *session) loop(ctx context.Context, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Chat with Claude about the weather or clothes (Ctrl-C to quit)")

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "\u001b[94mYou\u001b[0m: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return
		case line, ok = <-inputCh:
			if !ok {
				if err := scanner.Err(); err != nil {
					fmt.Fprintf(s.errOut, "warning: stdin read error: %v\n", err)
				}
				return
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		_ = s.send(ctx, line)
	}
}
