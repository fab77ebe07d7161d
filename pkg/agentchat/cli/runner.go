// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/assist"
	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/history"
	"github.com/benoit-pereira-da-silva/agentchat/pkg/agentchat/session"
)

// run executes a resolved Config. Factored apart from Run so tests can drive
// it with their own stdin/stdout.
func run(cfg Config, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := newLogger(stderr, cfg.Verbose.Enabled())

	outputSchema, err := loadOutputSchema(cfg.OutputSchema)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	client := assist.NewClient(assist.Config{
		BaseURL:     cfg.URL,
		ProcessorID: cfg.ProcessorID,
		Timeout:     cfg.Timeout.Value(),
		Logger:      logger,
	})
	sess := session.New()
	transcript := history.NewTranscript(cfg.HistoryLimit.Value(), 0)
	render := NewRenderer(!cfg.Plain.Enabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Message != "" {
		return oneShot(ctx, cfg, client, sess, render, outputSchema, stdout, stderr)
	}
	return interactiveLoop(ctx, cfg, client, sess, transcript, render, outputSchema, stdin, stdout, stderr)
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func oneShot(
	ctx context.Context,
	cfg Config,
	client *assist.Client,
	sess *session.Session,
	render Renderer,
	outputSchema *jsonschema.Resolved,
	stdout, stderr io.Writer,
) int {
	prompt := strings.TrimSpace(cfg.Message)
	if prompt == "" {
		fmt.Fprintln(stderr, "Error: empty message")
		return 2
	}

	answer := client.Assist(ctx, sess, prompt)
	fmt.Fprint(stdout, render.Render(answer))

	if err := validateAnswer(outputSchema, answer); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if strings.HasPrefix(answer, "Error:") {
		return 1
	}
	return 0
}

func interactiveLoop(
	ctx context.Context,
	cfg Config,
	client *assist.Client,
	sess *session.Session,
	transcript *history.Transcript,
	render Renderer,
	outputSchema *jsonschema.Resolved,
	stdin io.Reader,
	stdout, stderr io.Writer,
) int {
	exitCmds := make(map[string]struct{})
	for _, c := range strings.Split(cfg.ExitCommands, ",") {
		if t := strings.TrimSpace(c); t != "" {
			exitCmds[strings.ToLower(t)] = struct{}{}
		}
	}

	inReader := bufio.NewReader(stdin)
	outw := bufio.NewWriter(stdout)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(stderr, "\nCanceled.")
			return 1
		default:
		}

		fmt.Fprint(outw, "> ")
		_ = outw.Flush()

		line, err := inReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(outw)
				_ = outw.Flush()
				return 0
			}
			fmt.Fprintln(stderr, "Error reading stdin:", err)
			return 1
		}

		msg := strings.TrimSpace(line)
		if msg == "" {
			continue
		}
		if _, ok := exitCmds[strings.ToLower(msg)]; ok {
			return 0
		}
		if msg == "/clear" {
			transcript.Clear()
			continue
		}

		transcript.Add(history.RoleUser, msg)
		answer := client.Assist(ctx, sess, msg)
		transcript.Add(history.RoleAssistant, answer)

		fmt.Fprint(outw, render.Render(answer))
		_ = outw.Flush()

		if err := validateAnswer(outputSchema, answer); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
		}
	}
}
