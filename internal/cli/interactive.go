// Package cli holds the terminal flows: an interactive prompt loop and a
// one-shot restyle.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

const (
	linkPrompt  = "Enter YouTube video link: "
	topicPrompt = "\nEnter the topic you want to create a video script for (empty line to quit): "
	scriptTitle = "\nGenerated Video Script:"
)

// Interactive asks for a link, analyzes it once, then writes one script per
// topic line until an empty line or EOF. Pipeline failures are printed as
// their stable message and end the session without an error.
func Interactive(ctx context.Context, in io.Reader, out io.Writer, p *engine.Pipeline) error {
	lines := bufio.NewScanner(in)

	fmt.Fprint(out, linkPrompt)
	link, ok := readLine(lines)
	if !ok {
		return lines.Err()
	}

	a, err := p.AnalyzeLink(ctx, link)
	if err != nil {
		report(out, err)
		return nil
	}
	slog.Debug("cli: profile ready", slog.String("video_id", a.VideoID), slog.String("format", string(a.Format)))

	for {
		fmt.Fprint(out, topicPrompt)
		topic, ok := readLine(lines)
		if !ok || strings.TrimSpace(topic) == "" {
			return lines.Err()
		}
		script, err := p.Generate(ctx, a.Profile, topic)
		if err != nil {
			report(out, err)
			continue
		}
		fmt.Fprintln(out, scriptTitle)
		fmt.Fprintln(out, script)
	}
}

// Restyle is the batch flow: analyze link, then write one script on topic.
func Restyle(ctx context.Context, out io.Writer, p *engine.Pipeline, link, topic string) error {
	_, script, err := p.Restyle(ctx, link, topic)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, script)
	return nil
}

func readLine(s *bufio.Scanner) (string, bool) {
	if !s.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.Text()), true
}

func report(out io.Writer, err error) {
	slog.Debug("cli: step failed", slog.Any("error", err))
	fmt.Fprintln(out, engine.UserMessage(err))
}
