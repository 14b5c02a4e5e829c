// Package repl runs the read-evaluate-print loop over a line source.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/display"
)

// Dispatcher evaluates one input line.
type Dispatcher interface {
	Dispatch(line string) command.Result
}

// Loop reads lines, dispatches them and prints each result.
type Loop struct {
	dispatcher Dispatcher
	out        io.Writer
	renderer   display.Renderer
	banner     string
	logger     *zap.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithRenderer sets the result renderer. The default is plain text.
func WithRenderer(r display.Renderer) Option {
	return func(l *Loop) { l.renderer = r }
}

// WithBanner sets text printed once before the first prompt.
func WithBanner(text string) Option {
	return func(l *Loop) { l.banner = text }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loop that prints to out.
func New(d Dispatcher, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		dispatcher: d,
		out:        out,
		renderer:   display.PlainRenderer{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run loops until an exit command, end of input, or ctx cancellation.
// Exit commands and end of input return nil; cancellation returns ctx.Err().
func (l *Loop) Run(ctx context.Context, r Reader) error {
	if l.banner != "" {
		_, _ = fmt.Fprintln(l.out, l.renderer.Banner(l.banner))
	}

	lines := 0
	for {
		line, err := readLine(ctx, r)
		if errors.Is(err, io.EOF) {
			l.logger.Debug("input closed", zap.Int("lines", lines))
			return nil
		}
		if err != nil {
			return err
		}
		lines++

		res := l.dispatcher.Dispatch(line)
		_, _ = fmt.Fprintln(l.out, l.renderer.Render(res))
		if res.Exit {
			l.logger.Debug("exit requested",
				zap.String("command", string(res.Command)),
				zap.Int("lines", lines))
			return nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLine waits for the next line or ctx cancellation. A read still
// pending after cancellation is abandoned; closing the reader releases it.
func readLine(ctx context.Context, r Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := r.Readline()
		ch <- readResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case rr := <-ch:
		return rr.line, rr.err
	}
}
