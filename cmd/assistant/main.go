package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/assistant"
	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/config"
	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/display"
	"github.com/smileynet/assistant/internal/logging"
	"github.com/smileynet/assistant/internal/repl"
	"github.com/smileynet/assistant/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// localDir holds project-local config and text overrides.
const localDir = ".assistant"

// CLI is the top-level command structure for assistant.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Repl    ReplCmd          `cmd:"" default:"1" help:"Start the interactive assistant (default)."`
	Run     RunCmd           `cmd:"" help:"Run commands from a script file."`
}

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, applied after user and project config." type:"path"`
	Mode   string `help:"Front end: auto, plain or tui. Overrides config."`
	Debug  bool   `help:"Log at debug level."`
}

// setupError marks failures that happen before any command is read.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

// app holds the wired dependencies for one process run.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	dispatcher *command.Dispatcher
	banner     string
}

// loadConfig loads layered config from user, project and extra paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/assistant/config.yaml"),
		localDir+"/config.yaml",
		extra,
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// newApp loads config, builds the logger and wires a dispatcher over an
// empty address book.
func newApp(g *Globals) (*app, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, &setupError{err}
	}
	if g.Mode != "" {
		cfg.REPL.Mode = g.Mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, &setupError{err}
	}

	logger, err := logging.New(logging.Options{
		File:  cfg.Log.File,
		Level: cfg.Log.Level,
		Debug: g.Debug,
	})
	if err != nil {
		return nil, &setupError{err}
	}

	banner, err := assistant.Banner(assistant.OverlayFS(localDir, assistant.Texts))
	if err != nil {
		_ = logger.Sync()
		return nil, &setupError{err}
	}

	logger.Debug("assistant starting",
		zap.String("version", version),
		zap.String("mode", cfg.REPL.Mode))

	return &app{
		cfg:        cfg,
		logger:     logger,
		dispatcher: command.New(contact.NewBook(), command.WithLogger(logger)),
		banner:     banner,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// ReplCmd runs the interactive loop.
type ReplCmd struct{}

// frontEnd is the resolved interactive front end.
type frontEnd string

const (
	frontEndTerminal frontEnd = "terminal" // readline editor with styled output
	frontEndPlain    frontEnd = "plain"    // plain lines, prompt echoed
	frontEndTUI      frontEnd = "tui"
)

// resolveFrontEnd maps a config mode to a front end given whether stdin
// and stdout are terminals.
func resolveFrontEnd(mode string, interactive bool) (frontEnd, error) {
	switch mode {
	case config.ModeTUI:
		if !interactive {
			return "", &setupError{errors.New("repl: tui mode requires a terminal (TTY)")}
		}
		return frontEndTUI, nil
	case config.ModePlain:
		return frontEndPlain, nil
	default:
		if interactive {
			return frontEndTerminal, nil
		}
		return frontEndPlain, nil
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run executes the repl command.
func (r *ReplCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.close()

	fe, err := resolveFrontEnd(a.cfg.REPL.Mode, isTerminal(os.Stdin) && isTerminal(os.Stdout))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.run(ctx, a, fe, os.Stdin, os.Stdout)
}

// run drives the chosen front end, enabling testable wiring.
func (r *ReplCmd) run(ctx context.Context, a *app, fe frontEnd, in io.Reader, out io.Writer) error {
	if fe == frontEndTUI {
		err := tui.Run(ctx, a.dispatcher,
			tui.WithBanner(a.banner),
			tui.WithPrompt(a.cfg.REPL.Prompt),
		)
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	var (
		reader   repl.Reader
		renderer display.Renderer = display.PlainRenderer{}
	)
	switch fe {
	case frontEndTerminal:
		tr, err := repl.NewTerminalReader(repl.TerminalOptions{
			Prompt:      a.cfg.REPL.Prompt,
			HistoryFile: a.cfg.REPL.HistoryFile,
		})
		if err != nil {
			return &setupError{err}
		}
		reader = tr
		renderer = display.NewRenderer(out, false)
	default:
		reader = repl.NewLineReader(in, a.cfg.REPL.Prompt, out)
	}
	defer func() { _ = reader.Close() }()

	loop := repl.New(a.dispatcher, out,
		repl.WithRenderer(renderer),
		repl.WithBanner(a.banner),
		repl.WithLogger(a.logger),
	)
	err := loop.Run(ctx, reader)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunCmd executes a file of commands against a fresh address book.
type RunCmd struct {
	Script string `arg:"" help:"Script file with one command per line, or - for stdin."`
}

// Run executes the run command.
func (c *RunCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.close()

	in := io.Reader(os.Stdin)
	if c.Script != "-" {
		f, err := os.Open(c.Script)
		if err != nil {
			return &setupError{fmt.Errorf("run: %w", err)}
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	return c.run(context.Background(), a, in, os.Stdout)
}

// run feeds script lines through the loop without prompts or banner.
func (c *RunCmd) run(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	loop := repl.New(a.dispatcher, out, repl.WithLogger(a.logger))
	if err := loop.Run(ctx, repl.NewLineReader(in, "", nil)); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitRuntime
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assistant"),
		kong.Description("An interactive contact assistant."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
