package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/smileynet/assistant/internal/command"
)

// Reader yields input lines. It returns io.EOF when input is exhausted.
type Reader interface {
	Readline() (string, error)
	Close() error
}

// Verify at compile time that both readers implement Reader.
var (
	_ Reader = (*TerminalReader)(nil)
	_ Reader = (*LineReader)(nil)
)

// TerminalOptions configures a TerminalReader.
type TerminalOptions struct {
	Prompt      string
	HistoryFile string // Empty disables history.
}

// TerminalReader reads lines with editing, history and command completion.
type TerminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader creates a line editor on the process terminal.
func NewTerminalReader(opts TerminalOptions) (*TerminalReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          opts.Prompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    newCommandCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       string(command.NameExit),
	})
	if err != nil {
		return nil, fmt.Errorf("repl: initializing line editor: %w", err)
	}
	return &TerminalReader{rl: rl}, nil
}

// Readline returns the next line. Ctrl+C discards the current line and
// prompts again; Ctrl+D returns io.EOF.
func (r *TerminalReader) Readline() (string, error) {
	for {
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		return line, err
	}
}

// Close restores the terminal.
func (r *TerminalReader) Close() error {
	return r.rl.Close()
}

// newCommandCompleter completes command names at the start of a line.
func newCommandCompleter() *readline.PrefixCompleter {
	names := command.Names()
	items := make([]readline.PrefixCompleterInterface, len(names))
	for i, n := range names {
		items[i] = readline.PcItem(string(n))
	}
	return readline.NewPrefixCompleter(items...)
}

// LineReader reads newline-delimited input from pipes and script files.
type LineReader struct {
	sc     *bufio.Scanner
	prompt string
	echo   io.Writer
}

// NewLineReader reads lines from r. When echo is non-nil the prompt is
// written to it before each read.
func NewLineReader(r io.Reader, prompt string, echo io.Writer) *LineReader {
	return &LineReader{sc: bufio.NewScanner(r), prompt: prompt, echo: echo}
}

// Readline returns the next line without its terminator.
func (r *LineReader) Readline() (string, error) {
	if r.echo != nil && r.prompt != "" {
		if _, err := io.WriteString(r.echo, r.prompt); err != nil {
			return "", fmt.Errorf("repl: writing prompt: %w", err)
		}
	}
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", fmt.Errorf("repl: reading line: %w", err)
	}
	return "", io.EOF
}

// Close is a no-op; the caller owns the underlying reader.
func (r *LineReader) Close() error {
	return nil
}
