package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/smileynet/assistant/internal/config"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

// isolate points HOME and the working directory at empty temp dirs so no
// real user or project config is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"ASSISTANT_PROMPT", "ASSISTANT_MODE", "ASSISTANT_HISTORY_FILE", "ASSISTANT_LOG_FILE", "ASSISTANT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	isolate(t)
	a, err := newApp(&Globals{})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(a.close)
	return a
}

func TestCLI_Parse(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args selects repl", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		kctx, err := k.Parse([]string{})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if kctx.Command() != "repl" {
			t.Errorf("command = %q, want %q", kctx.Command(), "repl")
		}
	})

	t.Run("global flags", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{"--mode", "plain", "--debug", "repl"}); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if cli.Mode != "plain" || !cli.Debug {
			t.Errorf("globals = %+v, want mode plain and debug", cli.Globals)
		}
	})

	t.Run("run requires a script", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"},
			kong.Exit(func(int) { panic(errExitCalled) }))
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{"run"}); err == nil {
			t.Fatal("expected error when script is missing")
		}
	})

	t.Run("run takes a script path", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		kctx, err := k.Parse([]string{"run", "contacts.txt"})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if kctx.Command() != "run <script>" {
			t.Errorf("command = %q, want %q", kctx.Command(), "run <script>")
		}
		if cli.Run.Script != "contacts.txt" {
			t.Errorf("script = %q, want %q", cli.Run.Script, "contacts.txt")
		}
	})
}

func TestReplCmd_PlainSession(t *testing.T) {
	// Given: an app with default config and a piped session
	a := newTestApp(t)
	in := strings.NewReader("add bob 0123456789\nchange bob 9876543210\nphone bob\nall\nexit\n")
	var out bytes.Buffer

	// When: the repl runs in plain mode
	err := (&ReplCmd{}).run(context.Background(), a, frontEndPlain, in, &out)

	// Then: the banner, prompts and results match the interactive transcript
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	const prompt = "Enter a command: "
	want := "Welcome to the assistant bot!\n" +
		"Available commands: hello, add <username> <phone>, change <username> <phone>, phone <username>, all, exit, close\n" +
		prompt + "Contact 'bob' added with phone number '0123456789'.\n" +
		prompt + "Contact 'bob' updated with new phone number '9876543210'.\n" +
		prompt + "Contact name: bob, phones: 0123456789; 9876543210\n" +
		prompt + "Contact name: bob, phones: 0123456789; 9876543210\n" +
		prompt + "Good bye!\n"
	if got := out.String(); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestReplCmd_CancelledContextIsClean(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&ReplCmd{}).run(ctx, a, frontEndPlain, strings.NewReader("hello\n"), &bytes.Buffer{})
	if err != nil {
		t.Errorf("run() error = %v, want nil after cancellation", err)
	}
}

func TestRunCmd_Script(t *testing.T) {
	a := newTestApp(t)
	script := "hello\nadd alice 1234567890\nadd alice\nphone alice\nall\n"
	var out bytes.Buffer

	if err := (&RunCmd{}).run(context.Background(), a, strings.NewReader(script), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "How can I help you?\n" +
		"Contact 'alice' added with phone number '1234567890'.\n" +
		"Give me name and phone please.\n" +
		"Contact name: alice, phones: 1234567890\n" +
		"Contact name: alice, phones: 1234567890\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunCmd_MissingScript(t *testing.T) {
	isolate(t)
	err := (&RunCmd{Script: "does-not-exist.txt"}).Run(&Globals{})
	if err == nil {
		t.Fatal("expected error for missing script")
	}
	if exitCode(err) != exitSetup {
		t.Errorf("exitCode = %d, want %d", exitCode(err), exitSetup)
	}
}

func TestNewApp_AppliesConfigLayers(t *testing.T) {
	// Given: a project config and an extra config file
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, localDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, localDir, "config.yaml"), []byte("repl:\n  prompt: \"project> \"\n  mode: plain\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	extra := filepath.Join(dir, "extra.yaml")
	if err := os.WriteFile(extra, []byte("repl:\n  prompt: \"extra> \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: the app is built with the extra config and a mode flag
	a, err := newApp(&Globals{Config: extra, Mode: config.ModeTUI})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	// Then: extra config wins over project config, and the flag wins over both
	if a.cfg.REPL.Prompt != "extra> " {
		t.Errorf("prompt = %q, want %q", a.cfg.REPL.Prompt, "extra> ")
	}
	if a.cfg.REPL.Mode != config.ModeTUI {
		t.Errorf("mode = %q, want %q", a.cfg.REPL.Mode, config.ModeTUI)
	}
}

func TestNewApp_LocalBannerOverride(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, localDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, localDir, "banner.txt"), []byte("Hi there\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := newApp(&Globals{})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	if a.banner != "Hi there" {
		t.Errorf("banner = %q, want %q", a.banner, "Hi there")
	}
}

func TestNewApp_SetupErrors(t *testing.T) {
	tests := []struct {
		name    string
		globals func(dir string) *Globals
		env     map[string]string
	}{
		{
			name:    "invalid mode flag",
			globals: func(string) *Globals { return &Globals{Mode: "gui"} },
		},
		{
			name: "invalid config file",
			globals: func(dir string) *Globals {
				path := filepath.Join(dir, "bad.yaml")
				_ = os.WriteFile(path, []byte("repl: ["), 0o644)
				return &Globals{Config: path}
			},
		},
		{
			name:    "invalid log level env",
			globals: func(string) *Globals { return &Globals{} },
			env:     map[string]string{"ASSISTANT_LOG_LEVEL": "shouty"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := newApp(tt.globals(dir))

			if err == nil {
				t.Fatal("expected setup error")
			}
			if exitCode(err) != exitSetup {
				t.Errorf("exitCode = %d, want %d", exitCode(err), exitSetup)
			}
		})
	}
}

func TestNewApp_LogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "assistant.log")
	t.Setenv("ASSISTANT_LOG_FILE", logPath)

	a, err := newApp(&Globals{Debug: true})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	a.dispatcher.Dispatch("phone ghost")
	a.close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "command failed") {
		t.Errorf("log = %q, want command failed entry", data)
	}
}

func TestResolveFrontEnd(t *testing.T) {
	tests := []struct {
		mode        string
		interactive bool
		want        frontEnd
		wantErr     bool
	}{
		{mode: config.ModeAuto, interactive: true, want: frontEndTerminal},
		{mode: config.ModeAuto, interactive: false, want: frontEndPlain},
		{mode: config.ModePlain, interactive: true, want: frontEndPlain},
		{mode: config.ModeTUI, interactive: true, want: frontEndTUI},
		{mode: config.ModeTUI, interactive: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/interactive=%v", tt.mode, tt.interactive), func(t *testing.T) {
			got, err := resolveFrontEnd(tt.mode, tt.interactive)
			if tt.wantErr {
				if exitCode(err) != exitSetup {
					t.Fatalf("err = %v, want setup error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveFrontEnd() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveFrontEnd() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitSuccess},
		{name: "setup", err: &setupError{errors.New("bad config")}, want: exitSetup},
		{name: "wrapped setup", err: fmt.Errorf("repl: %w", &setupError{errors.New("x")}), want: exitSetup},
		{name: "runtime", err: errors.New("read failed"), want: exitRuntime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
