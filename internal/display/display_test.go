package display

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/smileynet/assistant/internal/command"
)

// --- IsTTY ---

func TestIsTTY_NonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("non-*os.File writer should not be a TTY")
	}
}

func TestIsTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if IsTTY(f) {
		t.Error("regular file should not be a TTY")
	}
}

// --- NewRenderer ---

func TestNewRenderer_NonTTYIsPlain(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := NewRenderer(&buf, false).(PlainRenderer); !ok {
		t.Error("non-TTY writer should get a PlainRenderer")
	}
}

func TestNewRenderer_ForcePlain(t *testing.T) {
	if _, ok := NewRenderer(os.Stdout, true).(PlainRenderer); !ok {
		t.Error("forcePlain should always give a PlainRenderer")
	}
}

// --- PlainRenderer ---

func TestPlainRenderer_IsByteExact(t *testing.T) {
	r := PlainRenderer{}
	results := []command.Result{
		{Text: "Contact 'bob' added with phone number '0123456789'.", Kind: command.KindOK},
		{Text: command.MsgNotFound, Kind: command.KindNotFound},
		{Text: "Contact name: a, phones: 1111111111\nContact name: b, phones: ", Kind: command.KindOK},
		{Text: command.MsgFarewell, Kind: command.KindExit, Exit: true},
	}
	for _, res := range results {
		if got := r.Render(res); got != res.Text {
			t.Errorf("Render() = %q, want %q", got, res.Text)
		}
	}
	if got := r.Banner("a\nb"); got != "a\nb" {
		t.Errorf("Banner() = %q, want unchanged", got)
	}
}

// --- StyledRenderer ---

func TestStyledRenderer_KeepsText(t *testing.T) {
	r := StyledRenderer{}
	kinds := []command.Kind{
		command.KindOK,
		command.KindNotFound,
		command.KindInvalidArguments,
		command.KindMissingArgument,
		command.KindUnknown,
		command.KindExit,
	}
	for _, kind := range kinds {
		got := r.Render(command.Result{Text: "some text", Kind: kind})
		if !strings.Contains(got, "some text") {
			t.Errorf("Render(kind %q) = %q, want it to contain the text", kind, got)
		}
	}
}

func TestStyledRenderer_BannerKeepsLines(t *testing.T) {
	got := StyledRenderer{}.Banner("Welcome\nAvailable commands: hello")
	if !strings.Contains(got, "Welcome") || !strings.HasSuffix(got, "\nAvailable commands: hello") {
		t.Errorf("Banner() = %q", got)
	}
	if single := (StyledRenderer{}).Banner("Welcome"); !strings.Contains(single, "Welcome") {
		t.Errorf("Banner(single line) = %q", single)
	}
}

func TestKindStyle_FailuresAreColored(t *testing.T) {
	for _, kind := range []command.Kind{command.KindNotFound, command.KindInvalidArguments, command.KindMissingArgument} {
		if _, ok := kindColors[kind]; !ok {
			t.Errorf("failure kind %q has no color", kind)
		}
	}
	if _, ok := kindColors[command.KindOK]; ok {
		t.Error("ok results should not be colored")
	}
}
