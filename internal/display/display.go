// Package display renders dispatch results for the terminal.
package display

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/assistant/internal/command"
)

// Renderer turns dispatch results and the banner into printable text.
type Renderer interface {
	Render(res command.Result) string
	Banner(text string) string
}

// Verify at compile time that both renderers implement Renderer.
var (
	_ Renderer = PlainRenderer{}
	_ Renderer = StyledRenderer{}
)

// NewRenderer returns a styled renderer when w is a TTY, or a plain
// renderer otherwise. forcePlain overrides TTY detection.
func NewRenderer(w io.Writer, forcePlain bool) Renderer {
	if forcePlain || !IsTTY(w) {
		return PlainRenderer{}
	}
	return StyledRenderer{}
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainRenderer returns text unchanged so piped output stays byte-exact.
type PlainRenderer struct{}

// Render returns the result text.
func (PlainRenderer) Render(res command.Result) string {
	return res.Text
}

// Banner returns text unchanged.
func (PlainRenderer) Banner(text string) string {
	return text
}

// StyledRenderer colors results by kind.
type StyledRenderer struct{}

// Render returns the result text in its kind's color.
func (StyledRenderer) Render(res command.Result) string {
	return KindStyle(res.Kind).Render(res.Text)
}

// Banner highlights the first line of text.
func (StyledRenderer) Banner(text string) string {
	head, rest, found := strings.Cut(text, "\n")
	head = BannerStyle().Render(head)
	if !found {
		return head
	}
	return head + "\n" + rest
}
