package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/assistant/internal/command"
)

// Result colors indexed by kind. OK results are left unstyled.
var kindColors = map[command.Kind]lipgloss.AdaptiveColor{
	command.KindNotFound:         {Light: "208", Dark: "208"}, // orange
	command.KindInvalidArguments: {Light: "1", Dark: "9"},     // red
	command.KindMissingArgument:  {Light: "1", Dark: "9"},     // red
	command.KindUnknown:          {Light: "3", Dark: "11"},    // yellow
	command.KindExit:             {Light: "240", Dark: "245"}, // gray
}

// KindStyle returns the lipgloss style for a result kind.
func KindStyle(kind command.Kind) lipgloss.Style {
	c, ok := kindColors[kind]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// BannerStyle returns the style for the startup banner's first line.
func BannerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// PromptStyle returns the style for the input prompt.
func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}
