// Package display styles terminal output for the prayer-times CLI with
// lipgloss.
//
// Styling follows NO_COLOR (https://no-color.org/) and is off when stdout is
// not a terminal, unless forced with FORCE_COLOR or Configure("always").
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Role is the kind of text being printed. Each role has one style.
type Role int

const (
	Plain   Role = iota
	Heading      // titles and table headers
	Muted        // secondary details, defaults
	Past         // prayers and days already gone
	Next         // the upcoming prayer, today's row
	Warning      // events that do not occur
)

// Color modes accepted by Configure.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// renderer owns the color profile of every style, so SetEnabled switches
// them all at once.
var renderer = lipgloss.NewRenderer(os.Stdout)

var styles = map[Role]lipgloss.Style{
	Plain:   renderer.NewStyle(),
	Heading: renderer.NewStyle().Bold(true),
	Muted:   renderer.NewStyle().Foreground(lipgloss.Color("8")),
	Past:    renderer.NewStyle().Faint(true),
	Next:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Warning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
}

var enabled bool

func init() {
	SetEnabled(detect())
}

// detect decides from the environment and stdout whether to style output.
func detect() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Configure applies a --color mode: auto, always or never.
func Configure(mode string) error {
	switch mode {
	case ColorAuto, "":
		SetEnabled(detect())
	case ColorAlways:
		SetEnabled(true)
	case ColorNever:
		SetEnabled(false)
	default:
		return fmt.Errorf("invalid color mode %q: must be %s, %s or %s", mode, ColorAuto, ColorAlways, ColorNever)
	}
	return nil
}

// SetEnabled turns styling on or off.
func SetEnabled(b bool) {
	enabled = b
	if b {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
}

// Enabled reports whether styling is on.
func Enabled() bool {
	return enabled
}

// Style renders text in the style of role r, or returns it unchanged when
// styling is off.
func Style(r Role, text string) string {
	if !enabled || r == Plain {
		return text
	}
	return styles[r].Render(text)
}

func Bold(text string) string   { return Style(Heading, text) }
func Gray(text string) string   { return Style(Muted, text) }
func Dim(text string) string    { return Style(Past, text) }
func Accent(text string) string { return Style(Next, text) }
func Yellow(text string) string { return Style(Warning, text) }
