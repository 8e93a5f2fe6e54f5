package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all user-facing output. Logs and the spinner use stderr.
var stdout io.Writer = os.Stdout

// ANSI 256 palette.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCached  = lipgloss.NewStyle().Foreground(colorGreen)
)

// Cache status words shown at the end of a stats line.
const (
	iconCached = "cached"
	iconFresh  = "fresh"
)

// mark is the icon that opens a status line. A non-nil tint also colors the
// message itself.
type mark struct {
	icon  string
	style lipgloss.Style
	tint  *lipgloss.Style
}

var (
	amber = lipgloss.NewStyle().Foreground(colorAmber)

	markSuccess = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen), nil}
	markError   = mark{"✗", lipgloss.NewStyle().Foreground(colorRed), nil}
	markWarning = mark{"!", amber, &amber}
	markInfo    = mark{"›", lipgloss.NewStyle().Foreground(colorGray), nil}
)

func (m mark) println(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.tint != nil {
		msg = m.tint.Render(msg)
	}
	fmt.Fprintln(stdout, m.style.Render(m.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.println(format, args...) }
func printError(format string, args ...any)   { markError.println(format, args...) }
func printWarning(format string, args ...any) { markWarning.println(format, args...) }
func printInfo(format string, args ...any)    { markInfo.println(format, args...) }

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "→ path" for a file the command wrote.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats prints one line such as "5 titles · 4 connectors · cached".
// Zero counts are left out.
func printStats(titles, connectors int, cached bool) {
	var parts []string
	if titles > 0 {
		parts = append(parts, styleDim.Render(plural(titles, "title")))
	}
	if connectors > 0 {
		parts = append(parts, styleDim.Render(plural(connectors, "connector")))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleDim.Render(iconFresh))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests the command that usually follows, e.g.
// "Render it: mindmap visualize notes.layout.json".
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
