package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors are ANSI-256 codes so they degrade gracefully on small palettes.
var (
	colorLeaf  = lipgloss.Color("71")  // green - titles, highlights
	colorBloom = lipgloss.Color("114") // light green - success
	colorAmber = lipgloss.Color("214") // warnings
	colorRust  = lipgloss.Color("167") // errors
	colorSky   = lipgloss.Color("75")  // commands
	colorText  = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // labels
	colorDim   = lipgloss.Color("240") // secondary text, borders
)

var (
	// StyleTitle renders headings such as preset names.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorLeaf)

	// StyleHighlight renders emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorLeaf)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)

	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Foreground(colorSky)
	styleSpinner = lipgloss.NewStyle().Foreground(colorLeaf)
)

// status is the kind of a one-line status message.
type status int

const (
	statusSuccess status = iota
	statusError
	statusWarning
	statusInfo
)

var statusMarks = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorBloom)},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorRust)},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorAmber)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray)},
}

// line renders msg behind the status icon. Warnings are colored throughout.
func (s status) line(msg string) string {
	mark := statusMarks[s]
	if s == statusWarning {
		msg = StyleWarning.Render(msg)
	}
	return mark.style.Render(mark.icon) + " " + msg
}

// printer writes styled command output to w, usually cmd.OutOrStdout().
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer { return &printer{w: w} }

func (p *printer) println(s string) { fmt.Fprintln(p.w, s) }

func (p *printer) status(s status, format string, args ...any) {
	p.println(s.line(fmt.Sprintf(format, args...)))
}

func (p *printer) success(format string, args ...any) { p.status(statusSuccess, format, args...) }
func (p *printer) warning(format string, args ...any) { p.status(statusWarning, format, args...) }
func (p *printer) info(format string, args ...any)    { p.status(statusInfo, format, args...) }

// heading prints a title with an optional dimmed description under it.
func (p *printer) heading(title, description string) {
	p.println(StyleTitle.Render(title))
	if description != "" {
		p.println(StyleDim.Render(description))
	}
}

// field prints a labeled value.
func (p *printer) field(key, value string) {
	p.println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// stats prints run statistics on one line.
func (p *printer) stats(parts ...string) { p.println(statsLine(parts...)) }

// hint suggests a follow-up command.
func (p *printer) hint(description, cmd string) {
	p.println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p *printer) blank() { fmt.Fprintln(p.w) }

// statsLine joins parts with dim separators on a single indented line.
func statsLine(parts ...string) string {
	styled := make([]string, len(parts))
	for i, part := range parts {
		styled[i] = StyleDim.Render(part)
	}
	return "  " + strings.Join(styled, StyleDim.Render(" · "))
}
