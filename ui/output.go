// Package ui prints styled status lines for the qiimewb CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()

	// Out receives status lines; tool output goes to stdout separately.
	Out io.Writer = os.Stderr
)

// sessionColors is indexed by workdir.Session.Tag.
var sessionColors = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgBlue, color.Bold),
	color.New(color.FgRed, color.Bold),
}

// SessionName colours a session name by its tag so that users sharing a
// terminal server can tell their sessions apart at a glance.
func SessionName(name string, tag int) string {
	if tag < 0 {
		tag = -tag
	}
	return sessionColors[tag%len(sessionColors)].Sprint(name)
}

// Info prints a neutral status line to Out.
func Info(format string, args ...any) {
	fmt.Fprintf(Out, "  %s %s\n", Cyan("→"), fmt.Sprintf(format, args...))
}

// Success prints a completed-step line.
func Success(format string, args ...any) {
	fmt.Fprintf(Out, "  %s %s\n", Green("✔"), fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	fmt.Fprintf(Out, "  %s %s\n", Yellow("○"), fmt.Sprintf(format, args...))
}

// Fail prints an error line. It does not exit.
func Fail(format string, args ...any) {
	fmt.Fprintf(Out, "  %s %s\n", Red("✘"), fmt.Sprintf(format, args...))
}

// Step prints a numbered heading for a multi-step workflow.
func Step(n, total int, format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", Dim(fmt.Sprintf("[%d/%d]", n, total)), Bold(fmt.Sprintf(format, args...)))
}
