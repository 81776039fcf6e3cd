// Package ui provides terminal UI helpers for fpm.
package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Message styles.
var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan)
	Header  = color.New(color.FgMagenta, color.Bold)
	Muted   = color.New(color.FgHiBlack)
)

// Package table styles.
var (
	PackageName    = color.New(color.FgWhite, color.Bold)
	PackageVersion = color.New(color.FgGreen)
	PackageSource  = color.New(color.FgCyan)
	Installed      = color.New(color.FgGreen)
	fieldLabel     = color.New(color.FgCyan)
	columnTitle    = color.New(color.Bold)
)

type symbols struct {
	success, failure, warning, info string
}

var (
	unicodeSymbols = symbols{success: "✓", failure: "✗", warning: "!", info: "→"}
	asciiSymbols   = symbols{success: "[OK]", failure: "[ERROR]", warning: "[WARN]", info: "->"}

	sym = unicodeSymbols
)

// Init applies the output settings. NO_COLOR in the environment always
// disables color.
func Init(useColors, useUnicode bool) {
	color.NoColor = !useColors || os.Getenv("NO_COLOR") != ""

	sym = asciiSymbols
	if useUnicode {
		sym = unicodeSymbols
	}
}

// SuccessMsg prints a success message to stdout.
func SuccessMsg(format string, args ...interface{}) {
	FSuccess(color.Output, format, args...)
}

// ErrorMsg prints an error message to stderr.
func ErrorMsg(format string, args ...interface{}) {
	FError(color.Error, format, args...)
}

func WarningMsg(format string, args ...interface{}) {
	FWarning(color.Output, format, args...)
}

func InfoMsg(format string, args ...interface{}) {
	FInfo(color.Output, format, args...)
}

func HeaderMsg(format string, args ...interface{}) {
	FHeader(color.Output, format, args...)
}

func MutedMsg(format string, args ...interface{}) {
	FMuted(color.Output, format, args...)
}

// The F variants write to w so commands can target cobra's writers.

func FSuccess(w io.Writer, format string, args ...interface{}) {
	Success.Fprintf(w, sym.success+" "+format+"\n", args...)
}

func FError(w io.Writer, format string, args ...interface{}) {
	Error.Fprintf(w, sym.failure+" "+format+"\n", args...)
}

func FWarning(w io.Writer, format string, args ...interface{}) {
	Warning.Fprintf(w, sym.warning+" "+format+"\n", args...)
}

func FInfo(w io.Writer, format string, args ...interface{}) {
	Info.Fprintf(w, sym.info+" "+format+"\n", args...)
}

// FHeader writes a header preceded by a blank line.
func FHeader(w io.Writer, format string, args ...interface{}) {
	Header.Fprintf(w, "\n"+format+"\n", args...)
}

func FMuted(w io.Writer, format string, args ...interface{}) {
	Muted.Fprintf(w, format+"\n", args...)
}
