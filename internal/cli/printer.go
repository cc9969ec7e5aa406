package cli

// Terminal output helpers shared by all commands. User-facing output goes
// through Printer (pterm) so scripted runs and tests can silence it; zap
// handles the structured logs.

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

func init() {
	// Plain output when stdout is a pipe or CI log.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}
}

// Printer writes user-facing output. Quiet suppresses all decorated output.
type Printer struct {
	Quiet bool
}

// DefaultPrinter backs the package-level output helpers.
var DefaultPrinter = &Printer{}

func (p *Printer) Println(args ...any) {
	if p.Quiet {
		return
	}
	pterm.Println(args...)
}

func (p *Printer) Printf(format string, args ...any) {
	if p.Quiet {
		return
	}
	pterm.Printf(format, args...)
}

// Header prints a full-width banner for a top-level action.
func (p *Printer) Header(text string) {
	if p.Quiet {
		return
	}
	pterm.DefaultHeader.WithFullWidth().Println(text)
}

func (p *Printer) Section(text string) {
	if p.Quiet {
		return
	}
	pterm.DefaultSection.Println(text)
}

func (p *Printer) Step(text string) {
	if p.Quiet {
		return
	}
	pterm.Println(pterm.Cyan("› " + text))
}

func (p *Printer) Info(text string) {
	if p.Quiet {
		return
	}
	pterm.Info.Println(text)
}

func (p *Printer) Success(text string) {
	if p.Quiet {
		return
	}
	pterm.Success.Println(text)
}

func (p *Printer) Warn(text string) {
	if p.Quiet {
		return
	}
	pterm.Warning.Println(text)
}

func (p *Printer) Error(text string) {
	if p.Quiet {
		return
	}
	pterm.Error.Println(text)
}

// SpinnerStart starts a spinner and returns a stop function that reports
// success or failure. In quiet mode the stop function is a no-op.
func (p *Printer) SpinnerStart(text string) func(success bool, msg string) {
	if p.Quiet {
		return func(bool, string) {}
	}
	spinner, err := pterm.DefaultSpinner.Start(text)
	if err != nil {
		return func(bool, string) {}
	}
	return func(success bool, msg string) {
		if success {
			spinner.Success(msg)
		} else {
			spinner.Fail(msg)
		}
	}
}

// Package-level helpers using DefaultPrinter.

func Header(text string)  { DefaultPrinter.Header(text) }
func Section(text string) { DefaultPrinter.Section(text) }
func Info(text string)    { DefaultPrinter.Info(text) }
func Success(text string) { DefaultPrinter.Success(text) }
func Warn(text string)    { DefaultPrinter.Warn(text) }
func Error(text string)   { DefaultPrinter.Error(text) }

// Table renders rows with the first row as header.
func Table(data [][]string) {
	if DefaultPrinter.Quiet || len(data) == 0 {
		return
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// TableBoxed renders a boxed table with the first row as header.
func TableBoxed(data [][]string) {
	if DefaultPrinter.Quiet || len(data) == 0 {
		return
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// Color helpers for inline emphasis in tables and messages.

func Green(text string) string  { return pterm.Green(text) }
func Yellow(text string) string { return pterm.Yellow(text) }
func Red(text string) string    { return pterm.Red(text) }
func Cyan(text string) string   { return pterm.Cyan(text) }
