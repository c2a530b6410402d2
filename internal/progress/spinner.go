package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an animated status line while a blocking step runs. On
// non-TTY writers it prints a single line on start and the result on stop.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	message string
	s       *spinner.Spinner
}

// NewSpinner returns a spinner writing to out with the given capabilities.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins animating message. Calling Start while running replaces the message.
func (sp *Spinner) Start(message string) {
	sp.message = message
	if !sp.caps.IsTTY {
		fmt.Fprintf(sp.out, "%s...\n", message)
		return
	}

	if sp.s == nil {
		sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(sp.out))
	}
	sp.s.Suffix = " " + message
	if !sp.s.Active() {
		sp.s.Start()
	}
}

// Success stops the spinner and prints the checkmark with the last message.
func (sp *Spinner) Success() {
	sp.stop(sp.symbols.Checkmark)
}

// Fail stops the spinner and prints the failure mark with the last message.
func (sp *Spinner) Fail() {
	sp.stop(sp.symbols.Failure)
}

func (sp *Spinner) stop(mark string) {
	if sp.s != nil && sp.s.Active() {
		sp.s.FinalMSG = fmt.Sprintf("%s %s\n", mark, sp.message)
		sp.s.Stop()
		return
	}
	if !sp.caps.IsTTY && sp.message != "" {
		fmt.Fprintf(sp.out, "%s %s\n", mark, sp.message)
	}
}

// Run wraps fn with Start and Success/Fail.
func (sp *Spinner) Run(message string, fn func() error) error {
	sp.Start(message)
	if err := fn(); err != nil {
		sp.Fail()
		return err
	}
	sp.Success()
	return nil
}
