package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr while a slow git command runs. On
// anything but a terminal it does nothing.
type Spinner struct {
	s *spinner.Spinner
}

func NewSpinner(message string) *Spinner {
	if !IsTerminal(os.Stderr) {
		return &Spinner{}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr), spinner.WithHiddenCursor(true))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Active reports whether the spinner will draw anything.
func (sp *Spinner) Active() bool {
	return sp.s != nil
}

func (sp *Spinner) Start() {
	if sp.s != nil {
		sp.s.Start()
	}
}

func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}
