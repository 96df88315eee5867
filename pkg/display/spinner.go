package display

import (
	"os"
	"time"

	"github.com/Fedja/cloud-tools/pkg/logger"
	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// StartSpinner shows message with a spinner on f until the returned stop
// function is called. Nothing is drawn when f is not a terminal.
func StartSpinner(f *os.File, message string) (stop func()) {
	if !IsTerminal(f) {
		return func() {}
	}

	l := logger.Get()
	l.Debugf("Creating spinner: %s", message)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Prefix = message + " "
	_ = s.Color("green")
	s.Start()

	return s.Stop
}
