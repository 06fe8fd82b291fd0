package common

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// ErrorHook is a zerolog hook that mirrors error lines to the terminal via
// pterm so they stand out from the streamed logs. Output goes to stderr;
// stdout is reserved for command output such as the diff report.
type ErrorHook struct{}

// Run implements the zerolog.Hook interface
func (h ErrorHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level == zerolog.ErrorLevel {
		pterm.Error.WithWriter(os.Stderr).Println(msg)
	}
}
