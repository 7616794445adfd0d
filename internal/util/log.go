// Package util provides leveled logging and process-wide counters.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

func init() {
	pterm.DefaultLogger.ShowTime = true
	pterm.DefaultLogger.TimeFormat = "02 Jan 15:04:05"
	pterm.DefaultLogger.MaxWidth = 1000
}

// Leveled logging functions backed by the pterm default logger.
// Output goes to pterm's default writer (stdout) unless SetLogWriter redirects it.

func LogDebug(format string, args ...interface{}) {
	if !pterm.DefaultLogger.CanPrint(pterm.LogLevelDebug) {
		return
	}
	pterm.DefaultLogger.Debug(fmt.Sprintf(format, args...))
}

func LogInfo(format string, args ...interface{}) {
	pterm.DefaultLogger.Info(fmt.Sprintf(format, args...))
}

func LogWarning(format string, args ...interface{}) {
	pterm.DefaultLogger.Warn(fmt.Sprintf(format, args...))
}

func LogError(format string, args ...interface{}) {
	pterm.DefaultLogger.Error(fmt.Sprintf(format, args...))
}

// EnableDebug configures the logger to show debug messages.
func EnableDebug() {
	pterm.DefaultLogger.Level = pterm.LogLevelDebug
}

// SetLogWriter redirects log output, mainly so tests can capture it.
// Passing nil restores the default writer.
func SetLogWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	pterm.DefaultLogger.Writer = w
}
