package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/moby/term"

	"github.com/kiosk404/spycats/internal/dashboard"
)

// IOStreams provides the standard names for iostreams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultErrorExitCode is the exit code used by CheckErr.
const DefaultErrorExitCode = 1

// ErrExit may be passed to CheckErr to exit with a failure code after the
// command already reported the problem.
var ErrExit = errors.New("exit")

var fatalErrHandler = fatal

// BehaviorOnFatal allows tests to observe fatal errors instead of exiting.
func BehaviorOnFatal(f func(string, int)) {
	fatalErrHandler = f
}

// DefaultBehaviorOnFatal restores the exit-on-fatal behavior.
func DefaultBehaviorOnFatal() {
	fatalErrHandler = fatal
}

func fatal(msg string, code int) {
	if len(msg) > 0 {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, msg)
	}
	os.Exit(code)
}

var errorPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// CheckErr prints a user friendly error to STDERR and exits with a non-zero
// exit code. HQ errors are reported through dashboard.Describe.
func CheckErr(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrExit) {
		fatalErrHandler("", DefaultErrorExitCode)
		return
	}
	msg := dashboard.Describe(err)
	fatalErrHandler(fmt.Sprintf("%s %s", errorPrefix("error:"), msg), DefaultErrorExitCode)
}

// UsageErrorf returns an error that points the user at the command help.
func UsageErrorf(cmdPath, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s\nSee '%s -h' for help and examples", msg, cmdPath)
}

// TerminalWidth returns the width of w when it is a terminal, or fallback.
func TerminalWidth(w io.Writer, fallback int) int {
	fd, isTerm := term.GetFdInfo(w)
	if !isTerm {
		return fallback
	}
	ws, err := term.GetWinsize(fd)
	if err != nil || ws.Width == 0 {
		return fallback
	}
	return int(ws.Width)
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	_, isTerm := term.GetFdInfo(w)
	return isTerm
}

// NewNotifier reports successes on Out and failures on ErrOut.
func NewNotifier(streams IOStreams) dashboard.Notifier {
	return streamNotifier{
		out:    dashboard.NewConsoleNotifier(streams.Out),
		errOut: dashboard.NewConsoleNotifier(streams.ErrOut),
	}
}

type streamNotifier struct {
	out, errOut *dashboard.ConsoleNotifier
}

func (n streamNotifier) Success(msg string) { n.out.Success(msg) }
func (n streamNotifier) Error(msg string)   { n.errOut.Error(msg) }
