package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/assetdesk/assetdesk/internal/logging"
)

func main() {
	if code := runMain(Execute, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	err := execute()
	if err == nil {
		return 0
	}
	return exitCodeForError(err, stderr)
}

// exitCodeForError maps an Execute error to a process exit code. Commands can
// pick their own code (and suppress the message) by returning an exitError;
// interrupts exit with the conventional 130.
func exitCodeForError(err error, stderr io.Writer) int {
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			cause := err
			if ee.err != nil {
				cause = ee.err
			}
			emitCommandError(cause, "command failed", ee.code, stderr)
		}
		return ee.code
	}

	if errors.Is(err, context.Canceled) {
		emitCommandError(err, "command canceled", 130, stderr)
		return 130
	}

	emitCommandError(err, "command failed", 1, stderr)
	return 1
}

// emitCommandError writes the fatal error the way the failing command talks:
// plain stderr for the interactive commands, a structured log line for the
// long-running ones.
func emitCommandError(err error, message string, exitCode int, stderr io.Writer) {
	cmdCtx := currentCommandExecutionContext()
	if !cmdCtx.UsesStructuredLog {
		if exitCode == 130 {
			fmt.Fprintln(stderr, "canceled")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return
	}
	fatalLogger(cmdCtx, stderr).Error(message, "exit_code", exitCode, "error", err)
}

func fatalLogger(cmdCtx commandExecutionContext, stderr io.Writer) *slog.Logger {
	cfg, err := logging.LoadConfigFromEnv()
	if err != nil {
		cfg = logging.DefaultConfig()
	}
	return logging.NewLogger(cfg, stderr, cmdCtx.CommandPath)
}
