package main

import "fmt"

// exitError carries a specific process exit code out of a command. silent
// suppresses the error message for cases where the command already printed
// its own diagnostics.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.err != nil:
		return e.err.Error()
	default:
		return fmt.Sprintf("exit %d", e.code)
	}
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}
