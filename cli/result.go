package cli

import "fmt"

// CommandError signals a failure that the command already reported.
// Commands print their diagnostics first and return this error; main turns
// it into the process exit code.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a CommandError exiting with exitCode.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.exitCode)
}

// ExitCode returns the process exit code.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}
