package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrCommandFailure is the category of every CommandError.
var ErrCommandFailure = errors.New("command failed")

// CommandError describes an external command that could not be run or that
// exited non-zero.
type CommandError struct {
	Description string
	Command     string
	ExitCode    int
	Stderr      string
	Err         error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to %s: %v", e.Description, e.Err)
	}
	return fmt.Sprintf("failed to %s: %s exited with status %d", e.Description, e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCommandFailure, e.Err}
	}
	return []error{ErrCommandFailure}
}

// RunChecked runs a command through r and converts any failure into a
// *CommandError. Captured stderr is logged at error level before returning.
// The command is attempted exactly once.
func RunChecked(r Runner, log logrus.FieldLogger, description, name string, args ...string) (*Result, error) {
	cmdline := CommandLine(name, args...)
	log.WithField("command", name).Debugf("Running %s", cmdline)

	res, err := r.Run(name, args...)
	if err != nil {
		log.WithField("command", name).Errorf("Failed to %s", description)
		return nil, &CommandError{
			Description: description,
			Command:     cmdline,
			ExitCode:    -1,
			Err:         err,
		}
	}

	if !res.Success() {
		log.WithField("command", name).Errorf("Failed to %s", description)
		if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
			log.WithField("command", name).Error(stderr)
		}
		return res, &CommandError{
			Description: description,
			Command:     cmdline,
			ExitCode:    res.ExitCode,
			Stderr:      res.Stderr,
		}
	}

	return res, nil
}
