// Package policy hardens the process exception policy so that faults raised
// inside kernel callbacks crash the process instead of being swallowed.
package policy

import (
	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/logging"
)

// ExceptionSwallowing is PROCESS_CALLBACK_FILTER_ENABLED.
const ExceptionSwallowing uint32 = 0x1

// Controller reads and writes the process user-mode exception policy.
type Controller interface {
	Get() (uint32, error)
	Set(flags uint32) error
}

// Harden clears ExceptionSwallowing. It may be called any number of times; a
// nil controller is a no-op.
func Harden(c Controller, logger *log.Entry) {
	logger = logging.Entry(logger)
	if c == nil {
		logger.Debug("Process exception policy is not available")
		return
	}

	flags, err := c.Get()
	if err != nil {
		logger.WithError(err).Warn("Cannot read process exception policy")
		return
	}
	logger.WithField("flags", flags).Debug("Default process exception policy")

	if flags&ExceptionSwallowing == 0 {
		return
	}
	if err := c.Set(flags &^ ExceptionSwallowing); err != nil {
		logger.WithError(err).Warn("Cannot update process exception policy")
	}
}
