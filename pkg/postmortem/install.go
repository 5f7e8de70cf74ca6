package postmortem

import (
	"github.com/willibrandon/postmortem/pkg/policy"
)

// Install makes h the process-wide unhandled-exception filter and, when the
// options ask for it, clears the exception-swallowing policy first. The
// returned func restores the previous filter.
func Install(h *Handler) (restore func(), err error) {
	if h.opts.HardenPolicy {
		c, err := h.opts.Platform.Policy()
		if err != nil {
			h.log.WithError(err).Debug("Process exception policy not found")
		} else {
			policy.Harden(c, h.log)
		}
	}
	return installFilter(h)
}
