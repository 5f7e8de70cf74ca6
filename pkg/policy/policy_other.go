//go:build !windows

package policy

import (
	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
)

// SystemController is only available on Windows.
func SystemController(loader capability.Loader) (Controller, error) {
	return nil, errors.Wrap(capability.ErrUnavailable, "process exception policy")
}
