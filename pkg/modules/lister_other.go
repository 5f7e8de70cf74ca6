//go:build !windows

package modules

import (
	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
)

// NewProcessLister is only implemented on Windows.
func NewProcessLister(loader capability.Loader) (Lister, error) {
	if _, err := loader.Load(capability.Psapi); err != nil {
		return nil, err
	}
	return nil, errors.Wrap(capability.ErrUnavailable, "EnumProcessModules")
}
