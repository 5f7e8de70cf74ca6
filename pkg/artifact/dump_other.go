//go:build !windows

package artifact

import (
	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
)

// NewMiniDumper is only available on Windows.
func NewMiniDumper(lib capability.Library) (Dumper, error) {
	return nil, errors.Wrap(capability.ErrUnavailable, "MiniDumpWriteDump")
}
