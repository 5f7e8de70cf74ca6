//go:build !windows || !(amd64 || 386)

package postmortem

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
)

func installFilter(h *Handler) (func(), error) {
	return nil, errors.Wrapf(capability.ErrUnavailable, "unhandled exception filter on %s/%s", runtime.GOOS, runtime.GOARCH)
}
