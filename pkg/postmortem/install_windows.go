//go:build windows && (amd64 || 386)

package postmortem

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/internal/winctx"
	"github.com/willibrandon/postmortem/pkg/capability"
)

func installFilter(h *Handler) (func(), error) {
	lib, err := capability.System().Load(capability.Kernel32)
	if err != nil {
		return nil, err
	}
	set, ok := lib.Lookup("SetUnhandledExceptionFilter")
	if !ok {
		return nil, errors.Wrap(capability.ErrUnavailable, "SetUnhandledExceptionFilter")
	}

	// callbacks are never released; each Install costs one slot
	filter := windows.NewCallback(func(p *winctx.ExceptionPointers) uintptr {
		return uintptr(h.Handle(winctx.Decode(p)))
	})
	prev, _, _ := set.Call(filter)
	h.log.Debug("Unhandled exception filter installed")

	return func() {
		set.Call(prev)
	}, nil
}
