//go:build windows && (amd64 || 386)

package stackwalk

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/internal/winctx"
	"github.com/willibrandon/postmortem/pkg/exception"
)

const (
	addrModeFlat  = 3
	maxSymbolName = 1024
)

// NewDbgHelpUnwinder walks the current thread with dbghelp, starting from a
// private copy of the faulting context.
func NewDbgHelpUnwinder(ep EntryPoints, ctx *exception.Context) (Unwinder, error) {
	if ep.Arch != nativeArch {
		return nil, errors.Wrapf(ErrUnsupportedArch, "%s context on %s process", ep.Arch, nativeArch)
	}

	process := windows.CurrentProcess()
	if ep.Initialize != nil {
		// fails harmlessly when the host already initialised the handler
		ep.Initialize.Call(uintptr(process), 0, 1)
	}
	return newNativeUnwinder(ep, process, windows.CurrentThread(), winctx.Clone(ctx)), nil
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
