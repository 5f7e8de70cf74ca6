//go:build !windows || !(amd64 || 386)

package stackwalk

import (
	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/exception"
)

// NewDbgHelpUnwinder is only available on Windows x86 and x64.
func NewDbgHelpUnwinder(ep EntryPoints, ctx *exception.Context) (Unwinder, error) {
	return nil, errors.Wrap(ErrUnsupportedArch, "dbghelp unwinder")
}
