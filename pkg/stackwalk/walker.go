package stackwalk

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/capability"
	"github.com/willibrandon/postmortem/pkg/exception"
	"github.com/willibrandon/postmortem/pkg/logging"
	"github.com/willibrandon/postmortem/pkg/modules"
)

// Walker writes the native stack of a faulting context.
type Walker struct {
	// Library is the loaded debug helper. A nil library skips the walk.
	Library capability.Library

	// Fallback names frames that have no symbol.
	Fallback modules.Registry

	// NewUnwinder defaults to the platform's debug-helper unwinder.
	NewUnwinder NewUnwinderFunc

	Log *log.Entry
}

// Walk streams at most MaxFrames frame lines to w and returns how many it
// wrote. Every line is written as soon as it is resolved. Frame 0 is always
// written, at the context's PC when the first step fails.
func (wk *Walker) Walk(w io.Writer, ctx *exception.Context) int {
	logger := logging.Entry(wk.Log)

	if wk.Library == nil {
		logger.Warn("Debug helper library is unavailable, skipping stack trace")
		return 0
	}
	if ctx == nil || ctx.Registers == nil {
		logger.Warn("Context is missing, skipping stack trace")
		return 0
	}

	ep, err := Bind(wk.Library, ctx.Arch())
	if err != nil {
		logger.WithError(err).Warn("Not all functions found in debug helper")
		return 0
	}

	newUnwinder := wk.NewUnwinder
	if newUnwinder == nil {
		newUnwinder = NewDbgHelpUnwinder
	}
	u, err := newUnwinder(ep, ctx)
	if err != nil {
		logger.WithError(err).Warn("Cannot start stack walk")
		return 0
	}
	u = newCachedUnwinder(u, logger)

	arch := ctx.Arch()
	f := Frame{
		PC: ctx.Registers.PC(),
		SP: ctx.Registers.SP(),
		FP: ctx.Registers.FP(),
	}

	written := 0
	for i := 0; i < MaxFrames; i++ {
		ok := u.Step(&f)
		if !ok && i > 0 {
			break
		}
		// a first step that fails still records the faulting PC
		f.Index = i
		wk.resolve(u, &f)
		writeFrame(w, arch, &f)
		written++
		if !ok {
			break
		}
	}

	logger.WithField("frames", written).Debug("Stack trace saved")
	return written
}

func (wk *Walker) resolve(u Unwinder, f *Frame) {
	f.Symbol, f.Displacement, f.Module, f.Offset = "", 0, "", 0

	if name, disp, ok := u.Symbol(f.PC); ok && name != "" {
		f.Symbol, f.Displacement = name, disp
		return
	}
	if wk.Fallback == nil {
		return
	}
	if m, ok := wk.Fallback.FindByAddress(f.PC); ok {
		f.Module, f.Offset = m.Name, f.PC-m.Base
	}
}

func writeFrame(w io.Writer, arch exception.Arch, f *Frame) {
	pc := arch.FormatAddress(f.PC)
	switch {
	case f.Symbol != "":
		fmt.Fprintf(w, "+ %d:\t%s\t(PC %s)\n", f.Index, f.Symbol, pc)
	case f.Module != "":
		fmt.Fprintf(w, "+ %d:\t%s+0x%x\t(PC %s)\n", f.Index, f.Module, f.Offset, pc)
	default:
		fmt.Fprintf(w, "+ %d:\t?\t\t\t(PC %s)\n", f.Index, pc)
	}
}
