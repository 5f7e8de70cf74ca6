// Package postmortem records a diagnostic artifact for an unhandled
// exception before the process is allowed to terminate.
package postmortem

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/artifact"
	"github.com/willibrandon/postmortem/pkg/config"
	"github.com/willibrandon/postmortem/pkg/disasm"
	"github.com/willibrandon/postmortem/pkg/exception"
	"github.com/willibrandon/postmortem/pkg/interp"
	"github.com/willibrandon/postmortem/pkg/logging"
	"github.com/willibrandon/postmortem/pkg/modules"
	"github.com/willibrandon/postmortem/pkg/stackwalk"
)

// Verdict is returned to the exception dispatcher.
type Verdict int32

// ContinueSearch lets the dispatcher carry on to the next handler or to the
// default termination. It is the only verdict a Handler ever returns.
const ContinueSearch Verdict = 0

var (
	// ErrNoOutputDir is returned when neither the preferred nor the fallback
	// directory could be resolved.
	ErrNoOutputDir = errors.New("no output directory")
	// ErrReentered is returned for a capture started while another one is
	// still running.
	ErrReentered = errors.New("capture already in progress")
)

// Options configures a Handler.
type Options struct {
	// SubDir is created below the per-user local data directory.
	SubDir string
	// Dir, when set, replaces the per-user directory. The temporary
	// directory is still used as a fallback.
	Dir string
	// PID keys the artifact name. Zero means the current process.
	PID int

	// HardenPolicy clears the exception-swallowing policy on Install.
	HardenPolicy bool

	Platform Platform

	// Registry tracks modules mapped outside the OS loader.
	Registry modules.Registry
	// Interpreter produces the embedded interpreter's stack, if any.
	Interpreter interp.StackProducer
	// NewUnwinder overrides the native unwinder.
	NewUnwinder stackwalk.NewUnwinderFunc

	Log *log.Entry
}

// DefaultOptions returns options for the running process.
func DefaultOptions() Options {
	return Options{
		SubDir:       config.DefaultSubDir,
		HardenPolicy: true,
		Platform:     SystemPlatform(),
	}
}

// OptionsFromConfig applies cfg over DefaultOptions.
func OptionsFromConfig(cfg config.Config, logger *log.Entry) Options {
	opts := DefaultOptions()
	if cfg.SubDir != "" {
		opts.SubDir = cfg.SubDir
	}
	opts.Dir = cfg.Dir
	opts.HardenPolicy = cfg.HardenPolicy
	opts.Log = logger
	return opts
}

// Outcome describes what a capture did.
type Outcome struct {
	// Trail lists every state entered, ending with Finished.
	Trail []State
	// Dir is the resolved output directory.
	Dir string
	// Path is the exception-info artifact, empty when none was created.
	Path string
	// WriteFailures counts artifact writes that did not reach the file.
	WriteFailures int
	// Err is the reason a capture stopped early.
	Err error
}

// State returns the last state entered.
func (o *Outcome) State() State {
	if len(o.Trail) == 0 {
		return Start
	}
	return o.Trail[len(o.Trail)-1]
}

func (o *Outcome) enter(s State) {
	o.Trail = append(o.Trail, s)
}

// Handler is the unhandled-exception filter.
type Handler struct {
	opts Options
	log  *log.Entry
	busy atomic.Bool
}

// New creates a Handler. A nil platform means the running system.
func New(opts Options) *Handler {
	if opts.Platform == nil {
		opts.Platform = SystemPlatform()
	}
	if opts.SubDir == "" && opts.Dir == "" {
		opts.SubDir = config.DefaultSubDir
	}
	return &Handler{
		opts: opts,
		log:  logging.Entry(opts.Log),
	}
}

// Handle records the fault and always returns ContinueSearch.
func (h *Handler) Handle(p *exception.Pointers) Verdict {
	h.Capture(p)
	return ContinueSearch
}

// Capture runs the capture pipeline and reports how far it got. It never
// panics.
func (h *Handler) Capture(p *exception.Pointers) (out Outcome) {
	out.enter(Start)
	defer out.enter(Finished)

	if !h.busy.CompareAndSwap(false, true) {
		out.Err = ErrReentered
		return out
	}
	defer h.busy.Store(false)
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if r := recover(); r != nil {
			out.Err = errors.Errorf("capture panicked: %v", r)
		}
	}()

	snap, err := exception.NewSnapshot(p)
	if errors.Is(err, exception.ErrNoRecord) {
		h.log.Error("Exception record is missing, nothing to capture")
		out.Err = err
		return out
	}

	out.enter(ClassifyAndLog)
	rec := p.Record
	h.log.WithFields(log.Fields{
		"code":    fmt.Sprintf("%08x", uint32(rec.Code)),
		"name":    rec.Code.String(),
		"flags":   fmt.Sprintf("%08x", rec.Flags),
		"address": fmt.Sprintf("%#x", rec.Address),
	}).Error("Catch fatal exception")
	if err != nil {
		h.log.WithError(err).Error("Cannot record exception")
		out.Err = err
		return out
	}

	out.enter(ResolveOutputDir)
	dir, err := h.outputDir()
	if err != nil {
		out.enter(Abort)
		h.log.WithError(err).Error("Cannot resolve an output directory")
		out.Err = err
		return out
	}
	out.Dir = dir

	out.enter(CaptureProceed)
	h.record(&out, snap)
	if FullDump {
		h.step("full dump", func() { h.dump(dir, p) })
	}
	return out
}

func (h *Handler) pid() int {
	if h.opts.PID != 0 {
		return h.opts.PID
	}
	return os.Getpid()
}

func (h *Handler) outputDir() (string, error) {
	dirs := h.opts.Platform.Dirs()
	if h.opts.Dir != "" {
		err := os.MkdirAll(h.opts.Dir, 0755)
		if err == nil {
			return h.opts.Dir, nil
		}
		h.log.WithError(err).WithField("dir", h.opts.Dir).Warn("Configured directory is unusable")
	} else if dirs != nil {
		dir, err := dirs.Preferred(h.opts.SubDir)
		if err == nil {
			return dir, nil
		}
		h.log.WithError(err).Warn("Cannot get local data directory")
	}

	if dirs == nil {
		return "", ErrNoOutputDir
	}
	dir, err := dirs.Fallback()
	if err != nil {
		h.log.WithError(err).Warn("Cannot get temporary directory")
		return "", ErrNoOutputDir
	}
	return dir, nil
}

func (h *Handler) record(out *Outcome, snap *exception.Snapshot) {
	path := artifact.InfoPath(out.Dir, h.pid())
	fr, err := artifact.NewFileRecorder(path, h.log)
	if err != nil {
		h.log.WithError(err).Error("Cannot create exception info file")
		out.Err = err
		return
	}
	out.Path = path
	defer func() {
		fr.Close()
		out.WriteFailures = fr.Failures()
		h.log.WithField("artifact", path).Info("Exception info saved")
	}()

	h.writeSections(fr, snap)
}

// writeSections appends every section in the fixed artifact order. A section
// whose source fails stays empty.
func (h *Handler) writeSections(w artifact.Recorder, snap *exception.Snapshot) {
	ctx := snap.Context
	arch := ctx.Arch()
	platform := h.opts.Platform

	h.step("header", func() {
		if err := exception.FormatHeader(w, &snap.Record, ctx); err != nil {
			h.log.WithError(err).Warn("Cannot format exception header")
		}
	})
	h.step("instruction", func() {
		mem := platform.Memory()
		if mem == nil {
			return
		}
		inst, err := disasm.At(mem, ctx.Registers.PC(), arch)
		if err != nil {
			h.log.WithError(err).Debug("Cannot decode faulting instruction")
			return
		}
		fmt.Fprintf(w, "Instruction: %s\n", inst.Text)
	})

	w.Section(artifact.SectionMappedModules)
	h.step("mapped modules", func() {
		modules.WriteMapped(w, arch, h.opts.Registry, h.log)
	})

	w.Section(artifact.SectionModules)
	h.step("modules", func() {
		lister, err := platform.Modules()
		if err != nil {
			h.log.WithError(err).Warn("Cannot enumerate process modules")
			return
		}
		modules.WriteLoaded(w, arch, lister, h.log)
	})

	w.Section(artifact.SectionStack)
	h.step("stack", func() {
		lib, err := platform.DebugLibrary()
		if err != nil {
			h.log.WithError(err).Warn("Cannot load debug helper library")
			lib = nil
		}
		wk := &stackwalk.Walker{
			Library:     lib,
			Fallback:    h.opts.Registry,
			NewUnwinder: h.opts.NewUnwinder,
			Log:         h.log,
		}
		wk.Walk(w, ctx)
	})

	w.Section(artifact.SectionInterpreter)
	h.step("interpreter stack", func() {
		interp.Record(w, h.opts.Interpreter, h.log)
	})
}

func (h *Handler) dump(dir string, p *exception.Pointers) {
	dumper, err := h.opts.Platform.Dumper()
	if err != nil {
		h.log.WithError(err).Warn("MiniDumpWriteDump not found")
		return
	}
	if err := artifact.WriteDump(dir, h.pid(), dumper, p, h.log); err != nil {
		h.log.WithError(err).Error("Full dump failed")
	}
}

// step runs one part of the capture. A fault inside it ends only that part.
func (h *Handler) step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.log.WithField("step", name).Errorf("Capture step failed: %v", r)
		}
	}()
	fn()
}
