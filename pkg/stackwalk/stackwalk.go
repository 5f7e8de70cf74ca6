// Package stackwalk reconstructs the native call chain of the faulting thread
// through dynamically resolved debug-helper entry points.
package stackwalk

import (
	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
	"github.com/willibrandon/postmortem/pkg/exception"
)

// MaxFrames bounds every walk; corrupted frame chains may otherwise cycle or
// run into unmapped memory forever.
const MaxFrames = 64

var (
	// ErrMissingEntryPoint is returned by Bind when the library lacks one of
	// the required entry points.
	ErrMissingEntryPoint = errors.New("debug helper entry point missing")
	// ErrUnsupportedArch is returned for contexts of an unknown layout.
	ErrUnsupportedArch = errors.New("unsupported architecture")
)

// Frame is one step of the call chain.
type Frame struct {
	Index int
	PC    uint64
	SP    uint64
	FP    uint64

	Symbol       string
	Displacement uint64

	Module string
	Offset uint64
}

// Unwinder advances through the frames of a single thread.
type Unwinder interface {
	// Step moves f to the next frame. It returns false once there are no
	// further frames.
	Step(f *Frame) bool
	// Symbol resolves pc to a function name and displacement.
	Symbol(pc uint64) (name string, displacement uint64, ok bool)
}

// EntryPoints are the debug-helper procs an unwinder drives.
type EntryPoints struct {
	Arch exception.Arch

	StackWalk           capability.Proc
	FunctionTableAccess capability.Proc
	ModuleBase          capability.Proc
	SymbolFromAddr      capability.Proc

	// Initialize is SymInitialize, used when present.
	Initialize capability.Proc
}

// NewUnwinderFunc builds an unwinder positioned at the faulting context.
type NewUnwinderFunc func(ep EntryPoints, ctx *exception.Context) (Unwinder, error)

// EntryPointNames returns the names Bind requires for arch, in the order
// stack walk, function table access, module base, symbol from address.
func EntryPointNames(arch exception.Arch) ([]string, error) {
	switch arch {
	case exception.Arch64:
		return []string{"StackWalk64", "SymFunctionTableAccess64", "SymGetModuleBase64", "SymGetSymFromAddr64"}, nil
	case exception.Arch32:
		return []string{"StackWalk", "SymFunctionTableAccess", "SymGetModuleBase", "SymGetSymFromAddr"}, nil
	default:
		return nil, errors.Wrap(ErrUnsupportedArch, arch.String())
	}
}

// Bind resolves every entry point required for arch. It fails as a whole if
// any of them is missing.
func Bind(lib capability.Library, arch exception.Arch) (EntryPoints, error) {
	names, err := EntryPointNames(arch)
	if err != nil {
		return EntryPoints{}, err
	}

	procs, missing, ok := capability.LookupAll(lib, names...)
	if !ok {
		return EntryPoints{}, errors.Wrapf(ErrMissingEntryPoint, "%s!%s", lib.Name(), missing)
	}

	ep := EntryPoints{
		Arch:                arch,
		StackWalk:           procs[0],
		FunctionTableAccess: procs[1],
		ModuleBase:          procs[2],
		SymbolFromAddr:      procs[3],
	}
	if p, ok := lib.Lookup("SymInitialize"); ok {
		ep.Initialize = p
	}
	return ep, nil
}
