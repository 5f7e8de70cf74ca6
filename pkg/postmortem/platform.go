package postmortem

import (
	"github.com/willibrandon/postmortem/pkg/artifact"
	"github.com/willibrandon/postmortem/pkg/capability"
	"github.com/willibrandon/postmortem/pkg/disasm"
	"github.com/willibrandon/postmortem/pkg/modules"
	"github.com/willibrandon/postmortem/pkg/policy"
)

// DirResolver finds a directory for crash artifacts.
type DirResolver interface {
	// Preferred returns the per-user local data directory joined with
	// subdir, creating it when absent.
	Preferred(subdir string) (string, error)
	// Locate returns the same path as Preferred without creating anything.
	Locate(subdir string) (string, error)
	// Fallback returns the system temporary directory.
	Fallback() (string, error)
}

// Platform resolves every OS capability the handler needs. Each method is
// called at the point of use during a capture, never ahead of time.
type Platform interface {
	Dirs() DirResolver
	Modules() (modules.Lister, error)
	DebugLibrary() (capability.Library, error)
	Dumper() (artifact.Dumper, error)
	Memory() disasm.MemoryReader
	Policy() (policy.Controller, error)
}

type systemPlatform struct {
	loader capability.Loader
}

// NewPlatform returns the platform backed by loader.
func NewPlatform(loader capability.Loader) Platform {
	return &systemPlatform{loader: loader}
}

// SystemPlatform returns the platform of the running process.
func SystemPlatform() Platform {
	return NewPlatform(capability.System())
}

func (p *systemPlatform) Dirs() DirResolver {
	return newDirResolver(p.loader)
}

func (p *systemPlatform) Modules() (modules.Lister, error) {
	return modules.NewProcessLister(p.loader)
}

func (p *systemPlatform) DebugLibrary() (capability.Library, error) {
	return p.loader.Load(capability.DbgHelp)
}

func (p *systemPlatform) Dumper() (artifact.Dumper, error) {
	lib, err := p.DebugLibrary()
	if err != nil {
		return nil, err
	}
	return artifact.NewMiniDumper(lib)
}

func (p *systemPlatform) Memory() disasm.MemoryReader {
	return disasm.ProcessMemory()
}

func (p *systemPlatform) Policy() (policy.Controller, error) {
	return policy.SystemController(p.loader)
}
