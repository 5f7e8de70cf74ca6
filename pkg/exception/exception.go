package exception

import (
	"unsafe"

	"github.com/pkg/errors"
)

var (
	// ErrNoRecord is returned when the dispatcher supplied no exception record.
	ErrNoRecord = errors.New("exception record is missing")
	// ErrNoContext is returned when the dispatcher supplied no CPU context.
	ErrNoContext = errors.New("exception context is missing")
)

// Record describes the fault itself.
type Record struct {
	Code    Code
	Flags   uint32
	Address uint64
}

// Context is the faulting thread's register state.
type Context struct {
	Registers RegisterSet

	// Native points at the platform CONTEXT record the registers were decoded
	// from. It is nil for contexts built in memory.
	Native unsafe.Pointer
}

// Arch reports the register layout of the context.
func (c *Context) Arch() Arch {
	if c == nil || c.Registers == nil {
		return ArchUnknown
	}
	return c.Registers.Arch()
}

// Pointers is what the exception dispatcher hands to the filter.
type Pointers struct {
	Record  *Record
	Context *Context

	// Native is the address of the platform EXCEPTION_POINTERS structure, zero
	// when the pointers were fabricated.
	Native uintptr
}

// Snapshot is the validated, read-only view of a fault used once per crash.
type Snapshot struct {
	Record  Record
	Context *Context
}

// NewSnapshot validates the pointers handed over by the dispatcher.
func NewSnapshot(p *Pointers) (*Snapshot, error) {
	if p == nil || p.Record == nil {
		return nil, ErrNoRecord
	}
	if p.Context == nil || p.Context.Registers == nil {
		return nil, ErrNoContext
	}
	return &Snapshot{Record: *p.Record, Context: p.Context}, nil
}
