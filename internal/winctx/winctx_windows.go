//go:build windows && (amd64 || 386)

package winctx

import (
	"unsafe"

	"github.com/willibrandon/postmortem/pkg/exception"
)

// ExceptionRecord mirrors EXCEPTION_RECORD.
type ExceptionRecord struct {
	ExceptionCode        uint32
	ExceptionFlags       uint32
	ExceptionRecord      *ExceptionRecord
	ExceptionAddress     uintptr
	NumberParameters     uint32
	ExceptionInformation [15]uintptr
}

// ExceptionPointers mirrors EXCEPTION_POINTERS.
type ExceptionPointers struct {
	ExceptionRecord *ExceptionRecord
	ContextRecord   *Context
}

// Decode converts the native pointers into their portable form. Missing
// members stay nil so the caller can apply its own precondition checks.
func Decode(p *ExceptionPointers) *exception.Pointers {
	if p == nil {
		return nil
	}
	out := &exception.Pointers{Native: uintptr(unsafe.Pointer(p))}
	if r := p.ExceptionRecord; r != nil {
		out.Record = &exception.Record{
			Code:    exception.Code(r.ExceptionCode),
			Flags:   r.ExceptionFlags,
			Address: uint64(r.ExceptionAddress),
		}
	}
	if c := p.ContextRecord; c != nil {
		out.Context = &exception.Context{
			Registers: c.Registers(),
			Native:    unsafe.Pointer(c),
		}
	}
	return out
}

// Clone returns a private copy of the native context behind ctx, or a context
// built from its registers when there is none.
func Clone(ctx *exception.Context) *Context {
	if ctx.Native != nil {
		c := new(Context)
		*c = *(*Context)(ctx.Native)
		return c
	}
	return FromRegisters(ctx.Registers)
}
