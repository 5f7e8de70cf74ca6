//go:build windows

package winctx

import "github.com/willibrandon/postmortem/pkg/exception"

// MachineType is IMAGE_FILE_MACHINE_AMD64.
const MachineType = 0x8664

const (
	contextAMD64   = 0x00100000
	contextControl = contextAMD64 | 0x1
	contextInteger = contextAMD64 | 0x2
)

// Context mirrors the x64 CONTEXT record.
type Context struct {
	P1Home, P2Home, P3Home, P4Home, P5Home, P6Home uint64

	ContextFlags uint32
	MxCsr        uint32

	SegCs, SegDs, SegEs, SegFs, SegGs, SegSs uint16
	EFlags                                   uint32

	Dr0, Dr1, Dr2, Dr3, Dr6, Dr7 uint64

	Rax, Rcx, Rdx, Rbx uint64
	Rsp, Rbp, Rsi, Rdi uint64
	R8, R9, R10, R11   uint64
	R12, R13, R14, R15 uint64
	Rip                uint64

	FltSave        [512]byte
	VectorRegister [26][16]byte
	VectorControl  uint64

	DebugControl         uint64
	LastBranchToRip      uint64
	LastBranchFromRip    uint64
	LastExceptionToRip   uint64
	LastExceptionFromRip uint64
}

// Registers extracts the general purpose registers.
func (c *Context) Registers() exception.RegisterSet {
	return exception.Registers64{
		Rsp: c.Rsp, Rbp: c.Rbp, Rip: c.Rip,
		Rax: c.Rax, Rbx: c.Rbx, Rcx: c.Rcx, Rdx: c.Rdx,
		Rsi: c.Rsi, Rdi: c.Rdi, R8: c.R8, R9: c.R9,
		R10: c.R10, R11: c.R11, R12: c.R12, R13: c.R13,
		R14: c.R14, R15: c.R15,
	}
}

// FromRegisters builds a control+integer context. Registers of the other
// layout leave it zeroed apart from the flags.
func FromRegisters(rs exception.RegisterSet) *Context {
	c := &Context{ContextFlags: contextControl | contextInteger}
	var r exception.Registers64
	switch v := rs.(type) {
	case exception.Registers64:
		r = v
	case *exception.Registers64:
		r = *v
	default:
		return c
	}
	c.Rsp, c.Rbp, c.Rip = r.Rsp, r.Rbp, r.Rip
	c.Rax, c.Rbx, c.Rcx, c.Rdx = r.Rax, r.Rbx, r.Rcx, r.Rdx
	c.Rsi, c.Rdi, c.R8, c.R9 = r.Rsi, r.Rdi, r.R8, r.R9
	c.R10, c.R11, c.R12, c.R13 = r.R10, r.R11, r.R12, r.R13
	c.R14, c.R15 = r.R14, r.R15
	return c
}
