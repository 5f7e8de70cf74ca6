package exception

import "fmt"

// Arch identifies the register layout of a captured context.
type Arch int

const (
	ArchUnknown Arch = iota
	Arch32
	Arch64
)

// String returns the representation used in logs
func (a Arch) String() string {
	switch a {
	case Arch32:
		return "x86"
	case Arch64:
		return "x64"
	default:
		return "unknown"
	}
}

// HexWidth is the number of hex digits in a pointer-sized value.
func (a Arch) HexWidth() int {
	if a == Arch32 {
		return 8
	}
	return 16
}

// FormatAddress renders v zero-padded to the width of the architecture.
func (a Arch) FormatAddress(v uint64) string {
	return fmt.Sprintf("%0*x", a.HexWidth(), v)
}

// RegisterSet is either Registers32 or Registers64.
type RegisterSet interface {
	Arch() Arch
	PC() uint64
	SP() uint64
	FP() uint64

	registerSet()
}

// Registers32 is the general purpose register file of an x86 thread.
type Registers32 struct {
	Esp, Ebp, Eip      uint32
	Eax, Ebx, Ecx, Edx uint32
	Esi, Edi           uint32
}

func (Registers32) Arch() Arch   { return Arch32 }
func (r Registers32) PC() uint64 { return uint64(r.Eip) }
func (r Registers32) SP() uint64 { return uint64(r.Esp) }
func (r Registers32) FP() uint64 { return uint64(r.Ebp) }
func (Registers32) registerSet() {}

// Registers64 is the general purpose register file of an x64 thread.
type Registers64 struct {
	Rsp, Rbp, Rip      uint64
	Rax, Rbx, Rcx, Rdx uint64
	Rsi, Rdi, R8, R9   uint64
	R10, R11, R12, R13 uint64
	R14, R15           uint64
}

func (Registers64) Arch() Arch   { return Arch64 }
func (r Registers64) PC() uint64 { return r.Rip }
func (r Registers64) SP() uint64 { return r.Rsp }
func (r Registers64) FP() uint64 { return r.Rbp }
func (Registers64) registerSet() {}
