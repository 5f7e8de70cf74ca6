//go:build windows

package winctx

import "github.com/willibrandon/postmortem/pkg/exception"

// MachineType is IMAGE_FILE_MACHINE_I386.
const MachineType = 0x014c

const (
	contextI386    = 0x00010000
	contextControl = contextI386 | 0x1
	contextInteger = contextI386 | 0x2
)

// floatingSaveArea mirrors FLOATING_SAVE_AREA.
type floatingSaveArea struct {
	ControlWord   uint32
	StatusWord    uint32
	TagWord       uint32
	ErrorOffset   uint32
	ErrorSelector uint32
	DataOffset    uint32
	DataSelector  uint32
	RegisterArea  [80]byte
	Cr0NpxState   uint32
}

// Context mirrors the x86 CONTEXT record.
type Context struct {
	ContextFlags uint32

	Dr0, Dr1, Dr2, Dr3, Dr6, Dr7 uint32

	FloatSave floatingSaveArea

	SegGs, SegFs, SegEs, SegDs uint32

	Edi, Esi, Ebx, Edx, Ecx, Eax uint32

	Ebp    uint32
	Eip    uint32
	SegCs  uint32
	EFlags uint32
	Esp    uint32
	SegSs  uint32

	ExtendedRegisters [512]byte
}

// Registers extracts the general purpose registers.
func (c *Context) Registers() exception.RegisterSet {
	return exception.Registers32{
		Esp: c.Esp, Ebp: c.Ebp, Eip: c.Eip,
		Eax: c.Eax, Ebx: c.Ebx, Ecx: c.Ecx, Edx: c.Edx,
		Esi: c.Esi, Edi: c.Edi,
	}
}

// FromRegisters builds a control+integer context. Registers of the other
// layout leave it zeroed apart from the flags.
func FromRegisters(rs exception.RegisterSet) *Context {
	c := &Context{ContextFlags: contextControl | contextInteger}
	var r exception.Registers32
	switch v := rs.(type) {
	case exception.Registers32:
		r = v
	case *exception.Registers32:
		r = *v
	default:
		return c
	}
	c.Esp, c.Ebp, c.Eip = r.Esp, r.Ebp, r.Eip
	c.Eax, c.Ebx, c.Ecx, c.Edx = r.Eax, r.Ebx, r.Ecx, r.Edx
	c.Esi, c.Edi = r.Esi, r.Edi
	return c
}
