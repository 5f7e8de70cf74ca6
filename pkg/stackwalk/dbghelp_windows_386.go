//go:build windows

package stackwalk

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/internal/winctx"
	"github.com/willibrandon/postmortem/pkg/exception"
)

const nativeArch = exception.Arch32

type address32 struct {
	Offset  uint32
	Segment uint16
	Mode    uint32
}

// stackFrame32 mirrors STACKFRAME including KDHELP.
type stackFrame32 struct {
	AddrPC         address32
	AddrReturn     address32
	AddrFrame      address32
	AddrStack      address32
	FuncTableEntry uintptr
	Params         [4]uint32
	Far            int32
	Virtual        int32
	Reserved       [3]uint32
	KdHelp         [16]uint32
	AddrBStore     address32
}

// imagehlpSymbol32 mirrors IMAGEHLP_SYMBOL followed by its name storage.
type imagehlpSymbol32 struct {
	SizeOfStruct  uint32
	Address       uint32
	Size          uint32
	Flags         uint32
	MaxNameLength uint32
	Name          [maxSymbolName]byte
}

const imagehlpSymbol32Size = 24

type nativeUnwinder struct {
	ep      EntryPoints
	process windows.Handle
	thread  windows.Handle
	ctx     *winctx.Context
	frame   stackFrame32
	symbol  imagehlpSymbol32
	disp    uint32
}

func newNativeUnwinder(ep EntryPoints, process, thread windows.Handle, ctx *winctx.Context) *nativeUnwinder {
	u := &nativeUnwinder{ep: ep, process: process, thread: thread, ctx: ctx}
	u.frame.AddrPC = address32{Offset: ctx.Eip, Mode: addrModeFlat}
	u.frame.AddrStack = address32{Offset: ctx.Esp, Mode: addrModeFlat}
	u.frame.AddrFrame = address32{Offset: ctx.Ebp, Mode: addrModeFlat}
	return u
}

func (u *nativeUnwinder) Step(f *Frame) bool {
	r1, _, _ := u.ep.StackWalk.Call(
		winctx.MachineType,
		uintptr(u.process),
		uintptr(u.thread),
		uintptr(unsafe.Pointer(&u.frame)),
		uintptr(unsafe.Pointer(u.ctx)),
		0,
		u.ep.FunctionTableAccess.Addr(),
		u.ep.ModuleBase.Addr(),
		0,
	)
	if r1 == 0 {
		return false
	}
	f.PC = uint64(u.frame.AddrPC.Offset)
	f.SP = uint64(u.frame.AddrStack.Offset)
	f.FP = uint64(u.frame.AddrFrame.Offset)
	return true
}

func (u *nativeUnwinder) Symbol(pc uint64) (string, uint64, bool) {
	u.symbol = imagehlpSymbol32{
		SizeOfStruct:  imagehlpSymbol32Size,
		MaxNameLength: maxSymbolName - 1,
	}
	u.disp = 0
	r1, _, _ := u.ep.SymbolFromAddr.Call(
		uintptr(u.process),
		uintptr(pc),
		uintptr(unsafe.Pointer(&u.disp)),
		uintptr(unsafe.Pointer(&u.symbol)),
	)
	if r1 == 0 {
		return "", 0, false
	}
	return cString(u.symbol.Name[:]), uint64(u.disp), true
}
