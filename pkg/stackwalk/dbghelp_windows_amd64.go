//go:build windows

package stackwalk

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/internal/winctx"
	"github.com/willibrandon/postmortem/pkg/exception"
)

const nativeArch = exception.Arch64

type address64 struct {
	Offset  uint64
	Segment uint16
	Mode    uint32
}

// stackFrame64 mirrors STACKFRAME64 including KDHELP64.
type stackFrame64 struct {
	AddrPC         address64
	AddrReturn     address64
	AddrFrame      address64
	AddrStack      address64
	AddrBStore     address64
	FuncTableEntry uintptr
	Params         [4]uint64
	Far            int32
	Virtual        int32
	Reserved       [3]uint64
	KdHelp         [14]uint64
}

// imagehlpSymbol64 mirrors IMAGEHLP_SYMBOL64 followed by its name storage.
type imagehlpSymbol64 struct {
	SizeOfStruct  uint32
	Address       uint64
	Size          uint32
	Flags         uint32
	MaxNameLength uint32
	Name          [maxSymbolName]byte
}

const imagehlpSymbol64Size = 32

type nativeUnwinder struct {
	ep      EntryPoints
	process windows.Handle
	thread  windows.Handle
	ctx     *winctx.Context
	frame   stackFrame64
	symbol  imagehlpSymbol64
	disp    uint64
}

func newNativeUnwinder(ep EntryPoints, process, thread windows.Handle, ctx *winctx.Context) *nativeUnwinder {
	u := &nativeUnwinder{ep: ep, process: process, thread: thread, ctx: ctx}
	u.frame.AddrPC = address64{Offset: ctx.Rip, Mode: addrModeFlat}
	u.frame.AddrStack = address64{Offset: ctx.Rsp, Mode: addrModeFlat}
	u.frame.AddrFrame = address64{Offset: ctx.Rbp, Mode: addrModeFlat}
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
	f.PC = u.frame.AddrPC.Offset
	f.SP = u.frame.AddrStack.Offset
	f.FP = u.frame.AddrFrame.Offset
	return true
}

func (u *nativeUnwinder) Symbol(pc uint64) (string, uint64, bool) {
	u.symbol = imagehlpSymbol64{
		SizeOfStruct:  imagehlpSymbol64Size,
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
	return cString(u.symbol.Name[:]), u.disp, true
}
