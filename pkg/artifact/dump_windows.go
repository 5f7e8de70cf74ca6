//go:build windows

package artifact

import (
	"encoding/binary"
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/pkg/capability"
	"github.com/willibrandon/postmortem/pkg/exception"
)

const miniDumpWithFullMemory = 0x2

type miniDumper struct {
	writeDump capability.Proc

	// MINIDUMP_EXCEPTION_INFORMATION is 4-byte packed
	info [4 + 8 + 4]byte
}

// NewMiniDumper resolves MiniDumpWriteDump from the debug helper library.
func NewMiniDumper(lib capability.Library) (Dumper, error) {
	p, ok := lib.Lookup("MiniDumpWriteDump")
	if !ok {
		return nil, errors.Wrap(capability.ErrUnavailable, "MiniDumpWriteDump")
	}
	return &miniDumper{writeDump: p}, nil
}

func (d *miniDumper) WriteDump(f *os.File, p *exception.Pointers) error {
	var info uintptr
	if p != nil && p.Native != 0 {
		binary.LittleEndian.PutUint32(d.info[0:], windows.GetCurrentThreadId())
		binary.LittleEndian.PutUint64(d.info[4:], uint64(p.Native))
		binary.LittleEndian.PutUint32(d.info[4+unsafe.Sizeof(uintptr(0)):], 0)
		info = uintptr(unsafe.Pointer(&d.info[0]))
	}

	r1, _, err := d.writeDump.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(windows.GetCurrentProcessId()),
		f.Fd(),
		miniDumpWithFullMemory,
		info,
		0,
		0,
	)
	if r1 == 0 {
		return errors.Wrap(err, "MiniDumpWriteDump")
	}
	return nil
}
