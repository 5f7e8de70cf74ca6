//go:build windows

package disasm

import (
	"golang.org/x/sys/windows"
)

type processMemory struct {
	buf [MaxInstructionLen]byte
}

// ProcessMemory reads the current process through ReadProcessMemory, which
// fails instead of faulting on unmapped or protected pages.
func ProcessMemory() MemoryReader {
	return &processMemory{}
}

func (m *processMemory) ReadMemory(addr uint64, buf []byte) (int, error) {
	if len(buf) > len(m.buf) {
		buf = buf[:len(m.buf)]
	}
	var n uintptr
	err := windows.ReadProcessMemory(windows.CurrentProcess(), uintptr(addr), &m.buf[0], uintptr(len(buf)), &n)
	copy(buf, m.buf[:n])
	return int(n), err
}
