// Package disasm decodes the instruction at the faulting address.
package disasm

import (
	"github.com/pkg/errors"
	"golang.org/x/arch/x86/x86asm"

	"github.com/willibrandon/postmortem/pkg/exception"
)

// MaxInstructionLen is the longest x86 encoding.
const MaxInstructionLen = 15

// Instruction is one decoded instruction.
type Instruction struct {
	Text  string
	Len   int
	Bytes []byte
}

// Decode decodes the first instruction in code, located at pc, in Intel
// syntax.
func Decode(code []byte, pc uint64, arch exception.Arch) (Instruction, error) {
	mode := 64
	switch arch {
	case exception.Arch32:
		mode = 32
	case exception.Arch64:
	default:
		return Instruction{}, errors.Errorf("cannot decode %s code", arch)
	}
	if len(code) == 0 {
		return Instruction{}, errors.New("no code bytes")
	}

	inst, err := x86asm.Decode(code, mode)
	if err != nil {
		return Instruction{}, errors.Wrapf(err, "decode at %#x", pc)
	}
	return Instruction{
		Text:  x86asm.IntelSyntax(inst, pc, nil),
		Len:   inst.Len,
		Bytes: append([]byte(nil), code[:inst.Len]...),
	}, nil
}

// MemoryReader copies process memory without faulting on unmapped pages.
type MemoryReader interface {
	ReadMemory(addr uint64, buf []byte) (int, error)
}

// At reads and decodes the instruction at pc.
func At(mem MemoryReader, pc uint64, arch exception.Arch) (Instruction, error) {
	if mem == nil {
		return Instruction{}, errors.New("no memory reader")
	}
	var buf [MaxInstructionLen]byte
	n, err := mem.ReadMemory(pc, buf[:])
	if n == 0 {
		if err == nil {
			err = errors.New("empty read")
		}
		return Instruction{}, errors.Wrapf(err, "read %#x", pc)
	}
	return Decode(buf[:n], pc, arch)
}
