package exception

import (
	"fmt"
	"io"
)

// HeaderBufferSize bounds the rendered header block.
const HeaderBufferSize = 8192

// boundedBuffer is a fixed-capacity writer that drops whatever does not fit.
type boundedBuffer struct {
	buf [HeaderBufferSize]byte
	n   int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if room := len(b.buf) - b.n; n > room {
		p = p[:room]
	}
	b.n += copy(b.buf[b.n:], p)
	return n, nil
}

func (b *boundedBuffer) Bytes() []byte {
	return b.buf[:b.n]
}

// FormatHeader renders the exception code, flags, faulting address and the
// complete register set of ctx into w as a single write.
func FormatHeader(w io.Writer, rec *Record, ctx *Context) error {
	if rec == nil {
		return ErrNoRecord
	}
	if ctx == nil || ctx.Registers == nil {
		return ErrNoContext
	}

	var b boundedBuffer
	arch := ctx.Arch()
	fmt.Fprintf(&b, "Catch fatal exception: Code: %08x (%s)\n", uint32(rec.Code), Name(rec.Code))
	fmt.Fprintf(&b, "Flags: %08x Address: %s\n", rec.Flags, arch.FormatAddress(rec.Address))
	b.Write([]byte("Registers:\n"))
	FormatRegisters(&b, ctx.Registers)

	_, err := w.Write(b.Bytes())
	return err
}

// FormatRegisters writes the register block for either register layout.
func FormatRegisters(w io.Writer, rs RegisterSet) {
	switch r := rs.(type) {
	case Registers64:
		formatRegisters64(w, &r)
	case *Registers64:
		formatRegisters64(w, r)
	case Registers32:
		formatRegisters32(w, &r)
	case *Registers32:
		formatRegisters32(w, r)
	}
}

func formatRegisters64(w io.Writer, r *Registers64) {
	fmt.Fprintf(w, "RSP: %016x RBP: %016x RIP: %016x\n", r.Rsp, r.Rbp, r.Rip)
	fmt.Fprintf(w, "RAX: %016x RBX: %016x RCX: %016x RDX: %016x\n", r.Rax, r.Rbx, r.Rcx, r.Rdx)
	fmt.Fprintf(w, "RSI: %016x RDI: %016x R8:  %016x R9:  %016x\n", r.Rsi, r.Rdi, r.R8, r.R9)
	fmt.Fprintf(w, "R10: %016x R11: %016x R12: %016x R13: %016x\n", r.R10, r.R11, r.R12, r.R13)
	fmt.Fprintf(w, "R14: %016x R15: %016x\n", r.R14, r.R15)
}

func formatRegisters32(w io.Writer, r *Registers32) {
	fmt.Fprintf(w, "ESP: %08x EBP: %08x EIP: %08x\n", r.Esp, r.Ebp, r.Eip)
	fmt.Fprintf(w, "EAX: %08x EBX: %08x ECX: %08x EDX: %08x\n", r.Eax, r.Ebx, r.Ecx, r.Edx)
	fmt.Fprintf(w, "ESI: %08x EDI: %08x\n", r.Esi, r.Edi)
}
