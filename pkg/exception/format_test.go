package exception

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registerField = regexp.MustCompile(`([A-Z0-9]{2,3}):\s+([0-9a-f]+)`)

func registerFields(t *testing.T, out string) map[string]string {
	t.Helper()
	idx := strings.Index(out, "Registers:\n")
	require.NotEqual(t, -1, idx, "missing register block in %q", out)

	fields := map[string]string{}
	for _, m := range registerField.FindAllStringSubmatch(out[idx:], -1) {
		fields[m[1]] = m[2]
	}
	return fields
}

func TestFormatHeader64(t *testing.T) {
	var buf bytes.Buffer
	rec := &Record{Code: AccessViolation, Flags: 0, Address: 0x1000}
	ctx := &Context{Registers: Registers64{Rip: 0x7ff612340000, Rsp: 0x1, R15: 0xffffffffffffffff}}

	require.NoError(t, FormatHeader(&buf, rec, ctx))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Catch fatal exception: Code: c0000005 (ACCESS_VIOLATION)\n"))
	assert.Contains(t, out, "Flags: 00000000 Address: 0000000000001000\n")
	assert.Contains(t, out, "RIP: 00007ff612340000")
	assert.Contains(t, out, "R15: ffffffffffffffff")

	fields := registerFields(t, out)
	assert.Len(t, fields, 17)
	for name, value := range fields {
		assert.Len(t, value, 16, "register %s", name)
	}
}

func TestFormatHeader32(t *testing.T) {
	var buf bytes.Buffer
	rec := &Record{Code: IntDivideByZero, Flags: 1, Address: 0x401000}
	ctx := &Context{Registers: &Registers32{Eip: 0x401000, Esp: 0x12ff00, Edi: 0xdeadbeef}}

	require.NoError(t, FormatHeader(&buf, rec, ctx))
	out := buf.String()

	assert.Contains(t, out, "Code: c0000094 (INT_DIVIDE_BY_ZERO)")
	assert.Contains(t, out, "Flags: 00000001 Address: 00401000\n")
	assert.Contains(t, out, "EDI: deadbeef")
	assert.NotContains(t, out, "RIP")

	fields := registerFields(t, out)
	assert.Len(t, fields, 9)
	for name, value := range fields {
		assert.Len(t, value, 8, "register %s", name)
	}
}

func TestFormatHeaderMissingInput(t *testing.T) {
	var buf bytes.Buffer
	ctx := &Context{Registers: Registers64{}}

	assert.ErrorIs(t, FormatHeader(&buf, nil, ctx), ErrNoRecord)
	assert.ErrorIs(t, FormatHeader(&buf, &Record{}, nil), ErrNoContext)
	assert.ErrorIs(t, FormatHeader(&buf, &Record{}, &Context{}), ErrNoContext)
	assert.Zero(t, buf.Len())
}

func TestBoundedBufferTruncates(t *testing.T) {
	var b boundedBuffer
	chunk := bytes.Repeat([]byte{'x'}, 1000)
	for i := 0; i < 10; i++ {
		n, err := b.Write(chunk)
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}
	assert.Len(t, b.Bytes(), HeaderBufferSize)
}

func TestNewSnapshot(t *testing.T) {
	_, err := NewSnapshot(nil)
	assert.ErrorIs(t, err, ErrNoRecord)

	_, err = NewSnapshot(&Pointers{Record: &Record{}})
	assert.ErrorIs(t, err, ErrNoContext)

	rec := &Record{Code: Breakpoint, Address: 0x10}
	snap, err := NewSnapshot(&Pointers{Record: rec, Context: &Context{Registers: Registers32{}}})
	require.NoError(t, err)
	rec.Code = SingleStep
	assert.Equal(t, Breakpoint, snap.Record.Code, "snapshot must not alias the record")
	assert.Equal(t, Arch32, snap.Context.Arch())
}
