package exception

import "testing"

func TestNameKnownCodes(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{0xC0000005, "ACCESS_VIOLATION"},
		{0xC000008C, "ARRAY_BOUNDS_EXCEEDED"},
		{0x80000003, "BREAKPOINT"},
		{0x80000002, "DATATYPE_MISALIGNMENT"},
		{0xC000008D, "FLT_DENORMAL_OPERAND"},
		{0xC000008E, "FLT_DIVIDE_BY_ZERO"},
		{0xC000008F, "FLT_INEXACT_RESULT"},
		{0xC0000090, "FLT_INVALID_OPERATION"},
		{0xC0000091, "FLT_OVERFLOW"},
		{0xC0000092, "FLT_STACK_CHECK"},
		{0xC0000093, "FLT_UNDERFLOW"},
		{0xC000001D, "ILLEGAL_INSTRUCTION"},
		{0xC0000006, "IN_PAGE_ERROR"},
		{0xC0000094, "INT_DIVIDE_BY_ZERO"},
		{0xC0000095, "INT_OVERFLOW"},
		{0xC0000026, "INVALID_DISPOSITION"},
		{0xC0000025, "NONCONTINUABLE_EXCEPTION"},
		{0xC0000096, "PRIV_INSTRUCTION"},
		{0x80000004, "SINGLE_STEP"},
		{0xC00000FD, "STACK_OVERFLOW"},
	}

	if len(tests) != len(codeNames) {
		t.Fatalf("Expected %d table entries, got %d", len(tests), len(codeNames))
	}

	for _, tt := range tests {
		if got := Name(tt.code); got != tt.want {
			t.Errorf("Name(%08x) = %q, want %q", uint32(tt.code), got, tt.want)
		}
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code(%08x).String() = %q, want %q", uint32(tt.code), got, tt.want)
		}
	}
}

func TestNameUnknownCodes(t *testing.T) {
	for _, code := range []Code{0, 1, 0xC0000004, 0xE06D7363, 0xFFFFFFFF} {
		if got := Name(code); got != Unknown {
			t.Errorf("Name(%08x) = %q, want %q", uint32(code), got, Unknown)
		}
	}
}
