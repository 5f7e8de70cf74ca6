package exception

// Code is a platform-defined exception code (NTSTATUS).
type Code uint32

const (
	AccessViolation         Code = 0xC0000005
	ArrayBoundsExceeded     Code = 0xC000008C
	Breakpoint              Code = 0x80000003
	DatatypeMisalignment    Code = 0x80000002
	FltDenormalOperand      Code = 0xC000008D
	FltDivideByZero         Code = 0xC000008E
	FltInexactResult        Code = 0xC000008F
	FltInvalidOperation     Code = 0xC0000090
	FltOverflow             Code = 0xC0000091
	FltStackCheck           Code = 0xC0000092
	FltUnderflow            Code = 0xC0000093
	IllegalInstruction      Code = 0xC000001D
	InPageError             Code = 0xC0000006
	IntDivideByZero         Code = 0xC0000094
	IntOverflow             Code = 0xC0000095
	InvalidDisposition      Code = 0xC0000026
	NoncontinuableException Code = 0xC0000025
	PrivInstruction         Code = 0xC0000096
	SingleStep              Code = 0x80000004
	StackOverflow           Code = 0xC00000FD
)

// Unknown is returned by Name for codes missing from the table.
const Unknown = "UNKNOWN"

var codeNames = [...]struct {
	code Code
	name string
}{
	{AccessViolation, "ACCESS_VIOLATION"},
	{ArrayBoundsExceeded, "ARRAY_BOUNDS_EXCEEDED"},
	{Breakpoint, "BREAKPOINT"},
	{DatatypeMisalignment, "DATATYPE_MISALIGNMENT"},
	{FltDenormalOperand, "FLT_DENORMAL_OPERAND"},
	{FltDivideByZero, "FLT_DIVIDE_BY_ZERO"},
	{FltInexactResult, "FLT_INEXACT_RESULT"},
	{FltInvalidOperation, "FLT_INVALID_OPERATION"},
	{FltOverflow, "FLT_OVERFLOW"},
	{FltStackCheck, "FLT_STACK_CHECK"},
	{FltUnderflow, "FLT_UNDERFLOW"},
	{IllegalInstruction, "ILLEGAL_INSTRUCTION"},
	{InPageError, "IN_PAGE_ERROR"},
	{IntDivideByZero, "INT_DIVIDE_BY_ZERO"},
	{IntOverflow, "INT_OVERFLOW"},
	{InvalidDisposition, "INVALID_DISPOSITION"},
	{NoncontinuableException, "NONCONTINUABLE_EXCEPTION"},
	{PrivInstruction, "PRIV_INSTRUCTION"},
	{SingleStep, "SINGLE_STEP"},
	{StackOverflow, "STACK_OVERFLOW"},
}

// Name returns the short identifier of an exception code, or Unknown.
func Name(code Code) string {
	for _, c := range codeNames {
		if c.code == code {
			return c.name
		}
	}
	return Unknown
}

// String returns the classified name of the code
func (c Code) String() string {
	return Name(c)
}
