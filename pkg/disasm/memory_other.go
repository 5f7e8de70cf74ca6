//go:build !windows

package disasm

// ProcessMemory is only available on Windows.
func ProcessMemory() MemoryReader {
	return nil
}
