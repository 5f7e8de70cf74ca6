package artifact

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	namePrefix = "tmp_dump_"

	// InfoExt is the extension of the exception-info text artifact.
	InfoExt = ".einfo"
	// DumpExt is the extension of the full memory dump.
	DumpExt = ".bin"
	// PackedExt is appended to artifacts compressed by Pack.
	PackedExt = ".zst"
)

// InfoPath returns <dir>/tmp_dump_<pid>.einfo.
func InfoPath(dir string, pid int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", namePrefix, pid, InfoExt))
}

// DumpPath returns <dir>/tmp_dump_<pid>.bin.
func DumpPath(dir string, pid int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", namePrefix, pid, DumpExt))
}

// Name describes an artifact file name.
type Name struct {
	PID    int
	Ext    string
	Packed bool
}

// ParseName recognises artifact file names, packed or not.
func ParseName(name string) (Name, bool) {
	base := filepath.Base(name)
	var n Name
	if strings.HasSuffix(base, PackedExt) {
		n.Packed = true
		base = strings.TrimSuffix(base, PackedExt)
	}
	if !strings.HasPrefix(base, namePrefix) {
		return Name{}, false
	}

	n.Ext = filepath.Ext(base)
	if n.Ext != InfoExt && n.Ext != DumpExt {
		return Name{}, false
	}

	pid, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, namePrefix), n.Ext))
	if err != nil || pid < 0 {
		return Name{}, false
	}
	n.PID = pid
	return n, true
}
