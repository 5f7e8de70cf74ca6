//go:build windows

package postmortem

import (
	"path/filepath"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/pkg/capability"
)

const (
	csidlLocalAppData = 0x001c
	csidlFlagCreate   = 0x8000
	shgfpTypeCurrent  = 0
)

type shellDirs struct {
	loader capability.Loader

	path [windows.MAX_PATH]uint16
	temp [windows.MAX_PATH + 1]uint16
}

func newDirResolver(loader capability.Loader) DirResolver {
	return &shellDirs{loader: loader}
}

func (d *shellDirs) Preferred(subdir string) (string, error) {
	lib, err := d.loader.Load(capability.Shell32)
	if err != nil {
		return "", err
	}
	proc, ok := lib.Lookup("SHGetFolderPathAndSubDirW")
	if !ok {
		return "", errors.Wrap(capability.ErrUnavailable, "SHGetFolderPathAndSubDirW")
	}
	sub, err := windows.UTF16PtrFromString(subdir)
	if err != nil {
		return "", errors.Wrap(err, "subdir")
	}

	hr, _, _ := proc.Call(
		0,
		csidlLocalAppData|csidlFlagCreate,
		0,
		shgfpTypeCurrent,
		uintptr(unsafe.Pointer(sub)),
		uintptr(unsafe.Pointer(&d.path[0])),
	)
	if int32(hr) < 0 {
		return "", errors.Errorf("SHGetFolderPathAndSubDirW failed: %#08x", uint32(hr))
	}
	return windows.UTF16ToString(d.path[:]), nil
}

// Locate asks for the folder without CSIDL_FLAG_CREATE and joins subdir
// itself, since SHGetFolderPathAndSubDirW fails for a missing subdir.
func (d *shellDirs) Locate(subdir string) (string, error) {
	lib, err := d.loader.Load(capability.Shell32)
	if err != nil {
		return "", err
	}
	proc, ok := lib.Lookup("SHGetFolderPathW")
	if !ok {
		return "", errors.Wrap(capability.ErrUnavailable, "SHGetFolderPathW")
	}

	var path [windows.MAX_PATH]uint16
	hr, _, _ := proc.Call(
		0,
		csidlLocalAppData,
		0,
		shgfpTypeCurrent,
		uintptr(unsafe.Pointer(&path[0])),
	)
	if int32(hr) < 0 {
		return "", errors.Errorf("SHGetFolderPathW failed: %#08x", uint32(hr))
	}
	return filepath.Join(windows.UTF16ToString(path[:]), filepath.FromSlash(subdir)), nil
}

func (d *shellDirs) Fallback() (string, error) {
	n, err := windows.GetTempPath(uint32(len(d.temp)), &d.temp[0])
	if err != nil {
		return "", errors.Wrap(err, "GetTempPath")
	}
	if n == 0 || int(n) > len(d.temp) {
		return "", errors.New("GetTempPath returned no path")
	}
	return windows.UTF16ToString(d.temp[:n]), nil
}
