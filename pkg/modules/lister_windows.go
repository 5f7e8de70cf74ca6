//go:build windows

package modules

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/willibrandon/postmortem/pkg/capability"
)

type psapiLister struct {
	enumProcessModules   capability.Proc
	getModuleInformation capability.Proc

	// buffers handed to psapi live on the heap with the lister
	handles [MaxLoaded]windows.Handle
	needed  uint32
	info    windows.ModuleInfo
}

// NewProcessLister resolves EnumProcessModules from psapi through loader.
func NewProcessLister(loader capability.Loader) (Lister, error) {
	lib, err := loader.Load(capability.Psapi)
	if err != nil {
		return nil, err
	}
	enum, ok := lib.Lookup("EnumProcessModules")
	if !ok {
		return nil, errors.Wrap(capability.ErrUnavailable, "EnumProcessModules")
	}
	l := &psapiLister{enumProcessModules: enum}
	if info, ok := lib.Lookup("GetModuleInformation"); ok {
		l.getModuleInformation = info
	}
	return l, nil
}

func (l *psapiLister) List(max int) ([]Module, error) {
	process := windows.CurrentProcess()

	handles := l.handles[:]
	if max > len(handles) {
		max = len(handles)
	}

	l.needed = 0
	r1, _, err := l.enumProcessModules.Call(
		uintptr(process),
		uintptr(unsafe.Pointer(&handles[0])),
		uintptr(max)*unsafe.Sizeof(handles[0]),
		uintptr(unsafe.Pointer(&l.needed)),
	)
	if r1 == 0 {
		return nil, errors.Wrap(err, "EnumProcessModules")
	}

	n := int(l.needed / uint32(unsafe.Sizeof(handles[0])))
	if n > max {
		n = max
	}

	mods := make([]Module, 0, n)
	var name [windows.MAX_LONG_PATH]uint16
	for _, h := range handles[:n] {
		size, err := windows.GetModuleFileName(h, &name[0], uint32(len(name)))
		if err != nil || size == 0 {
			continue
		}
		mods = append(mods, Module{
			Name: windows.UTF16ToString(name[:size]),
			Base: uint64(h),
			Size: l.imageSize(process, h),
		})
	}
	return mods, nil
}

func (l *psapiLister) imageSize(process, module windows.Handle) uint64 {
	if l.getModuleInformation == nil {
		return 0
	}
	l.info = windows.ModuleInfo{}
	r1, _, _ := l.getModuleInformation.Call(
		uintptr(process),
		uintptr(module),
		uintptr(unsafe.Pointer(&l.info)),
		unsafe.Sizeof(l.info),
	)
	if r1 == 0 {
		return 0
	}
	return uint64(l.info.SizeOfImage)
}
