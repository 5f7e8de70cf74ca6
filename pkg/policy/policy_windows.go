//go:build windows

package policy

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
)

type kernelController struct {
	get, set capability.Proc
	flags    uint32
}

// SystemController resolves Get/SetProcessUserModeExceptionPolicy from
// kernel32. Both must be present.
func SystemController(loader capability.Loader) (Controller, error) {
	lib, err := loader.Load(capability.Kernel32)
	if err != nil {
		return nil, err
	}
	procs, missing, ok := capability.LookupAll(lib,
		"GetProcessUserModeExceptionPolicy", "SetProcessUserModeExceptionPolicy")
	if !ok {
		return nil, errors.Wrap(capability.ErrUnavailable, missing)
	}
	return &kernelController{get: procs[0], set: procs[1]}, nil
}

func (k *kernelController) Get() (uint32, error) {
	k.flags = 0
	r1, _, err := k.get.Call(uintptr(unsafe.Pointer(&k.flags)))
	if r1 == 0 {
		return 0, errors.Wrap(err, "GetProcessUserModeExceptionPolicy")
	}
	return k.flags, nil
}

func (k *kernelController) Set(flags uint32) error {
	r1, _, err := k.set.Call(uintptr(flags))
	if r1 == 0 {
		return errors.Wrap(err, "SetProcessUserModeExceptionPolicy")
	}
	return nil
}
