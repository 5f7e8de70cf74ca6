package capability

import "github.com/pkg/errors"

// ProcFunc adapts a Go function to Proc. Its address is the fixed value given
// at construction.
type ProcFunc struct {
	Address uintptr
	Fn      func(args ...uintptr) (uintptr, uintptr, error)
}

func (p *ProcFunc) Addr() uintptr {
	return p.Address
}

func (p *ProcFunc) Call(args ...uintptr) (uintptr, uintptr, error) {
	if p.Fn == nil {
		return 0, 0, nil
	}
	return p.Fn(args...)
}

// StaticLibrary is a Library backed by a fixed table of procs.
type StaticLibrary struct {
	LibName string
	Procs   map[string]Proc
}

func (l *StaticLibrary) Name() string {
	return l.LibName
}

func (l *StaticLibrary) Lookup(name string) (Proc, bool) {
	p, ok := l.Procs[name]
	return p, ok && p != nil
}

// StaticLoader serves libraries from a fixed table.
type StaticLoader map[string]Library

func (s StaticLoader) Load(name string) (Library, error) {
	if lib, ok := s[name]; ok && lib != nil {
		return lib, nil
	}
	return nil, errors.Wrapf(ErrUnavailable, "load %s", name)
}
