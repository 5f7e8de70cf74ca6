//go:build windows

package capability

import (
	"golang.org/x/sys/windows"
)

type lazyLoader struct{}

func newSystemLoader() Loader {
	return lazyLoader{}
}

// Load maps a library from the system directory only.
func (lazyLoader) Load(name string) (Library, error) {
	dll := windows.NewLazySystemDLL(name)
	if err := dll.Load(); err != nil {
		return nil, err
	}
	return &lazyLibrary{dll: dll}, nil
}

type lazyLibrary struct {
	dll *windows.LazyDLL
}

func (l *lazyLibrary) Name() string {
	return l.dll.Name
}

func (l *lazyLibrary) Lookup(name string) (Proc, bool) {
	p := l.dll.NewProc(name)
	if err := p.Find(); err != nil {
		return nil, false
	}
	return p, true
}
