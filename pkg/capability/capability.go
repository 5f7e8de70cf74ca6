// Package capability resolves platform entry points by name at the point of
// use. Nothing in this module links against debugging or shell libraries
// directly; every call site looks the entry point up and checks for presence.
package capability

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrUnavailable is returned when a library or entry point cannot be resolved.
var ErrUnavailable = errors.New("capability unavailable")

// Proc is a resolved entry point.
type Proc interface {
	// Addr is the address of the entry point, suitable for passing as a
	// callback to other entry points.
	Addr() uintptr
	Call(args ...uintptr) (r1, r2 uintptr, lastErr error)
}

// Library is a loaded module that exposes entry points by name.
type Library interface {
	Name() string
	Lookup(name string) (Proc, bool)
}

// Loader loads libraries by name.
type Loader interface {
	Load(name string) (Library, error)
}

// Well-known libraries.
const (
	DbgHelp  = "dbghelp.dll"
	Psapi    = "psapi.dll"
	Kernel32 = "kernel32.dll"
	Shell32  = "shell32.dll"
)

// LookupAll resolves every name in names, returning the procs in order. It
// reports the first missing name.
func LookupAll(lib Library, names ...string) ([]Proc, string, bool) {
	procs := make([]Proc, len(names))
	for i, name := range names {
		p, ok := lib.Lookup(name)
		if !ok {
			return nil, name, false
		}
		procs[i] = p
	}
	return procs, "", true
}

// CachingLoader remembers successful loads so each library is mapped once per
// process.
type CachingLoader struct {
	loader Loader

	mu   sync.Mutex
	libs map[string]Library
}

// NewCachingLoader wraps loader.
func NewCachingLoader(loader Loader) *CachingLoader {
	return &CachingLoader{loader: loader, libs: make(map[string]Library)}
}

// Load returns the cached library or loads it. A load that races with a held
// lock is not cached.
func (c *CachingLoader) Load(name string) (Library, error) {
	if !c.mu.TryLock() {
		return c.loader.Load(name)
	}
	defer c.mu.Unlock()

	if lib, ok := c.libs[name]; ok {
		return lib, nil
	}
	lib, err := c.loader.Load(name)
	if err != nil {
		return nil, err
	}
	c.libs[name] = lib
	return lib, nil
}

var (
	systemOnce   sync.Once
	systemLoader *CachingLoader
)

// System returns the process-wide loader for the current platform.
func System() Loader {
	systemOnce.Do(func() {
		systemLoader = NewCachingLoader(newSystemLoader())
	})
	return systemLoader
}
