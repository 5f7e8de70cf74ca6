// Package modules enumerates the code modules mapped into the process from two
// independent sources: the OS loader's own bookkeeping, and a registry of
// modules mapped outside of it.
package modules

// MaxLoaded caps the number of OS-tracked modules enumerated per crash.
const MaxLoaded = 1024

// Module is one mapped image.
type Module struct {
	Name string
	Base uint64
	Size uint64
}

// End returns the first address past the module.
func (m Module) End() uint64 {
	return m.Base + m.Size
}

// Contains reports whether addr lies inside the module.
func (m Module) Contains(addr uint64) bool {
	return addr >= m.Base && addr < m.End()
}

// Lister enumerates the modules known to the OS loader, in the order the OS
// reports them, returning at most max entries.
type Lister interface {
	List(max int) ([]Module, error)
}

// ListerFunc adapts a function to Lister.
type ListerFunc func(max int) ([]Module, error)

func (f ListerFunc) List(max int) ([]Module, error) {
	return f(max)
}

// Registry tracks modules mapped without the OS loader.
type Registry interface {
	// Enumerate calls visit for each module until visit returns false.
	Enumerate(visit func(Module) bool)
	// FindByAddress returns the module containing addr.
	FindByAddress(addr uint64) (Module, bool)
}
