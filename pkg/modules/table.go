package modules

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrOverlap is returned when a module overlaps one already registered.
var ErrOverlap = errors.New("module overlaps a registered module")

// Table is a Registry for modules the host maps itself. Writers may run
// concurrently; readers used during a crash never block, they see an empty
// table if a writer holds the lock.
type Table struct {
	mu      sync.RWMutex
	modules []Module
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add registers a module.
func (t *Table) Add(m Module) error {
	if m.Size == 0 {
		return errors.Errorf("module %q has zero size", m.Name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.modules {
		if m.Base < existing.End() && existing.Base < m.End() {
			return errors.Wrapf(ErrOverlap, "%s at %#x", m.Name, m.Base)
		}
	}
	t.modules = append(t.modules, m)
	return nil
}

// Remove unregisters the module based at base.
func (t *Table) Remove(base uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, m := range t.modules {
		if m.Base == base {
			t.modules = append(t.modules[:i], t.modules[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered modules.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.modules)
}

// Enumerate visits modules in registration order.
func (t *Table) Enumerate(visit func(Module) bool) {
	if !t.mu.TryRLock() {
		return
	}
	defer t.mu.RUnlock()

	for _, m := range t.modules {
		if !visit(m) {
			return
		}
	}
}

// FindByAddress returns the registered module containing addr.
func (t *Table) FindByAddress(addr uint64) (Module, bool) {
	if !t.mu.TryRLock() {
		return Module{}, false
	}
	defer t.mu.RUnlock()

	for _, m := range t.modules {
		if m.Contains(addr) {
			return m, true
		}
	}
	return Module{}, false
}
