package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	StaticLoader
	loads int
}

func (c *countingLoader) Load(name string) (Library, error) {
	c.loads++
	return c.StaticLoader.Load(name)
}

func TestLookupAll(t *testing.T) {
	lib := &StaticLibrary{
		LibName: DbgHelp,
		Procs: map[string]Proc{
			"A": &ProcFunc{Address: 1},
			"B": &ProcFunc{Address: 2},
		},
	}

	procs, missing, ok := LookupAll(lib, "A", "B")
	require.True(t, ok)
	assert.Empty(t, missing)
	assert.Equal(t, uintptr(1), procs[0].Addr())
	assert.Equal(t, uintptr(2), procs[1].Addr())

	_, missing, ok = LookupAll(lib, "A", "C", "D")
	assert.False(t, ok)
	assert.Equal(t, "C", missing)
}

func TestStaticLibraryNilProc(t *testing.T) {
	lib := &StaticLibrary{Procs: map[string]Proc{"A": nil}}
	_, ok := lib.Lookup("A")
	assert.False(t, ok)
}

func TestCachingLoader(t *testing.T) {
	inner := &countingLoader{StaticLoader: StaticLoader{Psapi: &StaticLibrary{LibName: Psapi}}}
	loader := NewCachingLoader(inner)

	for i := 0; i < 3; i++ {
		lib, err := loader.Load(Psapi)
		require.NoError(t, err)
		assert.Equal(t, Psapi, lib.Name())
	}
	assert.Equal(t, 1, inner.loads)

	_, err := loader.Load(DbgHelp)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = loader.Load(DbgHelp)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, inner.loads, "failed loads are retried")
}

func TestProcFuncCall(t *testing.T) {
	var got []uintptr
	p := &ProcFunc{Fn: func(args ...uintptr) (uintptr, uintptr, error) {
		got = args
		return 7, 0, nil
	}}
	r1, _, err := p.Call(1, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, uintptr(7), r1)
	assert.Equal(t, []uintptr{1, 2, 3}, got)

	r1, _, _ = (&ProcFunc{}).Call()
	assert.Zero(t, r1)
}
