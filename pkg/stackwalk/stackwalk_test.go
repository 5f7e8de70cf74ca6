package stackwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/postmortem/pkg/capability"
	"github.com/willibrandon/postmortem/pkg/exception"
)

func TestBind(t *testing.T) {
	lib := debugHelp(exception.Arch64)
	ep, err := Bind(lib, exception.Arch64)
	require.NoError(t, err)
	assert.Equal(t, exception.Arch64, ep.Arch)
	assert.Equal(t, uintptr(1), ep.StackWalk.Addr())
	assert.Equal(t, uintptr(2), ep.FunctionTableAccess.Addr())
	assert.Equal(t, uintptr(3), ep.ModuleBase.Addr())
	assert.Equal(t, uintptr(4), ep.SymbolFromAddr.Addr())
	assert.Nil(t, ep.Initialize)

	lib.Procs["SymInitialize"] = &capability.ProcFunc{Address: 9}
	ep, err = Bind(lib, exception.Arch64)
	require.NoError(t, err)
	assert.NotNil(t, ep.Initialize)
}

func TestBindArchitectureVariants(t *testing.T) {
	_, err := Bind(debugHelp(exception.Arch32), exception.Arch64)
	assert.ErrorIs(t, err, ErrMissingEntryPoint)

	_, err = Bind(debugHelp(exception.Arch32), exception.Arch32)
	assert.NoError(t, err)

	_, err = Bind(debugHelp(exception.Arch64), exception.ArchUnknown)
	assert.ErrorIs(t, err, ErrUnsupportedArch)
}
