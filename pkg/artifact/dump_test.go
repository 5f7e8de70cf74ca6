package artifact

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/postmortem/pkg/exception"
	"github.com/willibrandon/postmortem/pkg/logging"
)

type dumperFunc func(f *os.File, p *exception.Pointers) error

func (fn dumperFunc) WriteDump(f *os.File, p *exception.Pointers) error { return fn(f, p) }

func TestWriteDump(t *testing.T) {
	dir := t.TempDir()
	ptrs := &exception.Pointers{Record: &exception.Record{Code: exception.AccessViolation}}

	err := WriteDump(dir, 77, dumperFunc(func(f *os.File, p *exception.Pointers) error {
		assert.Same(t, ptrs, p)
		_, err := f.Write([]byte("MDMP"))
		return err
	}), ptrs, logging.Discard())
	require.NoError(t, err)

	data, err := os.ReadFile(DumpPath(dir, 77))
	require.NoError(t, err)
	assert.Equal(t, "MDMP", string(data))
}

func TestWriteDumpFailures(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, WriteDump(dir, 1, nil, nil, logging.Discard()))

	err := WriteDump(dir, 2, dumperFunc(func(*os.File, *exception.Pointers) error {
		return errors.New("access denied")
	}), nil, logging.Discard())
	assert.Error(t, err)
}
