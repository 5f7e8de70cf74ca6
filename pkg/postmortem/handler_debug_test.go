//go:build debug

package postmortem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/postmortem/pkg/exception"
)

type stubDumper struct {
	calls int
}

func (d *stubDumper) WriteDump(f *os.File, p *exception.Pointers) error {
	d.calls++
	_, err := f.WriteString("MDMP")
	return err
}

func TestCaptureWritesFullDump(t *testing.T) {
	dir := t.TempDir()
	d := &stubDumper{}
	p := &fakePlatform{dirs: &fakeDirs{preferred: dir, preferredOK: true}, dumper: d}

	out := newTestHandler(t, p, nil).Capture(accessViolation())
	require.NoError(t, out.Err)
	assert.Equal(t, 1, d.calls)

	data, err := os.ReadFile(filepath.Join(dir, "tmp_dump_4242.bin"))
	require.NoError(t, err)
	assert.Equal(t, "MDMP", string(data))
}
