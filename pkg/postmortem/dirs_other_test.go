//go:build !windows

package postmortem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirsLocateDoesNotCreate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	d := userDirs{}
	dir, err := d.Locate("postmortem")
	require.NoError(t, err)
	assert.NoDirExists(t, dir)

	created, err := d.Preferred("postmortem")
	require.NoError(t, err)
	assert.Equal(t, dir, created)
	assert.DirExists(t, created)
}
