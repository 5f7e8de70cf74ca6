//go:build !windows

package postmortem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/willibrandon/postmortem/pkg/capability"
)

type userDirs struct{}

func newDirResolver(capability.Loader) DirResolver {
	return userDirs{}
}

func (d userDirs) Preferred(subdir string) (string, error) {
	dir, err := d.Locate(subdir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	return dir, nil
}

func (userDirs) Locate(subdir string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "user cache directory")
	}
	return filepath.Join(base, filepath.FromSlash(subdir)), nil
}

func (userDirs) Fallback() (string, error) {
	dir := os.TempDir()
	fi, err := os.Stat(dir)
	if err != nil {
		return "", errors.Wrap(err, "temporary directory")
	}
	if !fi.IsDir() {
		return "", errors.Errorf("%s is not a directory", dir)
	}
	return dir, nil
}
