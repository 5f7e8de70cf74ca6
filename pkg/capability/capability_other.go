//go:build !windows

package capability

import "github.com/pkg/errors"

type unsupportedLoader struct{}

func newSystemLoader() Loader {
	return unsupportedLoader{}
}

func (unsupportedLoader) Load(name string) (Library, error) {
	return nil, errors.Wrapf(ErrUnavailable, "load %s", name)
}
