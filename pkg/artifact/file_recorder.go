package artifact

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/logging"
)

// FileRecorder appends artifact text straight to a file. Every write reaches
// the OS before it returns, so a later fault keeps everything written so far.
type FileRecorder struct {
	file     *os.File
	path     string
	log      *log.Entry
	failures int
}

// NewFileRecorder creates path, replacing any previous artifact.
func NewFileRecorder(path string, logger *log.Entry) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}

	return &FileRecorder{
		file: f,
		path: path,
		log:  logging.Entry(logger).WithField("artifact", path),
	}, nil
}

// Path returns the artifact location.
func (fr *FileRecorder) Path() string {
	return fr.path
}

// Write writes p synchronously. Failures are logged and counted; callers are
// free to ignore the returned error.
func (fr *FileRecorder) Write(p []byte) (int, error) {
	if fr.file == nil {
		fr.failures++
		return 0, os.ErrClosed
	}
	n, err := fr.file.Write(p)
	if err != nil {
		fr.failures++
		fr.log.WithError(err).Warn("Artifact write failed")
	}
	return n, err
}

// Printf formats into the artifact.
func (fr *FileRecorder) Printf(format string, args ...interface{}) {
	fmt.Fprintf(fr, format, args...)
}

// Section writes a blank line followed by the section title.
func (fr *FileRecorder) Section(title string) {
	fr.Printf("\n%s:\n", title)
}

// Failures returns how many writes failed.
func (fr *FileRecorder) Failures() int {
	return fr.failures
}

// Close releases the handle. It is safe to call more than once.
func (fr *FileRecorder) Close() error {
	if fr.file == nil {
		return nil
	}
	err := fr.file.Close()
	fr.file = nil
	if err != nil {
		fr.log.WithError(err).Warn("Artifact close failed")
	}
	return err
}
