package artifact

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/exception"
	"github.com/willibrandon/postmortem/pkg/logging"
)

// Dumper writes a full memory snapshot of the current process to f.
type Dumper interface {
	WriteDump(f *os.File, p *exception.Pointers) error
}

// WriteDump creates <dir>/tmp_dump_<pid>.bin and fills it through dumper.
func WriteDump(dir string, pid int, dumper Dumper, p *exception.Pointers, logger *log.Entry) error {
	logger = logging.Entry(logger)
	if dumper == nil {
		return errors.New("no dump writer")
	}

	path := DumpPath(dir, pid)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return errors.Wrap(err, "create dump file")
	}
	defer f.Close()

	if err := dumper.WriteDump(f, p); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logger.WithField("dump", path).Info("Global crash handler completed successfully")
	return nil
}
