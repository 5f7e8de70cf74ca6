package modules

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/exception"
	"github.com/willibrandon/postmortem/pkg/logging"
)

// WriteMapped writes one line per module of the registry:
//
//	<base> - <end>\t<name>
func WriteMapped(w io.Writer, arch exception.Arch, registry Registry, logger *log.Entry) int {
	logger = logging.Entry(logger)
	if registry == nil {
		logger.Debug("No registry of manually mapped modules")
		return 0
	}

	count := 0
	registry.Enumerate(func(m Module) bool {
		logger.WithFields(log.Fields{
			"module": m.Name,
			"base":   fmt.Sprintf("%#x", m.Base),
			"size":   m.Size,
		}).Debug("Mapped module")
		fmt.Fprintf(w, "%s - %s\t%s\n", arch.FormatAddress(m.Base), arch.FormatAddress(m.End()), m.Name)
		count++
		return true
	})
	return count
}

// WriteLoaded writes one "+ <base>\t<path>" line per OS-tracked module, in the
// order the lister returned them.
func WriteLoaded(w io.Writer, arch exception.Arch, lister Lister, logger *log.Entry) int {
	logger = logging.Entry(logger)
	if lister == nil {
		logger.Warn("Process module listing is unavailable")
		return 0
	}

	mods, err := lister.List(MaxLoaded)
	if err != nil {
		logger.WithError(err).Warn("Process module listing failed")
		return 0
	}
	if len(mods) > MaxLoaded {
		mods = mods[:MaxLoaded]
	}

	for _, m := range mods {
		fmt.Fprintf(w, "+ %s\t%s\n", arch.FormatAddress(m.Base), m.Name)
	}
	logger.WithField("count", len(mods)).Debug("DLLs enumeration completed")
	return len(mods)
}
