// Package interp records the call stack of an embedded interpreter, if the
// host runs one on the faulting thread.
package interp

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/willibrandon/postmortem/pkg/logging"
)

// Frame is one interpreter-level frame as reported by the producer.
type Frame struct {
	Function string
	File     string
	Line     int
}

// StackProducer reports the current interpreter stack, innermost frame first,
// and returns the producer's own frame count or status.
type StackProducer interface {
	Stack(visit func(Frame)) int
}

// ProducerFunc adapts a function to StackProducer.
type ProducerFunc func(visit func(Frame)) int

func (f ProducerFunc) Stack(visit func(Frame)) int {
	return f(visit)
}

// Record writes one "+ <function>\t<file>:<line>" line per reported frame.
// A nil producer, or one with no active interpreter, writes nothing.
func Record(w io.Writer, producer StackProducer, logger *log.Entry) int {
	logger = logging.Entry(logger)
	if producer == nil {
		logger.Debug("No interpreter stack producer")
		return 0
	}

	written := 0
	result := producer.Stack(func(f Frame) {
		logger.WithFields(log.Fields{
			"function": f.Function,
			"file":     f.File,
			"line":     f.Line,
		}).Debug("Interpreter stack")
		fmt.Fprintf(w, "+ %s\t%s:%d\n", f.Function, f.File, f.Line)
		written++
	})

	logger.WithFields(log.Fields{"result": result, "frames": written}).Debug("Interpreter stack saved")
	return written
}
