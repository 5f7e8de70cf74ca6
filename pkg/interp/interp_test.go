package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willibrandon/postmortem/pkg/logging"
)

func TestRecord(t *testing.T) {
	producer := ProducerFunc(func(visit func(Frame)) int {
		visit(Frame{Function: "handle", File: "server/app.py", Line: 88})
		visit(Frame{Function: "<module>", File: "main.py", Line: 3})
		return 2
	})

	var buf bytes.Buffer
	assert.Equal(t, 2, Record(&buf, producer, logging.Discard()))
	assert.Equal(t, "+ handle\tserver/app.py:88\n+ <module>\tmain.py:3\n", buf.String())
}

func TestRecordNoInterpreter(t *testing.T) {
	var buf bytes.Buffer
	assert.Zero(t, Record(&buf, nil, logging.Discard()))

	inactive := ProducerFunc(func(func(Frame)) int { return -1 })
	assert.Zero(t, Record(&buf, inactive, logging.Discard()))
	assert.Zero(t, buf.Len())
}

func TestRecordIgnoresProducerResult(t *testing.T) {
	producer := ProducerFunc(func(visit func(Frame)) int {
		visit(Frame{Function: "f", File: "f.lua", Line: 1})
		return 0
	})

	var buf bytes.Buffer
	assert.Equal(t, 1, Record(&buf, producer, logging.Discard()))
	assert.Equal(t, "+ f\tf.lua:1\n", buf.String())
}
