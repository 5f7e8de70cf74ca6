package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", &buf)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.WithField("pid", 42).Debug("capturing")
	assert.Contains(t, buf.String(), "capturing")
	assert.Contains(t, buf.String(), "pid=42")
	assert.NotContains(t, buf.String(), "\x1b[", "buffers are never terminals")
}

func TestNewDefaultLevel(t *testing.T) {
	logger, err := New("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, logger.GetLevel())
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestEntry(t *testing.T) {
	assert.NotNil(t, Entry(nil))
	e := Discard()
	assert.Same(t, e, Entry(e))
}
