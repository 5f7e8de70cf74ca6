package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "1.2.3"

	info := GetVersionInfo()
	assert.True(t, strings.HasPrefix(info, "postmortem v1.2.3 "))
	assert.Contains(t, info, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Equal(t, "1.2.3", GetVersion())
}
