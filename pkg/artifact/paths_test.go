package artifact

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	dir := filepath.Join("var", "crash")
	assert.Equal(t, filepath.Join(dir, "tmp_dump_4242.einfo"), InfoPath(dir, 4242))
	assert.Equal(t, filepath.Join(dir, "tmp_dump_4242.bin"), DumpPath(dir, 4242))
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		want Name
		ok   bool
	}{
		{"tmp_dump_12.einfo", Name{PID: 12, Ext: InfoExt}, true},
		{"/x/y/tmp_dump_7.bin", Name{PID: 7, Ext: DumpExt}, true},
		{"tmp_dump_7.einfo.zst", Name{PID: 7, Ext: InfoExt, Packed: true}, true},
		{"tmp_dump_x.einfo", Name{}, false},
		{"tmp_dump_-3.einfo", Name{}, false},
		{"tmp_dump_3.txt", Name{}, false},
		{"dump_3.einfo", Name{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}
