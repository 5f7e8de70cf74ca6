package artifact

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPackAndOpen(t *testing.T) {
	src := InfoPath(t.TempDir(), 99)
	content := strings.Repeat("+ 0000000000001000\tC:\\Windows\\System32\\ntdll.dll\n", 200)
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	dst, err := Pack(src, ZstdCompression)
	if err != nil {
		t.Fatalf("Failed to pack artifact: %v", err)
	}
	if dst != src+PackedExt {
		t.Errorf("Packed path mismatch. Got %s, want %s", dst, src+PackedExt)
	}

	packed, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read packed artifact: %v", err)
	}
	if len(packed) >= len(content) {
		t.Errorf("Expected packed size below %d, got %d", len(content), len(packed))
	}

	r, err := Open(dst)
	if err != nil {
		t.Fatalf("Failed to open packed artifact: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read packed artifact: %v", err)
	}
	if string(got) != content {
		t.Error("Unpacked content does not match the original artifact")
	}

	// The source artifact is kept
	if _, err := os.Stat(src); err != nil {
		t.Errorf("Expected source artifact to remain: %v", err)
	}
}

func TestOpenPlainArtifact(t *testing.T) {
	src := InfoPath(t.TempDir(), 7)
	if err := os.WriteFile(src, []byte("Stack trace:\n"), 0644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	r, err := Open(src)
	if err != nil {
		t.Fatalf("Failed to open artifact: %v", err)
	}
	defer r.Close()
	if _, ok := r.(*packedReader); ok {
		t.Error("Expected a plain artifact to be read without decompression")
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if string(got) != "Stack trace:\n" {
		t.Errorf("Content mismatch. Got %q", got)
	}

	if _, err := Open(src + ".missing"); err == nil {
		t.Error("Expected an error opening a missing artifact")
	}
}

func TestPackNoCompression(t *testing.T) {
	src := filepath.Join(t.TempDir(), "tmp_dump_1.einfo")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	dst, err := Pack(src, NoCompression)
	if err != nil {
		t.Fatalf("Failed to pack artifact: %v", err)
	}
	if dst != src {
		t.Errorf("Expected an uncompressed pack to keep %s, got %s", src, dst)
	}
}

func TestCompressedWriter(t *testing.T) {
	for _, c := range []CompressionType{NoCompression, ZstdCompression} {
		var buf bytes.Buffer
		w, err := NewCompressedWriter(&buf, c)
		if err != nil {
			t.Fatalf("Failed to create compressed writer: %v", err)
		}
		if _, err := w.Write([]byte("Stack trace:\n")); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
		if err := CloseCompressedWriter(w, c); err != nil {
			t.Fatalf("Failed to close compressed writer: %v", err)
		}

		r, err := NewCompressedReader(&buf, c)
		if err != nil {
			t.Fatalf("Failed to create compressed reader: %v", err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("Failed to read: %v", err)
		}
		if string(got) != "Stack trace:\n" {
			t.Errorf("Round trip mismatch for compression %d. Got %q", c, got)
		}
	}
}

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression("")
	if err != nil || c != ZstdCompression {
		t.Errorf("Expected default zstd compression, got %d (%v)", c, err)
	}

	c, err = ParseCompression("None")
	if err != nil || c != NoCompression {
		t.Errorf("Expected no compression, got %d (%v)", c, err)
	}

	if _, err := ParseCompression("lz4"); err == nil {
		t.Error("Expected an error for an unknown compression")
	}
}
