package artifact

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// CompressionType selects how packed artifacts are stored
type CompressionType int

const (
	// NoCompression copies artifacts as they are
	NoCompression CompressionType = iota
	// ZstdCompression stores artifacts as Zstandard frames
	ZstdCompression
)

// DefaultCompression is used when none is configured
const DefaultCompression = ZstdCompression

// ParseCompression maps a configuration value to a CompressionType.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(s) {
	case "":
		return DefaultCompression, nil
	case "zstd":
		return ZstdCompression, nil
	case "none", "off":
		return NoCompression, nil
	default:
		return NoCompression, errors.Errorf("unknown compression %q", s)
	}
}

// NewCompressedWriter returns a writer that compresses data before writing
func NewCompressedWriter(w io.Writer, compressionType CompressionType) (io.Writer, error) {
	if compressionType == NoCompression {
		return w, nil
	}
	return zstd.NewWriter(w)
}

// NewCompressedReader returns a reader that decompresses data after reading
func NewCompressedReader(r io.Reader, compressionType CompressionType) (io.Reader, error) {
	if compressionType == NoCompression {
		return r, nil
	}
	return zstd.NewReader(r)
}

// CloseCompressedWriter flushes and closes the compressed writer if needed
func CloseCompressedWriter(w io.Writer, compressionType CompressionType) error {
	if compressionType == NoCompression {
		return nil
	}
	if zw, ok := w.(*zstd.Encoder); ok {
		return zw.Close()
	}
	return nil
}

// Pack compresses src into src+PackedExt and returns the new path. The source
// is left in place.
func Pack(src string, compressionType CompressionType) (string, error) {
	if compressionType == NoCompression {
		return src, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return "", errors.Wrap(err, "open artifact")
	}
	defer in.Close()

	dst := src + PackedExt
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.Wrap(err, "create packed artifact")
	}
	defer out.Close()

	w, err := NewCompressedWriter(out, compressionType)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(w, in); err != nil {
		CloseCompressedWriter(w, compressionType)
		return "", errors.Wrapf(err, "pack %s", src)
	}
	if err := CloseCompressedWriter(w, compressionType); err != nil {
		return "", errors.Wrapf(err, "pack %s", src)
	}
	return dst, out.Close()
}

// Open opens an artifact for reading, decompressing packed files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open artifact")
	}
	if !strings.HasSuffix(path, PackedExt) {
		return f, nil
	}

	r, err := NewCompressedReader(f, ZstdCompression)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return &packedReader{Reader: r, file: f}, nil
}

type packedReader struct {
	io.Reader
	file *os.File
}

func (p *packedReader) Close() error {
	if dec, ok := p.Reader.(*zstd.Decoder); ok {
		dec.Close()
	}
	return p.file.Close()
}
