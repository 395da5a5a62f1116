package ingest

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

// Decompress transparently decompresses manifest snapshot bytes based on
// path's extension (".gz", ".zst", ".xz"); data is returned unchanged for
// any other extension.
func Decompress(path string, data []byte) ([]byte, error) {
	log := telemetry.Logger()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		log.Debugf("decompressing gzip manifest snapshot %s", path)
		return decompressGzip(data)
	case ".zst":
		log.Debugf("decompressing zstd manifest snapshot %s", path)
		return decompressZstd(data)
	case ".xz":
		log.Debugf("decompressing xz manifest snapshot %s", path)
		return decompressXZ(data)
	default:
		return data, nil
	}
}

func decompressGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip data: %w", err)
	}
	return out, nil
}

func decompressZstd(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing zstd data: %w", err)
	}
	return out, nil
}

func decompressXZ(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating xz reader: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing xz data: %w", err)
	}
	return out, nil
}
