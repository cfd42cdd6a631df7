package main

import (
	"bytes"
	"compress/gzip"
	"debug/elf"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	elfMagic  = []byte{0x7f, 'E', 'L', 'F'}
)

// extractRodata resolves path to a raw .rodata byte slice, transparently
// handling a gzip- or zstd-compressed image, a vmlinux-style ELF image, or
// an already-raw dump.
func extractRodata(fs afero.Fs, path string) ([]byte, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, errEmptyInput
	}

	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		return decompressGzip(raw)
	case bytes.HasPrefix(raw, zstdMagic):
		return decompressZstd(raw)
	case bytes.HasPrefix(raw, elfMagic):
		return extractELFRodata(raw)
	default:
		return raw, nil
	}
}

func decompressGzip(raw []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", errUnsupportedCompression, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip input: %w", err)
	}
	return out, nil
}

func decompressZstd(raw []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", errUnsupportedCompression, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing zstd input: %w", err)
	}
	return out, nil
}

func extractELFRodata(raw []byte) ([]byte, error) {
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing ELF image: %w", err)
	}
	defer f.Close()

	sect := f.Section(".rodata")
	if sect == nil {
		return nil, errRodataSectionNotFound
	}

	data, err := sect.Data()
	if err != nil {
		return nil, fmt.Errorf("reading .rodata section: %w", err)
	}
	return data, nil
}
