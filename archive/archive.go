// Package archive verifies that downloaded ROM archives can be opened
// and read.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// Format identifies an archive container
type Format int

const (
	FormatUnknown Format = iota
	FormatZIP
	Format7z
	FormatRAR
)

func (f Format) String() string {
	switch f {
	case FormatZIP:
		return "zip"
	case Format7z:
		return "7z"
	case FormatRAR:
		return "rar"
	default:
		return "unknown"
	}
}

var (
	// ErrUnsupportedFormat is returned for files that are not zip, 7z or rar
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	// ErrEmptyArchive is returned when an archive holds no files
	ErrEmptyArchive = errors.New("archive contains no files")
)

var (
	magicZIP      = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEmpty = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z       = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicRAR      = []byte("Rar!")
)

// probeSize bounds how much of the first entry Verify decompresses
const probeSize = 64 << 10

// Detect identifies the archive format of path from its magic bytes,
// falling back to the file extension.
func Detect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read archive header: %w", err)
	}
	return detectFormat(header[:n], path), nil
}

func detectFormat(header []byte, path string) Format {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEmpty):
		return FormatZIP
	case bytes.HasPrefix(header, magic7z):
		return Format7z
	case bytes.HasPrefix(header, magicRAR):
		return FormatRAR
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FormatZIP
	case ".7z":
		return Format7z
	case ".rar":
		return FormatRAR
	}
	return FormatUnknown
}

// Verify opens the archive at path, requires at least one file entry and
// reads the start of the first one.
func Verify(path string) error {
	format, err := Detect(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatZIP:
		return verifyZIP(path)
	case Format7z:
		return verify7z(path)
	case FormatRAR:
		return verifyRAR(path)
	default:
		return ErrUnsupportedFormat
	}
}

func verifyZIP(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return probe(rc, f.Name)
	}
	return ErrEmptyArchive
}

func verify7z(path string) error {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return probe(rc, f.Name)
	}
	return ErrEmptyArchive
}

func verifyRAR(path string) error {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read rar entry: %w", err)
		}
		if header.IsDir {
			continue
		}
		return probe(r, header.Name)
	}
	return ErrEmptyArchive
}

func probe(r io.Reader, name string) error {
	if _, err := io.Copy(io.Discard, io.LimitReader(r, probeSize)); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}
