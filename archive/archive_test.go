package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		fw.Write([]byte(body))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		path   string
		want   Format
	}{
		{"zip magic", []byte{0x50, 0x4B, 0x03, 0x04, 0, 0}, "rom.bin", FormatZIP},
		{"empty zip magic", []byte{0x50, 0x4B, 0x05, 0x06}, "rom", FormatZIP},
		{"7z magic", []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C, 0, 4}, "rom.zip", Format7z},
		{"rar magic", []byte("Rar!\x1a\x07\x00"), "rom", FormatRAR},
		{"zip extension", []byte("junk"), "ROM.ZIP", FormatZIP},
		{"7z extension", nil, "rom.7z", Format7z},
		{"rar extension", []byte{1}, "rom.rar", FormatRAR},
		{"unknown", []byte("hello"), "rom.txt", FormatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectFormat(tc.header, tc.path); got != tc.want {
				t.Errorf("detectFormat() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVerifyZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pacman.zip")
	writeZip(t, path, map[string]string{"pacman.6e": "rom data"})

	if err := Verify(path); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
}

func TestVerifyEmptyZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")
	writeZip(t, path, nil)

	if err := Verify(path); !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("Verify() = %v, want ErrEmptyArchive", err)
	}
}

func TestVerifyUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readme.txt")
	os.WriteFile(path, []byte("plain text"), 0644)

	if err := Verify(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Verify() = %v, want ErrUnsupportedFormat", err)
	}
}

func TestVerifyCorrupt(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"truncated zip", "a.zip", []byte{0x50, 0x4B, 0x03, 0x04, 1, 2, 3}},
		{"fake 7z", "a.7z", []byte("not a 7z file")},
		{"partial 7z magic", "b.7z", []byte{0x37, 0x7A, 0xBC}},
		{"fake rar", "a.rar", []byte("Rar!garbage")},
		{"empty 7z", "c.7z", []byte{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			if err := os.WriteFile(path, tc.data, 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			if err := Verify(path); err == nil {
				t.Error("expected error for corrupt archive")
			}
		})
	}
}

func TestVerifyMissingFile(t *testing.T) {
	if err := Verify("/nonexistent/path/rom.zip"); err == nil {
		t.Error("expected error for missing file")
	}
}
