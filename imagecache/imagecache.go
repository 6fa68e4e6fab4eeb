// Package imagecache downloads game artwork into an on-disk cache and
// loads cached or local images.
package imagecache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "golang.org/x/image/webp"
)

// DefaultTimeout bounds a single image download
const DefaultTimeout = 5 * time.Second

// Cache subdirectory names per artwork kind
const (
	KindTitle  = "titolo"
	KindInGame = "ingame"
)

// maxImageSize caps downloads; artwork larger than this is rejected
const maxImageSize = 16 << 20

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// ErrNotPNG is returned when a download is not a PNG image
var ErrNotPNG = errors.New("not a PNG image")

// Cache fetches artwork over HTTP and stores it on disk
type Cache struct {
	http *http.Client
}

// New creates a cache whose downloads time out after timeout
func New(timeout time.Duration) *Cache {
	return &Cache{http: &http.Client{Timeout: timeout}}
}

// Path returns where an artwork kind for a rom is stored under a platform
// cache directory
func Path(cacheDir, romName, kind string) string {
	return filepath.Join(cacheDir, romName, kind, romName+".png")
}

// Fetch returns the image at dest if it is already cached, otherwise
// downloads url, validates it as PNG, stores it at dest and decodes it.
func (c *Cache) Fetch(ctx context.Context, url, dest string) (image.Image, error) {
	if img, err := loadPNG(dest); err == nil {
		return img, nil
	}

	data, err := c.download(ctx, url)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, pngMagic) {
		return nil, ErrNotPNG
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if err := writeFile(dest, data); err != nil {
		log.Printf("Failed to cache image %s: %v", dest, err)
	}
	return img, nil
}

func (c *Cache) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	return data, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// LoadFile decodes a local PNG, JPEG or WebP
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// ListImages returns the PNG, JPEG and WebP file names in dir, sorted
// case-insensitively. A missing directory yields no names.
func ListImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Failed to read image directory %s: %v", dir, err)
		}
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp":
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// ClearAll removes everything under dir, leaving dir itself in place
func ClearAll(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var firstErr error
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
