package storage

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// Platform is one emulated system from platforms.xml. URL templates carry a
// {rom_name} placeholder.
type Platform struct {
	Name      string `xml:"name"`
	CachePath string `xml:"cache_path"`
	RomsPath  string `xml:"roms_path"`
	XML       string `xml:"xml"`
	InGame    string `xml:"ingame"`
	Title     string `xml:"title"`
	Info      string `xml:"info"`
	ROM       string `xml:"rom"`
	Image     string `xml:"image"`
}

type platformsDoc struct {
	XMLName   xml.Name
	Version   string     `xml:"version"`
	Platforms []Platform `xml:"platform"`
}

const defaultPlatformsVersion = "0.0.0"

// DefaultPlatforms returns the built-in platform used when platforms.xml
// is missing or unreadable
func DefaultPlatforms() []Platform {
	return []Platform{
		{
			Name:      "MAME_2003-Plus",
			CachePath: "./cache/MAME_2003-Plus",
			RomsPath:  "/userdata/roms/mame078plus",
			XML:       "./xml/mame2003-plus.xml",
			InGame:    "adb.arcadeitalia.net/?mame={rom_name}&type=ingame&resize=0",
			Title:     "adb.arcadeitalia.net/?mame={rom_name}&type=title&resize=0",
			Info:      "adb.arcadeitalia.net/service_scraper.php?ajax=query_mame&game_name={rom_name}&lang=it",
			ROM:       "https://archive.org/download/MAME_2003-Plus_Reference/roms/",
		},
	}
}

// PlatformStore holds the platform list loaded from platforms.xml
type PlatformStore struct {
	path      string
	root      string
	version   string
	platforms []Platform
	fromFile  bool
}

// LoadPlatforms reads platforms.xml at path. Any failure falls back to
// DefaultPlatforms and is logged.
func LoadPlatforms(path string) *PlatformStore {
	ps := &PlatformStore{path: path, root: "platforms"}

	doc, err := readPlatformsDoc(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Platforms file %s not found, using defaults", path)
		} else {
			log.Printf("Failed to load platforms: %v", err)
		}
		ps.version = defaultPlatformsVersion
		ps.platforms = DefaultPlatforms()
		return ps
	}

	ps.fromFile = true
	if doc.XMLName.Local != "" {
		ps.root = doc.XMLName.Local
	}
	ps.version = doc.Version
	if ps.version == "" {
		ps.version = defaultPlatformsVersion
	}
	for _, p := range doc.Platforms {
		ps.platforms = append(ps.platforms, withPlatformDefaults(p))
	}
	log.Printf("Loaded %d platforms (version %s)", len(ps.platforms), ps.version)
	return ps
}

func withPlatformDefaults(p Platform) Platform {
	p = trimPlatform(p)
	if p.Name == "" {
		p.Name = "Unknown platform"
	}
	if p.CachePath == "" {
		p.CachePath = "./cache/default"
	}
	if p.RomsPath == "" {
		p.RomsPath = "/userdata/roms/default"
	}
	return p
}

func trimPlatform(p Platform) Platform {
	p.Name = strings.TrimSpace(p.Name)
	p.CachePath = strings.TrimSpace(p.CachePath)
	p.RomsPath = strings.TrimSpace(p.RomsPath)
	p.XML = strings.TrimSpace(p.XML)
	p.InGame = strings.TrimSpace(p.InGame)
	p.Title = strings.TrimSpace(p.Title)
	p.Info = strings.TrimSpace(p.Info)
	p.ROM = strings.TrimSpace(p.ROM)
	p.Image = strings.TrimSpace(p.Image)
	return p
}

// readPlatformsDoc parses the file, retrying once with bare ampersands
// escaped since hand-edited files often carry raw query strings
func readPlatformsDoc(path string) (*platformsDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc platformsDoc
	err = xml.Unmarshal(data, &doc)
	if err == nil {
		return &doc, nil
	}
	log.Printf("Platforms XML parse error, retrying with escaped ampersands: %v", err)

	doc = platformsDoc{}
	if err := xml.Unmarshal(EscapeAmpersands(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// EscapeAmpersands replaces bare & with &amp; leaving existing &amp; intact
func EscapeAmpersands(data []byte) []byte {
	out := bytes.ReplaceAll(data, []byte("&"), []byte("&amp;"))
	return bytes.ReplaceAll(out, []byte("&amp;amp;"), []byte("&amp;"))
}

// Version returns the version string from the file, or "0.0.0"
func (ps *PlatformStore) Version() string {
	return ps.version
}

// Count returns the number of platforms
func (ps *PlatformStore) Count() int {
	return len(ps.platforms)
}

// Get returns the platform at index, or nil when out of range
func (ps *PlatformStore) Get(index int) *Platform {
	if index < 0 || index >= len(ps.platforms) {
		return nil
	}
	p := ps.platforms[index]
	return &p
}

// All returns a copy of the platform list
func (ps *PlatformStore) All() []Platform {
	out := make([]Platform, len(ps.platforms))
	copy(out, ps.platforms)
	return out
}

// ImageFor returns the custom logo file name of a platform
func (ps *PlatformStore) ImageFor(name string) string {
	for _, p := range ps.platforms {
		if p.Name == name {
			return p.Image
		}
	}
	return ""
}

// SavePlatformImage sets the logo of the named platform and rewrites
// platforms.xml
func (ps *PlatformStore) SavePlatformImage(name, image string) error {
	idx := -1
	for i, p := range ps.platforms {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("platform %q not found", name)
	}

	ps.platforms[idx].Image = image
	return ps.Save()
}

// Save writes the platform list back to its file, tab indented
func (ps *PlatformStore) Save() error {
	doc := platformsDoc{
		XMLName:   xml.Name{Local: ps.root},
		Version:   ps.version,
		Platforms: ps.platforms,
	}
	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal platforms: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\"?>\n")
	buf.Write(body)
	buf.WriteString("\n")

	if err := AtomicWriteFile(ps.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save platforms: %w", err)
	}
	ps.fromFile = true
	return nil
}

// FromFile reports whether the list came from disk rather than defaults
func (ps *PlatformStore) FromFile() bool {
	return ps.fromFile
}

// ExpandTemplate substitutes the rom name into a platform URL template
func ExpandTemplate(tmpl, romName string) string {
	return strings.ReplaceAll(tmpl, "{rom_name}", romName)
}
