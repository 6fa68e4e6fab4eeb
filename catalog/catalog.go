// Package catalog loads a MAME-style game list XML into browser rows.
package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// DescriptionLimit is the number of description characters kept in a row
const DescriptionLimit = 30

// Game is one <game> entry
type Game struct {
	Name         string `xml:"name,attr"`
	Description  string `xml:"description"`
	Year         string `xml:"year"`
	Manufacturer string `xml:"manufacturer"`
}

// Row formats the game for the browser list: "name - description", with
// the description cut to DescriptionLimit characters
func (g Game) Row() string {
	desc := []rune(g.Description)
	if len(desc) > DescriptionLimit {
		return g.Name + " - " + string(desc[:DescriptionLimit]) + "..."
	}
	return g.Name + " - " + g.Description
}

// Catalog is a loaded game list. When loading failed it holds a single
// sentinel row describing the error and no games.
type Catalog struct {
	games  []Game
	rows   []string
	byName map[string]int
	err    error
}

// Load parses the XML file at path. It never fails: errors become a
// one-row catalog whose row carries the message.
func Load(path string) *Catalog {
	if path == "" {
		return errorCatalog(errors.New("no game list configured for this platform"))
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errorCatalog(fmt.Errorf("game list not found: %s", path))
		}
		return errorCatalog(fmt.Errorf("failed to open game list: %w", err))
	}
	defer f.Close()

	games, err := Parse(f)
	if err != nil {
		return errorCatalog(fmt.Errorf("failed to parse game list: %w", err))
	}
	log.Printf("Loaded %d games from %s", len(games), path)
	return New(games)
}

// New builds a catalog from parsed games, sorted case-insensitively by row
func New(games []Game) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(games))}
	c.games = make([]Game, len(games))
	copy(c.games, games)

	sort.SliceStable(c.games, func(i, j int) bool {
		return strings.ToLower(c.games[i].Row()) < strings.ToLower(c.games[j].Row())
	})

	c.rows = make([]string, len(c.games))
	for i, g := range c.games {
		c.rows[i] = g.Row()
		if _, dup := c.byName[g.Name]; !dup {
			c.byName[g.Name] = i
		}
	}
	return c
}

func errorCatalog(err error) *Catalog {
	log.Printf("Catalog error: %v", err)
	return &Catalog{
		rows:   []string{"Error: " + err.Error()},
		byName: map[string]int{},
		err:    err,
	}
}

// Parse streams <game> elements from r. Missing descriptions default to
// the game name.
func Parse(r io.Reader) ([]Game, error) {
	dec := xml.NewDecoder(r)
	var games []Game
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "game" {
			continue
		}
		var g Game
		if err := dec.DecodeElement(&g, &start); err != nil {
			return nil, err
		}
		g.Description = strings.TrimSpace(g.Description)
		g.Year = strings.TrimSpace(g.Year)
		g.Manufacturer = strings.TrimSpace(g.Manufacturer)
		if g.Description == "" {
			g.Description = g.Name
		}
		games = append(games, g)
	}
	return games, nil
}

// Rows returns the display rows
func (c *Catalog) Rows() []string {
	return c.rows
}

// Len returns the number of rows
func (c *Catalog) Len() int {
	return len(c.rows)
}

// Err returns the load error, if any
func (c *Catalog) Err() error {
	return c.err
}

// Game returns the game at a row index
func (c *Catalog) Game(index int) (Game, bool) {
	if index < 0 || index >= len(c.games) {
		return Game{}, false
	}
	return c.games[index], true
}

// Lookup finds a game by rom name
func (c *Catalog) Lookup(romName string) (Game, bool) {
	idx, ok := c.byName[romName]
	if !ok {
		return Game{}, false
	}
	return c.games[idx], true
}

// FullName returns the full description of a rom, or the rom name itself
func (c *Catalog) FullName(romName string) string {
	if g, ok := c.Lookup(romName); ok {
		return g.Description
	}
	return romName
}

// RomNameFromRow extracts the rom name from a display row
func RomNameFromRow(row string) string {
	name, _, _ := strings.Cut(row, " - ")
	return strings.TrimSpace(name)
}
