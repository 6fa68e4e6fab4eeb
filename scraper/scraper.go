// Package scraper fetches game information from an arcade database JSON
// service.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single info lookup
const DefaultTimeout = 10 * time.Second

const (
	notAvailable  = "N/A"
	noDescription = "No description available"
)

// ErrNoResult is returned when the service answers with an empty result set
var ErrNoResult = errors.New("no result for rom")

// GameInfo is the subset of the service response the browser shows
type GameInfo struct {
	RomName      string
	Title        string
	Description  string
	Year         string
	Manufacturer string
	CloneOf      string
	ImageInGame  string
	ImageTitle   string
	ImageCabinet string
	ImageMarquee string
	ImageBorder  string
}

type response struct {
	Result []struct {
		Title        string `json:"title"`
		History      string `json:"history"`
		Year         string `json:"year"`
		Manufacturer string `json:"manufacturer"`
		CloneOf      string `json:"cloneof"`
		InGame       string `json:"url_image_ingame"`
		TitleImage   string `json:"url_image_title"`
		Cabinet      string `json:"url_image_cabinet"`
		Marquee      string `json:"url_image_marquee"`
		Border       string `json:"url_image_border"`
	} `json:"result"`
}

// Client performs info lookups
type Client struct {
	http *http.Client
}

// NewClient creates a client whose requests time out after timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Placeholder returns the info shown before or without a lookup
func Placeholder(romName, name string) *GameInfo {
	return &GameInfo{
		RomName:      romName,
		Title:        name,
		Description:  noDescription,
		Year:         notAvailable,
		Manufacturer: notAvailable,
		CloneOf:      notAvailable,
	}
}

// EnsureScheme prefixes http:// to URLs stored without a scheme
func EnsureScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "http://" + u
}

// Lookup queries the service. urlTemplate carries a {rom_name} placeholder.
// name is used as the title when the service omits one.
func (c *Client) Lookup(ctx context.Context, urlTemplate, romName, name string) (*GameInfo, error) {
	u := EnsureScheme(strings.ReplaceAll(urlTemplate, "{rom_name}", romName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build info request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("info request failed with status: %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse info response: %w", err)
	}
	if len(body.Result) == 0 {
		return nil, ErrNoResult
	}

	r := body.Result[0]
	info := Placeholder(romName, name)
	info.Title = orDefault(r.Title, name)
	info.Year = orDefault(r.Year, notAvailable)
	info.Manufacturer = orDefault(r.Manufacturer, notAvailable)
	info.CloneOf = orDefault(r.CloneOf, notAvailable)
	if r.History != "" {
		info.Description = FormatDescription(r.History)
	}
	info.ImageInGame = r.InGame
	info.ImageTitle = r.TitleImage
	info.ImageCabinet = r.Cabinet
	info.ImageMarquee = r.Marquee
	info.ImageBorder = r.Border
	return info, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
