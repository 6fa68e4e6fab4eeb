//go:build !libretro

package style

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func TestTruncateStart(t *testing.T) {
	tests := []struct {
		input     string
		maxLen    int
		want      string
		truncated bool
	}{
		{"roms", 10, "roms", false},
		{"roms", 4, "roms", false},
		{"/home/arcade/roms/mame2003-plus/pacman.zip", 20, "...3-plus/pacman.zip", true},
		{"abcdef", 3, "def", true},
		{"abcdef", 1, "f", true},
		{"abcdef", 4, "...f", true},
		{"", 5, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, truncated := TruncateStart(tc.input, tc.maxLen)
			if got != tc.want || truncated != tc.truncated {
				t.Errorf("TruncateStart(%q, %d) = %q, %v; want %q, %v", tc.input, tc.maxLen, got, truncated, tc.want, tc.truncated)
			}
		})
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 B/s"},
		{512, "512 B/s"},
		{2048, "2.0 KB/s"},
		{1.5 * (1 << 20), "1.5 MB/s"},
	}
	for _, tc := range tests {
		if got := FormatSpeed(tc.in); got != tc.want {
			t.Errorf("FormatSpeed(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRunePrefix(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"pacman", 3, "pac"},
		{"pacman", 0, ""},
		{"pacman", 10, "pacman"},
		{"città", 4, "citt"},
		{"città", 5, "città"},
	}
	for _, tc := range tests {
		if got := runePrefix(tc.s, tc.n); got != tc.want {
			t.Errorf("runePrefix(%q, %d) = %q, want %q", tc.s, tc.n, got, tc.want)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	face := FontFace()
	if *face == nil {
		t.Fatal("FontFace() returned nil face")
	}

	t.Run("fits", func(t *testing.T) {
		got, truncated := TruncateToWidth("1942", *face, 500)
		if truncated || got != "1942" {
			t.Errorf("TruncateToWidth = %q, %v; want unchanged", got, truncated)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got, truncated := TruncateToWidth("", *face, 100); truncated || got != "" {
			t.Errorf("TruncateToWidth(\"\") = %q, %v", got, truncated)
		}
	})

	t.Run("long description", func(t *testing.T) {
		long := "Street Fighter II': Champion Edition (street fighter 2' 920513 etc)"
		got, truncated := TruncateToWidth(long, *face, 200)
		if !truncated {
			t.Fatal("expected truncation")
		}
		if !strings.HasSuffix(got, "...") || len(got) >= len(long) {
			t.Errorf("TruncateToWidth = %q", got)
		}
		if w, _ := text.Measure(got, *face, 0); w > 200 {
			t.Errorf("width %.1f exceeds 200", w)
		}
	})

	t.Run("narrower than ellipsis", func(t *testing.T) {
		if got, _ := TruncateToWidth("Galaga", *face, 5); got != "..." {
			t.Errorf("TruncateToWidth = %q, want ...", got)
		}
	})
}

func TestApplyFontSize(t *testing.T) {
	defer SetDPIScale(1.0)
	SetDPIScale(1.0)

	tests := []struct {
		size                int
		row, header, status int
		scale               float64
	}{
		{14, 40, 48, 28, 1.0},
		{28, 80, 96, 56, 2.0},
		{7, 20, 24, 14, 0.5},
		{10, 28, 34, 20, 10.0 / 14.0},
	}
	for _, tc := range tests {
		ApplyFontSize(tc.size)
		if ListRowHeight != tc.row || HeaderHeight != tc.header || StatusBarHeight != tc.status {
			t.Errorf("at %dpt rows = %d/%d/%d, want %d/%d/%d", tc.size, ListRowHeight, HeaderHeight, StatusBarHeight, tc.row, tc.header, tc.status)
		}
		if FontScale() != tc.scale {
			t.Errorf("at %dpt FontScale() = %f, want %f", tc.size, FontScale(), tc.scale)
		}
	}
	ApplyFontSize(14)
}

func TestSetDPIScale(t *testing.T) {
	defer SetDPIScale(1.0)
	ApplyFontSize(14)

	SetDPIScale(2.0)
	if DPIScale() != 2.0 {
		t.Errorf("DPIScale() = %f, want 2.0", DPIScale())
	}
	checks := []struct {
		name      string
		got, want int
	}{
		{"DefaultPadding", DefaultPadding, 32},
		{"SmallSpacing", SmallSpacing, 16},
		{"MenuLogoSize", MenuLogoSize, 96},
		{"ArtWidth", ArtWidth, 800},
		{"PickerThumbSize", PickerThumbSize, 320},
		{"ModalMinWidth", ModalMinWidth, 1040},
		{"OverlayPadding", OverlayPadding, 24},
		{"ListRowHeight", ListRowHeight, 80},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s at 2x = %d, want %d", c.name, c.got, c.want)
		}
	}
	if goFace, ok := (*FontFace()).(*text.GoTextFace); ok && goFace.Size != 28 {
		t.Errorf("font size at 14pt/2x = %f, want 28", goFace.Size)
	}

	SetDPIScale(1.0)
	if DefaultPadding != 16 || ProgressBarHeight != 20 || ListRowHeight != 40 {
		t.Errorf("layout not restored at 1x: padding=%d bar=%d row=%d", DefaultPadding, ProgressBarHeight, ListRowHeight)
	}

	SetDPIScale(0.5)
	if DPIScale() != 1.0 {
		t.Errorf("DPIScale() after 0.5 = %f, want 1.0", DPIScale())
	}
}
