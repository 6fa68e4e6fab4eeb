//go:build !libretro

package style

import (
	"reflect"
	"testing"
)

func TestThemeLookup(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		valid bool
	}{
		{"Arcade", "Arcade", true},
		{"Midnight", "Midnight", true},
		{"Marquee", "Marquee", true},
		{"midnight", DefaultTheme, false},
		{"Dark", DefaultTheme, false},
		{"", DefaultTheme, false},
	}

	for _, tc := range tests {
		t.Run("name_"+tc.name, func(t *testing.T) {
			if got := GetThemeByName(tc.name).Name; got != tc.want {
				t.Errorf("GetThemeByName(%q).Name = %q, want %q", tc.name, got, tc.want)
			}
			if got := IsValidThemeName(tc.name); got != tc.valid {
				t.Errorf("IsValidThemeName(%q) = %v, want %v", tc.name, got, tc.valid)
			}
		})
	}
}

func TestThemeNamesSorted(t *testing.T) {
	want := []string{"Arcade", "Marquee", "Midnight"}
	if got := ThemeNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ThemeNames() = %v, want %v", got, want)
	}
}

func TestApplyThemeByName(t *testing.T) {
	orig := CurrentThemeName
	defer ApplyThemeByName(orig)

	ApplyThemeByName("Midnight")
	midnight := GetThemeByName("Midnight")
	if CurrentThemeName != "Midnight" {
		t.Errorf("CurrentThemeName = %q, want Midnight", CurrentThemeName)
	}
	if Background != midnight.Background || Primary != midnight.Primary || OverlayBackground != midnight.OverlayBackground {
		t.Errorf("palette not updated for Midnight")
	}

	ApplyThemeByName("Nope")
	if CurrentThemeName != DefaultTheme {
		t.Errorf("CurrentThemeName = %q, want %s for unknown theme", CurrentThemeName, DefaultTheme)
	}
}

func TestThemeColorsOpaque(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := GetThemeByName(name)
		t.Run(name, func(t *testing.T) {
			v := reflect.ValueOf(theme)
			for i := 0; i < v.NumField(); i++ {
				f := v.Type().Field(i)
				if f.Name == "Name" {
					continue
				}
				if a := v.Field(i).FieldByName("A").Uint(); a != 0xff {
					t.Errorf("%s.%s alpha = 0x%02x, want 0xff", name, f.Name, a)
				}
			}
		})
	}
}
