package i18n

import (
	"bufio"
	"bytes"
	"testing"
)

func TestSetLanguage(t *testing.T) {
	tests := []struct {
		lang     string
		wantLang string
		want     string
	}{
		{"it", "it", "SALVA"},
		{"en", "en", "SAVE"},
		{"xx", DefaultLanguage, "SALVA"},
		{"", DefaultLanguage, "SALVA"},
	}
	for _, tc := range tests {
		t.Run(tc.lang, func(t *testing.T) {
			if err := SetLanguage(tc.lang); err != nil {
				t.Fatalf("SetLanguage(%q): %v", tc.lang, err)
			}
			if got := Language(); got != tc.wantLang {
				t.Errorf("Language() = %q, want %q", got, tc.wantLang)
			}
			if got := T("SAVE"); got != tc.want {
				t.Errorf("T(SAVE) = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTranslateFormats(t *testing.T) {
	if err := SetLanguage("it"); err != nil {
		t.Fatal(err)
	}
	if got := T("Copied %s", "pacman"); got != "Copiato pacman" {
		t.Errorf("T = %q", got)
	}
	if got := T("not in the catalogue %d", 3); got != "not in the catalogue 3" {
		t.Errorf("unknown key = %q", got)
	}
}

func msgids(t *testing.T, lang string) map[string]bool {
	t.Helper()
	data, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		t.Fatalf("read %s: %v", lang, err)
	}
	ids := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Bytes()
		if bytes.HasPrefix(line, []byte("msgid ")) {
			ids[string(line)] = true
		}
	}
	return ids
}

func TestCataloguesMatch(t *testing.T) {
	it := msgids(t, "it")
	en := msgids(t, "en")
	if len(it) != len(en) {
		t.Errorf("it has %d ids, en has %d", len(it), len(en))
	}
	for id := range it {
		if !en[id] {
			t.Errorf("en.po missing %s", id)
		}
	}
}
