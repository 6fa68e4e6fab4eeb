package scraper

import "strings"

// FormatDescription normalises line endings, collapses runs of spaces
// inside each line, drops blank lines within a paragraph and separates
// paragraphs with one empty line.
func FormatDescription(s string) string {
	if strings.TrimSpace(s) == "" {
		return noDescription
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var paragraphs []string
	for _, para := range strings.Split(s, "\n\n") {
		var lines []string
		for _, line := range strings.Split(para, "\n") {
			if cleaned := strings.Join(strings.Fields(line), " "); cleaned != "" {
				lines = append(lines, cleaned)
			}
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// WrapText breaks text into lines of at most maxChars runes on word
// boundaries. Existing line breaks are kept and blank lines survive as
// empty strings. A single word longer than maxChars gets its own line.
func WrapText(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	if maxChars < 1 {
		maxChars = 1
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		if len([]rune(line)) <= maxChars {
			out = append(out, line)
			continue
		}

		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case len([]rune(current))+1+len([]rune(word)) <= maxChars:
				current += " " + word
			default:
				out = append(out, current)
				current = word
			}
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return out
}
