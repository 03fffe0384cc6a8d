package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTitleLength caps a cleaned title, in runes.
const MaxTitleLength = 200

// RemoveControlCharacters drops C0 and C1 control characters. Tabs and
// newlines become spaces so that words stay apart.
func RemoveControlCharacters(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		case r == '\u200b' || r == '\ufeff':
			return -1
		}
		return r
	}, text)
}

// TruncateText cuts text to maxLen runes, preferring a word boundary.
func TruncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	runes := []rune(text)
	truncated := string(runes[:maxLen])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated)
}

// CleanTitle sanitizes a recipe title and caps its length.
func CleanTitle(title string) string {
	return defaultSanitizer.CleanTitle(title)
}

// CleanTitle sanitizes a recipe title and caps its length.
func (s *Sanitizer) CleanTitle(title string) string {
	return TruncateText(s.Text(title), MaxTitleLength)
}
