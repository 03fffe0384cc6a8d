package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// namedEntities is the curated set found on French recipe pages.
var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"nbsp":   " ",
	"eacute": "é",
	"Eacute": "É",
	"egrave": "è",
	"Egrave": "È",
	"ecirc":  "ê",
	"Ecirc":  "Ê",
	"euml":   "ë",
	"agrave": "à",
	"Agrave": "À",
	"acirc":  "â",
	"Acirc":  "Â",
	"ccedil": "ç",
	"Ccedil": "Ç",
	"icirc":  "î",
	"iuml":   "ï",
	"ocirc":  "ô",
	"Ocirc":  "Ô",
	"ucirc":  "û",
	"ugrave": "ù",
	"uuml":   "ü",
	"oelig":  "œ",
	"OElig":  "Œ",
	"aelig":  "æ",
	"deg":    "°",
	"frac12": "½",
	"frac14": "¼",
	"frac34": "¾",
	"times":  "×",
	"hellip": "…",
	"rsquo":  "’",
	"lsquo":  "‘",
	"rdquo":  "”",
	"ldquo":  "“",
	"laquo":  "«",
	"raquo":  "»",
	"ndash":  "–",
	"mdash":  "—",
	"middot": "·",
	"euro":   "€",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
}

var entityRe = regexp.MustCompile(`&(?:#([0-9]{1,7})|#[xX]([0-9a-fA-F]{1,6})|([a-zA-Z][a-zA-Z0-9]{1,7}));`)

// DecodeEntities decodes the curated named entities and numeric entities in a
// single pass. Numeric entities outside the printable ranges are dropped and
// unknown named entities are left as they are.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	return entityRe.ReplaceAllStringFunc(text, func(m string) string {
		parts := entityRe.FindStringSubmatch(m)
		switch {
		case parts[1] != "":
			return decodeCodePoint(parts[1], 10)
		case parts[2] != "":
			return decodeCodePoint(parts[2], 16)
		default:
			if v, ok := namedEntities[parts[3]]; ok {
				return v
			}
			return m
		}
	})
}

func decodeCodePoint(digits string, base int) string {
	v, err := strconv.ParseInt(digits, base, 32)
	if err != nil || !printableCodePoint(rune(v)) {
		return ""
	}
	return string(rune(v))
}

func printableCodePoint(r rune) bool {
	switch {
	case r < 0x20:
		return false
	case r >= 0x7f && r <= 0x9f:
		return false
	case r >= 0xd800 && r <= 0xdfff:
		return false
	case r > 0x10ffff:
		return false
	}
	return true
}
