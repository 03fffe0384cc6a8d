package textparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var unicodeFractions = map[rune]string{
	'¼': "1/4",
	'½': "1/2",
	'¾': "3/4",
	'⅓': "1/3",
	'⅔': "2/3",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

var (
	mixedFractionRe  = regexp.MustCompile(`(\d+)\s+(\d+)/(\d+)`)
	simpleFractionRe = regexp.MustCompile(`(\d+)/(\d+)`)
)

// NormalizeFractions rewrites unicode and ASCII fractions as decimals:
// "½" and "1/2" become "0.5", "1 ½" and "1 1/2" become "1.5".
func NormalizeFractions(s string) string {
	var b strings.Builder
	prevDigit := false
	for _, r := range s {
		if r == '⁄' {
			b.WriteByte('/')
			prevDigit = false
			continue
		}
		if ascii, ok := unicodeFractions[r]; ok {
			// keep "1½" from turning into "11/2"
			if prevDigit {
				b.WriteByte(' ')
			}
			b.WriteString(ascii)
			prevDigit = true
			continue
		}
		b.WriteRune(r)
		prevDigit = r >= '0' && r <= '9'
	}
	s = b.String()

	s = mixedFractionRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := mixedFractionRe.FindStringSubmatch(m)
		whole, _ := strconv.ParseFloat(parts[1], 64)
		frac, ok := divide(parts[2], parts[3])
		if !ok {
			return m
		}
		return FormatNumber(whole + frac)
	})

	return simpleFractionRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := simpleFractionRe.FindStringSubmatch(m)
		v, ok := divide(parts[1], parts[2])
		if !ok {
			return m
		}
		return FormatNumber(v)
	})
}

func divide(num, den string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// FormatNumber renders v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	return v, err == nil
}
