package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

const (
	headingSelector    = "h1, h2, h3, h4, h5, h6"
	maxHeadingLength   = 80
	maxWrapperClimbing = 3
)

// Heading synonyms, already folded.
var (
	ingredientHeadings = []string{
		"ingredients",
		"ingredient",
		"liste des ingredients",
		"les ingredients",
		"il vous faut",
		"ce qu'il vous faut",
		"pour la recette",
		"liste de courses",
	}
	instructionHeadings = []string{
		"preparation",
		"instructions",
		"etapes",
		"etape",
		"les etapes",
		"methode",
		"realisation",
		"deroulement",
		"marche a suivre",
		"deroule de la recette",
	}
)

type collectFunc func(s *goquery.Selection) []string

func matchesHeading(text string, synonyms []string) bool {
	if runeLen(text) > maxHeadingLength {
		return false
	}
	folded := strings.TrimSpace(strings.Trim(textparse.Fold(text), " :.-–"))
	for _, syn := range synonyms {
		if strings.HasPrefix(folded, syn) {
			return true
		}
	}
	return false
}

func isHeading(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// walkSection finds the first heading matching synonyms and collects the
// content of the following siblings. Headings of the same category are
// skipped over; any other heading ends the section. With earlyStop > 0 the
// walk ends once that many lines are collected.
func walkSection(doc *goquery.Document, synonyms []string, collect collectFunc, earlyStop int) []string {
	var lines []string
	doc.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !matchesHeading(nodeText(h), synonyms) {
			return true
		}
		lines = uniqueLines(walkFrom(h, synonyms, collect, earlyStop))
		return len(lines) == 0
	})
	return lines
}

func walkFrom(h *goquery.Selection, synonyms []string, collect collectFunc, earlyStop int) []string {
	// a heading wrapped alone in a div continues after the wrapper
	start := h
	for i := 0; i < maxWrapperClimbing && start.Next().Length() == 0; i++ {
		parent := start.Parent()
		if parent.Length() == 0 || goquery.NodeName(parent) == "body" {
			break
		}
		start = parent
	}

	var lines []string
	for sib := start.Next(); sib.Length() > 0; sib = sib.Next() {
		if isHeading(sib) {
			if matchesHeading(nodeText(sib), synonyms) {
				continue
			}
			break
		}
		if inner := sib.Find(headingSelector).First(); inner.Length() > 0 && !matchesHeading(nodeText(inner), synonyms) {
			break
		}
		if isAd(sib) {
			continue
		}
		lines = append(lines, collect(sib)...)
		if earlyStop > 0 && len(lines) >= earlyStop {
			break
		}
	}
	return lines
}

func collectIngredientItems(s *goquery.Selection) []string {
	if goquery.NodeName(s) == "li" {
		return []string{nodeText(s)}
	}
	return itemTexts(s.Find("li"))
}

func collectInstructionItems(s *goquery.Selection) []string {
	switch goquery.NodeName(s) {
	case "li", "p":
		return []string{nodeText(s)}
	case "ul", "ol":
		return itemTexts(s.Find("li"))
	}
	if items := s.Find("li"); items.Length() > 0 {
		return itemTexts(items)
	}
	return itemTexts(s.Find("p"))
}

func itemTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if isAd(s) {
			return
		}
		if t := nodeText(s); t != "" && runeLen(t) <= maxLineLength {
			out = append(out, t)
		}
	})
	return out
}
