package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

const durationFragment = `(\d+\s*(?:h|heures?|min(?:ute)?s?|mn)\.?(?:\s*\d+\s*(?:min(?:ute)?s?|mn)?)?)`

var (
	prepClassSelectors = []string{
		"[class*='prep-time']", "[class*='prepTime']", "[class*='preparation-time']",
		"[class*='temps-preparation']", "[class*='prep_time']",
	}
	cookClassSelectors = []string{
		"[class*='cook-time']", "[class*='cookTime']", "[class*='cooking-time']",
		"[class*='temps-cuisson']", "[class*='cook_time']",
	}
	servingsClassSelectors = []string{
		"[class*='servings']", "[class*='yield']", "[class*='portions']",
		"[class*='nb-personnes']", "[class*='nombre-personnes']",
	}

	prepTextRe     = regexp.MustCompile(`(?i)pr[ée]paration\s*:?\s*` + durationFragment)
	cookTextRe     = regexp.MustCompile(`(?i)cuisson\s*:?\s*` + durationFragment)
	servingsTextRe = regexp.MustCompile(`(?i)pour\s+(\d+)\s*(?:personnes?|pers\.?|portions?|parts?|convives?)`)
	servingsAltRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:personnes|portions|parts)\b`)
)

// fillMetadata finds prep, cook and servings from itemprop attributes, then
// class name patterns, then a scan of the page text.
func fillMetadata(page *Page, c *recipe.Candidate) {
	doc := page.Doc

	c.PrepMinutes = durationBySelectors(doc, append([]string{"[itemprop='prepTime']"}, prepClassSelectors...))
	c.CookMinutes = durationBySelectors(doc, append([]string{"[itemprop='cookTime']"}, cookClassSelectors...))
	c.Servings = servingsBySelectors(doc, append([]string{"[itemprop='recipeYield']"}, servingsClassSelectors...))

	if c.PrepMinutes != nil && c.CookMinutes != nil && c.Servings != nil {
		return
	}

	for _, text := range pageTexts(page) {
		if c.PrepMinutes == nil {
			c.PrepMinutes = durationByRegex(text, prepTextRe)
		}
		if c.CookMinutes == nil {
			c.CookMinutes = durationByRegex(text, cookTextRe)
		}
		if c.Servings == nil {
			c.Servings = servingsByRegex(text)
		}
	}
}

func durationBySelectors(doc *goquery.Document, selectors []string) *int {
	for _, sel := range selectors {
		var found *int
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m, ok := textparse.ParseTimeText(propValue(s)); ok {
				found = &m
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func servingsBySelectors(doc *goquery.Document, selectors []string) *int {
	for _, sel := range selectors {
		var found *int
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if n, ok := textparse.ParseServings(propValue(s)); ok {
				found = &n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func durationByRegex(text string, re *regexp.Regexp) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if v, ok := textparse.ParseTimeText(m[1]); ok {
		return &v
	}
	return nil
}

func servingsByRegex(text string) *int {
	for _, re := range []*regexp.Regexp{servingsTextRe, servingsAltRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, ok := textparse.ParseServings(m[1]); ok {
				return &n
			}
		}
	}
	return nil
}

// pageTexts returns the readable main content first, then the whole body,
// so sidebar recipes do not win over the page's own figures.
func pageTexts(page *Page) []string {
	var texts []string
	if article := articleText(page); article != "" {
		texts = append(texts, article)
	}
	if body := nodeText(page.Doc.Find("body")); body != "" {
		texts = append(texts, body)
	}
	return texts
}

func articleText(page *Page) string {
	if page.HTML == "" {
		return ""
	}
	var pageURL *url.URL
	if u, err := url.Parse(page.URL); err == nil {
		pageURL = u
	}
	article, err := readability.FromReader(strings.NewReader(page.HTML), pageURL)
	if err != nil {
		return ""
	}
	return textparse.CollapseSpaces(article.TextContent)
}
