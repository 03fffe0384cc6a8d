package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "table": true, "tbody": true,
	"section": true, "article": true, "header": true, "footer": true,
	"dt": true, "dd": true, "figure": true, "figcaption": true, "blockquote": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "svg": true,
}

// nodeText renders the text of sel with spaces at block boundaries, so
// "<li><p>200 g</p><p>farine</p></li>" reads "200 g farine".
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(&b, n)
	}
	return textparse.CollapseSpaces(b.String())
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

// propValue reads a value the way microdata and meta tags expose it.
func propValue(sel *goquery.Selection) string {
	switch goquery.NodeName(sel) {
	case "meta":
		return strings.TrimSpace(sel.AttrOr("content", ""))
	case "time":
		if v, ok := sel.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	case "a", "link":
		return strings.TrimSpace(sel.AttrOr("href", ""))
	case "data", "meter":
		return strings.TrimSpace(sel.AttrOr("value", ""))
	}
	if v, ok := sel.Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return nodeText(sel)
}

func metaContent(doc *goquery.Document, key string) string {
	if v, ok := doc.Find(`meta[property="` + key + `"]`).First().Attr("content"); ok {
		return textparse.CollapseSpaces(v)
	}
	if v, ok := doc.Find(`meta[name="` + key + `"]`).First().Attr("content"); ok {
		return textparse.CollapseSpaces(v)
	}
	return ""
}

func uniqueLines(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = textparse.CollapseSpaces(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func capLines(lines []string, max int) []string {
	if max > 0 && len(lines) > max {
		return lines[:max]
	}
	return lines
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func parseIngredients(lines []string) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, len(lines))
	for _, line := range lines {
		ing := textparse.ParseIngredientLine(line)
		if ing.Name == "" {
			continue
		}
		out = append(out, ing)
	}
	return out
}
