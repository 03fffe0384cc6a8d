package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

var (
	stepNumberRe    = regexp.MustCompile(`^\d+$`)
	factMinutesRe   = regexp.MustCompile(`^\s*\d+\s*min\s*$`)
	ogTitleSuffixRe = regexp.MustCompile(`\s+[|–-]\s+[^|–-]+$`)
)

func registerBuiltinRules(r *SiteRegistry) {
	r.Register("750g.com", "750g", selector750g.Extract)
	r.Register("hfresh.info", "hfresh", hfreshRule)
	r.Register("jow.fr", "jow", nextDataRule)
	r.Register("marmiton.org", "marmiton", nextDataRule)
}

var selector750g = SelectorRule{
	Title:            "h1.c-article__title, h1",
	Ingredients:      ".recipe-ingredients-item-label, .recipe-ingredients li",
	Instructions:     ".recipe-steps-text, .recipe-steps li",
	PrepTime:         ".recipe-steps-info-item--preparation, [class*='time-preparation']",
	CookTime:         ".recipe-steps-info-item--cooking, [class*='time-cooking']",
	Servings:         ".recipe-ingredients-servings, [class*='servings']",
	ExcludeSelectors: []string{".c-related", "aside", "nav", "footer"},
}

// hfreshRule reads the utility-class layout of hfresh recipe pages: ingredient
// rows pair an image alt with a quantity paragraph, steps start with a number.
func hfreshRule(page *Page) *recipe.Candidate {
	doc := page.Doc
	c := &recipe.Candidate{
		Title: metaContent(doc, "og:title"),
	}
	if c.Title == "" {
		c.Title = nodeText(doc.Find("h1").First())
	}
	c.Title = ogTitleSuffixRe.ReplaceAllString(c.Title, "")

	seen := map[string]struct{}{}
	doc.Find("div.flex.items-center.gap-3").Each(func(_ int, row *goquery.Selection) {
		name := textparse.CollapseSpaces(row.Find("img[alt]").First().AttrOr("alt", ""))
		if name == "" {
			return
		}
		ps := row.Find("p")
		if ps.Length() < 2 {
			return
		}
		qty := nodeText(ps.Last())
		if qty == "" || !strings.ContainsAny(qty, "0123456789") {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}

		ing := textparse.ParseIngredientLine(qty + " " + name)
		if ing.Name != name {
			ing = recipe.Ingredient{Quantity: qty, Name: name}
		}
		c.Ingredients = append(c.Ingredients, ing)
	})

	doc.Find("div.flex.gap-4").Each(func(_ int, block *goquery.Selection) {
		if !stepNumberRe.MatchString(nodeText(block.Children().First())) {
			return
		}
		content := block.Children().Eq(1)
		if content.Length() == 0 {
			return
		}

		var bullets []string
		content.Find("ul li").Each(func(_ int, li *goquery.Selection) {
			bullets = append(bullets, nodeText(li))
		})
		bullets = uniqueLines(bullets)
		if len(bullets) > 0 {
			c.Instructions = append(c.Instructions, strings.Join(bullets, " "))
			return
		}
		if title := nodeText(content.Find("p").First()); title != "" {
			c.Instructions = append(c.Instructions, title)
		}
	})

	var prep, cook, total *int
	doc.Find("span").Each(func(_ int, s *goquery.Selection) {
		t := nodeText(s)
		if !factMinutesRe.MatchString(t) {
			return
		}
		m, ok := textparse.ParseTimeText(t)
		if !ok {
			return
		}
		slot := &total
		switch label := timeLabel(s); {
		case strings.Contains(label, "prép"), strings.Contains(label, "prep"):
			slot = &prep
		case strings.Contains(label, "cuisson"), strings.Contains(label, "cook"):
			slot = &cook
		}
		if *slot == nil {
			*slot = &m
		}
	})
	c.PrepMinutes, c.CookMinutes = textparse.DeriveTimes(prep, cook, total)

	return c
}

// timeLabelMaxLen bounds the parent text read as a label so that a span
// sitting directly in a large container does not pick up unrelated words.
const timeLabelMaxLen = 80

// timeLabel returns the lowercased caption around a time value: the previous
// sibling element, or the enclosing fact block when it is short.
func timeLabel(s *goquery.Selection) string {
	if prev := nodeText(s.Prev()); prev != "" {
		return strings.ToLower(prev)
	}
	if parent := nodeText(s.Parent()); len(parent) <= timeLabelMaxLen {
		return strings.ToLower(parent)
	}
	return ""
}
