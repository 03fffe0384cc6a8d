package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

// recipeNode wraps the itemscope element of a microdata Recipe.
type recipeNode struct {
	*goquery.Selection
}

// props returns the elements carrying name that belong to this item, skipping
// properties of nested items such as an author Person.
func (n recipeNode) props(name string) *goquery.Selection {
	return n.Find(`[itemprop~="` + name + `"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Parent().Closest("[itemscope]").IsSelection(n.Selection)
	})
}

func (n recipeNode) propValue(names ...string) string {
	for _, name := range names {
		if v := propValue(n.props(name).First()); v != "" {
			return v
		}
	}
	return ""
}

func (n recipeNode) propValues(names ...string) []string {
	var out []string
	for _, name := range names {
		n.props(name).Each(func(_ int, s *goquery.Selection) {
			if v := propValue(s); v != "" {
				out = append(out, v)
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	return out
}

// instructionSteps handles both one element per step and a container holding
// li or nested itemprop="text" children.
func (n recipeNode) instructionSteps() []string {
	var steps []string
	n.props("recipeInstructions").Each(func(_ int, s *goquery.Selection) {
		if texts := s.Find(`[itemprop="text"]`); texts.Length() > 0 {
			texts.Each(func(_ int, t *goquery.Selection) {
				steps = append(steps, nodeText(t))
			})
			return
		}
		if items := s.Find("li"); items.Length() > 0 {
			items.Each(func(_ int, li *goquery.Selection) {
				steps = append(steps, nodeText(li))
			})
			return
		}
		if goquery.NodeName(s) == "meta" {
			steps = append(steps, splitInstructionText(propValue(s))...)
			return
		}
		html, err := s.Html()
		if err != nil {
			html = nodeText(s)
		}
		for _, line := range splitInstructionText(html) {
			steps = append(steps, stripInlineTags(line))
		}
	})

	out := make([]string, 0, len(steps))
	for _, step := range steps {
		if step = textparse.StripStepMarker(textparse.CollapseSpaces(step)); step != "" {
			out = append(out, step)
		}
	}
	return out
}

func stripInlineTags(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return nodeText(doc.Selection)
}

// MicrodataStrategy reads an itemscope element typed as schema.org Recipe.
type MicrodataStrategy struct{}

func (s *MicrodataStrategy) Name() string {
	return "microdata"
}

func (s *MicrodataStrategy) Extract(page *Page) Result {
	root := page.Doc.Find(`[itemscope][itemtype*="Recipe"], [itemscope][itemtype*="recipe"]`).First()
	if root.Length() == 0 {
		return Result{Kind: NotFound, Strategy: s.Name()}
	}
	node := recipeNode{root}

	c := &recipe.Candidate{
		Title:        node.propValue("name", "headline"),
		Ingredients:  parseIngredients(node.propValues("recipeIngredient", "ingredients")),
		Instructions: node.instructionSteps(),
	}

	prep := durationProp(node, "prepTime")
	cook := durationProp(node, "cookTime")
	total := durationProp(node, "totalTime")
	c.PrepMinutes, c.CookMinutes = textparse.DeriveTimes(prep, cook, total)

	if n, ok := textparse.ParseServings(node.propValue("recipeYield", "yield")); ok {
		c.Servings = &n
	}
	for _, tag := range node.propValues("recipeCategory") {
		c.AddTag(tag)
	}
	for _, tag := range node.propValues("recipeCuisine") {
		c.AddTag(tag)
	}

	return NewResult(s.Name(), c)
}

func durationProp(node recipeNode, name string) *int {
	v := node.propValue(name)
	if v == "" {
		return nil
	}
	if m, ok := textparse.ParseTimeText(v); ok {
		return &m
	}
	return nil
}

// NewStructuredDataStrategy returns JSON-LD first, then microdata.
func NewStructuredDataStrategy() *Chain {
	return NewChain("structured_data", &JSONLDStrategy{}, &MicrodataStrategy{})
}
