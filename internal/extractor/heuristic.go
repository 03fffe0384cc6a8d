package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

// HeuristicOptions tunes the DOM heuristics.
type HeuristicOptions struct {
	MinConfidence   int
	MaxIngredients  int
	MaxInstructions int
}

// DefaultHeuristicOptions returns the thresholds used in production.
func DefaultHeuristicOptions() HeuristicOptions {
	return HeuristicOptions{
		MinConfidence:   60,
		MaxIngredients:  50,
		MaxInstructions: 30,
	}
}

const (
	minTitleLength = 4
	maxTitleLength = 200
	maxLineLength  = 600

	minSelectorIngredients  = 3
	minSelectorInstructions = 2
)

var titleSelectors = []string{
	".wprm-recipe-name",
	".tasty-recipes-title",
	".recipe-title",
	".recipe__title",
	"h1.entry-title",
	"h1.post-title",
	"[itemprop='name']",
	"[itemprop='headline']",
	"article h1",
	"main h1",
	"h1",
	".entry-title",
	".post-title",
}

var ingredientSelectors = []string{
	".wprm-recipe-ingredient",
	".tasty-recipes-ingredients li",
	".recipe-ingredients li",
	".recipe__ingredients li",
	".ingredients-list li",
	".ingredient-list li",
	".ingredients li",
	"#ingredients li",
	"ul[class*='ingredient'] li",
	"[class*='ingredient'] li",
	"li[class*='ingredient']",
}

var instructionListSelectors = []string{
	".wprm-recipe-instruction",
	".tasty-recipes-instructions li",
	".recipe-instructions ol li",
	".recipe-instructions li",
	".recipe__instructions li",
	".instructions ol li",
	".instructions li",
	".preparation ol li",
	".recipe-preparation li",
	"#instructions li",
	"#preparation li",
	"ol[class*='instruction'] li",
	"ol[class*='step'] li",
	"[class*='instruction'] ol li",
	"[class*='preparation'] ol li",
	"[class*='step'] ol li",
}

var instructionParagraphSelectors = []string{
	"[class*='instruction'] p",
	"[class*='preparation'] p",
	"[class*='step'] p",
	"#instructions p",
	"#preparation p",
}

// HeuristicStrategy reads recipes from arbitrary markup: common class names
// first, then the content following "Ingrédients" and "Préparation" headings.
type HeuristicStrategy struct {
	opts HeuristicOptions
}

// NewHeuristicStrategy builds the strategy, filling zero options with defaults.
func NewHeuristicStrategy(opts HeuristicOptions) *HeuristicStrategy {
	def := DefaultHeuristicOptions()
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = def.MinConfidence
	}
	if opts.MaxIngredients <= 0 {
		opts.MaxIngredients = def.MaxIngredients
	}
	if opts.MaxInstructions <= 0 {
		opts.MaxInstructions = def.MaxInstructions
	}
	return &HeuristicStrategy{opts: opts}
}

func (s *HeuristicStrategy) Name() string {
	return "heuristic"
}

// Extract reports NotFound unless a title, one ingredient and one instruction
// were found and the confidence reaches MinConfidence.
func (s *HeuristicStrategy) Extract(page *Page) Result {
	c := &recipe.Candidate{
		Title:        extractTitle(page.Doc),
		Ingredients:  parseIngredients(s.ingredientLines(page.Doc)),
		Instructions: s.instructionLines(page.Doc),
	}
	fillMetadata(page, c)

	score := Confidence(c)
	if c.Title == "" || len(c.Ingredients) == 0 || len(c.Instructions) == 0 || score < s.opts.MinConfidence {
		return Result{Kind: NotFound, Strategy: s.Name(), Score: score}
	}

	res := NewResult(s.Name(), c)
	res.Score = score
	return res
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		title := nodeText(doc.Find(sel).First())
		if n := runeLen(title); n >= minTitleLength && n < maxTitleLength {
			return title
		}
	}

	title := nodeText(doc.Find("title").First())
	for _, sep := range []string{"|", " - ", " – ", " — "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
		}
	}
	title = strings.TrimSpace(title)
	if n := runeLen(title); n >= minTitleLength && n < maxTitleLength {
		return title
	}
	return ""
}

func (s *HeuristicStrategy) ingredientLines(doc *goquery.Document) []string {
	if lines := linesBySelectors(doc, ingredientSelectors, minSelectorIngredients); len(lines) > 0 {
		return capLines(lines, s.opts.MaxIngredients)
	}
	return capLines(walkSection(doc, ingredientHeadings, collectIngredientItems, minSelectorIngredients), s.opts.MaxIngredients)
}

func (s *HeuristicStrategy) instructionLines(doc *goquery.Document) []string {
	lines := linesBySelectors(doc, instructionListSelectors, minSelectorInstructions)
	if len(lines) == 0 {
		lines = linesBySelectors(doc, instructionParagraphSelectors, minSelectorInstructions)
	}
	if len(lines) == 0 {
		lines = walkSection(doc, instructionHeadings, collectInstructionItems, 0)
	}

	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		if step := textparse.StripStepMarker(line); step != "" {
			steps = append(steps, step)
		}
	}
	return capLines(steps, s.opts.MaxInstructions)
}

// linesBySelectors returns the lines of the first selector matching at least min elements.
func linesBySelectors(doc *goquery.Document, selectors []string, min int) []string {
	for _, sel := range selectors {
		var lines []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if isAd(s) {
				return
			}
			if t := nodeText(s); t != "" && runeLen(t) <= maxLineLength {
				lines = append(lines, t)
			}
		})
		lines = uniqueLines(lines)
		if len(lines) >= min {
			return lines
		}
	}
	return nil
}

var adTokens = []string{"advert", "sponsor", "adsbygoogle", "publicite", "publicité"}

// isAd flags advertising blocks by class/id tokens or visible label.
func isAd(s *goquery.Selection) bool {
	attrs := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
	for _, tok := range strings.Fields(attrs) {
		if tok == "ad" || tok == "ads" || tok == "pub" || strings.HasPrefix(tok, "ad-") || strings.HasPrefix(tok, "ads-") || strings.HasPrefix(tok, "pub-") {
			return true
		}
		for _, marker := range adTokens {
			if strings.Contains(tok, marker) {
				return true
			}
		}
	}
	label := textparse.Fold(nodeText(s))
	return strings.HasPrefix(label, "publicite") || strings.HasPrefix(label, "advertisement") || strings.HasPrefix(label, "sponsorise")
}
