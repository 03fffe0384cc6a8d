package extractor

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
	"github.com/marcosevegrand/recipe-import/internal/urlguard"
)

const (
	logKeyDomain = "domain"
	logKeyRule   = "rule"
)

// Rule extracts a candidate from a page of one known site. A rule returns nil
// when the page does not have the expected shape.
type Rule func(page *Page) *recipe.Candidate

type siteEntry struct {
	domain string
	name   string
	rule   Rule
}

// SiteRegistry dispatches to a per-domain rule. Rule panics are recovered
// and reported as NotFound.
type SiteRegistry struct {
	entries []siteEntry
	logger  *zerolog.Logger
}

// NewSiteRegistry returns a registry holding the built-in rules.
func NewSiteRegistry(logger *zerolog.Logger) *SiteRegistry {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	r := &SiteRegistry{logger: logger}
	registerBuiltinRules(r)
	return r
}

// Register adds a rule for domain and its subdomains. Rules registered later
// take precedence, so configured selectors override built-ins.
func (r *SiteRegistry) Register(domain, name string, rule Rule) {
	r.entries = append([]siteEntry{{domain: domain, name: name, rule: rule}}, r.entries...)
}

// Has reports whether a rule exists for domain.
func (r *SiteRegistry) Has(domain string) bool {
	_, ok := r.lookup(domain)
	return ok
}

func (r *SiteRegistry) lookup(domain string) (siteEntry, bool) {
	for _, e := range r.entries {
		if urlguard.MatchesDomain(domain, e.domain) {
			return e, true
		}
	}
	return siteEntry{}, false
}

func (r *SiteRegistry) Name() string {
	return "site_specific"
}

func (r *SiteRegistry) Extract(page *Page) (res Result) {
	entry, ok := r.lookup(page.Domain)
	if !ok {
		return Result{Kind: NotFound, Strategy: r.Name()}
	}

	name := r.Name() + ":" + entry.name
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn().
				Str(logKeyDomain, page.Domain).
				Str(logKeyRule, entry.name).
				Str("panic", fmt.Sprint(rec)).
				Msg("site rule panicked")
			res = Result{Kind: NotFound, Strategy: name}
		}
	}()

	return NewResult(name, entry.rule(page))
}

// SelectorRule extracts fields with plain CSS selectors. It backs the
// per-domain rules declared in configuration.
type SelectorRule struct {
	Title            string
	Ingredients      string
	Instructions     string
	PrepTime         string
	CookTime         string
	Servings         string
	ExcludeSelectors []string
}

// Extract applies the selectors to a copy of the document with excluded
// elements removed.
func (s SelectorRule) Extract(page *Page) *recipe.Candidate {
	content := page.Doc.Selection.Clone()
	for _, exclude := range s.ExcludeSelectors {
		content.Find(exclude).Remove()
	}
	content.Find("script, style, noscript").Remove()

	c := &recipe.Candidate{}
	if s.Title != "" {
		c.Title = nodeText(content.Find(s.Title).First())
	}
	if s.Ingredients != "" {
		c.Ingredients = parseIngredients(selectorLines(content, s.Ingredients))
	}
	if s.Instructions != "" {
		for _, line := range selectorLines(content, s.Instructions) {
			if step := textparse.StripStepMarker(line); step != "" {
				c.Instructions = append(c.Instructions, step)
			}
		}
	}
	if s.PrepTime != "" {
		if m, ok := textparse.ParseTimeText(propValue(content.Find(s.PrepTime).First())); ok {
			c.PrepMinutes = &m
		}
	}
	if s.CookTime != "" {
		if m, ok := textparse.ParseTimeText(propValue(content.Find(s.CookTime).First())); ok {
			c.CookMinutes = &m
		}
	}
	if s.Servings != "" {
		if n, ok := textparse.ParseServings(propValue(content.Find(s.Servings).First())); ok {
			c.Servings = &n
		}
	}
	return c
}

func selectorLines(root *goquery.Selection, selector string) []string {
	var lines []string
	root.Find(selector).Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, nodeText(s))
	})
	return uniqueLines(lines)
}
