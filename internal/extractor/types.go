// Package extractor turns a parsed recipe page into candidates. Each strategy
// reads the same DOM and reports a tagged Result; the importer decides how to
// combine them.
package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/urlguard"
)

// Page is a fetched document ready for extraction.
type Page struct {
	Doc    *goquery.Document
	URL    string
	Domain string
	HTML   string
}

// NewPage parses rawHTML once so every strategy shares the same tree.
func NewPage(rawHTML, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{
		Doc:    doc,
		URL:    pageURL,
		Domain: urlguard.Domain(pageURL),
		HTML:   rawHTML,
	}, nil
}

// Kind tags how much a strategy found.
type Kind int

const (
	// NotFound means the strategy produced nothing.
	NotFound Kind = iota
	// Partial means some fields were found but the candidate is not usable on its own.
	Partial
	// Usable means title, ingredients and instructions are all present.
	Usable
)

func (k Kind) String() string {
	switch k {
	case Usable:
		return "usable"
	case Partial:
		return "partial"
	default:
		return "not_found"
	}
}

// Result is the outcome of one strategy.
type Result struct {
	Kind      Kind
	Candidate *recipe.Candidate
	Strategy  string
	// Score is the heuristic confidence, zero for other strategies.
	Score int
}

// NewResult classifies c. A nil or empty candidate yields NotFound.
func NewResult(strategy string, c *recipe.Candidate) Result {
	switch {
	case c.Empty():
		return Result{Kind: NotFound, Strategy: strategy}
	case c.Usable():
		return Result{Kind: Usable, Candidate: c, Strategy: strategy}
	default:
		return Result{Kind: Partial, Candidate: c, Strategy: strategy}
	}
}

// Found reports whether the result carries a candidate.
func (r Result) Found() bool {
	return r.Kind != NotFound && r.Candidate != nil
}

// Strategy is one extraction method.
type Strategy interface {
	Extract(page *Page) Result
	Name() string
}

// Chain tries strategies in order and returns the first usable result.
// When none is usable the first partial result wins.
type Chain struct {
	Strategies []Strategy
	name       string
}

// NewChain builds a named chain.
func NewChain(name string, strategies ...Strategy) *Chain {
	return &Chain{Strategies: strategies, name: name}
}

func (c *Chain) Name() string {
	return c.name
}

func (c *Chain) Extract(page *Page) Result {
	var partial *Result
	for _, s := range c.Strategies {
		res := s.Extract(page)
		if res.Kind == Usable {
			return res
		}
		if res.Kind == Partial && partial == nil {
			r := res
			partial = &r
		}
	}
	if partial != nil {
		return *partial
	}
	return Result{Kind: NotFound, Strategy: c.name}
}
