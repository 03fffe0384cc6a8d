package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxGraphDepth = 10

// JSONLDStrategy reads the first schema.org Recipe found in JSON-LD blocks,
// following @graph and mainEntity references.
type JSONLDStrategy struct{}

func (s *JSONLDStrategy) Name() string {
	return "json_ld"
}

func (s *JSONLDStrategy) Extract(page *Page) Result {
	var found map[string]any

	page.Doc.Find(`script[type*="ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		data, ok := parseLD(sel.Text())
		if !ok {
			return true
		}
		if node := findRecipeNode(data, 0); node != nil {
			found = node
			return false
		}
		return true
	})

	if found == nil {
		return Result{Kind: NotFound, Strategy: s.Name()}
	}
	return NewResult(s.Name(), candidateFromSchema(found))
}

var ldControlChars = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// parseLD decodes a JSON-LD block. Blocks with raw newlines inside strings are
// retried once with the control characters replaced.
func parseLD(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "//<![CDATA[")
	raw = strings.TrimSuffix(raw, "//]]>")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err == nil {
		return data, true
	}
	if err := json.Unmarshal([]byte(ldControlChars.Replace(raw)), &data); err == nil {
		return data, true
	}
	return nil, false
}

func findRecipeNode(v any, depth int) map[string]any {
	if depth > maxGraphDepth {
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		if isType(t["@type"], "Recipe") {
			return t
		}
		for _, key := range []string{"@graph", "mainEntity", "mainEntityOfPage"} {
			child, ok := t[key]
			if !ok {
				continue
			}
			if node := findRecipeNode(child, depth+1); node != nil {
				return node
			}
		}
	case []any:
		for _, item := range t {
			if node := findRecipeNode(item, depth+1); node != nil {
				return node
			}
		}
	}
	return nil
}
