package extractor

import (
	"regexp"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

const maxInstructionDepth = 8

var (
	lineBreakTagRe = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</div>`)
	inlineStepRe   = regexp.MustCompile(`(?:^|\s)\d{1,2}[.)]\s+`)
)

// flattenInstructions walks strings, arrays, HowToStep and HowToSection
// objects in document order and returns one entry per step. Sections are
// recognised by their itemListElement, whatever their @type says.
func flattenInstructions(v any) []string {
	var out []string

	var walk func(v any, depth int)
	walk = func(v any, depth int) {
		if depth > maxInstructionDepth {
			return
		}
		switch t := v.(type) {
		case string:
			out = append(out, splitInstructionText(t)...)
		case []any:
			for _, item := range t {
				walk(item, depth+1)
			}
		case map[string]any:
			if list, ok := t["itemListElement"]; ok && list != nil {
				walk(list, depth+1)
				return
			}
			if text := stringValue(t["text"]); text != "" {
				out = append(out, splitInstructionText(text)...)
				return
			}
			if name := stringValue(t["name"]); name != "" {
				out = append(out, splitInstructionText(name)...)
			}
		}
	}
	walk(v, 0)

	steps := make([]string, 0, len(out))
	for _, s := range out {
		if s = textparse.StripStepMarker(s); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// splitInstructionText splits a text blob on line breaks, or on inline
// "1. ... 2. ..." markers when it is a single line.
func splitInstructionText(s string) []string {
	s = lineBreakTagRe.ReplaceAllString(s, "\n")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = textparse.CollapseSpaces(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != 1 {
		return lines
	}
	return splitNumbered(lines[0])
}

func splitNumbered(s string) []string {
	locs := inlineStepRe.FindAllStringIndex(s, -1)
	if len(locs) < 2 {
		return []string{s}
	}

	var parts []string
	if pre := strings.TrimSpace(s[:locs[0][0]]); pre != "" {
		parts = append(parts, pre)
	}
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if part := strings.TrimSpace(s[loc[1]:end]); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
