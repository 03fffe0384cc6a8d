package textparse

import (
	"regexp"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

const numberPattern = `\d+(?:[.,]\d+)?`

// partitive matches "de ", "des ", "du " and "d'" between unit and name.
const partitive = `(?:(?:de|des|du)\s+|d['’]\s*)?`

var (
	rangeRe = regexp.MustCompile(`(?i)^(` + numberPattern + `)\s*(?:-|–|à|ou)\s*(` + numberPattern + `)\s*(?:(` + unitPattern + `)\.?\s+)?` + partitive + `(.+)$`)

	vagueRe = regexp.MustCompile(`(?i)^(un\s+peu|(?:une?\s+)?pincée|quelques\s+gouttes|quelques\s+brins|quelques\s+feuilles|quelques|un\s+filet|une\s+poignée|une\s+noix|un\s+trait|un\s+soupçon|une\s+pointe|un\s+zeste)\s+` + partitive + `(.+)$`)

	unitRe = regexp.MustCompile(`(?i)^(` + numberPattern + `)\s*(` + unitPattern + `)\.?\s+` + partitive + `(.+)$`)

	bareRe = regexp.MustCompile(`^(` + numberPattern + `)\s+(.+)$`)

	bulletRe = regexp.MustCompile(`^[-–•*·▪]\s*`)
)

// ParseIngredientLine splits one ingredient line into quantity, unit and name.
// Patterns are tried in order: range, vague amount, number+unit, bare number.
// A line matching none keeps its whole text as the name.
func ParseIngredientLine(line string) recipe.Ingredient {
	line = CollapseSpaces(NormalizeFractions(line))
	line = strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
	if line == "" {
		return recipe.Ingredient{}
	}

	if m := rangeRe.FindStringSubmatch(line); m != nil {
		low, okLow := parseNumber(m[1])
		high, okHigh := parseNumber(m[2])
		if okLow && okHigh {
			return recipe.Ingredient{
				Quantity: FormatNumber((low + high) / 2),
				Unit:     unitOrEmpty(m[3]),
				Name:     cleanName(m[4]),
			}
		}
	}

	if m := vagueRe.FindStringSubmatch(line); m != nil {
		return recipe.Ingredient{
			Unit: CollapseSpaces(m[1]),
			Name: cleanName(m[2]),
		}
	}

	if m := unitRe.FindStringSubmatch(line); m != nil {
		return recipe.Ingredient{
			Quantity: m[1],
			Unit:     NormalizeUnit(m[2]),
			Name:     cleanName(m[3]),
		}
	}

	if m := bareRe.FindStringSubmatch(line); m != nil {
		return recipe.Ingredient{
			Quantity: m[1],
			Name:     cleanName(m[2]),
		}
	}

	return recipe.Ingredient{Name: cleanName(line)}
}

func unitOrEmpty(unit string) string {
	if strings.TrimSpace(unit) == "" {
		return ""
	}
	return NormalizeUnit(unit)
}

func cleanName(name string) string {
	return strings.TrimSpace(strings.TrimRight(CollapseSpaces(name), ",;"))
}
