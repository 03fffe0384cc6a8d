package textparse

import (
	"regexp"
	"sort"
	"strings"
)

// unitVariants maps each canonical unit to the spellings found on French recipe sites.
var unitVariants = map[string][]string{
	"g":       {"g", "gr", "gr.", "gramme", "grammes"},
	"kg":      {"kg", "kilo", "kilos", "kilogramme", "kilogrammes"},
	"mg":      {"mg", "milligramme", "milligrammes"},
	"ml":      {"ml", "millilitre", "millilitres"},
	"cl":      {"cl", "centilitre", "centilitres"},
	"dl":      {"dl", "décilitre", "décilitres", "decilitre", "decilitres"},
	"l":       {"l", "litre", "litres"},
	"c. à s.": {"c. à s.", "c.à.s.", "c. à soupe", "càs", "cas", "cs", "c.s.", "cuillère à soupe", "cuillères à soupe", "cuillere a soupe", "cuilleres a soupe", "cuil. à soupe", "cuill. à soupe", "tbsp", "tablespoon", "tablespoons"},
	"c. à c.": {"c. à c.", "c.à.c.", "c. à café", "càc", "cac", "cc", "c.c.", "cuillère à café", "cuillères à café", "cuillere a cafe", "cuilleres a cafe", "cuil. à café", "cuill. à café", "tsp", "teaspoon", "teaspoons"},
	"pincée":  {"pincée", "pincées", "pincee", "pincees"},
	"gousse":  {"gousse", "gousses"},
	"tranche": {"tranche", "tranches"},
	"sachet":  {"sachet", "sachets"},
	"verre":   {"verre", "verres"},
	"tasse":   {"tasse", "tasses", "cup", "cups"},
	"bol":     {"bol", "bols"},
	"boîte":   {"boîte", "boîtes", "boite", "boites"},
	"botte":   {"botte", "bottes"},
	"bouquet": {"bouquet", "bouquets"},
	"branche": {"branche", "branches"},
	"brin":    {"brin", "brins"},
	"feuille": {"feuille", "feuilles"},
	"morceau": {"morceau", "morceaux"},
	"pot":     {"pot", "pots"},
	"noix":    {"noix"},
	"poignée": {"poignée", "poignées", "poignee", "poignees"},
	"zeste":   {"zeste", "zestes"},
	"oz":      {"oz"},
	"lb":      {"lb", "lbs"},
}

var (
	// compactUnits is keyed by lower-cased variants with all spaces removed.
	compactUnits = buildCompactUnits()

	// unitPattern matches any known unit variant, longest first.
	unitPattern = buildUnitPattern()
)

func buildCompactUnits() map[string]string {
	m := make(map[string]string)
	for canonical, variants := range unitVariants {
		m[compactKey(canonical)] = canonical
		for _, v := range variants {
			m[compactKey(v)] = canonical
		}
	}
	return m
}

func buildUnitPattern() string {
	var all []string
	for _, variants := range unitVariants {
		all = append(all, variants...)
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i]) != len(all[j]) {
			return len(all[i]) > len(all[j])
		}
		return all[i] < all[j]
	})

	parts := make([]string, 0, len(all))
	for _, v := range all {
		parts = append(parts, strings.ReplaceAll(regexp.QuoteMeta(v), " ", `\s*`))
	}
	return strings.Join(parts, "|")
}

func compactKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// NormalizeUnit maps a unit spelling to its canonical form. Unknown units are
// returned trimmed but otherwise unchanged.
func NormalizeUnit(unit string) string {
	unit = strings.TrimSpace(unit)
	if canonical, ok := compactUnits[compactKey(unit)]; ok {
		return canonical
	}
	// tolerate a missing abbreviation dot, "c. à s" for "c. à s."
	if canonical, ok := compactUnits[compactKey(unit)+"."]; ok {
		return canonical
	}
	return unit
}
