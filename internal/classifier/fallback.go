package classifier

import (
	"regexp"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

type fallbackMatcher struct {
	drink   *regexp.Regexp
	dessert *regexp.Regexp
	starter *regexp.Regexp
	fruit   *regexp.Regexp
	snack   *regexp.Regexp
	main    *regexp.Regexp
}

func newFallbackMatcher() *fallbackMatcher {
	return &fallbackMatcher{
		drink:   regexp.MustCompile(fallbackDrink),
		dessert: regexp.MustCompile(fallbackDessert),
		starter: regexp.MustCompile(fallbackStarter),
		fruit:   regexp.MustCompile(fallbackFruit),
		snack:   regexp.MustCompile(fallbackSnack),
		main:    regexp.MustCompile(fallbackMain),
	}
}

// match expects a folded title. A starter pattern naming fruit means a fruit
// salad or soup, which is a dessert.
func (f *fallbackMatcher) match(title string) recipe.Category {
	switch {
	case title == "":
		return recipe.CategoryOther
	case f.drink.MatchString(title):
		return recipe.CategoryDrink
	case f.dessert.MatchString(title):
		return recipe.CategoryDessert
	case f.starter.MatchString(title):
		if f.fruit.MatchString(title) {
			return recipe.CategoryDessert
		}
		return recipe.CategoryStarter
	case f.snack.MatchString(title):
		return recipe.CategorySnack
	case f.main.MatchString(title):
		return recipe.CategoryMain
	}
	return recipe.CategoryOther
}
