package recipe

// Category is the coarse meal type assigned after cleaning.
type Category string

const (
	CategoryStarter Category = "entrée"
	CategoryMain    Category = "plat"
	CategoryDessert Category = "dessert"
	CategorySnack   Category = "snack"
	CategoryDrink   Category = "boisson"
	CategoryOther   Category = "autre"
)

// ScoredCategories lists the categories that take part in scoring, in tie-break order.
var ScoredCategories = []Category{
	CategoryStarter,
	CategoryMain,
	CategoryDessert,
	CategorySnack,
	CategoryDrink,
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStarter, CategoryMain, CategoryDessert, CategorySnack, CategoryDrink, CategoryOther:
		return true
	}
	return false
}
