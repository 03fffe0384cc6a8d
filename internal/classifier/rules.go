package classifier

import (
	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

// keyword is one weighted phrase. Exclusive phrases almost always name the
// category on their own and get a bonus when they appear in the title.
type keyword struct {
	phrase    string
	weight    int
	exclusive bool
}

type rule struct {
	category recipe.Category
	keywords []keyword
	negative []string
}

var defaultRules = []rule{
	{
		category: recipe.CategoryStarter,
		keywords: []keyword{
			{"entrée", 3, true},
			{"velouté", 3, true},
			{"soupe", 3, false},
			{"potage", 3, true},
			{"gaspacho", 3, true},
			{"salade", 2, false},
			{"terrine", 2, false},
			{"carpaccio", 2, false},
			{"verrine", 2, false},
			{"bouillon", 2, false},
			{"crudités", 2, true},
			{"œuf mimosa", 3, true},
		},
		negative: []string{"fruits", "dessert", "sucré"},
	},
	{
		category: recipe.CategoryMain,
		keywords: []keyword{
			{"poulet", 2, false},
			{"bœuf", 2, false},
			{"porc", 2, false},
			{"veau", 2, false},
			{"agneau", 2, false},
			{"canard", 2, false},
			{"saumon", 2, false},
			{"poisson", 2, false},
			{"cabillaud", 2, false},
			{"gratin", 2, false},
			{"curry", 2, false},
			{"quiche", 2, false},
			{"pizza", 2, false},
			{"pâtes", 2, false},
			{"steak", 2, false},
			{"rôti", 2, false},
			{"lasagnes", 3, true},
			{"risotto", 3, true},
			{"tajine", 3, true},
			{"couscous", 3, true},
			{"blanquette", 3, true},
			{"bourguignon", 3, true},
			{"hachis parmentier", 3, true},
			{"riz", 1, false},
			{"omelette", 1, false},
		},
		negative: []string{"dessert", "gâteau", "cocktail"},
	},
	{
		category: recipe.CategoryDessert,
		keywords: []keyword{
			{"dessert", 3, true},
			{"gâteau", 3, true},
			{"tarte tatin", 3, true},
			{"tarte", 2, false},
			{"cake", 2, false},
			{"cookies", 3, true},
			{"brownie", 3, true},
			{"mousse au chocolat", 3, true},
			{"crème brûlée", 3, true},
			{"tiramisu", 3, true},
			{"clafoutis", 3, true},
			{"sorbet", 3, true},
			{"macarons", 3, true},
			{"madeleines", 3, true},
			{"panna cotta", 3, true},
			{"crêpes", 2, false},
			{"gaufres", 2, false},
			{"muffins", 2, false},
			{"fondant", 2, false},
			{"glace", 2, false},
			{"compote", 2, false},
			{"flan", 2, false},
			{"meringue", 2, false},
			{"chocolat", 1, false},
			{"sucre", 1, false},
			{"pommes", 1, false},
		},
		negative: []string{"salé", "salée", "quiche", "pizza"},
	},
	{
		category: recipe.CategorySnack,
		keywords: []keyword{
			{"snack", 3, true},
			{"apéritif", 3, true},
			{"apéro", 3, true},
			{"amuse-bouche", 3, true},
			{"barre de céréales", 3, true},
			{"toast", 2, false},
			{"tartine", 2, false},
			{"sandwich", 2, false},
			{"wrap", 2, false},
			{"chips", 2, false},
			{"houmous", 2, false},
			{"feuilletés", 2, false},
			{"gougères", 2, false},
			{"croque-monsieur", 2, false},
			{"burger", 2, false},
			{"goûter", 2, false},
		},
	},
	{
		category: recipe.CategoryDrink,
		keywords: []keyword{
			{"boisson", 3, true},
			{"cocktail", 3, true},
			{"smoothie", 3, true},
			{"limonade", 3, true},
			{"milkshake", 3, true},
			{"mojito", 3, true},
			{"sangria", 3, true},
			{"chocolat chaud", 3, true},
			{"jus", 2, false},
			{"sirop", 2, false},
			{"thé", 2, false},
			{"café", 2, false},
			{"infusion", 2, false},
			{"punch", 2, false},
			{"lait", 1, false},
		},
		negative: []string{"gâteau", "sauce", "tarte", "mousse"},
	},
}

// Fallback patterns run against the folded title in this order.
var (
	fallbackDrink   = `\b(?:boissons?|cocktails?|smoothies?|jus|sirops?|limonades?|the|cafe|infusions?|lait de poule)\b`
	fallbackDessert = `\b(?:gateaux?|tartes?|cakes?|biscuits?|sables?|cremes?|mousses?|glaces?|sorbets?|chocolat|caramel|confitures?|beignets?|brioches?|sucres?)\b`
	fallbackStarter = `\b(?:soupes?|veloutes?|salades?|potages?|terrines?|verrines?|bouillons?)\b`
	fallbackFruit   = `\bfruits?\b`
	fallbackSnack   = `\b(?:aperitifs?|tapas|toasts?|crackers?|dips?|tartinades?|bouchees?|canapes?|mini)\b`
	fallbackMain    = `\b(?:poulet|boeuf|porc|veau|agneau|dinde|canard|lapin|poissons?|saumon|thon|crevettes?|moules|jambon|saucisses?|lardons|riz|pates|spaghettis?|tagliatelles?|gnocchis?|pommes de terre|lentilles|haricots|gratin|parmentier|ragout|mijote)\b`
)
