// Package output renders the recipe library as an EPUB cookbook.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

// Book is a cookbook with its metadata and recipes.
type Book struct {
	Title       string
	Author      string
	Description string
	Lang        string
	Identifier  string
	Recipes     []recipe.Recipe
	CreatedAt   time.Time
}

// NewBook creates a French cookbook with a fresh identifier.
func NewBook(title, author string) *Book {
	return &Book{
		Title:      title,
		Author:     author,
		Lang:       "fr",
		Recipes:    make([]recipe.Recipe, 0),
		CreatedAt:  time.Now(),
		Identifier: GenerateUUID(),
	}
}

// AddRecipe appends a recipe to the book.
func (b *Book) AddRecipe(r recipe.Recipe) {
	b.Recipes = append(b.Recipes, r)
}

// Chapter groups the recipes of one category.
type Chapter struct {
	Category recipe.Category
	Title    string
	Recipes  []recipe.Recipe
}

var chapterOrder = []recipe.Category{
	recipe.CategoryStarter,
	recipe.CategoryMain,
	recipe.CategoryDessert,
	recipe.CategorySnack,
	recipe.CategoryDrink,
	recipe.CategoryOther,
}

var chapterTitles = map[recipe.Category]string{
	recipe.CategoryStarter: "Entrées",
	recipe.CategoryMain:    "Plats",
	recipe.CategoryDessert: "Desserts",
	recipe.CategorySnack:   "Snacks",
	recipe.CategoryDrink:   "Boissons",
	recipe.CategoryOther:   "Autres",
}

// Chapters groups the recipes by category. Empty categories are omitted and
// recipes keep their order inside a chapter.
func (b *Book) Chapters() []Chapter {
	byCategory := make(map[recipe.Category][]recipe.Recipe)
	for _, r := range b.Recipes {
		cat := r.Category
		if !cat.Valid() {
			cat = recipe.CategoryOther
		}
		byCategory[cat] = append(byCategory[cat], r)
	}

	chapters := make([]Chapter, 0, len(byCategory))
	for _, cat := range chapterOrder {
		if len(byCategory[cat]) == 0 {
			continue
		}
		chapters = append(chapters, Chapter{
			Category: cat,
			Title:    chapterTitles[cat],
			Recipes:  byCategory[cat],
		})
	}
	return chapters
}

// GenerateUUID generates a unique identifier for the book
func GenerateUUID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("urn:uuid:generated-%d", time.Now().UnixNano())
	}
	return "urn:uuid:" + id.String()
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(name string) string {
	invalid := []string{"\\", "/", ":", "*", "?", "\"", "<", ">", "|"}
	result := strings.TrimSpace(name)
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "")
	}

	result = strings.ReplaceAll(result, " ", "_")

	if runes := []rune(result); len(runes) > 100 {
		result = string(runes[:100])
	}

	if result == "" {
		result = "livre_de_recettes"
	}

	return result
}

// FormatFileSize formats a file size in bytes to human-readable format
func FormatFileSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// FormatDuration formats minutes the way French recipe sites do: "45 min", "1 h", "1 h 30".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	mins := minutes % 60

	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %02d", hours, mins)
}
