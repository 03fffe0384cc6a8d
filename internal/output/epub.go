package output

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/rs/zerolog"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

// GenerateEPUB writes the book to outputDir and returns the file path.
func GenerateEPUB(book *Book, outputDir string, logger *zerolog.Logger) (string, error) {
	if len(book.Recipes) == 0 {
		return "", fmt.Errorf("no recipes to include in EPUB")
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	e, err := epub.NewEpub(book.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPUB: %w", err)
	}

	e.SetAuthor(book.Author)
	if book.Description != "" {
		e.SetDescription(book.Description)
	} else {
		e.SetDescription(fmt.Sprintf("Livre de recettes - %d recettes", len(book.Recipes)))
	}
	if book.Lang != "" {
		e.SetLang(book.Lang)
	}
	if book.Identifier != "" {
		e.SetIdentifier(book.Identifier)
	}

	for _, ch := range book.Chapters() {
		if _, err := e.AddSection(formatChapterHTML(ch), ch.Title, "", ""); err != nil {
			logger.Warn().Err(err).Str("category", string(ch.Category)).Msg("Failed to add chapter")
			continue
		}
		for _, r := range ch.Recipes {
			if _, err := e.AddSection(formatRecipeHTML(r), r.Title, "", ""); err != nil {
				logger.Warn().Err(err).Str("title", r.Title).Msg("Failed to add recipe")
			}
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	fullPath := filepath.Join(outputDir, SanitizeFilename(book.Title)+".epub")
	if err := e.Write(fullPath); err != nil {
		return "", fmt.Errorf("failed to write EPUB: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		logger.Info().Str("path", fullPath).Str("size", FormatFileSize(info.Size())).Int("recipes", len(book.Recipes)).Msg("EPUB generated")
	}
	return fullPath, nil
}

func formatChapterHTML(ch Chapter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1 class=\"chapter-title\">%s</h1>\n<ul>\n", html.EscapeString(ch.Title))
	for _, r := range ch.Recipes {
		fmt.Fprintf(&b, "  <li>%s</li>\n", html.EscapeString(r.Title))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func formatRecipeHTML(r recipe.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1 class=\"recipe-title\">%s</h1>\n", html.EscapeString(r.Title))

	if meta := metaLine(r); meta != "" {
		fmt.Fprintf(&b, "<p class=\"recipe-meta\">%s</p>\n", html.EscapeString(meta))
	}

	b.WriteString("<h2>Ingrédients</h2>\n<ul>\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  <li>%s</li>\n", html.EscapeString(ingredientLine(ing)))
	}
	b.WriteString("</ul>\n")

	b.WriteString("<h2>Préparation</h2>\n<ol>\n")
	for _, step := range r.Instructions {
		fmt.Fprintf(&b, "  <li>%s</li>\n", html.EscapeString(step))
	}
	b.WriteString("</ol>\n")

	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "<p class=\"recipe-tags\">%s</p>\n", html.EscapeString(strings.Join(r.Tags, ", ")))
	}
	if r.SourceURL != "" {
		src := html.EscapeString(r.SourceURL)
		fmt.Fprintf(&b, "<p class=\"recipe-source\">Source : <a href=\"%s\">%s</a></p>\n", src, src)
	}
	return b.String()
}

func metaLine(r recipe.Recipe) string {
	parts := make([]string, 0, 3)
	if r.PrepMinutes != nil && *r.PrepMinutes > 0 {
		parts = append(parts, "Préparation : "+FormatDuration(*r.PrepMinutes))
	}
	if r.CookMinutes != nil && *r.CookMinutes > 0 {
		parts = append(parts, "Cuisson : "+FormatDuration(*r.CookMinutes))
	}
	if r.Servings != nil {
		unit := "personnes"
		if *r.Servings == 1 {
			unit = "personne"
		}
		parts = append(parts, fmt.Sprintf("%d %s", *r.Servings, unit))
	}
	return strings.Join(parts, " · ")
}

func ingredientLine(ing recipe.Ingredient) string {
	return strings.Join(strings.Fields(strings.Join([]string{ing.Quantity, ing.Unit, ing.Name}, " ")), " ")
}
