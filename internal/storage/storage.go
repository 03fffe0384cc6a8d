// Package storage keeps the recipe library. The memory store backs tests and
// dry runs; the file store persists the library as one JSON document.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

var (
	// ErrNotFound indicates no recipe has the requested ID.
	ErrNotFound = errors.New("recipe not found")

	// ErrDuplicate indicates a recipe from the same source URL is already stored.
	ErrDuplicate = errors.New("recipe already in library")
)

// StoredRecipe is a recipe with its library identity.
type StoredRecipe struct {
	ID string `json:"id"`
	recipe.Recipe
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilter narrows ListRecettes. Zero values match everything.
type ListFilter struct {
	Category recipe.Category
	// Query matches titles ignoring case and accents.
	Query string
	Limit int
}

// Store is the library used by the import commands.
type Store interface {
	CountRecettes(ctx context.Context) (int, error)
	AddRecette(ctx context.Context, r *recipe.Recipe) (string, error)
	GetRecetteByID(ctx context.Context, id string) (*StoredRecipe, error)
	ListRecettes(ctx context.Context, filter ListFilter) ([]StoredRecipe, error)
}
