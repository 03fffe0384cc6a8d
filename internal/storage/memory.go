package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

// MemoryStore keeps recipes in insertion order. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes []StoredRecipe
	byID    map[string]int
	bySrc   map[string]string

	now   func() time.Time
	newID func() (string, error)
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]int),
		bySrc: make(map[string]string),
		now:   time.Now,
		newID: newUUID,
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func (s *MemoryStore) CountRecettes(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes), nil
}

// AddRecette stores a copy of r and returns its new ID. A recipe whose source
// URL is already stored is rejected with ErrDuplicate.
func (s *MemoryStore) AddRecette(_ context.Context, r *recipe.Recipe) (string, error) {
	if r == nil {
		return "", fmt.Errorf("add recipe: nil recipe")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(r)
}

func (s *MemoryStore) addLocked(r *recipe.Recipe) (string, error) {
	if r.SourceURL != "" {
		if id, ok := s.bySrc[r.SourceURL]; ok {
			return id, fmt.Errorf("%w: %s", ErrDuplicate, r.SourceURL)
		}
	}

	id, err := s.newID()
	if err != nil {
		return "", err
	}
	now := s.now().UTC()
	s.insertLocked(StoredRecipe{ID: id, Recipe: cloneRecipe(*r), CreatedAt: now, UpdatedAt: now})
	return id, nil
}

func (s *MemoryStore) insertLocked(sr StoredRecipe) {
	s.byID[sr.ID] = len(s.recipes)
	if sr.SourceURL != "" {
		s.bySrc[sr.SourceURL] = sr.ID
	}
	s.recipes = append(s.recipes, sr)
}

func (s *MemoryStore) GetRecetteByID(_ context.Context, id string) (*StoredRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sr := s.recipes[i]
	sr.Recipe = cloneRecipe(sr.Recipe)
	return &sr, nil
}

// ListRecettes returns matching recipes in insertion order.
func (s *MemoryStore) ListRecettes(_ context.Context, filter ListFilter) ([]StoredRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := textparse.Fold(strings.TrimSpace(filter.Query))
	out := make([]StoredRecipe, 0, len(s.recipes))
	for _, sr := range s.recipes {
		if filter.Category != "" && sr.Category != filter.Category {
			continue
		}
		if query != "" && !strings.Contains(textparse.Fold(sr.Title), query) {
			continue
		}
		sr.Recipe = cloneRecipe(sr.Recipe)
		out = append(out, sr)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) snapshot() []StoredRecipe {
	out := make([]StoredRecipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

func cloneRecipe(r recipe.Recipe) recipe.Recipe {
	r.Ingredients = append([]recipe.Ingredient(nil), r.Ingredients...)
	r.Instructions = append([]string(nil), r.Instructions...)
	r.Tags = append([]string(nil), r.Tags...)
	if r.PrepMinutes != nil {
		r.PrepMinutes = recipe.IntPtr(*r.PrepMinutes)
	}
	if r.CookMinutes != nil {
		r.CookMinutes = recipe.IntPtr(*r.CookMinutes)
	}
	if r.Servings != nil {
		r.Servings = recipe.IntPtr(*r.Servings)
	}
	return r
}
