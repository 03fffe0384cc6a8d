package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

const libraryVersion = 1

type libraryFile struct {
	Version int            `json:"version"`
	Recipes []StoredRecipe `json:"recipes"`
}

// FileStore is a MemoryStore persisted to a JSON file after every write.
type FileStore struct {
	*MemoryStore
	path string
}

// OpenFileStore loads the library at path. A missing file yields an empty library.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{MemoryStore: NewMemoryStore(), path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	var lib libraryFile
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library %s: %w", path, err)
	}
	for _, sr := range lib.Recipes {
		if sr.ID == "" {
			continue
		}
		s.insertLocked(sr)
	}
	return s, nil
}

// AddRecette stores r and rewrites the library file. The recipe is not kept
// when the file cannot be written.
func (s *FileStore) AddRecette(_ context.Context, r *recipe.Recipe) (string, error) {
	if r == nil {
		return "", fmt.Errorf("add recipe: nil recipe")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.recipes)
	id, err := s.addLocked(r)
	if err != nil {
		return id, err
	}
	if err := s.saveLocked(); err != nil {
		s.rollbackLocked(before)
		return "", err
	}
	return id, nil
}

func (s *FileStore) rollbackLocked(n int) {
	for _, sr := range s.recipes[n:] {
		delete(s.byID, sr.ID)
		delete(s.bySrc, sr.SourceURL)
	}
	s.recipes = s.recipes[:n]
}

// saveLocked writes to a temporary file then renames it over the library.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(libraryFile{Version: libraryVersion, Recipes: s.snapshot()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".library-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write library: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace library: %w", err)
	}
	return nil
}

// Path returns the library file location.
func (s *FileStore) Path() string {
	return s.path
}
