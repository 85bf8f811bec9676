package store

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// Levels returns level keys in document order.
func (s *ProgressStore) Levels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Levels()
}

// HasLevel reports whether the level exists.
func (s *ProgressStore) HasLevel(level string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.HasLevel(level)
}

// LevelWords returns a copy of the words of a level.
func (s *ProgressStore) LevelWords(level string) ([]domain.WordRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words, ok := s.doc.Words(level)
	if !ok {
		return nil, fmt.Errorf("%q: %w", level, domain.ErrLevelNotFound)
	}
	return slices.Clone(words), nil
}

// FindWord returns a copy of the word with the given identity.
func (s *ProgressStore) FindWord(level string, id domain.Identity) (domain.WordRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words, ok := s.doc.Words(level)
	if !ok {
		return domain.WordRecord{}, fmt.Errorf("%q: %w", level, domain.ErrLevelNotFound)
	}
	i := domain.IndexOf(words, id)
	if i < 0 {
		return domain.WordRecord{}, fmt.Errorf("%s in %q: %w", id.DisplayGerman(), level, domain.ErrWordNotFound)
	}
	return words[i], nil
}

// Document returns a deep copy of the whole document.
func (s *ProgressStore) Document() *domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}
