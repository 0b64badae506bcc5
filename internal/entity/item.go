package entity

import (
	"strings"
	"time"
)

// VocabularySet groups vocabulary items and carries the mastery target the
// learner has to reach. Authoring happens outside the engine; the engine only
// reads sets.
type VocabularySet struct {
	ID            int64
	Name          string
	Language      string
	TargetMastery float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// VocabularyItem is one practisable entry of a set. Items are immutable from
// the engine's point of view.
type VocabularyItem struct {
	ID                 int64
	SetID              int64
	Word               string
	Translation        string
	ExampleSentence    string
	ExampleTranslation string
	AudioURL           string
	// WordCount is the token count of ExampleSentence, used by scoring.
	WordCount int32
	// MaxErrors is how many wrong selections are allowed before the item is
	// marked failed for the current attempt.
	MaxErrors int32
	Position  int32
	CreatedAt time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (s *VocabularySet) Normalize(now time.Time) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Language == "" {
		s.Language = "en"
	}
	if s.TargetMastery <= 0 || s.TargetMastery > 1 {
		s.TargetMastery = 0.8
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// Normalize fills derived fields the authoring side may leave empty.
func (it *VocabularyItem) Normalize(now time.Time) {
	it.Word = strings.TrimSpace(it.Word)
	it.ExampleSentence = strings.TrimSpace(it.ExampleSentence)
	if it.WordCount <= 0 {
		it.WordCount = int32(len(strings.Fields(it.ExampleSentence)))
	}
	if it.WordCount <= 0 {
		it.WordCount = 1
	}
	if it.MaxErrors <= 0 {
		it.MaxErrors = 3
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = now
	}
}
