package srs

import (
	"errors"
	"testing"

	"github.com/eslsoft/vocdrill/internal/entity"
)

func TestScore(t *testing.T) {
	item := entity.VocabularyItem{ID: 1, WordCount: 5, MaxErrors: 3}

	tests := []struct {
		name     string
		item     entity.VocabularyItem
		attempts int32
		hint     bool
		failed   bool
		want     int32
	}{
		{"first try", item, 1, false, false, 100},
		{"one retry", item, 2, false, false, 90},
		{"two retries", item, 3, false, false, 80},
		{"hint", item, 1, true, false, 80},
		{"retry plus hint", item, 2, true, false, 70},
		{"failed scores zero", item, 3, false, true, 0},
		{"short sentence heavy penalty", entity.VocabularyItem{WordCount: 1}, 3, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.item, tt.attempts, tt.hint, tt.failed)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if got != tt.want {
				t.Fatalf("score = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("score out of [0,100]: %d", got)
			}
		})
	}
}

func TestScoreInvalidWordCount(t *testing.T) {
	_, err := Score(entity.VocabularyItem{WordCount: 0}, 1, false, false)
	if !errors.Is(err, entity.ErrInvalidItemConfiguration) {
		t.Fatalf("error = %v, want ErrInvalidItemConfiguration", err)
	}
}
