package srs

import "github.com/eslsoft/vocdrill/internal/entity"

// Score computes the points for one item's final verdict. Every retry after
// the first submission costs floor(100 / wordCount / 2) points, a hint costs
// a flat 20, and the result never leaves [0,100]. An item that ran out of
// allowed errors scores zero outright.
func Score(item entity.VocabularyItem, attempts int32, hintUsed, failed bool) (int32, error) {
	if item.WordCount <= 0 {
		return 0, entity.ErrInvalidItemConfiguration
	}
	if failed {
		return 0, nil
	}

	score := int32(100)
	perError := 100 / item.WordCount / 2
	if attempts > 1 {
		score -= perError * (attempts - 1)
	}
	if hintUsed {
		score -= 20
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}
