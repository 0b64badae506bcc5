package srs

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/eslsoft/vocdrill/internal/entity"
)

func strongRecord(itemID int64, strength float64) *entity.MemoryRecord {
	last := testNow
	next := testNow.Add(30 * 24 * time.Hour)
	return &entity.MemoryRecord{
		ItemID:          itemID,
		MemoryStrength:  strength,
		RepetitionCount: 5,
		CorrectCount:    5,
		EasinessFactor:  2.5,
		IntervalDays:    30,
		LastReviewAt:    &last,
		NextReviewAt:    &next,
	}
}

func TestEvaluateEmptySet(t *testing.T) {
	if _, err := Evaluate(nil, 0, 0.8, testNow); !errors.Is(err, entity.ErrEmptyVocabularySet) {
		t.Fatalf("error = %v, want ErrEmptyVocabularySet", err)
	}
}

func TestEvaluateAllMastered(t *testing.T) {
	records := map[int64]*entity.MemoryRecord{}
	for i := int64(1); i <= 4; i++ {
		records[i] = strongRecord(i, 1)
	}

	status, err := Evaluate(records, 4, 0.8, testNow)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if status.CurrentMastery != 1 {
		t.Errorf("current mastery = %v, want 1", status.CurrentMastery)
	}
	if !status.Achieved {
		t.Error("achieved = false, want true")
	}
	if status.WordsMastered != 4 || status.TotalWords != 4 {
		t.Errorf("mastered/total = %d/%d, want 4/4", status.WordsMastered, status.TotalWords)
	}
}

func TestEvaluateUnattemptedCountAsZero(t *testing.T) {
	records := map[int64]*entity.MemoryRecord{
		1: strongRecord(1, 1),
	}

	status, err := Evaluate(records, 4, 0.8, testNow)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(status.CurrentMastery-0.25) > epsilon {
		t.Errorf("current mastery = %v, want 0.25", status.CurrentMastery)
	}
	if status.Achieved {
		t.Error("achieved = true, want false")
	}
	if status.WordsMastered != 1 {
		t.Errorf("words mastered = %d, want 1", status.WordsMastered)
	}
}

func TestEvaluateBounds(t *testing.T) {
	records := map[int64]*entity.MemoryRecord{}
	for i := int64(1); i <= 10; i++ {
		records[i] = strongRecord(i, float64(i)/10)
	}
	status, err := Evaluate(records, 10, 0.5, testNow)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if status.CurrentMastery < 0 || status.CurrentMastery > 1 {
		t.Errorf("current mastery out of [0,1]: %v", status.CurrentMastery)
	}
}
