package srs

import (
	"time"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// MasteredThreshold is the effective strength at which a single word counts
// as mastered.
const MasteredThreshold = 0.8

// Evaluate aggregates the learner's memory records into a mastery verdict for
// a set of totalItems words. Items without a record count as strength zero.
func Evaluate(records map[int64]*entity.MemoryRecord, totalItems int, targetMastery float64, now time.Time) (entity.MasteryStatus, error) {
	if totalItems <= 0 {
		return entity.MasteryStatus{}, entity.ErrEmptyVocabularySet
	}

	var sum float64
	var mastered int32
	for _, rec := range records {
		s := EffectiveStrength(rec, now)
		sum += s
		if s >= MasteredThreshold {
			mastered++
		}
	}

	current := sum / float64(totalItems)
	return entity.MasteryStatus{
		CurrentMastery: current,
		TargetMastery:  targetMastery,
		Achieved:       current >= targetMastery,
		WordsMastered:  mastered,
		TotalWords:     int32(totalItems),
	}, nil
}
