package entity

import "time"

// DefaultEasinessFactor is the SM-2 starting easiness for a fresh record.
const DefaultEasinessFactor = 2.5

// MinEasinessFactor is the SM-2 lower bound; updates never go below it.
const MinEasinessFactor = 1.3

// MemoryRecord tracks one learner's retention of one vocabulary item. Records
// are created lazily on first exposure and only ever mutated by the memory
// model; history is kept for analytics, never deleted.
type MemoryRecord struct {
	ID        int64
	LearnerID int64
	ItemID    int64

	// MemoryStrength is the retention estimate as of LastReviewAt. Readers
	// that care about freshness must apply the read-time decay instead of
	// using it directly (see srs.EffectiveStrength).
	MemoryStrength float64
	// RepetitionCount counts consecutive successful recalls; a failed answer
	// resets it to zero.
	RepetitionCount int32
	CorrectCount    int32
	IncorrectCount  int32
	EasinessFactor  float64
	IntervalDays    float64
	LastReviewAt    *time.Time
	NextReviewAt    *time.Time

	// Version guards against concurrent updates of the same record; the
	// repository rejects writes whose Version is stale.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMemoryRecord returns the default state for an item the learner has never
// attempted: repetition zero, strength zero, no scheduled review.
func NewMemoryRecord(learnerID, itemID int64, now time.Time) *MemoryRecord {
	return &MemoryRecord{
		LearnerID:      learnerID,
		ItemID:         itemID,
		EasinessFactor: DefaultEasinessFactor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AccuracyRate is the lifetime correct ratio, zero when there are no attempts.
func (r *MemoryRecord) AccuracyRate() float64 {
	total := r.CorrectCount + r.IncorrectCount
	if total == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(total)
}

// Due reports whether the record's scheduled review time has passed.
func (r *MemoryRecord) Due(now time.Time) bool {
	return r.NextReviewAt != nil && !r.NextReviewAt.After(now)
}

// Attempted reports whether the learner has ever answered this item.
func (r *MemoryRecord) Attempted() bool {
	return r.CorrectCount+r.IncorrectCount > 0
}
