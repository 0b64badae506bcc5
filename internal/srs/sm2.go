package srs

import (
	"math"
	"time"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// Quality grades one answer attempt on the SM-2 scale.
type Quality int

const (
	// QualityAbandoned marks an item the learner skipped or never finished.
	QualityAbandoned Quality = 0
	// QualityWrong is an incorrect answer with no partial credit.
	QualityWrong Quality = 1
	// QualityWrongPartial is an incorrect answer where the learner recovered
	// part of the answer.
	QualityWrongPartial Quality = 2
	// QualityCorrectHard is a correct answer after two or more wrong attempts
	// or with a hint.
	QualityCorrectHard Quality = 3
	// QualityCorrectHesitant is a correct answer with exactly one wrong
	// attempt and no hint.
	QualityCorrectHesitant Quality = 4
	// QualityPerfect is a first-try correct answer without a hint.
	QualityPerfect Quality = 5
)

// passThreshold separates passing from failing answers.
const passThreshold = QualityCorrectHard

// maxIntervalDays caps the review interval at roughly a century. The interval
// grows geometrically on a pass streak, and past this point the nanosecond
// arithmetic behind the next review time would overflow.
const maxIntervalDays = 36500

// Pass reports whether the quality counts as a successful recall.
func (q Quality) Pass() bool { return q >= passThreshold }

// DeriveQuality maps an item's final verdict onto the quality scale.
// attempts is the total number of submissions for the item, so a first-try
// correct answer arrives with attempts == 1. Callers without a partial-credit
// signal pass partial == false.
func DeriveQuality(correct bool, attempts int32, hintUsed, partial bool) Quality {
	if correct {
		switch {
		case attempts <= 1 && !hintUsed:
			return QualityPerfect
		case attempts == 2 && !hintUsed:
			return QualityCorrectHesitant
		default:
			return QualityCorrectHard
		}
	}
	if partial {
		return QualityWrongPartial
	}
	return QualityWrong
}

// Update applies one graded answer to a memory record and returns the new
// record state; the input is not modified and the caller persists the result.
//
// On a pass the easiness factor moves by the SM-2 delta
// EF' = EF + 0.1 - (5-q)*(0.08 + (5-q)*0.02), floored at 1.3, and the interval
// progresses 1, 6, then interval*EF'. On a fail the repetition streak and
// interval reset while the easiness factor keeps its value.
func Update(rec entity.MemoryRecord, q Quality, now time.Time) (entity.MemoryRecord, error) {
	if q < QualityAbandoned || q > QualityPerfect {
		return entity.MemoryRecord{}, entity.ErrInvalidQuality
	}

	if q.Pass() {
		shift := float64(QualityPerfect - q)
		ef := rec.EasinessFactor + 0.1 - shift*(0.08+shift*0.02)
		if ef < entity.MinEasinessFactor {
			ef = entity.MinEasinessFactor
		}
		rec.EasinessFactor = ef
		rec.RepetitionCount++
		switch rec.RepetitionCount {
		case 1:
			rec.IntervalDays = 1
		case 2:
			rec.IntervalDays = 6
		default:
			rec.IntervalDays *= ef
			if rec.IntervalDays > maxIntervalDays {
				rec.IntervalDays = maxIntervalDays
			}
		}
		rec.CorrectCount++
	} else {
		rec.RepetitionCount = 0
		rec.IntervalDays = 1
		rec.IncorrectCount++
	}

	last := now
	next := now.Add(time.Duration(rec.IntervalDays * float64(24*time.Hour)))
	rec.LastReviewAt = &last
	rec.NextReviewAt = &next
	rec.MemoryStrength = storedStrength(rec.RepetitionCount, rec.EasinessFactor)
	rec.UpdatedAt = now

	return rec, nil
}

// storedStrength is the retention estimate immediately after a review, when
// the recency factor is 1.
func storedStrength(repetitions int32, easiness float64) float64 {
	rep := float64(repetitions)
	s := rep / (rep + 2) * (easiness / entity.DefaultEasinessFactor)
	return math.Min(1, s)
}

// EffectiveStrength is the read-time retention estimate: the stored strength
// decayed linearly over twice the scheduled interval. Recomputing at read
// time substitutes for a background decay job.
func EffectiveStrength(rec *entity.MemoryRecord, now time.Time) float64 {
	if rec == nil || rec.LastReviewAt == nil || rec.IntervalDays <= 0 {
		return 0
	}
	elapsedDays := now.Sub(*rec.LastReviewAt).Hours() / 24
	decay := 1 - elapsedDays/(rec.IntervalDays*2)
	if decay <= 0 {
		return 0
	}
	if decay > 1 {
		decay = 1
	}
	return rec.MemoryStrength * decay
}
