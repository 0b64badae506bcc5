package srs

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/eslsoft/vocdrill/internal/entity"
)

const epsilon = 1e-9

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func freshRecord() entity.MemoryRecord {
	return *entity.NewMemoryRecord(1, 10, testNow.Add(-time.Hour))
}

func TestDeriveQuality(t *testing.T) {
	tests := []struct {
		name     string
		correct  bool
		attempts int32
		hint     bool
		partial  bool
		want     Quality
	}{
		{"first try no hint", true, 1, false, false, QualityPerfect},
		{"one wrong attempt", true, 2, false, false, QualityCorrectHesitant},
		{"two wrong attempts", true, 3, false, false, QualityCorrectHard},
		{"first try with hint", true, 1, true, false, QualityCorrectHard},
		{"wrong no credit", false, 2, false, false, QualityWrong},
		{"wrong partial credit", false, 2, false, true, QualityWrongPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveQuality(tt.correct, tt.attempts, tt.hint, tt.partial); got != tt.want {
				t.Fatalf("DeriveQuality() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateFreshPerfect(t *testing.T) {
	rec, err := Update(freshRecord(), QualityPerfect, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.RepetitionCount != 1 {
		t.Errorf("repetition count = %d, want 1", rec.RepetitionCount)
	}
	if rec.IntervalDays != 1 {
		t.Errorf("interval = %v, want 1", rec.IntervalDays)
	}
	if math.Abs(rec.EasinessFactor-2.6) > epsilon {
		t.Errorf("easiness = %v, want 2.6", rec.EasinessFactor)
	}
	if rec.CorrectCount != 1 || rec.IncorrectCount != 0 {
		t.Errorf("counters = %d/%d, want 1/0", rec.CorrectCount, rec.IncorrectCount)
	}
	if got := rec.AccuracyRate(); got != 1 {
		t.Errorf("accuracy = %v, want 1", got)
	}
	wantNext := testNow.Add(24 * time.Hour)
	if rec.NextReviewAt == nil || !rec.NextReviewAt.Equal(wantNext) {
		t.Errorf("next review = %v, want %v", rec.NextReviewAt, wantNext)
	}
	wantStrength := (1.0 / 3.0) * (2.6 / 2.5)
	if math.Abs(rec.MemoryStrength-wantStrength) > epsilon {
		t.Errorf("strength = %v, want %v", rec.MemoryStrength, wantStrength)
	}
}

func TestUpdateIntervalProgression(t *testing.T) {
	rec := freshRecord()
	want := []float64{1, 6, 6 * 2.8}
	for i, wantInterval := range want {
		var err error
		rec, err = Update(rec, QualityPerfect, testNow.AddDate(0, 0, i*7))
		if err != nil {
			t.Fatalf("Update #%d: %v", i+1, err)
		}
		if math.Abs(rec.IntervalDays-wantInterval) > epsilon {
			t.Fatalf("interval after pass #%d = %v, want %v", i+1, rec.IntervalDays, wantInterval)
		}
	}
}

func TestUpdateLongStreakSchedulesForward(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 20; i++ {
		var err error
		now := testNow.AddDate(0, 0, i)
		rec, err = Update(rec, QualityPerfect, now)
		if err != nil {
			t.Fatalf("Update #%d: %v", i+1, err)
		}
		if rec.IntervalDays > maxIntervalDays {
			t.Fatalf("interval after pass #%d = %v, want at most %d", i+1, rec.IntervalDays, maxIntervalDays)
		}
		if !rec.NextReviewAt.After(*rec.LastReviewAt) {
			t.Fatalf("next review after pass #%d = %v is not after last review %v (interval %v)",
				i+1, rec.NextReviewAt, rec.LastReviewAt, rec.IntervalDays)
		}
	}
}

func TestUpdateEasinessFloor(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 30; i++ {
		var err error
		// Quality 3 shrinks the easiness factor on every pass.
		rec, err = Update(rec, QualityCorrectHard, testNow.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("Update #%d: %v", i+1, err)
		}
		if rec.EasinessFactor < entity.MinEasinessFactor {
			t.Fatalf("easiness dropped below floor after %d updates: %v", i+1, rec.EasinessFactor)
		}
	}
	if math.Abs(rec.EasinessFactor-entity.MinEasinessFactor) > epsilon {
		t.Errorf("easiness = %v, want to settle at %v", rec.EasinessFactor, entity.MinEasinessFactor)
	}
}

func TestUpdateFailResetsRepetition(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 4; i++ {
		var err error
		rec, err = Update(rec, QualityPerfect, testNow.AddDate(0, 0, i))
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	efBefore := rec.EasinessFactor

	for _, q := range []Quality{QualityAbandoned, QualityWrong, QualityWrongPartial} {
		failed, err := Update(rec, q, testNow.AddDate(0, 0, 10))
		if err != nil {
			t.Fatalf("Update(q=%d): %v", q, err)
		}
		if failed.RepetitionCount != 0 {
			t.Errorf("q=%d: repetition count = %d, want 0", q, failed.RepetitionCount)
		}
		if failed.IntervalDays != 1 {
			t.Errorf("q=%d: interval = %v, want 1", q, failed.IntervalDays)
		}
		if failed.EasinessFactor != efBefore {
			t.Errorf("q=%d: easiness changed on fail: %v -> %v", q, efBefore, failed.EasinessFactor)
		}
		if failed.IncorrectCount != rec.IncorrectCount+1 {
			t.Errorf("q=%d: incorrect count = %d, want %d", q, failed.IncorrectCount, rec.IncorrectCount+1)
		}
	}
}

func TestUpdateInvalidQuality(t *testing.T) {
	for _, q := range []Quality{-1, 6, 42} {
		if _, err := Update(freshRecord(), q, testNow); !errors.Is(err, entity.ErrInvalidQuality) {
			t.Errorf("Update(q=%d) error = %v, want ErrInvalidQuality", q, err)
		}
	}
}

func TestEffectiveStrength(t *testing.T) {
	rec, err := Update(freshRecord(), QualityPerfect, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	rec, err = Update(rec, QualityPerfect, testNow)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Interval is now 6 days; decay window is twice that.
	stored := rec.MemoryStrength

	if got := EffectiveStrength(&rec, testNow); math.Abs(got-stored) > epsilon {
		t.Errorf("strength immediately after review = %v, want %v", got, stored)
	}
	halfway := testNow.Add(6 * 24 * time.Hour)
	if got := EffectiveStrength(&rec, halfway); math.Abs(got-stored/2) > epsilon {
		t.Errorf("strength at interval = %v, want %v", got, stored/2)
	}
	expired := testNow.Add(13 * 24 * time.Hour)
	if got := EffectiveStrength(&rec, expired); got != 0 {
		t.Errorf("strength past decay window = %v, want 0", got)
	}

	if got := EffectiveStrength(nil, testNow); got != 0 {
		t.Errorf("strength of nil record = %v, want 0", got)
	}
	never := entity.NewMemoryRecord(1, 2, testNow)
	if got := EffectiveStrength(never, testNow); got != 0 {
		t.Errorf("strength of unattempted record = %v, want 0", got)
	}
}
