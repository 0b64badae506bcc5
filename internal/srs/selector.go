package srs

import (
	"sort"
	"time"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// Target tier shares of the requested batch size. The due and weak shares are
// caps; unused capacity rolls over to the next tier.
const (
	dueSharePercent  = 50
	weakSharePercent = 30
)

// Select builds an ordered practice batch of at most count items:
//
//  1. due records (next review time passed), most overdue first;
//  2. not-yet-due records ordered by weakest effective strength;
//  3. never-attempted items in set order.
//
// Shortfall in one tier rolls over to the next; when every tier runs dry the
// batch is simply shorter than count. Identical inputs always yield the same
// batch.
func Select(records map[int64]*entity.MemoryRecord, items []entity.VocabularyItem, count int, now time.Time) ([]entity.VocabularyItem, error) {
	if count < 1 {
		return nil, entity.ErrInvalidBatchSize
	}

	var due, weak, fresh []entity.VocabularyItem
	for _, item := range items {
		rec, ok := records[item.ID]
		switch {
		case !ok || rec.LastReviewAt == nil:
			fresh = append(fresh, item)
		case rec.Due(now):
			due = append(due, item)
		default:
			weak = append(weak, item)
		}
	}

	// Ties break on item ID so the order is stable across calls.
	sort.SliceStable(due, func(i, j int) bool {
		ti, tj := *records[due[i].ID].NextReviewAt, *records[due[j].ID].NextReviewAt
		if ti.Equal(tj) {
			return due[i].ID < due[j].ID
		}
		return ti.Before(tj)
	})
	sort.SliceStable(weak, func(i, j int) bool {
		si := EffectiveStrength(records[weak[i].ID], now)
		sj := EffectiveStrength(records[weak[j].ID], now)
		if si == sj {
			return weak[i].ID < weak[j].ID
		}
		return si < sj
	})

	dueQuota := share(count, dueSharePercent)
	if dueQuota > count {
		dueQuota = count
	}

	batch := make([]entity.VocabularyItem, 0, count)
	batch, due = take(batch, due, dueQuota)

	// Unused due capacity rolls into the weak quota.
	weakQuota := share(count, weakSharePercent) + (dueQuota - len(batch))
	batch, weak = take(batch, weak, weakQuota)

	batch, _ = take(batch, fresh, count-len(batch))

	// Remaining slots fall back to whatever is left, keeping tier priority.
	batch, _ = take(batch, due, count-len(batch))
	batch, _ = take(batch, weak, count-len(batch))

	return batch, nil
}

// share computes ceil(count * percent / 100).
func share(count, percent int) int {
	return (count*percent + 99) / 100
}

func take(dst, src []entity.VocabularyItem, n int) ([]entity.VocabularyItem, []entity.VocabularyItem) {
	if n <= 0 {
		return dst, src
	}
	if n > len(src) {
		n = len(src)
	}
	return append(dst, src[:n]...), src[n:]
}
