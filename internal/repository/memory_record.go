package repository

import (
	"context"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// MemoryRecordRepository abstracts persistence for per-learner memory records
// to keep the usecases storage agnostic.
type MemoryRecordRepository interface {
	// Get returns the record for a learner+item pair, or
	// entity.ErrMemoryRecordNotFound.
	Get(ctx context.Context, learnerID, itemID int64) (*entity.MemoryRecord, error)
	// MapBySet returns the learner's records for all items of a set, keyed by
	// item ID. Items never attempted have no entry.
	MapBySet(ctx context.Context, learnerID, setID int64) (map[int64]*entity.MemoryRecord, error)
	Create(ctx context.Context, rec *entity.MemoryRecord) (*entity.MemoryRecord, error)
	// Update persists a mutated record. It compares the record's Version
	// against the stored row and returns entity.ErrRecordConflict when another
	// writer got there first; the caller re-reads and recomputes.
	Update(ctx context.Context, rec *entity.MemoryRecord) (*entity.MemoryRecord, error)
}
