package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/repository"
)

// MemoryRecordRepository is the sqlx-backed store for per-learner memory
// records. Concurrent writers are serialized through the version column.
type MemoryRecordRepository struct {
	db *sqlx.DB
}

// NewMemoryRecordRepository constructs a sql-backed repository.
func NewMemoryRecordRepository(db *sqlx.DB) repository.MemoryRecordRepository {
	return &MemoryRecordRepository{db: db}
}

type memoryRecordRow struct {
	ID              int64      `db:"id"`
	LearnerID       int64      `db:"learner_id"`
	ItemID          int64      `db:"item_id"`
	MemoryStrength  float64    `db:"memory_strength"`
	RepetitionCount int32      `db:"repetition_count"`
	CorrectCount    int32      `db:"correct_count"`
	IncorrectCount  int32      `db:"incorrect_count"`
	EasinessFactor  float64    `db:"easiness_factor"`
	IntervalDays    float64    `db:"interval_days"`
	LastReviewAt    *time.Time `db:"last_review_at"`
	NextReviewAt    *time.Time `db:"next_review_at"`
	Version         int64      `db:"version"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

const memoryRecordColumns = `id, learner_id, item_id, memory_strength, repetition_count, correct_count,
	incorrect_count, easiness_factor, interval_days, last_review_at, next_review_at, version, created_at, updated_at`

func (r *MemoryRecordRepository) Get(ctx context.Context, learnerID, itemID int64) (*entity.MemoryRecord, error) {
	var row memoryRecordRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+memoryRecordColumns+` FROM memory_records WHERE learner_id = $1 AND item_id = $2`,
		learnerID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrMemoryRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get memory record: %w", err)
	}
	return toRecord(row), nil
}

func (r *MemoryRecordRepository) MapBySet(ctx context.Context, learnerID, setID int64) (map[int64]*entity.MemoryRecord, error) {
	var rows []memoryRecordRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+prefixedRecordColumns("r")+`
		   FROM memory_records r
		   JOIN vocab_items i ON i.id = r.item_id
		  WHERE r.learner_id = $1 AND i.set_id = $2`,
		learnerID, setID)
	if err != nil {
		return nil, fmt.Errorf("map memory records: %w", err)
	}

	out := make(map[int64]*entity.MemoryRecord, len(rows))
	for _, row := range rows {
		out[row.ItemID] = toRecord(row)
	}
	return out, nil
}

func (r *MemoryRecordRepository) Create(ctx context.Context, rec *entity.MemoryRecord) (*entity.MemoryRecord, error) {
	created := *rec
	created.Version = 1
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO memory_records (learner_id, item_id, memory_strength, repetition_count, correct_count,
		                             incorrect_count, easiness_factor, interval_days, last_review_at,
		                             next_review_at, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`,
		rec.LearnerID, rec.ItemID, rec.MemoryStrength, rec.RepetitionCount, rec.CorrectCount,
		rec.IncorrectCount, rec.EasinessFactor, rec.IntervalDays, rec.LastReviewAt,
		rec.NextReviewAt, created.Version, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			// Another writer created the record first; the caller re-reads.
			return nil, entity.ErrRecordConflict
		}
		return nil, fmt.Errorf("create memory record: %w", err)
	}
	return &created, nil
}

func (r *MemoryRecordRepository) Update(ctx context.Context, rec *entity.MemoryRecord) (*entity.MemoryRecord, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE memory_records
		    SET memory_strength = $1, repetition_count = $2, correct_count = $3, incorrect_count = $4,
		        easiness_factor = $5, interval_days = $6, last_review_at = $7, next_review_at = $8,
		        version = version + 1, updated_at = $9
		  WHERE learner_id = $10 AND item_id = $11 AND version = $12`,
		rec.MemoryStrength, rec.RepetitionCount, rec.CorrectCount, rec.IncorrectCount,
		rec.EasinessFactor, rec.IntervalDays, rec.LastReviewAt, rec.NextReviewAt,
		rec.UpdatedAt, rec.LearnerID, rec.ItemID, rec.Version)
	if err != nil {
		return nil, fmt.Errorf("update memory record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update memory record: %w", err)
	}
	if affected == 0 {
		// Either the row vanished or someone else bumped the version.
		if _, err := r.Get(ctx, rec.LearnerID, rec.ItemID); errors.Is(err, entity.ErrMemoryRecordNotFound) {
			return nil, entity.ErrMemoryRecordNotFound
		}
		return nil, entity.ErrRecordConflict
	}

	updated := *rec
	updated.Version = rec.Version + 1
	return &updated, nil
}

func toRecord(row memoryRecordRow) *entity.MemoryRecord {
	return &entity.MemoryRecord{
		ID:              row.ID,
		LearnerID:       row.LearnerID,
		ItemID:          row.ItemID,
		MemoryStrength:  row.MemoryStrength,
		RepetitionCount: row.RepetitionCount,
		CorrectCount:    row.CorrectCount,
		IncorrectCount:  row.IncorrectCount,
		EasinessFactor:  row.EasinessFactor,
		IntervalDays:    row.IntervalDays,
		LastReviewAt:    row.LastReviewAt,
		NextReviewAt:    row.NextReviewAt,
		Version:         row.Version,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func prefixedRecordColumns(alias string) string {
	return alias + `.id, ` + alias + `.learner_id, ` + alias + `.item_id, ` + alias + `.memory_strength, ` +
		alias + `.repetition_count, ` + alias + `.correct_count, ` + alias + `.incorrect_count, ` +
		alias + `.easiness_factor, ` + alias + `.interval_days, ` + alias + `.last_review_at, ` +
		alias + `.next_review_at, ` + alias + `.version, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
