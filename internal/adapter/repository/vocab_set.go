package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/repository"
)

// VocabSetRepository is the sqlx-backed content store.
type VocabSetRepository struct {
	db *sqlx.DB
}

// NewVocabSetRepository constructs a sql-backed repository.
func NewVocabSetRepository(db *sqlx.DB) repository.VocabSetRepository {
	return &VocabSetRepository{db: db}
}

type vocabSetRow struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Language      string    `db:"language"`
	TargetMastery float64   `db:"target_mastery"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type vocabItemRow struct {
	ID                 int64     `db:"id"`
	SetID              int64     `db:"set_id"`
	Word               string    `db:"word"`
	Translation        string    `db:"translation"`
	ExampleSentence    string    `db:"example_sentence"`
	ExampleTranslation string    `db:"example_translation"`
	AudioURL           string    `db:"audio_url"`
	WordCount          int32     `db:"word_count"`
	MaxErrors          int32     `db:"max_errors"`
	Position           int32     `db:"position"`
	CreatedAt          time.Time `db:"created_at"`
}

func (r *VocabSetRepository) GetSet(ctx context.Context, setID int64) (*entity.VocabularySet, error) {
	var row vocabSetRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, name, language, target_mastery, created_at, updated_at FROM vocab_sets WHERE id = $1`, setID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vocab set: %w", err)
	}
	set := toSet(row)
	return &set, nil
}

func (r *VocabSetRepository) ListItems(ctx context.Context, setID int64) ([]entity.VocabularyItem, error) {
	var rows []vocabItemRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, set_id, word, translation, example_sentence, example_translation, audio_url,
		        word_count, max_errors, position, created_at
		   FROM vocab_items WHERE set_id = $1 ORDER BY position, id`, setID)
	if err != nil {
		return nil, fmt.Errorf("list vocab items: %w", err)
	}
	return lo.Map(rows, func(row vocabItemRow, _ int) entity.VocabularyItem { return toItem(row) }), nil
}

func (r *VocabSetRepository) CreateSet(ctx context.Context, set *entity.VocabularySet) (*entity.VocabularySet, error) {
	created := *set
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO vocab_sets (name, language, target_mastery, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		set.Name, set.Language, set.TargetMastery, set.CreatedAt, set.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("create vocab set: %w", err)
	}
	return &created, nil
}

func (r *VocabSetRepository) CreateItems(ctx context.Context, items []entity.VocabularyItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO vocab_items (set_id, word, translation, example_sentence, example_translation,
			                          audio_url, word_count, max_errors, position, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.SetID, item.Word, item.Translation, item.ExampleSentence, item.ExampleTranslation,
			item.AudioURL, item.WordCount, item.MaxErrors, item.Position, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert vocab item %q: %w", item.Word, err)
		}
	}
	return tx.Commit()
}

func toSet(row vocabSetRow) entity.VocabularySet {
	return entity.VocabularySet{
		ID:            row.ID,
		Name:          row.Name,
		Language:      row.Language,
		TargetMastery: row.TargetMastery,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toItem(row vocabItemRow) entity.VocabularyItem {
	return entity.VocabularyItem{
		ID:                 row.ID,
		SetID:              row.SetID,
		Word:               row.Word,
		Translation:        row.Translation,
		ExampleSentence:    row.ExampleSentence,
		ExampleTranslation: row.ExampleTranslation,
		AudioURL:           row.AudioURL,
		WordCount:          row.WordCount,
		MaxErrors:          row.MaxErrors,
		Position:           row.Position,
		CreatedAt:          row.CreatedAt,
	}
}
