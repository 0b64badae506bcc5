package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/vocdrill/internal/entity"
	dbtypes "github.com/eslsoft/vocdrill/internal/infrastructure/database/types"
	"github.com/eslsoft/vocdrill/internal/repository"
)

// PracticeSessionRepository is the sqlx-backed session store. The batch state
// and the answer log travel as JSON columns; the session row is the unit of
// update.
type PracticeSessionRepository struct {
	db *sqlx.DB
}

// NewPracticeSessionRepository constructs a sql-backed repository.
func NewPracticeSessionRepository(db *sqlx.DB) repository.PracticeSessionRepository {
	return &PracticeSessionRepository{db: db}
}

type practiceSessionRow struct {
	ID          string                  `db:"id"`
	LearnerID   int64                   `db:"learner_id"`
	SetID       int64                   `db:"set_id"`
	Mode        string                  `db:"mode"`
	Items       dbtypes.SessionItems    `db:"items"`
	Answers     dbtypes.PracticeAnswers `db:"answers"`
	StartedAt   time.Time               `db:"started_at"`
	CompletedAt *time.Time              `db:"completed_at"`
}

func (r *PracticeSessionRepository) Create(ctx context.Context, session *entity.PracticeSession) (*entity.PracticeSession, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO practice_sessions (id, learner_id, set_id, mode, items, answers, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID, session.LearnerID, session.SetID, string(session.Mode),
		dbtypes.SessionItems(session.Items), dbtypes.PracticeAnswers(session.Answers),
		session.StartedAt, session.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("create practice session: %w", err)
	}
	return session, nil
}

func (r *PracticeSessionRepository) Get(ctx context.Context, sessionID string) (*entity.PracticeSession, error) {
	var row practiceSessionRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, learner_id, set_id, mode, items, answers, started_at, completed_at
		   FROM practice_sessions WHERE id = $1`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get practice session: %w", err)
	}
	return toSession(row), nil
}

func (r *PracticeSessionRepository) Update(ctx context.Context, session *entity.PracticeSession) (*entity.PracticeSession, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE practice_sessions SET items = $1, answers = $2, completed_at = $3 WHERE id = $4`,
		dbtypes.SessionItems(session.Items), dbtypes.PracticeAnswers(session.Answers),
		session.CompletedAt, session.ID)
	if err != nil {
		return nil, fmt.Errorf("update practice session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update practice session: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrSessionNotFound
	}
	return session, nil
}

func toSession(row practiceSessionRow) *entity.PracticeSession {
	return &entity.PracticeSession{
		ID:          row.ID,
		LearnerID:   row.LearnerID,
		SetID:       row.SetID,
		Mode:        entity.PracticeMode(row.Mode),
		Items:       row.Items,
		Answers:     row.Answers,
		StartedAt:   row.StartedAt,
		CompletedAt: row.CompletedAt,
	}
}
