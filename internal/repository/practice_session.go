package repository

import (
	"context"

	"github.com/eslsoft/vocdrill/internal/entity"
)

// PracticeSessionRepository stores practice sessions with their batch state
// and answer log.
type PracticeSessionRepository interface {
	Create(ctx context.Context, session *entity.PracticeSession) (*entity.PracticeSession, error)
	// Get returns the session or entity.ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*entity.PracticeSession, error)
	Update(ctx context.Context, session *entity.PracticeSession) (*entity.PracticeSession, error)
}
