package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/vocdrill/internal/entity"
	"github.com/eslsoft/vocdrill/internal/usecase"
)

type stubUsecase struct {
	startRes    *usecase.StartSessionResult
	startErr    error
	submitRes   *usecase.SubmitAnswerResult
	submitErr   error
	completeRes *entity.MasteryStatus
	completeErr error
	session     *entity.PracticeSession
	sessionErr  error
	mastery     *entity.MasteryStatus
	masteryErr  error

	lastSessionID string
	lastForce     bool
	lastInput     usecase.SubmitAnswerInput
}

func (s *stubUsecase) StartSession(ctx context.Context, learnerID, setID int64, mode entity.PracticeMode, batchSize int) (*usecase.StartSessionResult, error) {
	return s.startRes, s.startErr
}

func (s *stubUsecase) SubmitAnswer(ctx context.Context, sessionID string, input usecase.SubmitAnswerInput) (*usecase.SubmitAnswerResult, error) {
	s.lastSessionID = sessionID
	s.lastInput = input
	return s.submitRes, s.submitErr
}

func (s *stubUsecase) CompleteSession(ctx context.Context, sessionID string, force bool) (*entity.MasteryStatus, error) {
	s.lastSessionID = sessionID
	s.lastForce = force
	return s.completeRes, s.completeErr
}

func (s *stubUsecase) GetSession(ctx context.Context, sessionID string) (*entity.PracticeSession, error) {
	return s.session, s.sessionErr
}

func (s *stubUsecase) Mastery(ctx context.Context, learnerID, setID int64) (*entity.MasteryStatus, error) {
	return s.mastery, s.masteryErr
}

func setupServer(stub *stubUsecase) *echo.Echo {
	e := echo.New()
	NewPracticeService(stub).Register(e.Group("/api/v1"))
	return e
}

func TestStartSessionHandler(t *testing.T) {
	stub := &stubUsecase{
		startRes: &usecase.StartSessionResult{
			Session: &entity.PracticeSession{ID: "s-1", Mode: entity.ModeWriting},
			Batch: []entity.VocabularyItem{
				{ID: 1, Word: "apfel", Translation: "apple", MaxErrors: 3},
			},
			MasteryBefore: entity.MasteryStatus{TargetMastery: 0.8, TotalWords: 10},
		},
	}
	e := setupServer(stub)

	body := `{"learner_id":7,"set_id":1,"mode":"writing","batch_size":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/practice-sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp startSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s-1", resp.SessionID)
	require.Len(t, resp.Batch, 1)
	assert.Equal(t, "apfel", resp.Batch[0].Word)
	assert.Equal(t, int32(10), resp.MasteryStatusBefore.TotalWords)
}

func TestStartSessionHandlerNoItems(t *testing.T) {
	stub := &stubUsecase{startErr: entity.ErrNoEligibleItems}
	e := setupServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/practice-sessions", strings.NewReader(`{"set_id":9}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSubmitAnswerHandler(t *testing.T) {
	stub := &stubUsecase{
		submitRes: &usecase.SubmitAnswerResult{
			Outcome:        usecase.OutcomeCorrect,
			Attempts:       2,
			Score:          90,
			MemoryStrength: 0.42,
		},
	}
	e := setupServer(stub)

	body := `{"item_id":3,"is_correct":true,"hint_used":false,"time_spent_seconds":3.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/practice-sessions/s-1/answers", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s-1", stub.lastSessionID)
	assert.Equal(t, int64(3), stub.lastInput.ItemID)
	assert.True(t, stub.lastInput.IsCorrect)

	var resp submitAnswerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "correct", resp.Outcome)
	assert.Equal(t, int32(90), resp.Score)
	assert.InDelta(t, 0.42, resp.ItemMemoryStrength, 1e-9)
}

func TestSubmitAnswerHandlerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"session missing", entity.ErrSessionNotFound, http.StatusNotFound},
		{"session closed", entity.ErrSessionClosed, http.StatusConflict},
		{"item not in batch", entity.ErrItemNotInBatch, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupServer(&stubUsecase{submitErr: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/practice-sessions/x/answers", strings.NewReader(`{"item_id":1}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSubmitAnswerHandlerHidesInternalError(t *testing.T) {
	e := setupServer(&stubUsecase{submitErr: errors.New("dial tcp 10.0.0.5:5432: connection refused")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/practice-sessions/x/answers", strings.NewReader(`{"item_id":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestCompleteSessionHandler(t *testing.T) {
	stub := &stubUsecase{
		completeRes: &entity.MasteryStatus{CurrentMastery: 0.9, TargetMastery: 0.8, Achieved: true, WordsMastered: 9, TotalWords: 10},
	}
	e := setupServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/practice-sessions/s-2/complete", strings.NewReader(`{"force":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.lastForce)

	var resp masteryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.MasteryStatus.Achieved)
}

func TestGetSessionHandler(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubUsecase{
		session: &entity.PracticeSession{
			ID:        "s-3",
			LearnerID: 7,
			SetID:     1,
			Mode:      entity.ModeListening,
			Items:     []entity.SessionItem{{ItemID: 1, State: entity.ItemPending}},
			StartedAt: started,
		},
	}
	e := setupServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/practice-sessions/s-3", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s-3", resp.SessionID)
	assert.Equal(t, "listening", resp.Mode)
	assert.Equal(t, started.Format(time.RFC3339), resp.StartedAt)
	assert.Empty(t, resp.CompletedAt)
}

func TestGetMasteryHandler(t *testing.T) {
	stub := &stubUsecase{
		mastery: &entity.MasteryStatus{CurrentMastery: 0.5, TargetMastery: 0.8, TotalWords: 20, WordsMastered: 6},
	}
	e := setupServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary-sets/1/mastery?learner_id=7", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.MasteryStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0.5, resp.CurrentMastery, 1e-9)
	assert.Equal(t, int32(6), resp.WordsMastered)
}

func TestGetMasteryHandlerBadLearner(t *testing.T) {
	e := setupServer(&stubUsecase{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vocabulary-sets/1/mastery", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
